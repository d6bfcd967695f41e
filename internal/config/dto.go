// Package config loads filter specifications from YAML documents.
package config

// YAMLDocument is the top-level shape of a filter file.
type YAMLDocument struct {
	Filters []YAMLFilter `yaml:"filters"`
}

// YAMLFilter describes one filter. Edge frequencies are in rad/s.
type YAMLFilter struct {
	Name          string    `yaml:"name"`
	Kind          string    `yaml:"kind"`
	Approximation string    `yaml:"approximation"`
	Wp            []float64 `yaml:"wp"`
	Wa            []float64 `yaml:"wa"`
	Ap            float64   `yaml:"ap"`
	Aa            float64   `yaml:"aa"`
	Des           float64   `yaml:"des"`
	Gain          float64   `yaml:"gain"`

	Order     int     `yaml:"order"`
	Q         float64 `yaml:"q"`
	NMin      int     `yaml:"nmin"`
	NMax      int     `yaml:"nmax"`
	QMax      float64 `yaml:"qmax"`
	GD        float64 `yaml:"gd"`
	Tol       float64 `yaml:"tol"`
	Precision *int    `yaml:"precision"`
}
