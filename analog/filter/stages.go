package filter

import (
	"fmt"

	"github.com/cwbudde/algo-analog/analog/stage"
)

// ComputeStages replaces the stage list with an automatic partition of the
// pole and zero groups. BandStop filters place their notches by minimizing
// the largest section resonance.
func (f *Filter) ComputeStages() error {
	if err := f.check(); err != nil {
		return err
	}

	parts, err := stage.AutoPartition(f.polePairs, f.zeroPairs, f.spec.Kind == BandStop)
	if err != nil {
		return fmt.Errorf("filter: partition: %w", err)
	}

	stages := make([]*stage.Stage, 0, len(parts))

	for i, p := range parts {
		s, err := stage.Build(p.Zeros, p.Poles, 1, f.cfg.prec)
		if err != nil {
			return fmt.Errorf("filter: stage %d: %w", i, err)
		}

		s.Name = fmt.Sprintf("Stage %d", i)
		stages = append(stages, s)
	}

	f.stages = stages
	f.cfg.logger.Debug("filter.stages", "name", f.name, "count", len(stages))

	return nil
}

// AddStage appends a stage built from roots of the filter. Every root must
// match a filter root at the configured precision; otherwise the stage list
// is left unchanged and ErrForeignRoot is returned. Poles and zeros must each
// be real or a conjugate pair (stage.ErrInvalidGroup).
func (f *Filter) AddStage(zeros, poles []complex128, gain float64) error {
	if err := f.check(); err != nil {
		return err
	}

	for _, p := range poles {
		if !f.cfg.prec.Contains(f.zpk.Poles, p) {
			return fmt.Errorf("%w: pole %v", ErrForeignRoot, p)
		}
	}

	for _, z := range zeros {
		if !f.cfg.prec.Contains(f.zpk.Zeros, z) {
			return fmt.Errorf("%w: zero %v", ErrForeignRoot, z)
		}
	}

	s, err := stage.Build(zeros, poles, gain, f.cfg.prec)
	if err != nil {
		return err
	}

	s.Name = fmt.Sprintf("Stage %d", len(f.stages))
	f.stages = append(f.stages, s)

	return nil
}

// DelStage removes the stage at index i.
func (f *Filter) DelStage(i int) error {
	if err := f.check(); err != nil {
		return err
	}

	if i < 0 || i >= len(f.stages) {
		return fmt.Errorf("%w: %d of %d", ErrStageIndex, i, len(f.stages))
	}

	f.stages = append(f.stages[:i], f.stages[i+1:]...)

	return nil
}

// Stages returns the current stage list.
func (f *Filter) Stages() []*stage.Stage {
	return append([]*stage.Stage(nil), f.stages...)
}

// StageNames returns the name of every stage.
func (f *Filter) StageNames() []string {
	names := make([]string, len(f.stages))
	for i, s := range f.stages {
		names[i] = s.Name
	}

	return names
}

func (f *Filter) stage(i int) (*stage.Stage, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	if i < 0 || i >= len(f.stages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrStageIndex, i, len(f.stages))
	}

	return f.stages[i], nil
}

// StageOrder returns the order of stage i.
func (f *Filter) StageOrder(i int) (int, error) {
	s, err := f.stage(i)
	if err != nil {
		return 0, err
	}

	return s.Order(), nil
}

// StageQ returns the selectivity of stage i.
func (f *Filter) StageQ(i int) (float64, error) {
	s, err := f.stage(i)
	if err != nil {
		return 0, err
	}

	return s.Q(), nil
}

// MaxStageQ returns the largest stage selectivity, 0 without stages.
func (f *Filter) MaxStageQ() float64 {
	q := 0.0
	for _, s := range f.stages {
		if v := s.Q(); v > q {
			q = v
		}
	}

	return q
}

// CombineStages returns the transfer function of the stages at the given
// indices connected in series.
func (f *Filter) CombineStages(idx ...int) ([]float64, []float64, error) {
	picked := make([]*stage.Stage, 0, len(idx))

	for _, i := range idx {
		s, err := f.stage(i)
		if err != nil {
			return nil, nil, err
		}

		picked = append(picked, s)
	}

	num, den := stage.Combine(picked...)

	return num, den, nil
}
