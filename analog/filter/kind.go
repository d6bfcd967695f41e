package filter

import (
	"fmt"
	"strings"
)

// Kind selects the response shape of a filter.
type Kind int

const (
	LowPass Kind = iota
	HighPass
	BandPass
	BandStop
	GroupDelay
	// KindErr marks a filter whose specification was rejected.
	KindErr
)

var kindNames = [...]string{
	LowPass:    "lowpass",
	HighPass:   "highpass",
	BandPass:   "bandpass",
	BandStop:   "bandstop",
	GroupDelay: "group delay",
	KindErr:    "error",
}

var kindAliases = map[string]Kind{
	"lowpass":     LowPass,
	"lp":          LowPass,
	"highpass":    HighPass,
	"hp":          HighPass,
	"bandpass":    BandPass,
	"bp":          BandPass,
	"bandstop":    BandStop,
	"bandreject":  BandStop,
	"bs":          BandStop,
	"br":          BandStop,
	"notch":       BandStop,
	"groupdelay":  GroupDelay,
	"group delay": GroupDelay,
	"gd":          GroupDelay,
}

func (k Kind) valid() bool {
	return k >= LowPass && k <= GroupDelay
}

func (k Kind) String() string {
	if k < LowPass || k > KindErr {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Title returns the kind name with a capitalized first letter.
func (k Kind) Title() string {
	s := k.String()
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind resolves a kind name or common abbreviation.
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return KindErr, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}

	return k, nil
}
