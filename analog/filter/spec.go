package filter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-analog/analog/approx"
)

// DefaultGroupDelay is the delay target in seconds of a GroupDelay filter
// when none is given.
const DefaultGroupDelay = 1e-3

// Spec describes the filter to synthesize. Edge frequencies are angular
// (rad/s); attenuations are in dB.
type Spec struct {
	Kind   Kind
	Family approx.Family

	// Wp and Wa hold one edge for LowPass, HighPass and GroupDelay and an
	// ascending pair for BandPass and BandStop. GroupDelay ignores Wa.
	Wp []float64
	Wa []float64

	Ap float64 // maximum passband attenuation
	Aa float64 // minimum stopband attenuation

	Des float64 // stopband-edge correction in [0, 1]
	G   float64 // linear passband gain, 1 when zero
	GD  float64 // group-delay target in seconds
	Tol float64 // group-delay tolerance in percent
}

// Params holds values derived during synthesis.
type Params struct {
	Eps    float64 // passband ripple factor
	Wan    float64 // normalized stopband edge
	N      int     // final order
	Q      float64 // maximum pole Q of the final poles
	Gain   float64 // final gain including G
	Adjust float64 // stopband-edge correction factor applied
}

func (s Spec) withDefaults() Spec {
	if s.G == 0 {
		s.G = 1
	}

	if s.Kind == GroupDelay && s.GD == 0 {
		s.GD = DefaultGroupDelay
	}

	return s
}

// Validate checks edge cardinality and ordering, attenuation bounds and the
// correction factor.
func (s Spec) Validate() error {
	if !s.Kind.valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedKind, s.Kind)
	}

	for _, w := range append(append([]float64(nil), s.Wp...), s.Wa...) {
		if !(w > 0) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: edge frequency %v must be positive and finite", ErrSpec, w)
		}
	}

	if !(s.Des >= 0 && s.Des <= 1) {
		return fmt.Errorf("%w: des %v outside [0, 1]", ErrSpec, s.Des)
	}

	if s.G < 0 || math.IsNaN(s.G) {
		return fmt.Errorf("%w: gain %v must not be negative", ErrSpec, s.G)
	}

	if s.Tol < 0 || s.Tol >= 100 {
		return fmt.Errorf("%w: tolerance %v%% outside [0, 100)", ErrSpec, s.Tol)
	}

	switch s.Kind {
	case GroupDelay:
		if len(s.Wp) != 1 {
			return fmt.Errorf("%w: %v needs one passband edge, got %d", ErrSpec, s.Kind, len(s.Wp))
		}

		if s.GD < 0 {
			return fmt.Errorf("%w: group delay %v must not be negative", ErrSpec, s.GD)
		}

		return nil
	case LowPass, HighPass:
		if len(s.Wp) != 1 || len(s.Wa) != 1 {
			return fmt.Errorf("%w: %v needs one passband and one stopband edge", ErrSpec, s.Kind)
		}
	case BandPass, BandStop:
		if len(s.Wp) != 2 || len(s.Wa) != 2 {
			return fmt.Errorf("%w: %v needs two passband and two stopband edges", ErrSpec, s.Kind)
		}

		if s.Wp[0] >= s.Wp[1] || s.Wa[0] >= s.Wa[1] {
			return fmt.Errorf("%w: band edges must be ascending", ErrSpec)
		}
	}

	if !(s.Ap > 0) || !(s.Aa > s.Ap) {
		return fmt.Errorf("%w: need 0 < Ap < Aa, got Ap=%v Aa=%v", ErrSpec, s.Ap, s.Aa)
	}

	if wan := s.Wan(); !(wan > 1) {
		return fmt.Errorf("%w: %v stopband edges leave normalized edge %v <= 1", ErrSpec, s.Kind, wan)
	}

	return nil
}

// Wan returns the normalized stopband edge for the kind: wa/wp for
// LowPass, wp/wa for HighPass, the ratio of band widths for BandPass and
// BandStop, and wp·GD for GroupDelay. It returns 0 for an invalid kind or
// missing edges.
func (s Spec) Wan() float64 {
	switch s.Kind {
	case LowPass:
		if len(s.Wp) == 1 && len(s.Wa) == 1 {
			return s.Wa[0] / s.Wp[0]
		}
	case HighPass:
		if len(s.Wp) == 1 && len(s.Wa) == 1 {
			return s.Wp[0] / s.Wa[0]
		}
	case BandPass:
		if len(s.Wp) == 2 && len(s.Wa) == 2 {
			return (s.Wa[1] - s.Wa[0]) / (s.Wp[1] - s.Wp[0])
		}
	case BandStop:
		if len(s.Wp) == 2 && len(s.Wa) == 2 {
			return (s.Wp[1] - s.Wp[0]) / (s.Wa[1] - s.Wa[0])
		}
	case GroupDelay:
		if len(s.Wp) == 1 {
			gd := s.GD
			if gd == 0 {
				gd = DefaultGroupDelay
			}

			return s.Wp[0] * gd
		}
	}

	return 0
}

// Eps returns the passband ripple factor sqrt(10^(Ap/10) - 1).
func (s Spec) Eps() float64 {
	return approx.RippleFactor(s.Ap)
}

func (s Spec) constraints() approx.Constraints {
	c := approx.Constraints{
		Eps: s.Eps(),
		Ap:  s.Ap,
		Aa:  s.Aa,
		Wan: s.Wan(),
		Tol: s.Tol,
	}

	if s.Kind == GroupDelay {
		c.Mode = approx.ModeDelay
	}

	return c
}
