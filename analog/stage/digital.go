package stage

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-analog/digital/biquad"
)

// Bilinear maps the stage onto a digital biquad at sample rate fs. Stage
// roots are Hz-scaled, so the substitution constant is fs/π instead of 2·fs.
func (s *Stage) Bilinear(fs float64) (biquad.Coefficients, error) {
	if !(fs > 0) {
		return biquad.Coefficients{}, fmt.Errorf("stage: invalid sample rate %v", fs)
	}

	c, err := biquad.Bilinear(s.Num, s.Den, fs/math.Pi)
	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("stage %q: %w", s.Name, err)
	}

	return c, nil
}

// ErrUnstable is returned when a realized chain has a pole on or outside the
// unit circle.
var ErrUnstable = errors.New("stage: unstable digital realization")

// Cascade realizes stages as a biquad chain at sample rate fs. The chain must
// be stable.
func Cascade(stages []*Stage, fs float64, opts ...biquad.ChainOption) (*biquad.Chain, error) {
	coeffs := make([]biquad.Coefficients, 0, len(stages))

	for _, s := range stages {
		c, err := s.Bilinear(fs)
		if err != nil {
			return nil, err
		}

		coeffs = append(coeffs, c)
	}

	chain := biquad.NewChain(coeffs, opts...)
	if !chain.Stable() {
		return nil, fmt.Errorf("%w: max pole radius %v", ErrUnstable, chain.MaxPoleRadius())
	}

	return chain, nil
}
