package zpk

import (
	"fmt"

	"github.com/cwbudde/algo-analog/internal/polyroot"
)

// TF expands z into numerator and denominator coefficients in descending
// powers of s. The numerator carries the gain.
func (z ZPK) TF() ([]float64, []float64) {
	num := polyroot.RealFromRoots(z.Zeros)
	for i := range num {
		num[i] *= z.Gain
	}

	return num, polyroot.RealFromRoots(z.Poles)
}

// FromTF converts a transfer function given by descending-power coefficients
// back into zero/pole/gain form. Both polynomials are normalized by the
// leading denominator coefficient.
func FromTF(num, den []float64) (ZPK, error) {
	num = trimLeading(num)
	den = trimLeading(den)

	if len(den) == 0 {
		return ZPK{}, fmt.Errorf("%w: zero denominator", ErrDegenerate)
	}

	if len(num) == 0 {
		return ZPK{}, fmt.Errorf("%w: zero numerator", ErrDegenerate)
	}

	zeros, err := polyroot.Roots(num)
	if err != nil {
		return ZPK{}, fmt.Errorf("zpk: numerator roots: %w", err)
	}

	poles, err := polyroot.Roots(den)
	if err != nil {
		return ZPK{}, fmt.Errorf("zpk: denominator roots: %w", err)
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: num[0] / den[0]}, nil
}

func trimLeading(c []float64) []float64 {
	for len(c) > 0 && c[0] == 0 {
		c = c[1:]
	}

	return c
}
