package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// PoleQ returns the selectivity |(|p| / (2·Re p))| of a pole.
func PoleQ(p complex128) float64 {
	return math.Abs(cmplx.Abs(p) / (2 * real(p)))
}

// MaxPoleQ returns the largest PoleQ over poles, or 0 for an empty set.
func MaxPoleQ(poles []complex128) float64 {
	if len(poles) == 0 {
		return 0
	}

	qs := make([]float64, len(poles))
	for i, p := range poles {
		qs[i] = PoleQ(p)
	}

	return floats.Max(qs)
}

// Accepts reports whether q satisfies the bound qmax. A bound that is not
// a positive finite number accepts every q.
func Accepts(q, qmax float64) bool {
	if !(qmax > 0) || math.IsInf(qmax, 1) {
		return true
	}

	return !(q > qmax)
}
