package stage

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/polyroot"
)

// Stage is one cascadable section of order one or two. Num and Den are in
// descending powers of s. A Stage is not safe for concurrent mutation.
type Stage struct {
	Name  string
	Num   []float64
	Den   []float64
	Zeros []complex128
	Poles []complex128
	Gain  float64

	lastQ float64
}

// Build creates a stage with numerator gain·Π(s - z) and denominator
// Π(s - p). It rejects empty pole sets, more than two poles, improper
// sections and root sets that are neither real nor a conjugate pair at prec.
func Build(zeros, poles []complex128, gain float64, prec zpk.Precision) (*Stage, error) {
	switch {
	case len(poles) == 0:
		return nil, fmt.Errorf("%w: no poles", ErrInvalidGroup)
	case len(poles) > 2:
		return nil, fmt.Errorf("%w: %d poles exceed a second-order section", ErrInvalidGroup, len(poles))
	case len(zeros) > len(poles):
		return nil, fmt.Errorf("%w: %d zeros over %d poles", ErrInvalidGroup, len(zeros), len(poles))
	}

	if err := checkRoots("poles", poles, prec); err != nil {
		return nil, err
	}

	if err := checkRoots("zeros", zeros, prec); err != nil {
		return nil, err
	}

	num := polyroot.RealFromRoots(zeros)
	for i := range num {
		num[i] *= gain
	}

	s := &Stage{
		Num:   num,
		Den:   polyroot.RealFromRoots(poles),
		Zeros: append([]complex128(nil), zeros...),
		Poles: append([]complex128(nil), poles...),
		Gain:  gain,
	}

	// Seed the fallback with the pole selectivity of the group.
	s.lastQ = Group(s.Poles).Q()
	s.Q()

	return s, nil
}

// checkRoots accepts an empty set, a real root, two real roots or a
// conjugate pair. Anything else has no real-coefficient polynomial.
func checkRoots(what string, roots []complex128, prec zpk.Precision) error {
	tol := prec.Tol()
	isReal := func(r complex128) bool { return math.Abs(imag(r)) <= tol }

	switch len(roots) {
	case 0:
		return nil
	case 1:
		if isReal(roots[0]) {
			return nil
		}
	case 2:
		if isReal(roots[0]) && isReal(roots[1]) {
			return nil
		}

		if !isReal(roots[0]) && prec.Equal(cmplx.Conj(roots[0]), roots[1]) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s %v are not real or a conjugate pair", ErrInvalidGroup, what, roots)
}

// Order returns the denominator degree.
func (s *Stage) Order() int {
	return len(s.Den) - 1
}

// Q returns the stage selectivity computed from the roots of Den. A first
// order stage yields |p|/(2|Re p|); a second-order stage yields
// -Re((p0+p1)/(p0·p1)). When the result is not finite the last valid value
// is returned.
func (s *Stage) Q() float64 {
	q := math.NaN()

	if p, err := polyroot.Roots(s.Den); err == nil {
		switch len(p) {
		case 1:
			q = rootQ(p[0])
		case 2:
			q = -real((p[0] + p[1]) / (p[0] * p[1]))
		}
	}

	if math.IsNaN(q) || math.IsInf(q, 0) {
		return s.lastQ
	}

	s.lastQ = q

	return q
}

// TF returns copies of the stage numerator and denominator.
func (s *Stage) TF() ([]float64, []float64) {
	return append([]float64(nil), s.Num...), append([]float64(nil), s.Den...)
}

// ZPK returns the stage as zeros, poles and gain.
func (s *Stage) ZPK() zpk.ZPK {
	return zpk.ZPK{
		Zeros: append([]complex128(nil), s.Zeros...),
		Poles: append([]complex128(nil), s.Poles...),
		Gain:  s.Gain,
	}
}

// Response returns H(jw) of the stage.
func (s *Stage) Response(w float64) complex128 {
	return s.ZPK().Response(w)
}

// DCGain returns |H(0)|, or +Inf for a pole at the origin.
func (s *Stage) DCGain() float64 {
	den := zpk.ProductNeg(s.Poles)
	if den == 0 {
		return math.Inf(1)
	}

	return cmplx.Abs(complex(s.Gain, 0) * zpk.ProductNeg(s.Zeros) / den)
}

// Combine merges stages into a single transfer function. The result is the
// product of all numerators over the product of all denominators.
func Combine(stages ...*Stage) ([]float64, []float64) {
	combined := zpk.ZPK{Gain: 1}

	for _, s := range stages {
		combined.Zeros = append(combined.Zeros, s.Zeros...)
		combined.Poles = append(combined.Poles, s.Poles...)
		combined.Gain *= s.Gain
	}

	return combined.TF()
}
