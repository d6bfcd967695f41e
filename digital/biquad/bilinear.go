package biquad

import (
	"errors"
	"math"
)

// ErrInvalidSection is returned when an analog section cannot be mapped onto
// a biquad.
var ErrInvalidSection = errors.New("biquad: invalid analog section")

// Bilinear maps the analog section num(s)/den(s) onto a digital biquad with
// the substitution s = k*(1 - z^-1)/(1 + z^-1). num and den are given in
// descending power order and may have at most degree 2. The common order of
// the mapping is the larger of the two degrees, so first-order sections keep
// B2 = A2 = 0.
func Bilinear(num, den []float64, k float64) (Coefficients, error) {
	num = trimLeading(num)
	den = trimLeading(den)

	if len(den) == 0 || len(num) > 3 || len(den) > 3 || !(k > 0) {
		return Coefficients{}, ErrInvalidSection
	}

	order := max(len(num), len(den)) - 1
	if order < 0 {
		order = 0
	}

	b := mapPolynomial(num, order, k)
	a := mapPolynomial(den, order, k)

	a0 := a[0]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}, ErrInvalidSection
	}

	return Coefficients{
		B0: b[0] / a0, B1: b[1] / a0, B2: b[2] / a0,
		A1: a[1] / a0, A2: a[2] / a0,
	}, nil
}

// mapPolynomial returns sum c_j k^j (1 - z^-1)^j (1 + z^-1)^(order-j) in
// ascending powers of z^-1, where c_j multiplies s^j.
func mapPolynomial(c []float64, order int, k float64) [3]float64 {
	var out [3]float64

	deg := len(c) - 1
	for i, v := range c {
		j := deg - i

		term := []float64{v * math.Pow(k, float64(j))}
		for range j {
			term = mulLinear(term, -1)
		}

		for range order - j {
			term = mulLinear(term, 1)
		}

		for n := range term {
			out[n] += term[n]
		}
	}

	return out
}

// mulLinear multiplies p (ascending in z^-1) by (1 + sign*z^-1).
func mulLinear(p []float64, sign float64) []float64 {
	out := make([]float64, len(p)+1)
	for i, v := range p {
		out[i] += v
		out[i+1] += sign * v
	}

	return out
}

func trimLeading(c []float64) []float64 {
	for len(c) > 0 && c[0] == 0 {
		c = c[1:]
	}

	return c
}
