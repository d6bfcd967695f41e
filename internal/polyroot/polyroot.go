// Package polyroot provides polynomial root finding and root/coefficient
// conversions shared by the analog design packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (all zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// RealTol is the relative imaginary magnitude below which a computed root is
// snapped onto the real axis.
const RealTol = 1e-10

// Roots returns the roots of the real polynomial c given in descending power
// order: c[0]*s^n + c[1]*s^(n-1) + ... + c[n]. Leading zeros are ignored and
// trailing zeros yield roots at the origin. A nonzero constant has no roots.
func Roots(c []float64) ([]complex128, error) {
	lead := 0
	for lead < len(c) && c[lead] == 0 {
		lead++
	}

	if lead == len(c) {
		return nil, ErrDegeneratePolynomial
	}

	c = c[lead:]

	origin := 0
	for len(c) > 1 && c[len(c)-1] == 0 {
		c = c[:len(c)-1]
		origin++
	}

	roots := make([]complex128, 0, len(c)-1+origin)
	for range origin {
		roots = append(roots, 0)
	}

	switch len(c) {
	case 1:
		return roots, nil
	case 2:
		return append(roots, complex(-c[1]/c[0], 0)), nil
	case 3:
		r := quadraticRoots(c[0], c[1], c[2])
		return append(roots, r[0], r[1]), nil
	}

	coeff := make([]complex128, len(c))
	for i, v := range c {
		coeff[i] = complex(v, 0)
	}

	found, err := DurandKerner(coeff)
	if err != nil {
		return nil, err
	}

	for _, r := range found {
		roots = append(roots, snapReal(r))
	}

	return roots, nil
}

// FromRoots expands prod(s - r) into monic coefficients in descending power
// order. For root sets closed under conjugation the imaginary parts of the
// result vanish; use RealFromRoots to drop them.
func FromRoots(roots []complex128) []complex128 {
	out := make([]complex128, 1, len(roots)+1)
	out[0] = 1

	for _, r := range roots {
		out = append(out, 0)
		for i := len(out) - 1; i > 0; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

// RealFromRoots is FromRoots keeping only the real part of each coefficient.
func RealFromRoots(roots []complex128) []float64 {
	c := FromRoots(roots)

	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}

	return out
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
// The initial guesses are spread on a circle of the Fujiwara bound radius so
// that polynomials with widely spread coefficients still converge.
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := fujiwaraBound(norm)

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.4
		r := radius * (0.5 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 2000
		tol     = 1e-13
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta) / math.Max(1, cmplx.Abs(roots[i])); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	for _, r := range roots {
		if relativeResidual(norm, r) > 1e-6 {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	disc := b*b - 4*a*c
	if disc >= 0 {
		// Avoid cancellation: compute the larger root first.
		q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
		if q == 0 {
			return [2]complex128{0, 0}
		}

		return [2]complex128{complex(q/a, 0), complex(c/q, 0)}
	}

	re := -b / (2 * a)
	im := math.Sqrt(-disc) / (2 * math.Abs(a))

	return [2]complex128{complex(re, im), complex(re, -im)}
}

func fujiwaraBound(norm []complex128) float64 {
	n := len(norm) - 1

	bound := 0.0
	for i := 1; i <= n; i++ {
		v := cmplx.Abs(norm[i])
		if i == n {
			v /= 2
		}

		if r := math.Pow(v, 1/float64(i)); r > bound {
			bound = r
		}
	}

	if bound == 0 {
		return 1
	}

	return 2 * bound
}

func relativeResidual(norm []complex128, x complex128) float64 {
	scale := 0.0
	ax := cmplx.Abs(x)

	for i, c := range norm {
		scale += cmplx.Abs(c) * math.Pow(ax, float64(len(norm)-1-i))
	}

	if scale == 0 {
		return 0
	}

	return cmplx.Abs(PolyEval(norm, x)) / scale
}

func snapReal(r complex128) complex128 {
	if math.Abs(imag(r)) <= RealTol*math.Max(1, cmplx.Abs(r)) {
		return complex(real(r), 0)
	}

	return r
}
