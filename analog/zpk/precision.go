package zpk

import "math"

// Precision is the number of decimal digits kept in the real and imaginary
// parts of a rounded root.
type Precision int

// DefaultPrecision suppresses floating-point noise before conjugate pairing.
const DefaultPrecision Precision = 5

func (p Precision) scale() float64 {
	return math.Pow(10, float64(p))
}

// Round rounds both parts of x to p decimals (half to even).
func (p Precision) Round(x complex128) complex128 {
	s := p.scale()

	re := math.RoundToEven(real(x)*s) / s
	im := math.RoundToEven(imag(x)*s) / s

	// Normalize negative zero so equal roots compare and print identically.
	return complex(re+0, im+0)
}

// RoundFloat rounds x to p decimals (half to even).
func (p Precision) RoundFloat(x float64) float64 {
	s := p.scale()
	return math.RoundToEven(x*s)/s + 0
}

// RoundAll returns a rounded copy of roots.
func (p Precision) RoundAll(roots []complex128) []complex128 {
	if roots == nil {
		return nil
	}

	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = p.Round(r)
	}

	return out
}

// Equal reports whether a and b agree within Tol in both parts. Values on
// either side of a rounding boundary still compare equal.
func (p Precision) Equal(a, b complex128) bool {
	tol := p.Tol()

	return math.Abs(real(a)-real(b)) <= tol && math.Abs(imag(a)-imag(b)) <= tol
}

// Contains reports whether r is a member of set at precision p.
func (p Precision) Contains(set []complex128, r complex128) bool {
	for _, s := range set {
		if p.Equal(s, r) {
			return true
		}
	}

	return false
}

// Tol returns the largest per-component difference rounding may introduce.
func (p Precision) Tol() float64 {
	return 0.5 / p.scale()
}
