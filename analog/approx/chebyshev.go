package approx

import (
	"math"

	"github.com/cwbudde/algo-analog/analog/zpk"
)

type chebyshev1 struct{}

// Prototype returns the equiripple-passband prototype with ripple Ap up to
// w = 1.
func (chebyshev1) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	if !(c.Eps > 0) {
		return zpk.ZPK{}, ErrConstraints
	}

	poles := chebyshevPoles(n, c.Eps)

	gain := real(zpk.ProductNeg(poles))
	if n%2 == 0 {
		gain /= math.Sqrt(1 + c.Eps*c.Eps)
	}

	return zpk.ZPK{Poles: poles, Gain: gain}, nil
}

func (chebyshev1) OptimalOrder(c Constraints) int {
	return chebyshevOrder(c)
}

type chebyshev2 struct{}

// Prototype returns the inverse Chebyshev prototype with attenuation Aa at
// its stopband edge. The edge sits at Wan when Wan > 1; otherwise the
// prototype is scaled so that the attenuation at w = 1 equals Ap.
func (chebyshev2) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	if !(c.Aa > 0) {
		return zpk.ZPK{}, ErrConstraints
	}

	de := 1 / RippleFactor(c.Aa)

	inv := chebyshevPoles(n, de)

	poles := make([]complex128, n)
	for i, p := range inv {
		poles[i] = 1 / p
	}

	zeros := make([]complex128, 0, n)

	for k := range n {
		cs := math.Cos(math.Pi * float64(2*k+1) / float64(2*n))
		if math.Abs(cs) < 1e-12 {
			continue
		}

		zeros = append(zeros, complex(0, 1/cs))
	}

	p := zpk.ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  real(zpk.ProductNeg(poles) / zpk.ProductNeg(zeros)),
	}

	if c.Wan > 1 {
		return p.Scale(c.Wan), nil
	}

	if !(c.Eps > 0) || c.Eps*de >= 1 {
		return zpk.ZPK{}, ErrConstraints
	}

	// Passband edge of the stopband-normalized prototype: T_n(1/wp) = 1/(de·eps).
	return p.Scale(math.Cosh(math.Acosh(1/(de*c.Eps)) / float64(n))), nil
}

func (chebyshev2) OptimalOrder(c Constraints) int {
	return chebyshevOrder(c)
}

// chebyshevPoles returns the type I poles for ripple factor eps:
// -sinh(μ)sin θ + j cosh(μ)cos θ with μ = asinh(1/eps)/n.
func chebyshevPoles(n int, eps float64) []complex128 {
	mu := math.Asinh(1/eps) / float64(n)
	sh, ch := math.Sinh(mu), math.Cosh(mu)

	poles := make([]complex128, n)
	for k := range n {
		theta := math.Pi * float64(2*k+1) / float64(2*n)
		poles[k] = complex(-sh*math.Sin(theta), ch*math.Cos(theta))
	}

	return snapMiddlePole(poles)
}

func chebyshevOrder(c Constraints) int {
	d := math.Expm1(math.Ln10*c.Aa/10) / math.Expm1(math.Ln10*c.Ap/10)
	return ceilOrder(math.Acosh(math.Sqrt(d)) / math.Acosh(c.Wan))
}
