package approx

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/polyroot"
)

// normalizeDelay scales p to unit group delay at DC.
func normalizeDelay(p zpk.ZPK) (zpk.ZPK, error) {
	d0 := p.GroupDelay(0)
	if !(d0 > 0) || math.IsInf(d0, 0) {
		return zpk.ZPK{}, fmt.Errorf("%w: DC group delay %v", ErrConstraints, d0)
	}

	return p.Scale(d0), nil
}

// normalizeAttenuation scales p so its attenuation relative to DC reaches
// ap dB exactly at w = 1. The magnitude must decrease monotonically.
func normalizeAttenuation(p zpk.ZPK, ap float64) (zpk.ZPK, error) {
	if !(ap > 0) {
		return zpk.ZPK{}, fmt.Errorf("%w: passband attenuation %v", ErrConstraints, ap)
	}

	dc := cmplx.Abs(p.Response(0))
	att := func(w float64) float64 {
		return -20 * math.Log10(cmplx.Abs(p.Response(w))/dc)
	}

	lo, hi := 0.0, 1.0
	for i := 0; att(hi) < ap; i++ {
		if i == 64 {
			return zpk.ZPK{}, fmt.Errorf("%w: attenuation %v dB never reached", ErrConstraints, ap)
		}

		lo, hi = hi, 2*hi
	}

	for range 200 {
		mid := 0.5 * (lo + hi)
		if att(mid) < ap {
			lo = mid
		} else {
			hi = mid
		}

		if hi-lo <= 1e-15*hi {
			break
		}
	}

	return p.Scale(1 / (0.5 * (lo + hi))), nil
}

// allPoleFromSquaredMagnitude returns the stable all-pole prototype whose
// squared magnitude is 1/D(w²), given the ascending coefficients of D(u)
// with D(0) = 1. Each root u of D yields the left-half-plane pole
// s = -sqrt(-u).
func allPoleFromSquaredMagnitude(d []float64) (zpk.ZPK, error) {
	desc := make([]float64, len(d))
	for i, v := range d {
		desc[len(d)-1-i] = v
	}

	us, err := polyroot.Roots(desc)
	if err != nil {
		return zpk.ZPK{}, fmt.Errorf("approx: squared magnitude roots: %w", err)
	}

	poles := make([]complex128, len(us))
	for i, u := range us {
		poles[i] = -cmplx.Sqrt(-u)
	}

	return zpk.ZPK{Poles: poles, Gain: real(zpk.ProductNeg(poles))}, nil
}

// Polynomials below use ascending coefficients: c[0] + c[1]x + ...

func polyAdd(a, b []float64) []float64 {
	out := make([]float64, max(len(a), len(b)))
	for i, v := range a {
		out[i] += v
	}

	for i, v := range b {
		out[i] += v
	}

	return out
}

func polyMul(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}

	return out
}

func polyScale(a []float64, k float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = v * k
	}

	return out
}

// polyIntegral returns the antiderivative of a with zero constant term.
func polyIntegral(a []float64) []float64 {
	out := make([]float64, len(a)+1)
	for i, v := range a {
		out[i+1] = v / float64(i+1)
	}

	return out
}

func polyEval(a []float64, x float64) float64 {
	v := 0.0
	for i := len(a) - 1; i >= 0; i-- {
		v = v*x + a[i]
	}

	return v
}

// polyCompose returns a(b(x)).
func polyCompose(a, b []float64) []float64 {
	var out []float64

	for i := len(a) - 1; i >= 0; i-- {
		out = polyAdd(polyMul(out, b), []float64{a[i]})
	}

	return out
}
