package approx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/polyroot"
)

type bessel struct{}

// Prototype returns the Bessel (Thomson) prototype. The poles are the roots
// of the reverse Bessel polynomial, which gives unit group delay at DC; the
// result is then scaled so that the attenuation at w = 1 equals Ap.
func (bessel) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	poles, err := besselDelayPoles(n)
	if err != nil {
		return zpk.ZPK{}, err
	}

	p := zpk.ZPK{Poles: poles, Gain: real(zpk.ProductNeg(poles))}
	if c.Mode == ModeDelay {
		return p, nil
	}

	return normalizeAttenuation(p, c.Ap)
}

func (b bessel) OptimalOrder(c Constraints) int {
	return searchOrder(b, c, reachesStopband(c))
}

// besselDelayPoles returns the delay-normalized poles of order n, the roots
// of the reverse Bessel polynomial.
func besselDelayPoles(n int) ([]complex128, error) {
	poles, err := polyroot.Roots(reverseBessel(n))
	if err != nil {
		return nil, fmt.Errorf("approx: bessel order %d: %w", n, err)
	}

	return poles, nil
}

// reverseBessel returns θ_n(s) in descending powers. The coefficient of s^k
// is (2n-k)! / (2^(n-k)·k!·(n-k)!).
func reverseBessel(n int) []float64 {
	c := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		lg2nk, _ := math.Lgamma(float64(2*n-k) + 1)
		lgk, _ := math.Lgamma(float64(k) + 1)
		lgnk, _ := math.Lgamma(float64(n-k) + 1)

		c[n-k] = math.Round(math.Exp(lg2nk - lgk - lgnk - float64(n-k)*math.Ln2))
	}

	return c
}
