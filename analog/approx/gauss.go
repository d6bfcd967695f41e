package approx

import (
	"github.com/cwbudde/algo-analog/analog/zpk"
)

type gauss struct{}

// Prototype approximates a Gaussian magnitude with the truncated series
// |H(jw)|² = 1/Σ_{k=0..n} w^(2k)/k!, then scales the result so that the
// attenuation at w = 1 equals Ap.
func (gauss) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	d := make([]float64, n+1)

	fact := 1.0
	for k := range d {
		if k > 0 {
			fact *= float64(k)
		}

		d[k] = 1 / fact
	}

	p, err := allPoleFromSquaredMagnitude(d)
	if err != nil {
		return zpk.ZPK{}, err
	}

	return normalizeAttenuation(p, c.Ap)
}

func (g gauss) OptimalOrder(c Constraints) int {
	return searchOrder(g, c, reachesStopband(c))
}
