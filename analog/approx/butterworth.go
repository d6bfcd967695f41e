package approx

import (
	"math"

	"github.com/cwbudde/algo-analog/analog/zpk"
)

type butterworth struct{}

// Prototype places n poles on a circle of radius eps^(-1/n) so that the
// attenuation at w = 1 equals Ap.
func (butterworth) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	if !(c.Eps > 0) {
		return zpk.ZPK{}, ErrConstraints
	}

	r := math.Pow(c.Eps, -1/float64(n))

	poles := make([]complex128, n)
	for k := range n {
		theta := math.Pi * float64(2*k+1) / float64(2*n)
		poles[k] = complex(-r*math.Sin(theta), r*math.Cos(theta))
	}

	return zpk.ZPK{Poles: snapMiddlePole(poles), Gain: math.Pow(r, float64(n))}, nil
}

func (butterworth) OptimalOrder(c Constraints) int {
	d := math.Expm1(math.Ln10*c.Aa/10) / math.Expm1(math.Ln10*c.Ap/10)
	return ceilOrder(math.Log10(d) / (2 * math.Log10(c.Wan)))
}

// snapMiddlePole clears the rounding residue of cos(π/2) from the real pole
// of odd-order pole circles.
func snapMiddlePole(poles []complex128) []complex128 {
	if n := len(poles); n%2 == 1 {
		poles[n/2] = complex(real(poles[n/2]), 0)
	}

	return poles
}
