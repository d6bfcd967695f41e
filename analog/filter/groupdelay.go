package filter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-analog/analog/zpk"
)

// gdSentinel replaces a zero or undefined first group-delay sample.
const gdSentinel = 1e-15

// WMinMax returns the frequency range (rad/s) plotted for spec: a decade
// below the lowest edge to a decade above the highest.
func WMinMax(spec Spec) (float64, float64, error) {
	switch spec.Kind {
	case LowPass, HighPass:
		if len(spec.Wp) < 1 || len(spec.Wa) < 1 {
			return 0, 0, fmt.Errorf("%w: missing edges", ErrSpec)
		}

		return math.Min(spec.Wp[0], spec.Wa[0]) / 10, math.Max(spec.Wp[0], spec.Wa[0]) * 10, nil
	case GroupDelay:
		if len(spec.Wp) < 1 {
			return 0, 0, fmt.Errorf("%w: missing edges", ErrSpec)
		}

		return spec.Wp[0] / 10, spec.Wp[0] * 10, nil
	case BandPass, BandStop:
		if len(spec.Wp) < 2 || len(spec.Wa) < 2 {
			return 0, 0, fmt.Errorf("%w: missing edges", ErrSpec)
		}

		return math.Min(spec.Wp[0], spec.Wa[0]) / 10, math.Max(spec.Wp[1], spec.Wa[1]) * 10, nil
	}

	return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedKind, spec.Kind)
}

// DelayCurve returns the normalized group delay of z on the axis w as the
// negative difference quotient of the unwrapped phase, the last value
// repeated. With target > 0 the curve is scaled so its first value equals
// target; otherwise the first value becomes the reciprocal of the raw one.
// A first raw value of 0 or NaN is replaced by 1e-15 beforehand.
func DelayCurve(z zpk.ZPK, w []float64, target float64) []float64 {
	if len(w) < 2 {
		return nil
	}

	_, phase := z.Bode(w)

	gd := make([]float64, len(w))
	for i := 0; i < len(w)-1; i++ {
		gd[i] = -(phase[i+1] - phase[i]) / (w[i+1] - w[i])
	}

	gd[len(gd)-1] = gd[len(gd)-2]

	if gd[0] == 0 || math.IsNaN(gd[0]) {
		gd[0] = gdSentinel
		target = 1 / gd[0]
	} else if !(target > 0) {
		target = 1 / gd[0]
	}

	vecmath.ScaleBlock(gd, gd, target/gd[0])

	return gd
}
