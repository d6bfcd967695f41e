package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-analog/analog/approx"
	"github.com/cwbudde/algo-analog/analog/transform"
	"github.com/cwbudde/algo-analog/analog/zpk"
)

// desGridPoints is the number of samples DesFactor scans.
const desGridPoints = 100000

// DesFactor returns the stopband-edge correction for a normalized prototype.
// It scans the prototype magnitude on [1/10, 5·wan] for the first frequency
// w where the attenuation reaches aa and returns 1 + des·(wan - w)/w. The
// factor is 1 for Chebyshev II, for a pinned Q, or when aa is never reached.
func DesFactor(proto zpk.ZPK, family approx.Family, aa, des, wan float64, qPinned bool) float64 {
	if family == approx.Chebyshev2 || qPinned || !(wan > 0) {
		return 1
	}

	w := floats.Span(make([]float64, desGridPoints), 0.1, 5*wan)
	mag := proto.MagnitudeDB(w)

	for i, m := range mag {
		if m <= -aa {
			return 1 + des*(wan-w[i])/w[i]
		}
	}

	return 1
}

// Denormalize applies the stopband-edge correction to proto and maps it to
// the kind and edges of spec. It returns the denormalized ZPK rounded to prec
// and the correction factor used.
func Denormalize(spec Spec, proto zpk.ZPK, qPinned bool, prec zpk.Precision) (zpk.ZPK, float64, error) {
	adjust := 1.0
	if spec.Kind != GroupDelay {
		adjust = DesFactor(proto, spec.Family, spec.Aa, spec.Des, spec.Wan(), qPinned)
	}

	p := proto.Scale(adjust)

	var (
		out zpk.ZPK
		err error
	)

	switch spec.Kind {
	case LowPass:
		out = transform.LowpassToLowpass(p, spec.Wp[0]/(2*math.Pi), prec)
	case HighPass:
		out, err = transform.LowpassToHighpass(p, spec.Wp[0]/(2*math.Pi), prec)
	case BandPass:
		wo, bw := bandEdges(spec.Wp)
		out = transform.LowpassToBandpass(p, wo, bw, prec)
	case BandStop:
		wo, bw := bandEdges(spec.Wp)
		out, err = transform.LowpassToBandstop(p, wo, bw, prec)
	case GroupDelay:
		gd := spec.GD
		if gd == 0 {
			gd = DefaultGroupDelay
		}

		out = transform.LowpassToLowpass(p, 2*math.Pi/(gd*spec.Wp[0]), prec)
	default:
		return zpk.ZPK{}, 0, fmt.Errorf("%w: %v", ErrUnsupportedKind, spec.Kind)
	}

	if err != nil {
		return zpk.ZPK{}, 0, fmt.Errorf("filter: denormalize %v: %w", spec.Kind, err)
	}

	return out, adjust, nil
}

// bandEdges returns the Hz-scaled centre frequency and bandwidth of a band.
func bandEdges(wp []float64) (float64, float64) {
	return math.Sqrt(wp[0]*wp[1]) / (2 * math.Pi), (wp[1] - wp[0]) / (2 * math.Pi)
}
