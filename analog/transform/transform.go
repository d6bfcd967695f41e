// Package transform maps a normalized lowpass prototype onto lowpass,
// highpass, bandpass and bandstop responses using the classical analog
// zero/pole/gain frequency transformations.
//
// Every function rounds the resulting roots to the given precision.
package transform

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-analog/analog/zpk"
)

// ErrRootAtOrigin is returned when an inverting transformation meets a zero or
// pole at s = 0.
var ErrRootAtOrigin = errors.New("transform: root at origin cannot be inverted")

// LowpassToLowpass moves the unit cutoff of p to wo.
func LowpassToLowpass(p zpk.ZPK, wo float64, prec zpk.Precision) zpk.ZPK {
	return p.Scale(wo).Rounded(prec)
}

// LowpassToHighpass replaces s by wo/s. Each pole and zero is inverted and
// the missing zeros are placed at the origin.
func LowpassToHighpass(p zpk.ZPK, wo float64, prec zpk.Precision) (zpk.ZPK, error) {
	degree := p.RelativeDegree()

	z, err := invert(p.Zeros, complex(wo, 0))
	if err != nil {
		return zpk.ZPK{}, err
	}

	poles, err := invert(p.Poles, complex(wo, 0))
	if err != nil {
		return zpk.ZPK{}, err
	}

	for range degree {
		z = append(z, 0)
	}

	return zpk.ZPK{
		Zeros: z,
		Poles: poles,
		Gain:  p.Gain * real(zpk.ProductNeg(p.Zeros)/zpk.ProductNeg(p.Poles)),
	}.Rounded(prec), nil
}

// LowpassToBandpass replaces s by (s² + wo²)/(s·bw), centering the passband
// at wo with bandwidth bw.
func LowpassToBandpass(p zpk.ZPK, wo, bw float64, prec zpk.Precision) zpk.ZPK {
	degree := p.RelativeDegree()

	z := splitBand(p.Zeros, wo, bw/2)
	for range degree {
		z = append(z, 0)
	}

	return zpk.ZPK{
		Zeros: z,
		Poles: splitBand(p.Poles, wo, bw/2),
		Gain:  p.Gain * math.Pow(bw, float64(degree)),
	}.Rounded(prec)
}

// LowpassToBandstop replaces s by (s·bw)/(s² + wo²). The missing zeros are
// placed on the imaginary axis at ±j·wo.
func LowpassToBandstop(p zpk.ZPK, wo, bw float64, prec zpk.Precision) (zpk.ZPK, error) {
	degree := p.RelativeDegree()

	zh, err := invert(p.Zeros, complex(bw/2, 0))
	if err != nil {
		return zpk.ZPK{}, err
	}

	ph, err := invert(p.Poles, complex(bw/2, 0))
	if err != nil {
		return zpk.ZPK{}, err
	}

	z := splitBand(zh, wo, 1)
	for range degree {
		z = append(z, complex(0, wo), complex(0, -wo))
	}

	return zpk.ZPK{
		Zeros: z,
		Poles: splitBand(ph, wo, 1),
		Gain:  p.Gain * real(zpk.ProductNeg(p.Zeros)/zpk.ProductNeg(p.Poles)),
	}.Rounded(prec), nil
}

func invert(roots []complex128, num complex128) ([]complex128, error) {
	out := make([]complex128, 0, len(roots))

	for _, r := range roots {
		if r == 0 {
			return nil, ErrRootAtOrigin
		}

		out = append(out, num/r)
	}

	return out, nil
}

// splitBand maps every root r to the two roots of s² - 2·h·r·s + wo² = 0,
// i.e. h·r ± sqrt((h·r)² - wo²). The "+" branches come first, then the "-"
// branches, so conjugate pairs in the input stay conjugate in the output.
func splitBand(roots []complex128, wo, h float64) []complex128 {
	out := make([]complex128, 0, 2*len(roots))
	minus := make([]complex128, 0, len(roots))

	w2 := complex(wo*wo, 0)

	for _, r := range roots {
		c := r * complex(h, 0)
		d := cmplx.Sqrt(c*c - w2)

		out = append(out, c+d)
		minus = append(minus, c-d)
	}

	return append(out, minus...)
}
