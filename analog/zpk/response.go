package zpk

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// Response evaluates H(jw).
func (z ZPK) Response(w float64) complex128 {
	s := complex(0, w)

	h := complex(z.Gain, 0)
	for _, r := range z.Zeros {
		h *= s - r
	}

	for _, r := range z.Poles {
		h /= s - r
	}

	return h
}

// Responses evaluates H(jw) for every frequency in w.
func (z ZPK) Responses(w []float64) []complex128 {
	out := make([]complex128, len(w))
	for i, wi := range w {
		out[i] = z.Response(wi)
	}

	return out
}

// MagnitudeDB returns 20·log10|H(jw)| for every frequency in w.
func (z ZPK) MagnitudeDB(w []float64) []float64 {
	h := z.Responses(w)

	re := make([]float64, len(h))
	im := make([]float64, len(h))

	for i, v := range h {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, len(h))
	vecmath.Magnitude(mag, re, im)

	for i, m := range mag {
		mag[i] = 20 * math.Log10(m)
	}

	return mag
}

// Bode returns the magnitude in dB and the unwrapped phase in radians of
// H(jw) for every frequency in w.
func (z ZPK) Bode(w []float64) ([]float64, []float64) {
	h := z.Responses(w)

	phase := make([]float64, len(h))
	for i, v := range h {
		phase[i] = cmplx.Phase(v)
	}

	return z.MagnitudeDB(w), Unwrap(phase)
}

// Unwrap removes 2π discontinuities between consecutive phase samples in
// place and returns its argument.
func Unwrap(phase []float64) []float64 {
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		raw := phase[i] + offset
		d := raw - phase[i-1]

		switch {
		case d > math.Pi:
			k := math.Ceil((d - math.Pi) / (2 * math.Pi))
			offset -= 2 * math.Pi * k
		case d < -math.Pi:
			k := math.Ceil((-d - math.Pi) / (2 * math.Pi))
			offset += 2 * math.Pi * k
		}

		phase[i] += offset
	}

	return phase
}

// GroupDelay returns the analytic group delay -dφ/dw of H at w. Each root
// r = a + jb contributes -a/(a² + (w-b)²), poles with a positive sign and
// zeros with a negative one.
func (z ZPK) GroupDelay(w float64) float64 {
	gd := 0.0
	for _, p := range z.Poles {
		gd += rootDelay(p, w)
	}

	for _, r := range z.Zeros {
		gd -= rootDelay(r, w)
	}

	return gd
}

func rootDelay(r complex128, w float64) float64 {
	a := real(r)
	d := w - imag(r)

	den := a*a + d*d
	if den == 0 {
		return 0
	}

	return -a / den
}
