package biquad

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Response returns H(e^jw) of the section at freqHz for the given sample
// rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeDB returns 20*log10|H| of the section at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Response returns the cascade response as the gain times the product of
// all section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// FrequencyResponse samples the cascade response at points uniformly spaced
// normalized frequencies w = pi*k/points, k = 0..points-1. points is rounded
// up to a power of two. Each section's numerator and denominator are
// zero-padded to 2*points and transformed with one FFT plan.
func (c *Chain) FrequencyResponse(points int) ([]float64, []complex128, error) {
	if points < 2 {
		points = 2
	}

	points = nextPowerOf2(points)
	size := 2 * points

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, nil, fmt.Errorf("biquad: failed to create FFT plan: %w", err)
	}

	h := make([]complex128, points)
	for i := range h {
		h[i] = complex(c.gain, 0)
	}

	src := make([]complex128, size)
	num := make([]complex128, size)
	den := make([]complex128, size)

	for i := range c.sections {
		s := &c.sections[i]

		clear(src)
		src[0], src[1], src[2] = complex(s.B0, 0), complex(s.B1, 0), complex(s.B2, 0)

		if err := plan.Forward(num, src); err != nil {
			return nil, nil, fmt.Errorf("biquad: forward FFT failed: %w", err)
		}

		src[0], src[1], src[2] = 1, complex(s.A1, 0), complex(s.A2, 0)

		if err := plan.Forward(den, src); err != nil {
			return nil, nil, fmt.Errorf("biquad: forward FFT failed: %w", err)
		}

		for k := range h {
			h[k] *= num[k] / den[k]
		}
	}

	w := make([]float64, points)
	for k := range w {
		w[k] = math.Pi * float64(k) / float64(points)
	}

	return w, h, nil
}

// ImpulseResponse computes n samples of the cascade impulse response. The
// chain state is saved and restored.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	c.Reset()

	ir := make([]float64, n)

	ir[0] = c.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}

	c.SetState(saved)

	return ir
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// StepResponse computes n samples of the cascade response to a unit step.
// The step is filtered as one block; the chain state is saved and restored.
func (c *Chain) StepResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	c.Reset()

	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	c.ProcessBlock(out)
	c.SetState(saved)

	return out
}
