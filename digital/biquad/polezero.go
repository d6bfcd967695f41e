package biquad

import "math/cmplx"

// PoleZeroPair stores the z-plane poles and zeros of one section. Unused
// entries of first-order sections are 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the roots of 1 + A1*z^-1 + A2*z^-2.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 + B1*z^-1 + B2*z^-2.
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}

	return true
}

// Stable reports whether every section of the chain is stable.
func (c *Chain) Stable() bool {
	for i := range c.sections {
		if !c.sections[i].Stable() {
			return false
		}
	}

	return true
}

// MaxPoleRadius returns the largest pole magnitude over all sections.
func (c *Chain) MaxPoleRadius() float64 {
	r := 0.0

	for _, pz := range c.PoleZeroPairs() {
		for _, p := range pz.Poles {
			r = max(r, cmplx.Abs(p))
		}
	}

	return r
}

// PoleZeroPairs returns one entry per chain section.
func (c *Chain) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i := range c.sections {
		co := c.sections[i].Coefficients
		out[i] = PoleZeroPair{Poles: co.Poles(), Zeros: co.Zeros()}
	}

	return out
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	sq := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{
		(-complex(b, 0) + sq) / den,
		(-complex(b, 0) - sq) / den,
	}
}
