package zpk

import (
	"errors"
	"math"
)

// ErrDegenerate is returned when a transfer function cannot be converted.
var ErrDegenerate = errors.New("zpk: degenerate transfer function")

// ZPK is a zero/pole/gain description of an analog transfer function.
// Non-real roots are expected in conjugate pairs.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Clone returns a deep copy of z.
func (z ZPK) Clone() ZPK {
	return ZPK{
		Zeros: append([]complex128(nil), z.Zeros...),
		Poles: append([]complex128(nil), z.Poles...),
		Gain:  z.Gain,
	}
}

// RelativeDegree returns len(Poles) - len(Zeros).
func (z ZPK) RelativeDegree() int {
	return len(z.Poles) - len(z.Zeros)
}

// Order returns the number of poles.
func (z ZPK) Order() int {
	return len(z.Poles)
}

// Empty reports whether z has no poles.
func (z ZPK) Empty() bool {
	return len(z.Poles) == 0
}

// Scale multiplies every root by f and compensates the gain by
// f^RelativeDegree, which keeps the high-frequency asymptote of the response
// shape while moving it along the frequency axis. The root count never
// changes.
func (z ZPK) Scale(f float64) ZPK {
	out := ZPK{
		Zeros: make([]complex128, len(z.Zeros)),
		Poles: make([]complex128, len(z.Poles)),
		Gain:  z.Gain * math.Pow(f, float64(z.RelativeDegree())),
	}

	c := complex(f, 0)
	for i, r := range z.Zeros {
		out.Zeros[i] = r * c
	}

	for i, r := range z.Poles {
		out.Poles[i] = r * c
	}

	return out
}

// Rounded returns a copy of z with all roots rounded to p.
func (z ZPK) Rounded(p Precision) ZPK {
	return ZPK{
		Zeros: p.RoundAll(z.Zeros),
		Poles: p.RoundAll(z.Poles),
		Gain:  z.Gain,
	}
}

// ProductNeg returns Π(-r) over roots, the value of Π(s - r) at s = 0.
func ProductNeg(roots []complex128) complex128 {
	out := complex(1, 0)
	for _, r := range roots {
		out *= -r
	}

	return out
}
