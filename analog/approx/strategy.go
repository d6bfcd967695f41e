package approx

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-analog/analog/zpk"
)

var (
	// ErrUnknownFamily is returned for a family without a registered strategy.
	ErrUnknownFamily = errors.New("approx: unknown approximation family")
	// ErrInvalidOrder is returned for orders below 1.
	ErrInvalidOrder = errors.New("approx: order must be at least 1")
	// ErrConstraints is returned when constraints cannot produce a prototype.
	ErrConstraints = errors.New("approx: constraints cannot be met")
)

// MaxSearchOrder bounds the order search of families without a closed-form
// order estimate.
const MaxSearchOrder = 16

// Constraints carries the design targets a strategy works from.
type Constraints struct {
	Eps  float64 // passband ripple factor sqrt(10^(Ap/10) - 1)
	Ap   float64 // passband attenuation bound in dB
	Aa   float64 // stopband attenuation bound in dB
	Wan  float64 // normalized stopband edge, > 1 for magnitude designs
	Tol  float64 // group-delay tolerance in percent (delay mode)
	Mode Mode
}

// RippleFactor returns sqrt(10^(a/10) - 1).
func RippleFactor(a float64) float64 {
	return math.Sqrt(math.Expm1(math.Ln10 * a / 10))
}

// Strategy produces normalized prototypes for one approximation family.
type Strategy interface {
	// Prototype returns the normalized lowpass prototype of the given order.
	Prototype(order int, c Constraints) (zpk.ZPK, error)
	// OptimalOrder returns the smallest order meeting c in magnitude mode.
	OptimalOrder(c Constraints) int
}

var registry = map[Family]Strategy{
	Butterworth: butterworth{},
	Chebyshev1:  chebyshev1{},
	Chebyshev2:  chebyshev2{},
	Legendre:    legendre{},
	Cauer:       cauer{},
	Bessel:      bessel{},
	Gauss:       gauss{},
}

// Lookup returns the built-in strategy for f.
func Lookup(f Family) (Strategy, error) {
	s, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}

	return s, nil
}

// Design returns the prototype of s at the given order, normalized for the
// mode in c.
func Design(s Strategy, order int, c Constraints) (zpk.ZPK, error) {
	if order < 1 {
		return zpk.ZPK{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	c = c.withDefaults()

	p, err := s.Prototype(order, c)
	if err != nil {
		return zpk.ZPK{}, err
	}

	if c.Mode == ModeDelay {
		return normalizeDelay(p)
	}

	return p, nil
}

// Order returns the order s needs for c. Delay-mode orders are found by
// search for every family.
func Order(s Strategy, c Constraints) int {
	c = c.withDefaults()

	if c.Mode == ModeDelay {
		return searchOrder(s, c, delayWithinTolerance(c))
	}

	return max(s.OptimalOrder(c), 1)
}

// defaultDelayTol is the group-delay tolerance in percent used when none is
// given.
const defaultDelayTol = 5

func (c Constraints) withDefaults() Constraints {
	if c.Eps == 0 && c.Ap > 0 {
		c.Eps = RippleFactor(c.Ap)
	}

	if c.Mode == ModeDelay {
		// Magnitude-defined families still need a ripple factor; use the
		// 3 dB point.
		if c.Eps <= 0 {
			c.Eps = 1
			c.Ap = 10 * math.Log10(2)
		}

		if c.Tol <= 0 {
			c.Tol = defaultDelayTol
		}
	}

	return c
}

// searchOrder returns the first order in [1, MaxSearchOrder] whose prototype
// satisfies ok, or MaxSearchOrder if none does.
func searchOrder(s Strategy, c Constraints, ok func(zpk.ZPK) bool) int {
	for n := 1; n <= MaxSearchOrder; n++ {
		p, err := Design(s, n, c)
		if err != nil {
			continue
		}

		if ok(p) {
			return n
		}
	}

	return MaxSearchOrder
}

func reachesStopband(c Constraints) func(zpk.ZPK) bool {
	return func(p zpk.ZPK) bool {
		return p.MagnitudeDB([]float64{c.Wan})[0] <= -c.Aa
	}
}

func delayWithinTolerance(c Constraints) func(zpk.ZPK) bool {
	return func(p zpk.ZPK) bool {
		d0 := p.GroupDelay(0)
		if d0 <= 0 {
			return false
		}

		return p.GroupDelay(c.Wan)/d0 >= 1-c.Tol/100
	}
}

// MaxOrder caps closed-form order estimates.
const MaxOrder = 64

// ceilOrder rounds a real-valued order estimate up, ignoring floating-point
// noise just above an integer.
func ceilOrder(x float64) int {
	switch {
	case math.IsNaN(x) || x < 1:
		return 1
	case x > MaxOrder:
		return MaxOrder
	}

	return int(math.Ceil(x - 1e-9))
}
