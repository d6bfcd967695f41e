package filter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-analog/analog/approx"
	"github.com/cwbudde/algo-analog/analog/zpk"
)

// Search describes one Q-constrained order search.
type Search struct {
	Spec      Spec
	Strategy  approx.Strategy
	Order     int           // starting order, at least 1
	QMax      float64       // maximum pole Q, 0 for none
	QPinned   bool          // skip stopband-edge correction
	Precision zpk.Precision // rounding applied to every root set
	Logger    *slog.Logger
}

// Result is the outcome of SearchOrder.
type Result struct {
	ZPK        zpk.ZPK // denormalized, gain excludes Spec.G
	Order      int
	Q          float64
	Adjust     float64
	Iterations int
}

// SearchOrder builds the prototype at s.Order, denormalizes it and lowers the
// order until the maximum pole Q is within s.QMax. The order never increases
// and at most s.Order prototypes are built. ErrSynthesisExhausted is
// returned once no poles remain. An invalid s.Spec or a missing strategy
// fails with ErrSpec before any prototype is built.
func SearchOrder(s Search) (Result, error) {
	log := s.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	spec := s.Spec.withDefaults()
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	if s.Strategy == nil {
		return Result{}, fmt.Errorf("%w: no approximation strategy", ErrSpec)
	}

	c := spec.constraints()
	iter := 0

	for n := s.Order; n >= 1; n-- {
		iter++

		proto, err := approx.Design(s.Strategy, n, c)
		if err != nil {
			return Result{}, fmt.Errorf("filter: prototype order %d: %w", n, err)
		}

		z, adjust, err := Denormalize(spec, proto.Rounded(s.Precision), s.QPinned, s.Precision)
		if err != nil {
			return Result{}, err
		}

		q := MaxPoleQ(z.Poles)
		log.Debug("filter.search", "order", n, "q", q, "qmax", s.QMax, "adjust", adjust)

		if z.Empty() {
			break
		}

		if Accepts(q, s.QMax) {
			return Result{ZPK: z, Order: n, Q: q, Adjust: adjust, Iterations: iter}, nil
		}
	}

	log.Warn("filter.search.exhausted", "start", s.Order, "qmax", s.QMax, "iterations", iter)

	return Result{Iterations: iter}, fmt.Errorf("%w: qmax %v from order %d", ErrSynthesisExhausted, s.QMax, s.Order)
}
