package filter

import (
	"io"
	"log/slog"

	"github.com/cwbudde/algo-analog/analog/approx"
	"github.com/cwbudde/algo-analog/analog/zpk"
)

type config struct {
	order      int
	q          float64
	nmin, nmax int
	qmax       float64
	gd         float64
	tol        float64
	prec       zpk.Precision
	logger     *slog.Logger
	strategies map[approx.Family]approx.Strategy
}

func defaultConfig() config {
	return config{
		prec:   zpk.DefaultPrecision,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

// Option configures synthesis in New.
type Option func(*config)

// WithOrder fixes the filter order and bypasses order estimation.
func WithOrder(n int) Option {
	return func(c *config) { c.order = n }
}

// WithQ pins the selectivity. A pinned Q disables stopband-edge correction.
func WithQ(q float64) Option {
	return func(c *config) { c.q = q }
}

// WithOrderBounds clamps an estimated order into [nmin, nmax]. Zero leaves a
// bound unset.
func WithOrderBounds(nmin, nmax int) Option {
	return func(c *config) { c.nmin, c.nmax = nmin, nmax }
}

// WithMaxQ bounds the maximum pole Q. The order is lowered until the bound
// holds.
func WithMaxQ(q float64) Option {
	return func(c *config) { c.qmax = q }
}

// WithGroupDelay sets the group-delay target in seconds.
func WithGroupDelay(gd float64) Option {
	return func(c *config) { c.gd = gd }
}

// WithTolerance sets the group-delay tolerance in percent.
func WithTolerance(tol float64) Option {
	return func(c *config) { c.tol = tol }
}

// WithPrecision sets the number of decimals roots are rounded to.
func WithPrecision(p zpk.Precision) Option {
	return func(c *config) { c.prec = p }
}

// WithLogger sets the logger. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrategy overrides the approximation strategy used for family f.
func WithStrategy(f approx.Family, s approx.Strategy) Option {
	return func(c *config) {
		if c.strategies == nil {
			c.strategies = make(map[approx.Family]approx.Strategy)
		}

		c.strategies[f] = s
	}
}

func (c config) strategy(f approx.Family) (approx.Strategy, error) {
	if s, ok := c.strategies[f]; ok && s != nil {
		return s, nil
	}

	return approx.Lookup(f)
}
