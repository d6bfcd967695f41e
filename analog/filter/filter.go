package filter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-analog/analog/approx"
	"github.com/cwbudde/algo-analog/analog/stage"
	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/digital/biquad"
)

// State is the lifecycle state of a Filter.
type State int

const (
	StateConstructing State = iota
	StateValidated
	StateError
)

func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateValidated:
		return "validated"
	case StateError:
		return "error"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Filter is a synthesized analog filter together with its stage
// partition. A Filter owns all of its data. Its methods must not be called
// concurrently when any of them mutates the stage list.
type Filter struct {
	spec   Spec
	params Params
	cfg    config

	zpk      zpk.ZPK
	num, den []float64

	polePairs     []stage.Group
	zeroPairs     []stage.Group
	polePairNames []string
	zeroPairNames []string

	stages []*stage.Stage

	state State
	err   error
	name  string
}

// New synthesizes the filter described by spec. It never returns nil; a
// failed synthesis leaves the filter in StateError with the cause in Err.
func New(spec Spec, opts ...Option) *Filter {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.gd > 0 {
		spec.GD = cfg.gd
	}

	if cfg.tol > 0 {
		spec.Tol = cfg.tol
	}

	f := &Filter{
		spec:  spec.withDefaults(),
		cfg:   cfg,
		state: StateConstructing,
	}

	f.synthesize()

	return f
}

func (f *Filter) synthesize() {
	log := f.cfg.logger

	if err := f.spec.Validate(); err != nil {
		f.fail(err)
		return
	}

	strat, err := f.cfg.strategy(f.spec.Family)
	if err != nil {
		f.fail(fmt.Errorf("%w: %w", ErrSpec, err))
		return
	}

	f.params.Eps = f.spec.Eps()
	f.params.Wan = f.spec.Wan()

	n := f.initialOrder(strat)
	log.Debug("filter.order", "kind", f.spec.Kind.String(), "family", f.spec.Family.String(), "order", n)

	res, err := SearchOrder(Search{
		Spec:      f.spec,
		Strategy:  strat,
		Order:     n,
		QMax:      f.cfg.qmax,
		QPinned:   f.cfg.q > 0,
		Precision: f.cfg.prec,
		Logger:    log,
	})
	if err != nil {
		f.fail(err)
		return
	}

	f.zpk = res.ZPK
	f.zpk.Gain *= f.spec.G
	f.num, f.den = f.zpk.TF()

	f.params.N = res.Order
	f.params.Q = res.Q
	f.params.Adjust = res.Adjust
	f.params.Gain = f.zpk.Gain

	f.polePairs = stage.Pairs(f.zpk.Poles, f.cfg.prec)
	f.zeroPairs = stage.Pairs(f.zpk.Zeros, f.cfg.prec)

	for _, g := range f.polePairs {
		f.polePairNames = append(f.polePairNames, stage.PairName(g))
	}

	for _, g := range f.zeroPairs {
		f.zeroPairNames = append(f.zeroPairNames, stage.ZeroPairName(g))
	}

	f.name = fmt.Sprintf("%s %s order %d", f.spec.Kind.Title(), f.spec.Family, res.Order)
	f.state = StateValidated

	log.Info("filter.synthesized", "name", f.name, "q", res.Q, "iterations", res.Iterations)
}

// initialOrder picks the explicit order or the strategy estimate, clamped
// into the configured bounds.
func (f *Filter) initialOrder(s approx.Strategy) int {
	n := f.cfg.order
	if n <= 0 {
		n = approx.Order(s, f.spec.constraints())
	}

	switch {
	case f.cfg.nmin > 0 && n < f.cfg.nmin:
		n = f.cfg.nmin
	case f.cfg.nmax > 0 && n > f.cfg.nmax:
		n = f.cfg.nmax
	}

	return max(n, 1)
}

func (f *Filter) fail(err error) {
	f.state = StateError
	f.err = err

	if errors.Is(err, ErrSpec) {
		f.spec.Kind = KindErr
		f.cfg.logger.Error("filter.spec", "err", err)

		return
	}

	f.cfg.logger.Warn("filter.failed", "err", err)
}

func (f *Filter) check() error {
	if f.state == StateError {
		return fmt.Errorf("%w: %w", ErrInvalidState, f.err)
	}

	return nil
}

// State returns the lifecycle state.
func (f *Filter) State() State { return f.state }

// Err returns the synthesis error, or nil.
func (f *Filter) Err() error { return f.err }

// Name returns "<Kind> <Family> order <n>", possibly prefixed by
// AddNameIndex.
func (f *Filter) Name() string { return f.name }

// AddNameIndex prefixes the name with "C<i>: " and returns it.
func (f *Filter) AddNameIndex(i int) string {
	f.name = fmt.Sprintf("C%d: %s", i, f.name)
	return f.name
}

// Kind returns the filter kind, KindErr after a specification error.
func (f *Filter) Kind() Kind { return f.spec.Kind }

// Family returns the approximation family.
func (f *Filter) Family() approx.Family { return f.spec.Family }

// Spec returns the specification with defaults applied.
func (f *Filter) Spec() Spec { return f.spec }

// Params returns the derived parameters.
func (f *Filter) Params() Params { return f.params }

// ZPK returns a copy of the final zeros, poles and gain.
func (f *Filter) ZPK() zpk.ZPK { return f.zpk.Clone() }

// TF returns copies of the final numerator and denominator.
func (f *Filter) TF() ([]float64, []float64) {
	return append([]float64(nil), f.num...), append([]float64(nil), f.den...)
}

// PolePairs returns the grouped poles.
func (f *Filter) PolePairs() []stage.Group { return f.polePairs }

// ZeroPairs returns the grouped zeros.
func (f *Filter) ZeroPairs() []stage.Group { return f.zeroPairs }

// PolePairNames returns one label per pole group.
func (f *Filter) PolePairNames() []string {
	return append([]string(nil), f.polePairNames...)
}

// ZeroPairNames returns one label per zero group.
func (f *Filter) ZeroPairNames() []string {
	return append([]string(nil), f.zeroPairNames...)
}

// Response evaluates H(jw) on w (Hz-scaled).
func (f *Filter) Response(w []float64) ([]complex128, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	return f.zpk.Responses(w), nil
}

// GroupDelay returns the normalized group delay of the filter. A nil w
// selects the default axis: WMinMax divided by 2π with 10·wmax/wmin linearly
// spaced points. The axis used is returned with the delays.
func (f *Filter) GroupDelay(w []float64) ([]float64, []float64, error) {
	if err := f.check(); err != nil {
		return nil, nil, err
	}

	if w == nil {
		wmin, wmax, err := WMinMax(f.spec)
		if err != nil {
			return nil, nil, err
		}

		n := max(int(10*wmax/wmin), 2)
		w = floats.Span(make([]float64, n), wmin/(2*math.Pi), wmax/(2*math.Pi))
	}

	return w, DelayCurve(f.zpk, w, f.spec.GD), nil
}

// Cascade realizes the current stages as a digital biquad chain at sample
// rate fs. The chain gain restores the part of the filter gain the stages
// do not carry.
func (f *Filter) Cascade(fs float64) (*biquad.Chain, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	if len(f.stages) == 0 {
		return nil, fmt.Errorf("filter: no stages to realize")
	}

	g := f.zpk.Gain
	for _, s := range f.stages {
		if s.Gain != 0 {
			g /= s.Gain
		}
	}

	return stage.Cascade(f.stages, fs, biquad.WithGain(g))
}

// Summary writes a human-readable report of the filter to w.
func (f *Filter) Summary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)

	fmt.Fprintf(tw, "FILTER\t%s\n", f.name)
	fmt.Fprintf(tw, "type:\t%s\n", f.spec.Kind)
	fmt.Fprintf(tw, "approx:\t%s\n", f.spec.Family)
	fmt.Fprintf(tw, "state:\t%s\n", f.state)

	if f.state == StateError {
		fmt.Fprintf(tw, "error:\t%v\n", f.err)
		return tw.Flush()
	}

	fmt.Fprintf(tw, "wp =\t%v\n", f.spec.Wp)
	fmt.Fprintf(tw, "wa =\t%v\n", f.spec.Wa)
	fmt.Fprintf(tw, "Ap =\t%v\n", f.spec.Ap)
	fmt.Fprintf(tw, "Aa =\t%v\n", f.spec.Aa)
	fmt.Fprintf(tw, "des =\t%v\n", f.spec.Des)
	fmt.Fprintf(tw, "G =\t%v\n", f.spec.G)
	fmt.Fprintf(tw, "n =\t%d\n", f.params.N)
	fmt.Fprintf(tw, "eps =\t%.6g\n", f.params.Eps)
	fmt.Fprintf(tw, "g =\t%.6g\n", f.params.Gain)
	fmt.Fprintf(tw, "GD =\t%v\n", f.spec.GD)
	fmt.Fprintf(tw, "Q =\t%.6g\n", f.params.Q)
	fmt.Fprintf(tw, "num:\t%s\n", formatCoeffs(f.num))
	fmt.Fprintf(tw, "den:\t%s\n", formatCoeffs(f.den))
	fmt.Fprintf(tw, "Zeros:\t%v\n", f.zpk.Zeros)
	fmt.Fprintf(tw, "Poles:\t%v\n", f.zpk.Poles)

	for i, n := range f.polePairNames {
		fmt.Fprintf(tw, "pole pair %d:\t%s\n", i, n)
	}

	for i, n := range f.zeroPairNames {
		fmt.Fprintf(tw, "zero pair %d:\t%s\n", i, n)
	}

	return tw.Flush()
}

func formatCoeffs(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.6g", v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
