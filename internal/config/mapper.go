package config

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-analog/analog/approx"
	"github.com/cwbudde/algo-analog/analog/filter"
	"github.com/cwbudde/algo-analog/analog/zpk"
)

// Entry is one mapped filter ready for filter.New.
type Entry struct {
	Name    string
	Spec    filter.Spec
	Options []filter.Option
}

// Map converts a decoded document into entries. Unnamed filters are called
// "filter <i>".
func Map(path string, doc YAMLDocument) ([]Entry, error) {
	out := make([]Entry, 0, len(doc.Filters))

	for i, yf := range doc.Filters {
		e, err := mapFilter(path, fmt.Sprintf("filters[%d]", i), yf)
		if err != nil {
			return nil, err
		}

		if e.Name == "" {
			e.Name = fmt.Sprintf("filter %d", i)
		}

		out = append(out, e)
	}

	return out, nil
}

func mapFilter(path, prefix string, yf YAMLFilter) (Entry, error) {
	kind, err := filter.ParseKind(yf.Kind)
	if err != nil {
		return Entry{}, invalidField(path, prefix+".kind", err)
	}

	family, err := approx.ParseFamily(yf.Approximation)
	if err != nil {
		return Entry{}, invalidField(path, prefix+".approximation", err)
	}

	for field, v := range map[string]int{".order": yf.Order, ".nmin": yf.NMin, ".nmax": yf.NMax} {
		if v < 0 {
			return Entry{}, invalidField(path, prefix+field, fmt.Errorf("must not be negative, got %d", v))
		}
	}

	if yf.NMin > 0 && yf.NMax > 0 && yf.NMin > yf.NMax {
		return Entry{}, invalidField(path, prefix+".nmin", fmt.Errorf("nmin %d above nmax %d", yf.NMin, yf.NMax))
	}

	spec := filter.Spec{
		Kind:   kind,
		Family: family,
		Wp:     yf.Wp,
		Wa:     yf.Wa,
		Ap:     yf.Ap,
		Aa:     yf.Aa,
		Des:    yf.Des,
		G:      yf.Gain,
		GD:     yf.GD,
		Tol:    yf.Tol,
	}

	var opts []filter.Option

	if yf.Order > 0 {
		opts = append(opts, filter.WithOrder(yf.Order))
	}

	if yf.Q > 0 {
		opts = append(opts, filter.WithQ(yf.Q))
	}

	if yf.NMin > 0 || yf.NMax > 0 {
		opts = append(opts, filter.WithOrderBounds(yf.NMin, yf.NMax))
	}

	if yf.QMax > 0 {
		opts = append(opts, filter.WithMaxQ(yf.QMax))
	}

	if yf.Precision != nil {
		if *yf.Precision < 0 || *yf.Precision > 15 {
			return Entry{}, invalidField(path, prefix+".precision", fmt.Errorf("must be within [0, 15], got %d", *yf.Precision))
		}

		opts = append(opts, filter.WithPrecision(zpk.Precision(*yf.Precision)))
	}

	return Entry{Name: strings.TrimSpace(yf.Name), Spec: spec, Options: opts}, nil
}
