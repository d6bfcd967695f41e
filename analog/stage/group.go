package stage

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/polyroot"
)

// ErrInvalidGroup is returned for root groups that cannot form a section.
var ErrInvalidGroup = errors.New("stage: invalid root group")

// Group is a conjugate pair or a single real root. Pairs hold the root with
// positive imaginary part first.
type Group []complex128

// Order returns the number of roots in g.
func (g Group) Order() int { return len(g) }

// Frequency returns the natural frequency of g: the geometric mean of the
// root magnitudes.
func (g Group) Frequency() float64 {
	switch len(g) {
	case 0:
		return 0
	case 1:
		return cmplx.Abs(g[0])
	}

	return math.Sqrt(cmplx.Abs(g[0]) * cmplx.Abs(g[1]))
}

// Q returns the selectivity |p|/(2|Re p|) of the group's first root. Roots
// on the imaginary axis yield +Inf.
func (g Group) Q() float64 {
	if len(g) == 0 {
		return 0
	}

	return rootQ(g[0])
}

// Real reports whether every root of g is real.
func (g Group) Real() bool {
	for _, r := range g {
		if imag(r) != 0 {
			return false
		}
	}

	return true
}

func rootQ(r complex128) float64 {
	return math.Abs(cmplx.Abs(r) / (2 * real(r)))
}

// Pairs rounds roots to prec and groups them into conjugate pairs and real
// singletons. Every root lands in exactly one group; a non-real root whose
// conjugate is missing becomes a singleton. Groups are ordered by natural
// frequency, then by real part.
func Pairs(roots []complex128, prec zpk.Precision) []Group {
	rounded := prec.RoundAll(roots)
	used := make([]bool, len(rounded))
	tol := prec.Tol()

	var groups []Group

	for i, r := range rounded {
		if used[i] {
			continue
		}

		used[i] = true

		if math.Abs(imag(r)) <= tol {
			groups = append(groups, Group{complex(real(r), 0)})
			continue
		}

		mate := -1

		for j := i + 1; j < len(rounded); j++ {
			if !used[j] && (prec.Equal(cmplx.Conj(r), rounded[j]) ||
				polyroot.IsConjugate(r, rounded[j], polyroot.ConjugateTol)) {
				mate = j
				break
			}
		}

		if mate < 0 {
			groups = append(groups, Group{r})
			continue
		}

		used[mate] = true

		if imag(r) < 0 {
			r = cmplx.Conj(r)
		}

		groups = append(groups, Group{r, cmplx.Conj(r)})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		fa, fb := groups[a].Frequency(), groups[b].Frequency()
		if fa != fb {
			return fa < fb
		}

		return real(groups[a][0]) < real(groups[b][0])
	})

	return groups
}

// PairName labels a pole group as "f0 = <frequency> | Q = <q>".
func PairName(g Group) string {
	return fmt.Sprintf("f0 = %s | Q = %.3f", FormatHz(g.Frequency()), g.Q())
}

// ZeroPairName labels a zero group with its natural frequency only.
func ZeroPairName(g Group) string {
	name := PairName(g)
	if i := strings.Index(name, " | Q"); i >= 0 {
		name = name[:i]
	}

	return name
}

var siPrefixes = []struct {
	scale  float64
	prefix string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
}

// FormatHz renders f with an SI prefix and four significant digits.
func FormatHz(f float64) string {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprintf("%g Hz", f)
	}

	a := math.Abs(f)
	for _, p := range siPrefixes {
		if a >= p.scale {
			return fmt.Sprintf("%.4g %sHz", f/p.scale, p.prefix)
		}
	}

	last := siPrefixes[len(siPrefixes)-1]

	return fmt.Sprintf("%.4g %sHz", f/last.scale, last.prefix)
}
