package stage

import (
	"fmt"
	"math"
	"sort"
)

// Assignment is the root content of one section produced by AutoPartition.
type Assignment struct {
	Zeros []complex128
	Poles []complex128
}

// Q returns the largest pole selectivity of the section.
func (a Assignment) Q() float64 {
	q := 0.0
	for _, p := range a.Poles {
		q = math.Max(q, rootQ(p))
	}

	return q
}

// Frequency returns the natural frequency of the section poles.
func (a Assignment) Frequency() float64 {
	return Group(a.Poles).Frequency()
}

func (a Assignment) capacity() int {
	return len(a.Poles) - len(a.Zeros)
}

// AutoPartition forms the minimum number of sections from poleGroups and
// distributes zeroGroups over them without exceeding the pole count of any
// section.
//
// Conjugate pole pairs form a section each; real poles are merged two at a
// time in ascending frequency. Zero pairs are placed before real zeros, each
// into the section whose natural frequency is nearest, the lowest index
// winning ties. With bandstop set, zero pairs are instead matched to
// sections so that the largest notch resonance Q·|1-(fp/fz)²| is minimal;
// pairs left over follow the default policy.
//
// Sections are returned by ascending pole Q, then by frequency.
func AutoPartition(poleGroups, zeroGroups []Group, bandstop bool) ([]Assignment, error) {
	sections, err := poleSections(poleGroups)
	if err != nil {
		return nil, err
	}

	var pairs, singles []Group

	for _, g := range zeroGroups {
		switch len(g) {
		case 1:
			singles = append(singles, g)
		case 2:
			pairs = append(pairs, g)
		default:
			return nil, fmt.Errorf("%w: zero group of %d roots", ErrInvalidGroup, len(g))
		}
	}

	if bandstop {
		pairs = matchNotches(sections, pairs)
	}

	for _, g := range pairs {
		if err := placeNearest(sections, g); err != nil {
			return nil, err
		}
	}

	for _, g := range singles {
		if err := placeNearest(sections, g); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(sections, func(i, j int) bool {
		qi, qj := sections[i].Q(), sections[j].Q()
		if qi != qj {
			return qi < qj
		}

		return sections[i].Frequency() < sections[j].Frequency()
	})

	return sections, nil
}

func poleSections(groups []Group) ([]Assignment, error) {
	var (
		sections []Assignment
		reals    []complex128
	)

	for _, g := range groups {
		switch {
		case len(g) == 1 && imag(g[0]) == 0:
			reals = append(reals, g[0])
		case len(g) == 2:
			sections = append(sections, Assignment{Poles: append([]complex128(nil), g...)})
		default:
			return nil, fmt.Errorf("%w: pole group %v", ErrInvalidGroup, g)
		}
	}

	sort.SliceStable(reals, func(i, j int) bool {
		return math.Abs(real(reals[i])) < math.Abs(real(reals[j]))
	})

	for i := 0; i < len(reals); i += 2 {
		end := min(i+2, len(reals))
		sections = append(sections, Assignment{Poles: append([]complex128(nil), reals[i:end]...)})
	}

	return sections, nil
}

func placeNearest(sections []Assignment, g Group) error {
	best := -1
	bestDist := math.Inf(1)
	fz := g.Frequency()

	for i := range sections {
		if sections[i].capacity() < len(g) {
			continue
		}

		if d := math.Abs(sections[i].Frequency() - fz); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 {
		return fmt.Errorf("%w: no section can hold zeros %v", ErrInvalidGroup, g)
	}

	sections[best].Zeros = append(sections[best].Zeros, g...)

	return nil
}

// notchCost is the resonance a zero pair at fz leaves in a section with
// pole selectivity q and natural frequency fp.
func notchCost(q, fp, fz float64) float64 {
	if fz == 0 {
		return math.Inf(1)
	}

	r := fp / fz

	return q * math.Abs(1-r*r)
}

// matchNotches assigns zero pairs to sections with room for two zeros using
// a bottleneck matching and returns the pairs it could not place.
func matchNotches(sections []Assignment, pairs []Group) []Group {
	var open []int

	for i := range sections {
		if sections[i].capacity() >= 2 {
			open = append(open, i)
		}
	}

	if len(open) == 0 || len(pairs) == 0 {
		return pairs
	}

	cost := make([][]float64, len(pairs))
	levels := make([]float64, 0, len(pairs)*len(open))

	for z, g := range pairs {
		cost[z] = make([]float64, len(open))
		for s, i := range open {
			c := notchCost(sections[i].Q(), sections[i].Frequency(), g.Frequency())
			cost[z][s] = c
			levels = append(levels, c)
		}
	}

	sort.Float64s(levels)

	m := matcher{cost: cost, sections: len(open)}
	none := make([]bool, len(open))

	target := m.size(math.Inf(1), none, 0)
	if target == 0 {
		return pairs
	}

	// Smallest threshold that still reaches the maximum matching size.
	k := sort.Search(len(levels), func(i int) bool {
		return m.size(levels[i], none, 0) >= target
	})

	limit := math.Inf(1)
	if k < len(levels) {
		limit = levels[k]
	}

	// Fix assignments zero by zero, lowest section first, as long as the
	// remaining zeros can still complete a matching of the target size.
	fixed := make([]int, len(pairs))
	taken := make([]bool, len(open))
	matched := 0

	for z := range pairs {
		fixed[z] = -1

		for s := range open {
			if taken[s] || cost[z][s] > limit {
				continue
			}

			taken[s] = true

			if matched+1+m.size(limit, taken, z+1) >= target {
				fixed[z] = s
				matched++

				break
			}

			taken[s] = false
		}
	}

	var rest []Group

	for z, g := range pairs {
		if fixed[z] < 0 {
			rest = append(rest, g)
			continue
		}

		i := open[fixed[z]]
		sections[i].Zeros = append(sections[i].Zeros, g...)
	}

	return rest
}

// matcher computes maximum bipartite matchings between zero pairs and
// sections restricted to edges with cost at most a threshold.
type matcher struct {
	cost     [][]float64
	sections int
}

// size returns the maximum matching of zeros from index start onward onto
// sections not yet taken (Kuhn's augmenting paths).
func (m matcher) size(limit float64, taken []bool, start int) int {
	owner := make([]int, m.sections)
	for i := range owner {
		owner[i] = -1
	}

	var augment func(z int, seen []bool) bool

	augment = func(z int, seen []bool) bool {
		for s := range m.sections {
			if taken[s] || seen[s] || m.cost[z][s] > limit {
				continue
			}

			seen[s] = true

			if owner[s] < 0 || augment(owner[s], seen) {
				owner[s] = z
				return true
			}
		}

		return false
	}

	n := 0

	for z := start; z < len(m.cost); z++ {
		if augment(z, make([]bool, m.sections)) {
			n++
		}
	}

	return n
}
