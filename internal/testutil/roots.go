package testutil

import (
	"math/cmplx"
	"sort"
	"testing"
)

// SortRoots orders roots by real part, then imaginary part. It sorts in place
// and returns its argument for convenience.
func SortRoots(r []complex128) []complex128 {
	sort.Slice(r, func(i, j int) bool {
		if real(r[i]) != real(r[j]) {
			return real(r[i]) < real(r[j])
		}

		return imag(r[i]) < imag(r[j])
	})

	return r
}

// RequireRootsNearlyEqual fails t unless got and want contain the same roots
// (in any order) within the absolute tolerance eps.
func RequireRootsNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("root count mismatch: got %d %v, want %d %v", len(got), got, len(want), want)
	}

	used := make([]bool, len(got))

	for _, w := range want {
		best := -1

		for i, g := range got {
			if used[i] || cmplx.Abs(g-w) > eps {
				continue
			}

			best = i

			break
		}

		if best == -1 {
			t.Fatalf("root %v not found in %v (eps %v)", w, got, eps)
		}

		used[best] = true
	}
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}
