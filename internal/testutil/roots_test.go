package testutil

import "testing"

func TestSortRoots(t *testing.T) {
	r := SortRoots([]complex128{complex(1, 1), complex(-1, 2), complex(1, -1)})

	want := []complex128{complex(-1, 2), complex(1, -1), complex(1, 1)}
	for i := range want {
		if r[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, r[i], want[i])
		}
	}
}

func TestRequireRootsNearlyEqual_Unordered(t *testing.T) {
	RequireRootsNearlyEqual(t,
		[]complex128{complex(-1, 1), complex(-1, -1), -2},
		[]complex128{-2, complex(-1, -1), complex(-1, 1.0000001)},
		1e-6)
}

func TestImpulse(t *testing.T) {
	x := Impulse(4, 1)
	if x[1] != 1 || x[0] != 0 || x[2] != 0 || x[3] != 0 {
		t.Fatalf("Impulse(4,1) = %v", x)
	}

	if x := Impulse(3, 7); x[0] != 0 || x[1] != 0 || x[2] != 0 {
		t.Fatalf("out-of-range impulse should be all zero, got %v", x)
	}
}
