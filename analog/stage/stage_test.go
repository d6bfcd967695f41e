package stage

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/testutil"
)

func TestPairs_GroupsAndOrder(t *testing.T) {
	roots := []complex128{
		complex(-1, -2), -3, complex(-0.5, 0.5), complex(-1, 2), complex(-0.5, -0.5),
	}

	groups := Pairs(roots, zpk.DefaultPrecision)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3: %v", len(groups), groups)
	}

	want := []Group{
		{complex(-0.5, 0.5), complex(-0.5, -0.5)},
		{complex(-1, 2), complex(-1, -2)},
		{-3},
	}

	for i := range want {
		if len(groups[i]) != len(want[i]) {
			t.Fatalf("group %d: got %v, want %v", i, groups[i], want[i])
		}

		for j := range want[i] {
			if groups[i][j] != want[i][j] {
				t.Fatalf("group %d: got %v, want %v", i, groups[i], want[i])
			}
		}
	}
}

func TestPairs_EveryRootOnce(t *testing.T) {
	roots := []complex128{complex(-1, 1), complex(-1, -1), complex(-2, 3), -4, -4}

	groups := Pairs(roots, zpk.DefaultPrecision)

	n := 0
	for _, g := range groups {
		n += len(g)
	}

	if n != len(roots) {
		t.Fatalf("groups hold %d roots, want %d: %v", n, len(roots), groups)
	}

	// -2+3j has no conjugate and stays alone.
	found := false

	for _, g := range groups {
		if len(g) == 1 && g[0] == complex(-2, 3) {
			found = true
		}
	}

	if !found {
		t.Fatalf("unmatched root not kept as singleton: %v", groups)
	}
}

func TestPairs_SnapsNoiseToReal(t *testing.T) {
	groups := Pairs([]complex128{complex(-2, 1e-9)}, zpk.DefaultPrecision)
	if len(groups) != 1 || groups[0][0] != -2 {
		t.Fatalf("got %v, want [[-2]]", groups)
	}
}

func TestPairNames(t *testing.T) {
	poles := Group{complex(-600, 800), complex(-600, -800)}
	if got, want := PairName(poles), "f0 = 1 kHz | Q = 0.833"; got != want {
		t.Fatalf("PairName = %q, want %q", got, want)
	}

	zeros := Group{complex(0, 2000), complex(0, -2000)}
	if got, want := ZeroPairName(zeros), "f0 = 2 kHz"; got != want {
		t.Fatalf("ZeroPairName = %q, want %q", got, want)
	}
}

func TestFormatHz(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "0 Hz"},
		{12.5, "12.5 Hz"},
		{1500, "1.5 kHz"},
		{2.25e6, "2.25 MHz"},
		{0.002, "2 mHz"},
	}

	for _, tt := range tests {
		if got := FormatHz(tt.f); got != tt.want {
			t.Errorf("FormatHz(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name         string
		zeros, poles []complex128
	}{
		{"no poles", nil, nil},
		{"three poles", nil, []complex128{-1, -2, -3}},
		{"improper", []complex128{-1, -2}, []complex128{-3}},
		{"lone complex pole", nil, []complex128{complex(-1, 2)}},
		{"mismatched complex poles", nil, []complex128{complex(-1, 2), complex(-3, 1)}},
		{"complex and real pole", nil, []complex128{complex(-1, 2), -1}},
		{"lone complex zero", []complex128{complex(0, 3)}, []complex128{-1, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.zeros, tt.poles, 1, zpk.DefaultPrecision); !errors.Is(err, ErrInvalidGroup) {
				t.Fatalf("err = %v, want ErrInvalidGroup", err)
			}
		})
	}
}

func TestStage_RealPoleQ(t *testing.T) {
	s, err := Build(nil, []complex128{-3}, 3, zpk.DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}

	p := complex(-3, 0)
	want := math.Abs(cmplx.Abs(p) / (2 * real(p)))

	if s.Order() != 1 || !testutil.AlmostEqual(s.Q(), want, 1e-12) {
		t.Fatalf("order=%d Q=%v, want 1 and %v", s.Order(), s.Q(), want)
	}
}

func TestStage_SecondOrderQAndFallback(t *testing.T) {
	s, err := Build(nil, []complex128{complex(-1, 2), complex(-1, -2)}, 5, zpk.DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}

	// -Re((p0+p1)/(p0*p1)) = 2/5.
	if q := s.Q(); !testutil.AlmostEqual(q, 0.4, 1e-12) {
		t.Fatalf("Q = %v, want 0.4", q)
	}

	s.Den = []float64{1, 0, 0}

	if q := s.Q(); !testutil.AlmostEqual(q, 0.4, 1e-12) {
		t.Fatalf("fallback Q = %v, want 0.4", q)
	}
}

func TestStage_TFRoundTrip(t *testing.T) {
	zeros := []complex128{complex(0, 1.5), complex(0, -1.5)}
	poles := []complex128{complex(-0.3, 1.2), complex(-0.3, -1.2)}

	s, err := Build(zeros, poles, 2, zpk.DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}

	num, den := s.TF()

	back, err := zpk.FromTF(num, den)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireRootsNearlyEqual(t, zpk.DefaultPrecision.RoundAll(back.Zeros), zeros, 1e-5)
	testutil.RequireRootsNearlyEqual(t, zpk.DefaultPrecision.RoundAll(back.Poles), poles, 1e-5)

	if !testutil.AlmostEqual(back.Gain, 2, 1e-12) {
		t.Fatalf("gain = %v, want 2", back.Gain)
	}
}

func TestCombine(t *testing.T) {
	a, _ := Build(nil, []complex128{-1}, 1, zpk.DefaultPrecision)
	b, _ := Build([]complex128{-2}, []complex128{-3}, 4, zpk.DefaultPrecision)

	num, den := Combine(a, b)

	testutil.RequireSliceNearlyEqual(t, num, []float64{4, 8}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, den, []float64{1, 4, 3}, 1e-12)
}

func TestAutoPartition_Default(t *testing.T) {
	poles := []Group{
		{complex(-0.2, 0.98), complex(-0.2, -0.98)},
		{complex(-3, 4), complex(-3, -4)},
		{-2}, {-7}, {-10},
	}
	zeros := []Group{
		{-1},
		{complex(0, 4.8), complex(0, -4.8)},
	}

	got, err := AutoPartition(poles, zeros, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 4 {
		t.Fatalf("got %d sections, want 4: %v", len(got), got)
	}

	// Real sections (Q = 0.5) first, by frequency, then the resonant pairs.
	wantPoles := [][]complex128{
		{-2, -7},
		{-10},
		{complex(-3, 4), complex(-3, -4)},
		{complex(-0.2, 0.98), complex(-0.2, -0.98)},
	}
	wantZeros := [][]complex128{
		nil,
		nil,
		{complex(0, 4.8), complex(0, -4.8)},
		{-1},
	}

	for i := range got {
		testutil.RequireRootsNearlyEqual(t, got[i].Poles, wantPoles[i], 1e-12)
		testutil.RequireRootsNearlyEqual(t, got[i].Zeros, wantZeros[i], 1e-12)

		if len(got[i].Zeros) > len(got[i].Poles) {
			t.Fatalf("section %d is improper: %v", i, got[i])
		}
	}
}

func TestAutoPartition_TieGoesToLowestIndex(t *testing.T) {
	poles := []Group{
		{complex(-0.6, 0.8), complex(-0.6, -0.8)},
		{complex(-1.8, 2.4), complex(-1.8, -2.4)},
	}

	got, err := AutoPartition(poles, []Group{{-2}}, false)
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range got {
		if len(a.Zeros) == 1 && a.Frequency() > 1.5 {
			t.Fatalf("tied zero placed in the higher-index section: %v", got)
		}
	}
}

func TestAutoPartition_NoCapacity(t *testing.T) {
	_, err := AutoPartition([]Group{{-1}}, []Group{{complex(0, 1), complex(0, -1)}}, false)
	if !errors.Is(err, ErrInvalidGroup) {
		t.Fatalf("err = %v, want ErrInvalidGroup", err)
	}
}

func TestAutoPartition_BandstopMinimizesResonance(t *testing.T) {
	sharp := Group{complex(-0.05, 0.998749), complex(-0.05, -0.998749)} // f=1, Q=10
	broad := Group{complex(-1, 0.663325), complex(-1, -0.663325)}       // f=1.2, Q=0.6

	z0 := Group{complex(0, 1.08), complex(0, -1.08)}
	z1 := Group{complex(0, 0.95), complex(0, -0.95)}

	poles := []Group{sharp, broad}
	zeros := []Group{z0, z1}

	nearest, err := AutoPartition(poles, zeros, false)
	if err != nil {
		t.Fatal(err)
	}

	notch, err := AutoPartition(poles, zeros, true)
	if err != nil {
		t.Fatal(err)
	}

	// Both emit the broad section first.
	if nearest[0].Q() > nearest[1].Q() || notch[0].Q() > notch[1].Q() {
		t.Fatal("sections not ordered by ascending Q")
	}

	testutil.RequireRootsNearlyEqual(t, nearest[1].Zeros, z0, 1e-12)
	testutil.RequireRootsNearlyEqual(t, notch[1].Zeros, z1, 1e-12)
	testutil.RequireRootsNearlyEqual(t, notch[0].Zeros, z0, 1e-12)

	worst := func(as []Assignment) float64 {
		m := 0.0
		for _, a := range as {
			m = math.Max(m, notchCost(a.Q(), a.Frequency(), Group(a.Zeros).Frequency()))
		}

		return m
	}

	if worst(notch) >= worst(nearest) {
		t.Fatalf("bandstop resonance %v not below nearest-frequency %v", worst(notch), worst(nearest))
	}
}

func TestStage_BilinearKeepsDCGain(t *testing.T) {
	const fs = 48000.0

	s, err := Build(nil, []complex128{complex(-600, 800), complex(-600, -800)}, 1e6, zpk.DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}

	s.Name = "Stage 0"

	c, err := s.Bilinear(fs)
	if err != nil {
		t.Fatal(err)
	}

	dc := (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
	if !testutil.AlmostEqual(dc, s.DCGain(), 1e-9) {
		t.Fatalf("digital DC %v, analog DC %v", dc, s.DCGain())
	}

	chain, err := Cascade([]*Stage{s}, fs)
	if err != nil {
		t.Fatal(err)
	}

	if h := cmplx.Abs(chain.Response(0, fs)); !testutil.AlmostEqual(h, 1, 1e-9) {
		t.Fatalf("|H(0)| = %v, want 1", h)
	}

	if _, err := s.Bilinear(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestCascade_RejectsUnstableRealization(t *testing.T) {
	s, err := Build(nil, []complex128{3}, 1, zpk.DefaultPrecision)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Cascade([]*Stage{s}, 48000); !errors.Is(err, ErrUnstable) {
		t.Fatalf("err = %v, want ErrUnstable", err)
	}
}
