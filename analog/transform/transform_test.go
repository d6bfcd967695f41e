package transform

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/testutil"
)

// butter2 is the second-order Butterworth prototype with unit cutoff.
var butter2 = zpk.ZPK{
	Poles: []complex128{complex(-math.Sqrt2/2, math.Sqrt2/2), complex(-math.Sqrt2/2, -math.Sqrt2/2)},
	Gain:  1,
}

const prec = zpk.Precision(9)

func TestLowpassToLowpass(t *testing.T) {
	got := LowpassToLowpass(butter2, 100, prec)

	for _, p := range got.Poles {
		if !testutil.AlmostEqual(cmplx.Abs(p), 100, 1e-6) {
			t.Fatalf("|p| = %v, want 100", cmplx.Abs(p))
		}
	}

	if !testutil.AlmostEqual(got.Gain, 1e4, 1e-12) {
		t.Fatalf("gain = %v, want 1e4", got.Gain)
	}

	if !testutil.AlmostEqual(cmplx.Abs(got.Response(0)), 1, 1e-9) {
		t.Fatalf("DC gain = %v, want 1", cmplx.Abs(got.Response(0)))
	}
}

func TestLowpassToHighpass_InvertsPoles(t *testing.T) {
	proto := zpk.ZPK{Poles: []complex128{-2}, Gain: 2}

	got, err := LowpassToHighpass(proto, 10, prec)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireRootsNearlyEqual(t, got.Poles, []complex128{-5}, 1e-9)
	testutil.RequireRootsNearlyEqual(t, got.Zeros, []complex128{0}, 1e-9)

	// The lowpass DC gain reappears at high frequency.
	if h := cmplx.Abs(got.Response(1e9)); !testutil.AlmostEqual(h, 1, 1e-6) {
		t.Fatalf("|H(j∞)| = %v, want 1", h)
	}

	// Corner maps from 2 to 10/2.
	lp := cmplx.Abs(proto.Response(2))
	hp := cmplx.Abs(got.Response(5))

	if !testutil.AlmostEqual(lp, hp, 1e-9) {
		t.Fatalf("corner magnitude %v, want %v", hp, lp)
	}
}

func TestLowpassToHighpass_RootAtOrigin(t *testing.T) {
	_, err := LowpassToHighpass(zpk.ZPK{Zeros: []complex128{0}, Poles: []complex128{-1}, Gain: 1}, 1, prec)
	if !errors.Is(err, ErrRootAtOrigin) {
		t.Fatalf("err = %v, want ErrRootAtOrigin", err)
	}
}

func TestLowpassToBandpass_CentreAndBandwidth(t *testing.T) {
	const (
		wo = 1000.0
		bw = 200.0
	)

	got := LowpassToBandpass(butter2, wo, bw, prec)

	if len(got.Poles) != 4 || len(got.Zeros) != 2 {
		t.Fatalf("got %d poles, %d zeros, want 4 and 2", len(got.Poles), len(got.Zeros))
	}

	for _, z := range got.Zeros {
		if z != 0 {
			t.Fatalf("zero %v, want origin", z)
		}
	}

	if h := cmplx.Abs(got.Response(wo)); !testutil.AlmostEqual(h, 1, 1e-6) {
		t.Fatalf("|H(j wo)| = %v, want 1", h)
	}

	// Band edges sit at the -3 dB points, geometrically symmetric around wo.
	w1 := (-bw + math.Sqrt(bw*bw+4*wo*wo)) / 2
	w2 := w1 + bw

	for _, w := range []float64{w1, w2} {
		if h := cmplx.Abs(got.Response(w)); !testutil.AlmostEqual(h, math.Sqrt2/2, 1e-6) {
			t.Fatalf("|H(j%v)| = %v, want 1/√2", w, h)
		}
	}

	// Poles of the product pairs multiply to wo² for every prototype pole.
	prod := complex(1, 0)
	for _, p := range got.Poles {
		prod *= p
	}

	if !testutil.AlmostEqual(cmplx.Abs(prod), math.Pow(wo, 4), 1e-6) {
		t.Fatalf("|Πp| = %v, want wo^4", cmplx.Abs(prod))
	}
}

func TestLowpassToBandstop_NotchAtCentre(t *testing.T) {
	const (
		wo = 500.0
		bw = 100.0
	)

	got, err := LowpassToBandstop(butter2, wo, bw, prec)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireRootsNearlyEqual(t, got.Zeros,
		[]complex128{complex(0, wo), complex(0, -wo), complex(0, wo), complex(0, -wo)}, 1e-9)

	if h := cmplx.Abs(got.Response(0)); !testutil.AlmostEqual(h, 1, 1e-9) {
		t.Fatalf("|H(0)| = %v, want 1", h)
	}

	if h := cmplx.Abs(got.Response(wo * 1.0000001)); h > 1e-3 {
		t.Fatalf("|H(j wo)| = %v, want notch", h)
	}
}

func TestTransforms_PreserveConjugateSymmetry(t *testing.T) {
	bp := LowpassToBandpass(butter2, 3, 1, zpk.DefaultPrecision)
	bs, err := LowpassToBandstop(butter2, 3, 1, zpk.DefaultPrecision)

	if err != nil {
		t.Fatal(err)
	}

	for _, set := range [][]complex128{bp.Poles, bs.Poles, bs.Zeros} {
		for _, r := range set {
			if imag(r) == 0 {
				continue
			}

			if !zpk.DefaultPrecision.Contains(set, cmplx.Conj(r)) {
				t.Fatalf("conjugate of %v missing from %v", r, set)
			}
		}
	}
}
