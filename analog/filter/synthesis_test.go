package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-analog/analog/approx"
	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/testutil"
)

func TestSpec_Wan(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want float64
	}{
		{"lowpass", Spec{Kind: LowPass, Wp: []float64{1}, Wa: []float64{3}}, 3},
		{"highpass", Spec{Kind: HighPass, Wp: []float64{4}, Wa: []float64{2}}, 2},
		{"bandpass", Spec{Kind: BandPass, Wp: []float64{2, 3}, Wa: []float64{1, 5}}, 4},
		{"bandstop", Spec{Kind: BandStop, Wp: []float64{1, 5}, Wa: []float64{2, 3}}, 4},
		{"group delay", Spec{Kind: GroupDelay, Wp: []float64{1000}, GD: 2e-3}, 2},
		{"group delay default", Spec{Kind: GroupDelay, Wp: []float64{1000}}, 1},
		{"missing edges", Spec{Kind: LowPass}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Wan(); !testutil.AlmostEqual(got, tt.want, 1e-12) {
				t.Fatalf("Wan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpec_Validate(t *testing.T) {
	base := lowpassSpec()

	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"stopband inside passband", func(s *Spec) { s.Wa = []float64{twoPi * 500} }},
		{"two lowpass edges", func(s *Spec) { s.Wp = []float64{1, 2} }},
		{"negative edge", func(s *Spec) { s.Wp = []float64{-1} }},
		{"Aa below Ap", func(s *Spec) { s.Aa = 0.5 }},
		{"zero Ap", func(s *Spec) { s.Ap = 0 }},
		{"des above one", func(s *Spec) { s.Des = 1.5 }},
		{"negative gain", func(s *Spec) { s.G = -1 }},
		{"descending band", func(s *Spec) {
			s.Kind = BandPass
			s.Wp = []float64{3, 2}
			s.Wa = []float64{1, 5}
		}},
		{"bandstop with bandpass edges", func(s *Spec) {
			s.Kind = BandStop
			s.Wp = []float64{2, 3}
			s.Wa = []float64{1, 5}
		}},
		{"group delay without edge", func(s *Spec) {
			s.Kind = GroupDelay
			s.Wp = nil
		}},
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("base spec rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lowpassSpec()
			tt.mutate(&s)

			if err := s.Validate(); !errors.Is(err, ErrSpec) {
				t.Fatalf("err = %v, want ErrSpec", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"lowpass": LowPass, "HP": HighPass, "bandpass": BandPass,
		"br": BandStop, "Group Delay": GroupDelay,
	} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseKind("allpass"); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err = %v", err)
	}

	if GroupDelay.Title() != "Group delay" || LowPass.Title() != "Lowpass" {
		t.Fatalf("titles %q %q", GroupDelay.Title(), LowPass.Title())
	}
}

func TestPoleQ(t *testing.T) {
	if q := PoleQ(-3); q != 0.5 {
		t.Fatalf("real pole Q = %v, want 0.5", q)
	}

	p := complex(-0.6, 0.8)
	if q := PoleQ(p); !testutil.AlmostEqual(q, 1/1.2, 1e-12) {
		t.Fatalf("Q = %v", q)
	}

	// Right-half-plane roots still give a non-negative value.
	if q := PoleQ(complex(0.6, 0.8)); q < 0 {
		t.Fatalf("Q = %v, want >= 0", q)
	}
}

func TestMaxPoleQ_ScaleInvariant(t *testing.T) {
	poles := []complex128{-1, complex(-0.2, 1.5), complex(-0.2, -1.5), complex(-0.7, 0.4)}

	q := MaxPoleQ(poles)
	if q <= 0 {
		t.Fatalf("MaxPoleQ = %v", q)
	}

	scaled := zpk.ZPK{Poles: poles, Gain: 1}.Scale(1234.5)
	if qs := MaxPoleQ(scaled.Poles); !testutil.AlmostEqual(qs, q, 1e-9) {
		t.Fatalf("scaled MaxPoleQ %v, want %v", qs, q)
	}

	if MaxPoleQ(nil) != 0 {
		t.Fatal("MaxPoleQ(nil) != 0")
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		q, qmax float64
		want    bool
	}{
		{5, 0, true},
		{5, math.Inf(1), true},
		{5, math.NaN(), true},
		{5, 5, true},
		{5.01, 5, false},
		{0.7, 1, true},
	}

	for _, tt := range tests {
		if got := Accepts(tt.q, tt.qmax); got != tt.want {
			t.Errorf("Accepts(%v, %v) = %v, want %v", tt.q, tt.qmax, got, tt.want)
		}
	}
}

func butterworthProto(t *testing.T, n int) zpk.ZPK {
	t.Helper()

	s, err := approx.Lookup(approx.Butterworth)
	if err != nil {
		t.Fatal(err)
	}

	p, err := approx.Design(s, n, approx.Constraints{Ap: 1, Aa: 20, Wan: 2})
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func TestDesFactor(t *testing.T) {
	proto := butterworthProto(t, 5)

	// 20 dB is first reached at (99/eps²)^(1/10).
	eps := approx.RippleFactor(1)
	ws := math.Pow(99/(eps*eps), 0.1)
	want := 1 + 0.5*(2-ws)/ws

	if got := DesFactor(proto, approx.Butterworth, 20, 0.5, 2, false); !testutil.AlmostEqual(got, want, 1e-3) {
		t.Fatalf("DesFactor = %v, want %v", got, want)
	}

	if got := DesFactor(proto, approx.Butterworth, 20, 0, 2, false); got != 1 {
		t.Fatalf("des=0 gives %v, want 1", got)
	}

	if got := DesFactor(proto, approx.Chebyshev2, 20, 0.5, 2, false); got != 1 {
		t.Fatalf("Chebyshev II gives %v, want 1", got)
	}

	if got := DesFactor(proto, approx.Butterworth, 20, 0.5, 2, true); got != 1 {
		t.Fatalf("pinned Q gives %v, want 1", got)
	}

	if got := DesFactor(proto, approx.Butterworth, 400, 0.5, 2, false); got != 1 {
		t.Fatalf("unreachable attenuation gives %v, want 1", got)
	}
}

func TestDenormalize_KeepsPoleCount(t *testing.T) {
	proto := butterworthProto(t, 4)

	for _, spec := range []Spec{lowpassSpec(), bandstopSpec()} {
		z, adjust, err := Denormalize(spec, proto, false, zpk.DefaultPrecision)
		if err != nil {
			t.Fatal(err)
		}

		want := len(proto.Poles)
		if spec.Kind == BandStop {
			want *= 2
		}

		if len(z.Poles) != want {
			t.Fatalf("%v: %d poles, want %d (adjust %v)", spec.Kind, len(z.Poles), want, adjust)
		}
	}

	spec := lowpassSpec()
	spec.Kind = KindErr

	if _, _, err := Denormalize(spec, proto, false, zpk.DefaultPrecision); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err = %v", err)
	}
}

func TestSearchOrder_MonotoneAndBounded(t *testing.T) {
	s, _ := approx.Lookup(approx.Chebyshev1)
	spec := bandstopSpec()

	natural, err := SearchOrder(Search{Spec: spec, Strategy: s, Order: 6, Precision: zpk.DefaultPrecision})
	if err != nil {
		t.Fatal(err)
	}

	if natural.Order != 6 || natural.Iterations != 1 {
		t.Fatalf("order=%d iterations=%d, want 6 and 1", natural.Order, natural.Iterations)
	}

	res, err := SearchOrder(Search{
		Spec: spec, Strategy: s, Order: 6, QMax: 0.9 * natural.Q, Precision: zpk.DefaultPrecision,
	})
	if err == nil {
		if res.Order >= 6 || res.Q > 0.9*natural.Q || res.Iterations != 6-res.Order+1 {
			t.Fatalf("order=%d q=%v iterations=%d", res.Order, res.Q, res.Iterations)
		}
	} else if !errors.Is(err, ErrSynthesisExhausted) {
		t.Fatal(err)
	}

	_, err = SearchOrder(Search{Spec: spec, Strategy: s, Order: 6, QMax: 0.3, Precision: zpk.DefaultPrecision})
	if !errors.Is(err, ErrSynthesisExhausted) {
		t.Fatalf("err = %v, want ErrSynthesisExhausted", err)
	}
}

func TestSearchOrder_InvalidSpec(t *testing.T) {
	s, _ := approx.Lookup(approx.Butterworth)

	tests := []struct {
		name   string
		search Search
	}{
		{"empty edges", Search{Spec: Spec{Kind: LowPass, Ap: 1, Aa: 20}, Strategy: s, Order: 3}},
		{"group delay without edge", Search{Spec: Spec{Kind: GroupDelay}, Strategy: s, Order: 3}},
		{"no strategy", Search{Spec: lowpassSpec(), Order: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SearchOrder(tt.search); !errors.Is(err, ErrSpec) {
				t.Fatalf("err = %v, want ErrSpec", err)
			}
		})
	}
}

func TestWMinMax(t *testing.T) {
	lo, hi, err := WMinMax(lowpassSpec())
	if err != nil {
		t.Fatal(err)
	}

	if !testutil.AlmostEqual(lo, twoPi*100, 1e-9) || !testutil.AlmostEqual(hi, twoPi*20000, 1e-6) {
		t.Fatalf("lowpass range [%v, %v]", lo, hi)
	}

	lo, hi, err = WMinMax(bandstopSpec())
	if err != nil {
		t.Fatal(err)
	}

	if !testutil.AlmostEqual(lo, twoPi*50, 1e-9) || !testutil.AlmostEqual(hi, twoPi*40000, 1e-6) {
		t.Fatalf("bandstop range [%v, %v]", lo, hi)
	}

	if _, _, err := WMinMax(Spec{Kind: KindErr}); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err = %v", err)
	}
}

func TestDelayCurve_Normalization(t *testing.T) {
	z := zpk.ZPK{Poles: []complex128{-1}, Gain: 1}
	w := []float64{0, 0.01, 0.02, 0.03}

	gd := DelayCurve(z, w, 0)
	if len(gd) != len(w) || gd[3] != gd[2] {
		t.Fatalf("gd = %v", gd)
	}

	// Raw first value is close to 1, so it stays close to 1/1.
	if !testutil.AlmostEqual(gd[0], 1, 1e-3) {
		t.Fatalf("gd[0] = %v", gd[0])
	}

	gd = DelayCurve(z, w, 5e-3)
	if !testutil.AlmostEqual(gd[0], 5e-3, 1e-15) {
		t.Fatalf("gd[0] = %v, want 5e-3", gd[0])
	}
}

func TestDelayCurve_Sentinel(t *testing.T) {
	gd := DelayCurve(zpk.ZPK{Gain: 1}, []float64{1, 2, 3}, 1e-3)

	testutil.RequireFinite(t, gd)

	if !testutil.AlmostEqual(gd[0], 1/gdSentinel, 1e-9) {
		t.Fatalf("gd[0] = %v, want %v", gd[0], 1/gdSentinel)
	}

	if DelayCurve(zpk.ZPK{Gain: 1}, []float64{1}, 0) != nil {
		t.Fatal("expected nil for a single point")
	}
}
