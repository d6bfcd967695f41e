package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const testFile = "../../internal/config/testdata/filters.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestFamilies(t *testing.T) {
	out, err := run(t, "families")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"butterworth", "Cheby II", "gauss"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDesign_StagesAndBiquads(t *testing.T) {
	out, err := run(t, "design", "--filter", "anti-alias", "--sample-rate", "48000", filepath.FromSlash(testFile))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"C0: Lowpass Butterworth order 5", "Stage 0", "Stage 2", "biquads at 48000 Hz"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	if strings.Count(out, "b = [") != 3 {
		t.Fatalf("expected 3 biquads in:\n%s", out)
	}

	for _, want := range []string{"stable: true", "|H| at DC:", "(1024 points)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDesign_ImpulseAndStep(t *testing.T) {
	out, err := run(t, "design", "--filter", "anti-alias", "--sample-rate", "48000",
		"--points", "64", "--impulse", "4", testFile)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"impulse: [", "step:    [", "(64 points)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDesign_UnknownFilter(t *testing.T) {
	if _, err := run(t, "design", "--filter", "nope", testFile); err == nil {
		t.Fatal("expected error")
	}
}

func TestResponse(t *testing.T) {
	out, err := run(t, "response", "--filter", "anti-alias", "--points", "5", testFile)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "|H| [dB]") {
		t.Fatalf("missing header in:\n%s", out)
	}

	// Header plus five rows plus the filter name.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
}

func TestResponse_DigitalColumn(t *testing.T) {
	out, err := run(t, "response", "--filter", "anti-alias", "--points", "3", "--sample-rate", "48000", testFile)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "digital [dB]") {
		t.Fatalf("missing digital column in:\n%s", out)
	}

	// 100 Hz sits deep in the passband, where the realization matches the
	// analog response closely.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	first := strings.Fields(lines[2])

	if len(first) != 5 {
		t.Fatalf("first row %q", lines[2])
	}

	analog, err1 := strconv.ParseFloat(first[1], 64)
	digital, err2 := strconv.ParseFloat(first[4], 64)

	if err1 != nil || err2 != nil || math.Abs(analog-digital) > 0.01 {
		t.Fatalf("analog %q vs digital %q", first[1], first[4])
	}
}
