package mfdfa

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/breakingbad08042/fathon/tsutil"
)

func computeNoiseProfile(t *testing.T, n int, seed int64) *Analyzer {
	t.Helper()

	a, err := New(tsutil.ToAggregated(tsutil.GaussianNoise(n, seed)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return a
}

func TestFitFluctuations_LinearSeriesDoesNotFail(t *testing.T) {
	// All fluctuations sit at the epsilon floor for a perfectly linear
	// series; the fit must survive the log of near-zero values.
	a, err := New(linSeries(100))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, err := a.ComputeFluctuations(4, []float64{2}, WithMaxScale(20)); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	hq, intercepts, err := a.FitFluctuations()
	if err != nil {
		t.Fatalf("FitFluctuations: %v", err)
	}

	if math.IsNaN(hq[0]) || math.IsInf(hq[0], 0) {
		t.Errorf("H: got %g, want finite", hq[0])
	}

	if math.IsNaN(intercepts[0]) || math.IsInf(intercepts[0], 0) {
		t.Errorf("intercept: got %g, want finite", intercepts[0])
	}
}

func TestFitFluctuations_InvalidRange(t *testing.T) {
	a := computeNoiseProfile(t, 512, 5)

	// Scales 4, 6, ..., 20.
	if _, _, err := a.ComputeFluctuations(4, []float64{2}, WithMaxScale(20), WithScaleStep(2)); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	cases := []struct {
		name         string
		nStart, nEnd int
	}{
		{"start not a member", 5, 20},
		{"end not a member", 4, 19},
		{"beyond last scale", 4, 22},
		{"start after end", 8, 6},
		{"single scale", 6, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := a.FitFluctuations(WithFitRange(tc.nStart, tc.nEnd))
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("got %v, want ErrInvalidRange", err)
			}
		})
	}

	// A valid sub-range still works afterwards.
	if _, _, err := a.FitFluctuations(WithFitRange(6, 16)); err != nil {
		t.Errorf("valid sub-range: %v", err)
	}
}

func TestFitFluctuations_InvalidLogBase(t *testing.T) {
	a := computeNoiseProfile(t, 512, 5)

	if _, _, err := a.ComputeFluctuations(8, []float64{2}); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	for _, base := range []float64{0, -2, 1} {
		if _, _, err := a.FitFluctuations(WithLogBase(base)); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("base %v: got %v, want ErrInvalidParameter", base, err)
		}
	}
}

func TestFitFluctuations_LogBaseInvariance(t *testing.T) {
	// The slope of a log-log fit does not depend on the logarithm base;
	// the intercept rescales by 1/ln(base).
	a := computeNoiseProfile(t, 2048, 9)

	if _, _, err := a.ComputeFluctuations(16, []float64{-2, 0, 2}); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	hE, iceptE, err := a.FitFluctuations()
	if err != nil {
		t.Fatalf("fit base e: %v", err)
	}

	h10, icept10, err := a.FitFluctuations(WithLogBase(10))
	if err != nil {
		t.Fatalf("fit base 10: %v", err)
	}

	for qi := range hE {
		if !almostEqual(hE[qi], h10[qi], 1e-9) {
			t.Errorf("q index %d: H base e %g vs base 10 %g", qi, hE[qi], h10[qi])
		}

		if !almostEqual(iceptE[qi]/math.Log(10), icept10[qi], 1e-9) {
			t.Errorf("q index %d: intercept scaling mismatch: %g vs %g",
				qi, iceptE[qi]/math.Log(10), icept10[qi])
		}
	}
}

func TestFitFluctuations_WhiteNoiseProfile(t *testing.T) {
	// The profile of white noise scales with H(2) ≈ 0.5. Statistical
	// bound, kept wide.
	a := computeNoiseProfile(t, 4096, 21)

	if _, _, err := a.ComputeFluctuations(16, []float64{2}); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	hq, _, err := a.FitFluctuations()
	if err != nil {
		t.Fatalf("FitFluctuations: %v", err)
	}

	if hq[0] < 0.35 || hq[0] > 0.7 {
		t.Errorf("H(2) for white noise profile: got %g, want ~0.5", hq[0])
	}
}

func TestFitFluctuations_CorrelatedNoiseProfile(t *testing.T) {
	// Long-range correlated noise with a prescribed Hurst exponent must
	// come out clearly above the white-noise value.
	noise, err := tsutil.FGN(8192, 0.8, 17)
	if err != nil {
		t.Fatalf("FGN: %v", err)
	}

	a, err := New(tsutil.ToAggregated(noise))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, err := a.ComputeFluctuations(16, []float64{2}, WithMaxScale(1024)); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	hq, _, err := a.FitFluctuations()
	if err != nil {
		t.Fatalf("FitFluctuations: %v", err)
	}

	if hq[0] < 0.6 || hq[0] > 1.05 {
		t.Errorf("H(2) for h=0.8 noise profile: got %g, want ~0.8", hq[0])
	}
}

func TestFitFluctuations_VerboseTrace(t *testing.T) {
	a := computeNoiseProfile(t, 512, 5)

	if _, _, err := a.ComputeFluctuations(8, []float64{1, 2}); err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	var buf bytes.Buffer

	if _, _, err := a.FitFluctuations(WithVerbose(&buf)); err != nil {
		t.Fatalf("FitFluctuations: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "fit range: n = [8, 128]") {
		t.Errorf("trace missing fit range line:\n%s", out)
	}

	if !strings.Contains(out, "q = 1.00") || !strings.Contains(out, "q = 2.00") {
		t.Errorf("trace missing per-q lines:\n%s", out)
	}
}

func TestFitFluctuations_SubrangeChangesFit(t *testing.T) {
	// Restricting the range must actually restrict the regression: a fit
	// over small scales of a crossover signal differs from the full fit.
	a := computeNoiseProfile(t, 4096, 33)

	scales, _, err := a.ComputeFluctuations(16, []float64{2})
	if err != nil {
		t.Fatalf("ComputeFluctuations: %v", err)
	}

	full, _, err := a.FitFluctuations()
	if err != nil {
		t.Fatalf("full fit: %v", err)
	}

	small, _, err := a.FitFluctuations(WithFitRange(scales[0], scales[len(scales)/4]))
	if err != nil {
		t.Fatalf("sub fit: %v", err)
	}

	if full[0] == small[0] {
		t.Error("sub-range fit identical to full fit; range likely ignored")
	}
}
