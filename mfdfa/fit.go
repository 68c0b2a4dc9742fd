package mfdfa

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-vecmath"

	"github.com/breakingbad08042/fathon/internal/polyfit"
)

// fluctuationFloor is the lower clamp applied to fluctuation values before
// taking their logarithm in the scaling fit. It equals the square root of
// varianceFloor, the smallest fluctuation the engine can emit, so a
// perfectly detrendable series (all fluctuations at the floor) still fits
// to a well-defined slope of zero.
const fluctuationFloor = 0x1p-26

// FitFluctuations performs, for every q-order, a linear least-squares fit
// of log F_q(s) against log s over a sub-range of the computed scales.
// The slope is the generalized Hurst exponent H(q); the intercept is
// returned alongside. Both endpoints of the fit range must be members of
// the computed scale set and span at least two scales.
//
// The returned slices are copies; the session stores its own for the
// spectrum derivations.
func (a *Analyzer) FitFluctuations(opts ...FitOption) (hq, intercepts []float64, err error) {
	if a.state < stateComputed {
		return nil, nil, fmt.Errorf("%w: call ComputeFluctuations first", ErrNotComputed)
	}

	cfg := applyFitOptions(opts...)

	if cfg.LogBase <= 0 || cfg.LogBase == 1 {
		return nil, nil, fmt.Errorf("%w: log base %v", ErrInvalidParameter, cfg.LogBase)
	}

	nStart := cfg.NStart
	if nStart == 0 {
		nStart = a.scales[0]
	}

	nEnd := cfg.NEnd
	if nEnd == 0 {
		nEnd = a.scales[len(a.scales)-1]
	}

	startIdx := scaleIndex(a.scales, nStart)
	endIdx := scaleIndex(a.scales, nEnd)

	switch {
	case startIdx < 0:
		return nil, nil, fmt.Errorf("%w: %d is not a computed scale", ErrInvalidRange, nStart)
	case endIdx < 0:
		return nil, nil, fmt.Errorf("%w: %d is not a computed scale", ErrInvalidRange, nEnd)
	case startIdx > endIdx:
		return nil, nil, fmt.Errorf("%w: nStart %d exceeds nEnd %d", ErrInvalidRange, nStart, nEnd)
	case endIdx == startIdx:
		return nil, nil, fmt.Errorf("%w: need at least two scales, got one", ErrInvalidRange)
	}

	m := endIdx - startIdx + 1

	logX := make([]float64, m)
	for i := range logX {
		logX[i] = math.Log(float64(a.scales[startIdx+i]))
	}

	// Logs are taken in base e and rescaled; log_b(x) = ln(x) / ln(b).
	if cfg.LogBase != math.E {
		vecmath.ScaleBlock(logX, logX, 1/math.Log(cfg.LogBase))
	}

	trace := cfg.Trace
	if cfg.Verbose && trace == nil {
		trace = os.Stdout
	}

	if cfg.Verbose {
		fmt.Fprintf(trace, "fit range: n = [%d, %d]\n", nStart, nEnd)
	}

	hq = make([]float64, len(a.qOrders))
	intercepts = make([]float64, len(a.qOrders))
	logY := make([]float64, m)

	for qi, q := range a.qOrders {
		for i := range logY {
			logY[i] = math.Log(math.Max(a.fluct[qi][startIdx+i], fluctuationFloor))
		}

		if cfg.LogBase != math.E {
			vecmath.ScaleBlock(logY, logY, 1/math.Log(cfg.LogBase))
		}

		coeffs, _, fitErr := polyfit.Fit(logX, logY, 1)
		if fitErr != nil {
			return nil, nil, fmt.Errorf("mfdfa: scaling fit failed for q=%v: %w", q, fitErr)
		}

		hq[qi] = coeffs[0]
		intercepts[qi] = coeffs[1]

		if cfg.Verbose {
			fmt.Fprintf(trace, "q = %.2f -> H = %.4f, intercept = %.4f\n", q, hq[qi], intercepts[qi])
		}
	}

	a.hq = make([]float64, len(hq))
	copy(a.hq, hq)
	a.intercepts = make([]float64, len(intercepts))
	copy(a.intercepts, intercepts)
	a.state = stateFitted

	return hq, intercepts, nil
}

// scaleIndex returns the position of s in scales, or -1 if absent.
func scaleIndex(scales []int, s int) int {
	for i, v := range scales {
		if v == s {
			return i
		}
	}

	return -1
}
