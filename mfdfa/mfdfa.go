package mfdfa

import (
	"fmt"
	"math"
)

// sessionState tracks how far the analysis pipeline has progressed.
// Operations gate on it and fail with ErrNotComputed or ErrNotFitted when
// called out of order.
type sessionState uint8

const (
	stateNew sessionState = iota
	stateComputed
	stateFitted
)

// Analyzer performs multifractal detrended fluctuation analysis on a single
// time series. It holds the cleaned series for the lifetime of the session
// and advances through three states: constructed, fluctuations computed,
// and scaling fitted. See the package documentation for the full pipeline.
//
// An Analyzer is not safe for concurrent use; the parallelism of the
// fluctuation computation is internal.
type Analyzer struct {
	series []float64
	state  sessionState

	// Populated by ComputeFluctuations.
	scales  []int
	qOrders []float64
	fluct   [][]float64 // [qIndex][scaleIndex]

	// Populated by FitFluctuations.
	hq         []float64
	intercepts []float64
}

// New creates an analysis session for the given series. Non-finite entries
// (NaN and ±Inf) are dropped, preserving the relative order of the
// remaining values. The cleaned series is copied and never mutated.
func New(series []float64) (*Analyzer, error) {
	cleaned := make([]float64, 0, len(series))

	for _, v := range series {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			cleaned = append(cleaned, v)
		}
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: got %d input values, none finite", ErrInvalidInput, len(series))
	}

	return &Analyzer{series: cleaned}, nil
}

// Len returns the length of the cleaned series.
func (a *Analyzer) Len() int {
	return len(a.series)
}

// Series returns a copy of the cleaned series.
func (a *Analyzer) Series() []float64 {
	out := make([]float64, len(a.series))
	copy(out, a.series)

	return out
}

// Scales returns a copy of the computed scale set.
func (a *Analyzer) Scales() ([]int, error) {
	if a.state < stateComputed {
		return nil, fmt.Errorf("%w: call ComputeFluctuations first", ErrNotComputed)
	}

	out := make([]int, len(a.scales))
	copy(out, a.scales)

	return out, nil
}

// QOrders returns a copy of the q-orders of the last computation.
func (a *Analyzer) QOrders() ([]float64, error) {
	if a.state < stateComputed {
		return nil, fmt.Errorf("%w: call ComputeFluctuations first", ErrNotComputed)
	}

	out := make([]float64, len(a.qOrders))
	copy(out, a.qOrders)

	return out, nil
}

// Fluctuations returns a copy of the fluctuation matrix, indexed
// [qIndex][scaleIndex].
func (a *Analyzer) Fluctuations() ([][]float64, error) {
	if a.state < stateComputed {
		return nil, fmt.Errorf("%w: call ComputeFluctuations first", ErrNotComputed)
	}

	return copyMatrix(a.fluct), nil
}

// Fit returns copies of the generalized Hurst exponents and intercepts of
// the last scaling fit.
func (a *Analyzer) Fit() (hq, intercepts []float64, err error) {
	if a.state < stateFitted {
		return nil, nil, fmt.Errorf("%w: call FitFluctuations first", ErrNotFitted)
	}

	hq = make([]float64, len(a.hq))
	copy(hq, a.hq)

	intercepts = make([]float64, len(a.intercepts))
	copy(intercepts, a.intercepts)

	return hq, intercepts, nil
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}

	return out
}
