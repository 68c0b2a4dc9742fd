// Package tsutil provides time series preparation helpers and synthetic
// signal generators for fluctuation analysis.
//
// Detrended fluctuation analysis operates on the profile of a series, the
// cumulative sum of its mean-subtracted values. [ToAggregated] builds that
// profile. The noise generators produce deterministic test signals with a
// known correlation structure.
package tsutil

import "errors"

// Errors returned by the generators.
var (
	ErrInvalidLength = errors.New("tsutil: length must be positive")
	ErrInvalidHurst  = errors.New("tsutil: hurst exponent must be in (0, 1)")
)

// ToAggregated returns the profile of the series: the cumulative sum of the
// mean-subtracted values. The input is not modified.
func ToAggregated(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	// Kahan summation for the mean, matching the accuracy of the
	// downstream detrending.
	var sum, c float64
	for _, x := range series {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	mean := sum / float64(n)

	out := make([]float64, n)
	var acc float64

	for i, x := range series {
		acc += x - mean
		out[i] = acc
	}

	return out
}
