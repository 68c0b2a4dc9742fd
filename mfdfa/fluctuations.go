package mfdfa

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/breakingbad08042/fathon/internal/polyfit"
)

// varianceFloor is the lower clamp applied to segment variances before
// aggregation. A perfectly detrendable segment has zero residual variance,
// which would send the q = 0 logarithmic mean to -Inf and negative-q
// powers to +Inf; clamping at the machine epsilon keeps every cell of the
// fluctuation matrix finite.
const varianceFloor = 0x1p-52

// ComputeFluctuations evaluates the generalized fluctuation function over
// every (q-order, scale) pair. Scales run from nMin to the configured
// maximum (default len(series)/4) in steps of the configured increment.
//
// For each scale s the series is split into floor(N/s) non-overlapping
// segments starting at the beginning; samples past the last full segment
// are ignored. With reverse segmentation enabled, floor(N/s) further
// segments are taken from the end of the series. Each segment is detrended
// by a least-squares polynomial of the configured order, and the residual
// variances are aggregated per q-order:
//
//	F_q(s) = { mean_v [F²(v,s)]^(q/2) }^(1/q)          q ≠ 0
//	F_0(s) = exp{ mean_v ln[F²(v,s)] / 2 }             q = 0
//
// The returned scale set and matrix (indexed [qIndex][scaleIndex]) are
// copies; the session keeps its own. Recomputing replaces the previous
// matrix wholesale and discards any earlier fit results.
func (a *Analyzer) ComputeFluctuations(nMin int, qOrders []float64, opts ...ComputeOption) ([]int, [][]float64, error) {
	cfg := applyComputeOptions(opts...)
	n := len(a.series)

	nMax := cfg.MaxScale
	if nMax == 0 {
		nMax = n / 4
	}

	if err := validateComputeParams(n, nMin, nMax, cfg, qOrders); err != nil {
		return nil, nil, err
	}

	scales := makeScales(nMin, nMax, cfg.ScaleStep)

	fluct := make([][]float64, len(qOrders))
	for qi := range fluct {
		fluct[qi] = make([]float64, len(scales))
	}

	// Every (q, scale) cell is an independent reduction over that scale's
	// segments, so scales can be evaluated concurrently. Each worker owns
	// one column of the matrix; the segment variances are computed once
	// per scale and shared across all q-orders.
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for si, s := range scales {
		g.Go(func() error {
			f2, err := a.segmentVariances(s, cfg.PolynomialOrder, cfg.ReverseSegmentation)
			if err != nil {
				return err
			}

			for qi, q := range qOrders {
				fluct[qi][si] = aggregateFluctuations(f2, q)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Install the fully populated results only now, so a failed recompute
	// leaves the previous session state untouched.
	a.scales = scales
	a.qOrders = make([]float64, len(qOrders))
	copy(a.qOrders, qOrders)
	a.fluct = fluct
	a.hq = nil
	a.intercepts = nil
	a.state = stateComputed

	scalesOut := make([]int, len(scales))
	copy(scalesOut, scales)

	return scalesOut, copyMatrix(fluct), nil
}

// validateComputeParams checks the scale parameters in the documented
// precedence order, then the q-orders.
func validateComputeParams(n, nMin, nMax int, cfg ComputeConfig, qOrders []float64) error {
	switch {
	case cfg.PolynomialOrder < 1:
		return fmt.Errorf("%w: polynomial order %d < 1", ErrInvalidParameter, cfg.PolynomialOrder)
	case cfg.ScaleStep < 1:
		return fmt.Errorf("%w: scale step %d < 1", ErrInvalidParameter, cfg.ScaleStep)
	case nMax < 3 || nMin < 3:
		return fmt.Errorf("%w: scales must be at least 3, got nMin=%d nMax=%d", ErrInvalidParameter, nMin, nMax)
	case nMax <= nMin:
		return fmt.Errorf("%w: nMax %d must exceed nMin %d", ErrInvalidParameter, nMax, nMin)
	case nMax > n:
		return fmt.Errorf("%w: nMax %d exceeds series length %d", ErrInvalidParameter, nMax, n)
	case nMin < cfg.PolynomialOrder+2:
		return fmt.Errorf("%w: nMin %d too small for polynomial order %d (need at least %d)",
			ErrInvalidParameter, nMin, cfg.PolynomialOrder, cfg.PolynomialOrder+2)
	}

	if len(qOrders) == 0 {
		return fmt.Errorf("%w: no q-orders given", ErrInvalidParameter)
	}

	for _, q := range qOrders {
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return fmt.Errorf("%w: non-finite q-order %v", ErrInvalidParameter, q)
		}
	}

	return nil
}

func makeScales(nMin, nMax, step int) []int {
	scales := make([]int, 0, (nMax-nMin)/step+1)
	for s := nMin; s <= nMax; s += step {
		scales = append(scales, s)
	}

	return scales
}

// segmentVariances detrends every segment of length s and returns the
// residual variances F²(v,s). Forward segments cover the series from the
// start; with revSeg, an equal number of segments covers it from the end.
func (a *Analyzer) segmentVariances(s, polOrder int, revSeg bool) ([]float64, error) {
	n := len(a.series)
	ns := n / s

	count := ns
	if revSeg {
		count = 2 * ns
	}

	xs := make([]float64, s)
	for i := range xs {
		xs[i] = float64(i)
	}

	f2 := make([]float64, count)

	for v := 0; v < ns; v++ {
		variance, err := segmentVariance(a.series[v*s:(v+1)*s], xs, polOrder)
		if err != nil {
			return nil, err
		}

		f2[v] = variance
	}

	if revSeg {
		for v := 0; v < ns; v++ {
			variance, err := segmentVariance(a.series[n-(v+1)*s:n-v*s], xs, polOrder)
			if err != nil {
				return nil, err
			}

			f2[ns+v] = variance
		}
	}

	return f2, nil
}

// segmentVariance fits a polynomial trend to one segment against local
// indices 0..s-1 and returns the mean squared residual.
func segmentVariance(seg, xs []float64, polOrder int) (float64, error) {
	_, residual, err := polyfit.Fit(xs, seg, polOrder)
	if err != nil {
		return 0, fmt.Errorf("mfdfa: detrending failed at segment length %d: %w", len(seg), err)
	}

	return residual / float64(len(seg)), nil
}

// aggregateFluctuations reduces the segment variances of one scale to a
// single fluctuation value for the given q-order. Variances are clamped at
// varianceFloor first; see the constant's documentation.
func aggregateFluctuations(f2 []float64, q float64) float64 {
	inv := 1 / float64(len(f2))

	if q == 0 {
		var sum float64
		for _, v := range f2 {
			sum += math.Log(math.Max(v, varianceFloor))
		}

		return math.Exp(0.5 * inv * sum)
	}

	var sum float64
	for _, v := range f2 {
		sum += math.Pow(math.Max(v, varianceFloor), 0.5*q)
	}

	return math.Pow(inv*sum, 1/q)
}
