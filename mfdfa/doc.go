// Package mfdfa implements multifractal detrended fluctuation analysis
// (MFDFA) of one-dimensional time series.
//
// MFDFA estimates how the amplitude of locally detrended fluctuations
// grows with the observation window size, separately for a family of
// moment orders q. The scaling slopes form the generalized Hurst exponent
// spectrum H(q), from which the mass exponents τ(q) and the multifractal
// singularity spectrum (α, f(α)) follow in closed form.
//
// # Pipeline
//
// An analysis session is a single [Analyzer] that advances through three
// stages; calling a stage before its predecessor returns an error rather
// than a partial result:
//
//	a, err := mfdfa.New(series)                        // clean + store
//	scales, fq, err := a.ComputeFluctuations(16, qs)   // fluctuation matrix
//	hq, icept, err := a.FitFluctuations()              // H(q) per q-order
//	tau, err := a.MassExponents()                      // τ(q) = H(q)·q − 1
//	alpha, falpha, err := a.MultifractalSpectrum()     // (α, f(α))
//
// The input series is typically a profile, the cumulative sum of a
// mean-subtracted signal; see the tsutil package.
//
// # Fluctuation function
//
// For a scale s the cleaned series of length N is divided into ⌊N/s⌋
// non-overlapping segments (optionally doubled by partitioning again from
// the end of the series). A least-squares polynomial trend is removed from
// each segment and the residual variance F²(v,s) recorded. The q-th order
// fluctuation is the generalized mean
//
//	F_q(s) = { (1/Ns) Σ_v [F²(v,s)]^(q/2) }^(1/q)
//
// with the logarithmic limit at q = 0:
//
//	F_0(s) = exp{ (1/(2·Ns)) Σ_v ln F²(v,s) }
//
// Segment variances are clamped below at the machine epsilon so that
// perfectly detrendable segments (for example an exactly linear series
// under linear detrending) yield finite fluctuations for every q,
// including the logarithmic q = 0 path and negative orders.
//
// Cells of the (q, scale) grid are independent, so the engine evaluates
// scales concurrently on a bounded worker pool; the matrix is written at
// disjoint indices and installed in the session only once fully populated.
//
// # Scaling fit and spectrum
//
// H(q) is the slope of log F_q(s) against log s over a caller-chosen
// sub-range of the computed scales (any logarithm base; the slope is base
// independent). Monofractal series produce an H(q) that is flat in q and
// a spectrum collapsing to a single α; multifractal series produce a
// decreasing H(q) and a broad spectrum.
//
// The method follows Kantelhardt et al., "Multifractal detrended
// fluctuation analysis of nonstationary time series", Physica A 316
// (2002).
package mfdfa
