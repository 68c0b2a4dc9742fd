package mfdfa

import (
	"io"
	"math"
)

// ComputeConfig defines parameters for the fluctuation computation.
// Values are validated by ComputeFluctuations, not by the options.
type ComputeConfig struct {
	MaxScale            int // 0 selects the default of len(series)/4
	PolynomialOrder     int
	ScaleStep           int
	ReverseSegmentation bool
}

// ComputeOption mutates a ComputeConfig.
type ComputeOption func(*ComputeConfig)

// DefaultComputeConfig returns the standard MFDFA settings: linear
// detrending, unit scale step, forward segmentation only.
func DefaultComputeConfig() ComputeConfig {
	return ComputeConfig{
		PolynomialOrder: 1,
		ScaleStep:       1,
	}
}

// WithMaxScale sets the largest window size to evaluate.
func WithMaxScale(nMax int) ComputeOption {
	return func(cfg *ComputeConfig) {
		cfg.MaxScale = nMax
	}
}

// WithPolynomialOrder sets the detrending polynomial order.
func WithPolynomialOrder(order int) ComputeOption {
	return func(cfg *ComputeConfig) {
		cfg.PolynomialOrder = order
	}
}

// WithScaleStep sets the increment between consecutive window sizes.
func WithScaleStep(step int) ComputeOption {
	return func(cfg *ComputeConfig) {
		cfg.ScaleStep = step
	}
}

// WithReverseSegmentation additionally partitions the series from its end,
// doubling the number of segments per scale.
func WithReverseSegmentation() ComputeOption {
	return func(cfg *ComputeConfig) {
		cfg.ReverseSegmentation = true
	}
}

func applyComputeOptions(opts ...ComputeOption) ComputeConfig {
	cfg := DefaultComputeConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// FitConfig defines parameters for the log-log scaling fit.
type FitConfig struct {
	NStart  int // 0 selects the first computed scale
	NEnd    int // 0 selects the last computed scale
	LogBase float64
	Verbose bool
	Trace   io.Writer // nil falls back to stdout when Verbose is set
}

// FitOption mutates a FitConfig.
type FitOption func(*FitConfig)

// DefaultFitConfig returns the standard fit settings: the full scale range
// in natural logarithms, no trace output.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		LogBase: math.E,
	}
}

// WithFitRange restricts the fit to scales in [nStart, nEnd]. Both
// endpoints must be members of the computed scale set.
func WithFitRange(nStart, nEnd int) FitOption {
	return func(cfg *FitConfig) {
		cfg.NStart = nStart
		cfg.NEnd = nEnd
	}
}

// WithLogBase sets the logarithm base used on both axes of the fit.
func WithLogBase(base float64) FitOption {
	return func(cfg *FitConfig) {
		cfg.LogBase = base
	}
}

// WithVerbose enables a human-readable trace of each per-q fit, written to
// w. A nil writer sends the trace to stdout.
func WithVerbose(w io.Writer) FitOption {
	return func(cfg *FitConfig) {
		cfg.Verbose = true
		cfg.Trace = w
	}
}

func applyFitOptions(opts ...FitOption) FitConfig {
	cfg := DefaultFitConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
