package tsutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// GaussianNoise returns n independent standard normal samples drawn from a
// source seeded with seed. The same seed always produces the same sequence.
func GaussianNoise(n int, seed int64) []float64 {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}

	return out
}

// PowerLawNoise synthesises n samples of 1/f^beta noise by spectral
// shaping: a Hermitian spectrum with power-law amplitudes and random phases
// is transformed back to the time domain. The result is standardised to
// zero mean and unit sample variance.
//
// beta = 0 gives white noise, beta = 2 Brownian-like noise. The FFT length
// is padded to twice the requested length to suppress circular correlation
// artefacts at the ends.
func PowerLawNoise(n int, beta float64, seed int64) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	size := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("tsutil: failed to create FFT plan: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	freq := make([]complex128, size)
	half := size / 2

	// Build the positive-frequency half with |X(k)| ~ k^(-beta/2) and
	// mirror it so the inverse transform is real. Bin 0 stays zero (no
	// DC component), the Nyquist bin must be real.
	for k := 1; k <= half; k++ {
		amp := math.Pow(float64(k), -beta/2)

		re := rng.NormFloat64() * amp
		im := rng.NormFloat64() * amp

		if k == half {
			im = 0
		}

		freq[k] = complex(re, im)
		if k < half {
			freq[size-k] = cmplx.Conj(freq[k])
		}
	}

	td := make([]complex128, size)
	if err := plan.Inverse(td, freq); err != nil {
		return nil, fmt.Errorf("tsutil: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(td[i])
	}

	mean, std := stat.MeanStdDev(out, nil)
	if std == 0 || math.IsNaN(std) {
		return nil, fmt.Errorf("tsutil: degenerate spectrum (zero variance)")
	}

	for i := range out {
		out[i] -= mean
	}
	vecmath.ScaleBlock(out, out, 1/std)

	return out, nil
}

// FGN returns n samples of fractional-Gaussian-like noise with Hurst
// exponent h, generated by spectral synthesis with beta = 2h - 1. The
// profile of the result (see [ToAggregated]) scales approximately as s^h
// under detrended fluctuation analysis.
func FGN(n int, h float64, seed int64) ([]float64, error) {
	if h <= 0 || h >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidHurst, h)
	}

	return PowerLawNoise(n, 2*h-1, seed)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
