package mfdfa

import (
	"strconv"
	"testing"

	"github.com/breakingbad08042/fathon/tsutil"
)

func BenchmarkComputeFluctuations(b *testing.B) {
	qOrders := []float64{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5}

	for _, n := range []int{1024, 4096, 16384} {
		profile := tsutil.ToAggregated(tsutil.GaussianNoise(n, 1))

		a, err := New(profile)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				if _, _, err := a.ComputeFluctuations(16, qOrders); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFitFluctuations(b *testing.B) {
	profile := tsutil.ToAggregated(tsutil.GaussianNoise(4096, 1))

	a, err := New(profile)
	if err != nil {
		b.Fatal(err)
	}

	if _, _, err := a.ComputeFluctuations(16, []float64{-2, -1, 0, 1, 2}); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for range b.N {
		if _, _, err := a.FitFluctuations(); err != nil {
			b.Fatal(err)
		}
	}
}
