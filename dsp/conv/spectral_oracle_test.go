package conv

import (
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolve/internal/testutil"
)

// spectralConvolve computes linear convolution by multiplying zero-padded
// spectra. It only serves as an independent reference for the time-domain
// strategies.
func spectralConvolve(t *testing.T, a, b []float64) []float64 {
	t.Helper()

	n := len(a) + len(b) - 1
	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		t.Fatalf("failed to create FFT plan: %v", err)
	}

	aSpec := make([]complex128, fftSize)
	bSpec := make([]complex128, fftSize)
	for i, v := range a {
		aSpec[i] = complex(v, 0)
	}
	for i, v := range b {
		bSpec[i] = complex(v, 0)
	}

	if err := plan.Forward(aSpec, aSpec); err != nil {
		t.Fatalf("forward FFT failed: %v", err)
	}
	if err := plan.Forward(bSpec, bSpec); err != nil {
		t.Fatalf("forward FFT failed: %v", err)
	}
	for i := range aSpec {
		aSpec[i] *= bSpec[i]
	}
	if err := plan.Inverse(aSpec, aSpec); err != nil {
		t.Fatalf("inverse FFT failed: %v", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(aSpec[i])
	}
	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func TestConvolveMatchesSpectralProduct(t *testing.T) {
	sizes := []struct {
		signal int
		kernel int
	}{
		{16, 4},
		{300, 17},
		{1000, 64},
		{50, 256},
	}

	for _, size := range sizes {
		a := testutil.DeterministicNoise(11, 1, size.signal)
		b := testutil.DeterministicNoise(12, 1, size.kernel)
		want := spectralConvolve(t, a, b)

		for _, c := range convolvers {
			got, err := c.fn(a, b)
			if err != nil {
				t.Fatalf("%s: %v", c.name, err)
			}
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
		}
	}
}
