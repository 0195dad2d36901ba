package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with a
// fixed seed, so benchmark and test inputs are reproducible.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DeterministicSine generates a sine with the given period in samples.
func DeterministicSine(period, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi / period
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Impulse generates a unit impulse at pos. Out-of-range positions give all zeros.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Zeros returns a slice of n zeros.
func Zeros(n int) []float64 {
	return make([]float64, n)
}

// NaiveConvolve computes linear convolution by summing over the output index,
// xab[k] = sum_i a[i]*b[k-i]. It is a reference for tests only and does not
// share accumulation order with the production strategies.
func NaiveConvolve(a, b []float64) []float64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for k := range out {
		sum := 0.0
		for i := 0; i < len(a); i++ {
			j := k - i
			if j < 0 || j >= len(b) {
				continue
			}
			sum += a[i] * b[j]
		}
		out[k] = sum
	}
	return out
}
