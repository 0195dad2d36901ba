package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBitsEqual fails t unless got and want have identical float64 bit
// patterns at every index. NaNs only match the same NaN payload.
func RequireBitsEqual(t *testing.T, got, want []float64) {
	t.Helper()
	if i, ok := FirstBitMismatch(got, want); !ok {
		if i < 0 {
			t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		}
		t.Fatalf("index %d: got %v (%#016x), want %v (%#016x)",
			i, got[i], math.Float64bits(got[i]), want[i], math.Float64bits(want[i]))
	}
}

// FirstBitMismatch reports the first index whose bit patterns differ.
// It returns (-1, false) on length mismatch and (0, true) when equal.
func FirstBitMismatch(a, b []float64) (int, bool) {
	if len(a) != len(b) {
		return -1, false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return i, false
		}
	}
	return 0, true
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
