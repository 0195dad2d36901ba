package testutil

import (
	"math"
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(4, 2, 5)
	want := []float64{0, 2, 0, -2, 0}
	RequireSliceNearlyEqual(t, s, want, 1e-12)
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		if i == 3 && v != 1 {
			t.Fatalf("imp[3] = %v, want 1", v)
		}
		if i != 3 && v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
	for _, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatal("out-of-range impulse should be all zeros")
		}
	}
}

func TestNaiveConvolve(t *testing.T) {
	got := NaiveConvolve([]float64{1, 2, 3}, []float64{0, 1, 0.5})
	RequireSliceNearlyEqual(t, got, []float64{0, 1, 2.5, 4, 1.5}, 0)

	if NaiveConvolve(nil, nil) != nil {
		t.Fatal("expected nil for two empty inputs")
	}
	if got := NaiveConvolve(nil, []float64{1, 2, 3}); len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Fatalf("NaiveConvolve(nil, 3 samples) = %v, want [0 0]", got)
	}
}

func TestFirstBitMismatch(t *testing.T) {
	if _, ok := FirstBitMismatch([]float64{1, 2}, []float64{1, 2}); !ok {
		t.Fatal("equal slices reported as different")
	}
	if i, ok := FirstBitMismatch([]float64{1}, []float64{1, 2}); ok || i != -1 {
		t.Fatalf("length mismatch: got (%d, %v)", i, ok)
	}
	// +0 and -0 compare equal as floats but differ in bits.
	if i, ok := FirstBitMismatch([]float64{1, 0}, []float64{1, math.Copysign(0, -1)}); ok || i != 1 {
		t.Fatalf("signed zero: got (%d, %v), want (1, false)", i, ok)
	}
}

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected error on length mismatch")
	}
}
