package transform

import (
	"math/cmplx"
	"testing"
)

func TestShiftReorders(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	got := Shift(x)
	want := []float64{3, 4, 5, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftInvolution(t *testing.T) {
	x := []complex128{1, 2i, 3, 4i}
	back := Shift(Shift(x))
	for i := range x {
		if back[i] != x[i] {
			t.Fatalf("index %d: double shift changed %v to %v", i, x[i], back[i])
		}
	}
}

func TestBackendRoundTrip(t *testing.T) {
	b := Get()
	x := []complex128{1, complex(0.5, -0.25), -2i, complex(-1, 1)}
	back := b.Inverse(b.Forward(x))
	for i := range x {
		if cmplx.Abs(back[i]-x[i]) > 1e-12 {
			t.Fatalf("index %d: round trip error %v", i, back[i]-x[i])
		}
	}
}
