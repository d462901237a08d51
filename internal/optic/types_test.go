package optic

import (
	"math"
	"testing"
)

func TestFieldEnergy(t *testing.T) {
	f := Field{complex(3, 4), complex(0, 1), 0}
	if got := f.Energy(); math.Abs(got-26) > 1e-12 {
		t.Errorf("expected energy 26, got %f", got)
	}
	if got := f.PeakPower(); math.Abs(got-25) > 1e-12 {
		t.Errorf("expected peak power 25, got %f", got)
	}
}

func TestFieldClone(t *testing.T) {
	f := Field{1, 2i}
	c := f.Clone()
	c[0] = 9
	if f[0] != 1 {
		t.Error("clone aliases original")
	}
}

func TestFieldIsValid(t *testing.T) {
	f := Field{1, complex(math.NaN(), 0)}
	if f.IsValid() {
		t.Error("expected NaN field to be invalid")
	}
	g := Field{1, complex(0, math.Inf(1))}
	if g.IsValid() {
		t.Error("expected Inf field to be invalid")
	}
	if !(Field{1, 2, 3}).IsValid() {
		t.Error("expected finite field to be valid")
	}
}

func TestTrajectoryAppendCopies(t *testing.T) {
	var tr Trajectory
	u := Field{1, 2}
	tr.Append(0.5, u, u)
	u[0] = 7
	if tr.Fields[0][0] != 1 {
		t.Error("trajectory snapshot aliases live field")
	}
	if tr.Len() != 1 {
		t.Errorf("expected length 1, got %d", tr.Len())
	}
}
