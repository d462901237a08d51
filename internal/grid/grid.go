// Package grid builds the time axis and angular-frequency grid a
// propagation run is sampled on.
package grid

import (
	"math"

	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

// Grid holds N evenly spaced time samples centered at zero and the matching
// angular frequencies in transform-native order. Immutable once built.
type Grid struct {
	N     int
	Dt    float64
	Time  []float64
	Omega []float64
}

// New builds a grid from the sample count and time step. N must be even
// and dt positive.
func New(n int, dt float64) (*Grid, error) {
	if n <= 0 || n%2 != 0 || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, optic.ErrInvalidGrid
	}

	g := &Grid{
		N:     n,
		Dt:    dt,
		Time:  make([]float64, n),
		Omega: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		g.Time[i] = (float64(i) - float64(n)/2) * dt
	}

	// Centered frequencies, then one shift into native order.
	dw := 2 * math.Pi / (float64(n) * dt)
	centered := make([]float64, n)
	for i := 0; i < n; i++ {
		centered[i] = (float64(i) - float64(n)/2) * dw
	}
	g.Omega = transform.Shift(centered)

	return g, nil
}

// Window returns the total span of the time axis.
func (g *Grid) Window() float64 {
	return float64(g.N) * g.Dt
}
