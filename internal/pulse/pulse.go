// Package pulse provides initial envelope shapes for propagation runs.
package pulse

import (
	"math"

	"github.com/san-kum/pulselab/internal/optic"
)

// Gaussian returns sqrt(peak) * exp(-t^2/(2 T0^2)) with an optional linear
// chirp C applied as exp(-i C t^2 / (2 T0^2)).
func Gaussian(t []float64, peak, t0, chirp float64) optic.Field {
	amp := math.Sqrt(peak)
	u := make(optic.Field, len(t))
	for i, ti := range t {
		x := ti / t0
		env := amp * math.Exp(-x*x/2)
		phase := -chirp * x * x / 2
		u[i] = complex(env*math.Cos(phase), env*math.Sin(phase))
	}
	return u
}

// Sech returns sqrt(peak) * sech(t/T0), the fundamental soliton envelope.
func Sech(t []float64, peak, t0 float64) optic.Field {
	amp := math.Sqrt(peak)
	u := make(optic.Field, len(t))
	for i, ti := range t {
		u[i] = complex(amp/math.Cosh(ti/t0), 0)
	}
	return u
}

// Soliton returns a sech envelope whose peak power gives soliton order N
// for the given beta2 (ps^2/m) and gamma (1/(W*m)).
func Soliton(t []float64, order, t0, beta2, gamma float64) optic.Field {
	peak := order * order * math.Abs(beta2) / (gamma * t0 * t0)
	return Sech(t, peak, t0)
}
