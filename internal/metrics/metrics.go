// Package metrics provides per-run observables for propagation runs.
package metrics

import (
	"math"

	"github.com/san-kum/pulselab/internal/optic"
)

// Energy tracks the discrete envelope energy sum |u|^2 * dt after the
// most recent step.
type Energy struct {
	name  string
	dt    float64
	value float64
}

func NewEnergy(dt float64) *Energy {
	return &Energy{name: "energy", dt: dt}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(u optic.Field, z float64) {
	e.value = u.Energy() * e.dt
}

func (e *Energy) Value() float64 { return e.value }

func (e *Energy) Reset() { e.value = 0 }

// PeakPower tracks the maximum instantaneous power seen across the run.
type PeakPower struct {
	name string
	peak float64
}

func NewPeakPower() *PeakPower {
	return &PeakPower{name: "peak_power"}
}

func (p *PeakPower) Name() string { return p.name }

func (p *PeakPower) Observe(u optic.Field, z float64) {
	if pk := u.PeakPower(); pk > p.peak {
		p.peak = pk
	}
}

func (p *PeakPower) Value() float64 { return p.peak }

func (p *PeakPower) Reset() { p.peak = 0 }

// FWHM tracks the full width at half maximum of |u|^2 after the most
// recent step, in time units.
type FWHM struct {
	name  string
	time  []float64
	value float64
}

func NewFWHM(time []float64) *FWHM {
	return &FWHM{name: "fwhm", time: time}
}

func (f *FWHM) Name() string { return f.name }

func (f *FWHM) Observe(u optic.Field, z float64) {
	f.value = Width(u.Power(), f.time)
}

func (f *FWHM) Value() float64 { return f.value }

func (f *FWHM) Reset() { f.value = 0 }

// Width returns the full width at half maximum of a sampled profile,
// with linear interpolation at the two crossings. Returns 0 when the
// profile has no half-maximum crossing.
func Width(power, time []float64) float64 {
	peak := 0.0
	for _, p := range power {
		if p > peak {
			peak = p
		}
	}
	if peak == 0 {
		return 0
	}
	half := peak / 2

	left := math.NaN()
	for i := 1; i < len(power); i++ {
		if power[i-1] < half && power[i] >= half {
			frac := (half - power[i-1]) / (power[i] - power[i-1])
			left = time[i-1] + frac*(time[i]-time[i-1])
			break
		}
	}
	right := math.NaN()
	for i := len(power) - 1; i > 0; i-- {
		if power[i] < half && power[i-1] >= half {
			frac := (half - power[i]) / (power[i-1] - power[i])
			right = time[i] - frac*(time[i]-time[i-1])
			break
		}
	}
	if math.IsNaN(left) || math.IsNaN(right) || right < left {
		return 0
	}
	return right - left
}

// RMSWidth returns the energy-weighted root-mean-square width of a
// profile about its centroid.
func RMSWidth(power, axis []float64) float64 {
	var total, mean float64
	for i, p := range power {
		total += p
		mean += p * axis[i]
	}
	if total == 0 {
		return 0
	}
	mean /= total

	variance := 0.0
	for i, p := range power {
		d := axis[i] - mean
		variance += p * d * d
	}
	return math.Sqrt(variance / total)
}
