package optic

import (
	"math"
	"math/cmplx"
)

// Field is the complex pulse envelope sampled on the time grid.
type Field []complex128

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// Energy returns the discrete envelope energy sum |u|^2.
func (f Field) Energy() float64 {
	sum := 0.0
	for _, v := range f {
		re, im := real(v), imag(v)
		sum += re*re + im*im
	}
	return sum
}

func (f Field) PeakPower() float64 {
	peak := 0.0
	for _, v := range f {
		re, im := real(v), imag(v)
		if p := re*re + im*im; p > peak {
			peak = p
		}
	}
	return peak
}

// Power returns |u|^2 per sample.
func (f Field) Power() []float64 {
	p := make([]float64, len(f))
	for i, v := range f {
		re, im := real(v), imag(v)
		p[i] = re*re + im*im
	}
	return p
}

// Operator is a per-frequency-bin complex multiplier in transform-native
// ordering. Built once per run and frozen afterwards.
type Operator []complex128

func (o Operator) Clone() Operator {
	c := make(Operator, len(o))
	copy(c, o)
	return c
}

// ProgressFunc is invoked once per completed propagation step with the
// distance covered so far and the total fiber length.
type ProgressFunc func(z, total float64)

// Metric observes the field once per completed step and reduces it to a
// single value after the run.
type Metric interface {
	Name() string
	Observe(u Field, z float64)
	Value() float64
	Reset()
}

// Observer receives the field after every completed step.
type Observer interface {
	OnStep(u Field, z, dz float64)
}

// Config controls a single propagation run.
type Config struct {
	Tolerance         float64
	CaptureTrajectory bool
	MaxSteps          int
}

func DefaultConfig() Config {
	return Config{
		Tolerance: 1e-5,
		MaxSteps:  1 << 20,
	}
}

// Trajectory is an append-only log of (z, field, spectrum) snapshots,
// owned by the propagation driver and exposed only through the Result.
type Trajectory struct {
	Z       []float64
	Fields  []Field
	Spectra []Field
}

func (t *Trajectory) Append(z float64, u, spec Field) {
	t.Z = append(t.Z, z)
	t.Fields = append(t.Fields, u.Clone())
	t.Spectra = append(t.Spectra, spec.Clone())
}

func (t *Trajectory) Len() int { return len(t.Z) }

// Result holds the outcome of a completed propagation run.
type Result struct {
	Field      Field
	Spectrum   Field
	Distance   float64
	StepsTaken int
	Metrics    map[string]float64
	Trajectory *Trajectory
}

// EnergyDrift reports the relative change in envelope energy between the
// initial field and the result, or 0 when the initial energy vanishes.
func (r *Result) EnergyDrift(initial Field) float64 {
	e0 := initial.Energy()
	if e0 == 0 {
		return 0
	}
	return math.Abs(r.Field.Energy()-e0) / e0
}
