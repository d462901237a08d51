// Package fiber describes the propagation medium: loss, dispersion,
// nonlinearity and the delayed Raman response, plus the construction of
// the frequency-domain linear operator.
package fiber

import (
	"fmt"
	"math"
)

// Fiber holds the z-invariant parameters of the medium. Loss is either a
// single broadcast coefficient or one value per sample; dispersion is
// either a Taylor expansion Betas (beta_k in ps^k/m, expanded as
// sum beta_k w^k / k!) or an explicit per-bin Profile in centered
// frequency ordering. When Profile is set it takes precedence.
type Fiber struct {
	Length  float64 // m
	Gamma   float64 // 1/(W*m)
	Loss    []float64
	Betas   []float64
	Profile []complex128
	FR      float64 // fractional Raman contribution
	F0      float64 // reference optical frequency, THz; +Inf disables self-steepening
}

// New returns a lossless anomalous-dispersion fiber with the Raman and
// self-steepening terms switched off.
func New() *Fiber {
	return &Fiber{
		Length: 1.0,
		Gamma:  1.0,
		Loss:   []float64{0},
		Betas:  []float64{0, 0, -1},
		FR:     0,
		F0:     math.Inf(1),
	}
}

func (f *Fiber) GetParams() map[string]float64 {
	loss := 0.0
	if len(f.Loss) == 1 {
		loss = f.Loss[0]
	}
	return map[string]float64{
		"length": f.Length,
		"gamma":  f.Gamma,
		"loss":   loss,
		"fr":     f.FR,
		"f0":     f.F0,
	}
}

func (f *Fiber) SetParam(name string, value float64) error {
	switch name {
	case "length":
		f.Length = value
	case "gamma":
		f.Gamma = value
	case "loss":
		f.Loss = []float64{value}
	case "fr":
		f.FR = value
	case "f0":
		f.F0 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// broadcastLoss expands the loss description to one coefficient per sample.
func broadcastLoss(loss []float64, n int) ([]float64, error) {
	out := make([]float64, n)
	switch len(loss) {
	case 0:
		// lossless
	case 1:
		for i := range out {
			out[i] = loss[0]
		}
	case n:
		copy(out, loss)
	default:
		return nil, fmt.Errorf("loss length %d does not match grid size %d", len(loss), n)
	}
	return out, nil
}

// DBPerKmToAlpha converts a loss figure in dB/km to a field attenuation
// coefficient in 1/m.
func DBPerKmToAlpha(dbkm float64) float64 {
	return dbkm * math.Ln10 / 10 / 1000
}
