package ssfm

import (
	"math"

	"github.com/san-kum/pulselab/internal/optic"
)

// stepSize computes the next adaptive step from the mismatch between the
// nonlinearity-induced and dispersion-induced frequency spreads. The
// nonlinear spread measures the instantaneous phase rate gamma*|u|^2
// about its energy-weighted mean in the time domain; the dispersive
// spread measures i*L about its spectral-energy-weighted mean. Only the
// means are normalized: the spreads keep their energy scale, so the
// unnormalized forward transform's Parseval factor enters deltaD. The
// step is clamped so the run never overshoots the remaining length.
func stepSize(u, spec optic.Field, op optic.Operator, gamma, tol, remaining float64) (float64, error) {
	deltaN, err := weightedSpreadTime(u, gamma)
	if err != nil {
		return 0, err
	}
	deltaD, err := weightedSpreadFreq(spec, op)
	if err != nil {
		return 0, err
	}

	dz := math.Cbrt(tol) / math.Sqrt(deltaD*deltaN)
	if !(dz > 0) || dz > remaining {
		dz = remaining
	}
	return dz, nil
}

func weightedSpreadTime(u optic.Field, gamma float64) (float64, error) {
	var total, mean float64
	power := u.Power()
	for _, p := range power {
		total += p
		mean += gamma * p * p
	}
	if total == 0 {
		return 0, optic.ErrDegenerateField
	}
	mean /= total

	variance := 0.0
	for _, p := range power {
		d := gamma*p - mean
		variance += d * d * p
	}
	return math.Sqrt(variance), nil
}

func weightedSpreadFreq(spec optic.Field, op optic.Operator) (float64, error) {
	var total float64
	var mean complex128
	power := spec.Power()
	for k, p := range power {
		total += p
		mean += complex(p, 0) * (1i * op[k])
	}
	if total == 0 {
		return 0, optic.ErrDegenerateField
	}
	mean /= complex(total, 0)

	variance := 0.0
	for k, p := range power {
		d := 1i*op[k] - mean
		re, im := real(d), imag(d)
		variance += (re*re + im*im) * p
	}
	return math.Sqrt(variance), nil
}
