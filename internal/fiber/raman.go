package fiber

import (
	"math"

	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

// Blow-Wood two-timescale response, in ps.
const (
	ramanTau1 = 0.0122
	ramanTau2 = 0.032
)

// RamanResponse samples the normalized Blow-Wood response
// h(t) = (tau1^2+tau2^2)/(tau1*tau2^2) * exp(-t/tau2) * sin(t/tau1)
// causally on t = 0, dt, ..., (n-1)*dt. The response integrates to one,
// so the dt prefactor of the Raman convolution term performs the
// Riemann sum.
func RamanResponse(n int, dt float64) []complex128 {
	coef := (ramanTau1*ramanTau1 + ramanTau2*ramanTau2) / (ramanTau1 * ramanTau2 * ramanTau2)
	hr := make([]complex128, n)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		hr[i] = complex(coef*math.Exp(-t/ramanTau2)*math.Sin(t/ramanTau1), 0)
	}
	return hr
}

// RamanKernel converts a time-domain response sampled on the run's grid
// into its frequency-domain form, frozen for the run.
func RamanKernel(hr []complex128, n int, b transform.Backend) (optic.Operator, error) {
	if len(hr) != n {
		return nil, optic.ErrRamanLength
	}
	return optic.Operator(b.Forward(hr)), nil
}
