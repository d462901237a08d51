// Package analysis post-processes propagation results for reporting.
package analysis

import (
	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/metrics"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

// PowerSpectrum returns |U|^2 reordered from transform-native to centered
// frequency ordering, alongside the matching centered frequency axis.
func PowerSpectrum(spec optic.Field, g *grid.Grid) (power, omega []float64) {
	return transform.Shift(spec.Power()), transform.Shift(g.Omega)
}

// SpectralCentroid returns the energy-weighted mean angular frequency.
func SpectralCentroid(spec optic.Field, g *grid.Grid) float64 {
	var total, mean float64
	power := spec.Power()
	for k, p := range power {
		total += p
		mean += p * g.Omega[k]
	}
	if total == 0 {
		return 0
	}
	return mean / total
}

// SpectralRMSWidth returns the energy-weighted RMS spectral width about
// the centroid.
func SpectralRMSWidth(spec optic.Field, g *grid.Grid) float64 {
	return metrics.RMSWidth(spec.Power(), g.Omega)
}
