// Package viz renders pulse envelopes and spectra in the terminal.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pulselab/internal/analysis"
	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/metrics"
	"github.com/san-kum/pulselab/internal/optic"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// Intensity renders |u(t)|^2 over the time axis.
func Intensity(u optic.Field, g *grid.Grid, title string) string {
	power := u.Power()
	graph := asciigraph.Plot(downsample(power, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("t: %.2f .. %.2f ps", g.Time[0], g.Time[g.N-1])),
	)

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(graphStyle.Render(graph))
	b.WriteString("\n")
	b.WriteString(stats(power, g))
	return b.String()
}

// Spectrum renders the centered power spectrum on a log scale spanning
// 40 dB below the peak.
func Spectrum(spec optic.Field, g *grid.Grid, title string) string {
	power, omega := analysis.PowerSpectrum(spec, g)

	peak := 0.0
	for _, p := range power {
		if p > peak {
			peak = p
		}
	}
	db := make([]float64, len(power))
	floor := -40.0
	for i, p := range power {
		db[i] = floor
		if peak > 0 && p > 0 {
			if v := 10 * math.Log10(p/peak); v > floor {
				db[i] = v
			}
		}
	}

	graph := asciigraph.Plot(downsample(db, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("omega: %.1f .. %.1f rad/ps (dB rel. peak)", omega[0], omega[len(omega)-1])),
	)

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(graphStyle.Render(graph))
	return b.String()
}

func stats(power []float64, g *grid.Grid) string {
	peak := 0.0
	energy := 0.0
	for _, p := range power {
		energy += p * g.Dt
		if p > peak {
			peak = p
		}
	}
	fwhm := metrics.Width(power, g.Time)
	return statsStyle.Render("peak ") + valueStyle.Render(fmt.Sprintf("%.4g W", peak)) +
		statsStyle.Render("  energy ") + valueStyle.Render(fmt.Sprintf("%.4g pJ", energy)) +
		statsStyle.Render("  fwhm ") + valueStyle.Render(fmt.Sprintf("%.4g ps", fwhm))
}

// downsample keeps terminal plots readable for large grids by taking the
// per-bucket maximum, which preserves narrow peaks.
func downsample(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(data) / width
		hi := (i + 1) * len(data) / width
		max := data[lo]
		for _, v := range data[lo:hi] {
			if v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}
