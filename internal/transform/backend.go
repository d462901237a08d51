// Package transform provides the discrete Fourier transform backend used by
// the propagation engine, plus the single frequency-reordering utility
// shared by the grid and operator builders.
//
// The engine treats the transform as an external collaborator: any
// deterministic implementation of [Backend] operating on length-N complex
// sequences can be registered with [SetBackend].
package transform

import "github.com/mjibson/go-dsp/fft"

// Backend computes forward and inverse discrete Fourier transforms.
// Forward is unnormalized; Inverse carries the 1/N factor, so
// Inverse(Forward(x)) == x up to rounding.
type Backend interface {
	Name() string
	Forward(x []complex128) []complex128
	Inverse(x []complex128) []complex128
}

var active Backend = DSP{}

func SetBackend(b Backend) {
	if b != nil {
		active = b
	}
}

func Get() Backend {
	return active
}

// DSP is the default backend, built on go-dsp.
type DSP struct{}

func (DSP) Name() string { return "go-dsp" }

func (DSP) Forward(x []complex128) []complex128 {
	return fft.FFT(x)
}

func (DSP) Inverse(x []complex128) []complex128 {
	return fft.IFFT(x)
}
