package ssfm

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

// stepper advances the field across one symmetric split step. The
// nonlinear operator is integrated with classic RK4 in the interaction
// picture: the first stage's derivative and the low-order weighted
// combination pass through an extra linear half-step while k4 does not.
// That asymmetry is part of the step composition and must not be
// rebalanced.
type stepper struct {
	n     int
	dt    float64
	gamma float64
	fr    float64
	f0    float64
	op    optic.Operator
	hrw   optic.Operator
	b     transform.Backend

	halfstep []complex128
}

func newStepper(n int, dt float64, gamma, fr, f0 float64, op, hrw optic.Operator, b transform.Backend) *stepper {
	return &stepper{
		n:        n,
		dt:       dt,
		gamma:    gamma,
		fr:       fr,
		f0:       f0,
		op:       op,
		hrw:      hrw,
		b:        b,
		halfstep: make([]complex128, n),
	}
}

// lin applies the current linear half-step in the frequency domain.
func (s *stepper) lin(u []complex128) []complex128 {
	spec := s.b.Forward(u)
	for k := range spec {
		spec[k] *= s.halfstep[k]
	}
	return s.b.Inverse(spec)
}

// step advances the field by dz and returns the new field with its
// spectrum.
func (s *stepper) step(u optic.Field, dz float64) (optic.Field, optic.Field, error) {
	for k := range s.halfstep {
		s.halfstep[k] = cmplx.Exp(s.op[k] * complex(dz/2, 0))
	}

	uip := s.lin(u)

	k1 := s.lin(s.nonlinear(uip, dz))
	k2 := s.nonlinear(addScaled(uip, k1, 0.5), dz)
	k3 := s.nonlinear(addScaled(uip, k2, 0.5), dz)
	k4 := s.nonlinear(s.lin(addScaled(uip, k3, 1)), dz)
	for _, k := range [][]complex128{k1, k2, k3, k4} {
		if !optic.Field(k).IsValid() {
			return nil, nil, optic.ErrDivergence
		}
	}

	comb := make([]complex128, s.n)
	for i := range comb {
		comb[i] = uip[i] + k1[i]/6 + k2[i]/3 + k3[i]/3
	}
	next := optic.Field(s.lin(comb))
	for i := range next {
		next[i] += k4[i] / 6
	}
	if !next.IsValid() {
		return nil, nil, optic.ErrDivergence
	}

	return next, optic.Field(s.b.Forward(next)), nil
}

// nonlinear evaluates the full-step nonlinear derivative at u: the
// instantaneous Kerr term, the delayed Raman convolution and the
// self-steepening correction.
func (s *stepper) nonlinear(u []complex128, dz float64) []complex128 {
	bracket := make([]complex128, s.n)
	kerr := 1 - s.fr
	if s.fr != 0 {
		sq := make([]complex128, s.n)
		for i, v := range u {
			re, im := real(v), imag(v)
			sq[i] = complex(re*re+im*im, 0)
		}
		spec := s.b.Forward(sq)
		for k := range spec {
			spec[k] *= s.hrw[k]
		}
		conv := s.b.Inverse(spec)
		raman := complex(s.dt*s.fr, 0)
		for i, v := range u {
			bracket[i] = v*complex(kerr, 0)*sq[i] + raman*v*conv[i]
		}
	} else {
		for i, v := range u {
			re, im := real(v), imag(v)
			bracket[i] = v * complex(kerr*(re*re+im*im), 0)
		}
	}

	out := make([]complex128, s.n)
	mix := complex(0, -s.gamma*dz)
	for i := range out {
		out[i] = mix * bracket[i]
	}

	if c := s.steepening(dz); c != 0 {
		grad := gradient(bracket)
		steep := complex(c, 0)
		for i := range out {
			out[i] -= steep * grad[i]
		}
	}
	return out
}

// steepening returns the derivative-term coefficient; a non-finite or
// non-positive reference frequency disables the correction.
func (s *stepper) steepening(dz float64) float64 {
	if s.f0 <= 0 || math.IsInf(s.f0, 1) {
		return 0
	}
	return s.gamma * dz / (2 * math.Pi * s.f0 * s.dt)
}

// gradient is a unit-spacing centered difference, one-sided at the ends.
func gradient(f []complex128) []complex128 {
	n := len(f)
	g := make([]complex128, n)
	if n < 2 {
		return g
	}
	g[0] = f[1] - f[0]
	g[n-1] = f[n-1] - f[n-2]
	for i := 1; i < n-1; i++ {
		g[i] = (f[i+1] - f[i-1]) / 2
	}
	return g
}

func addScaled(u, k []complex128, w float64) []complex128 {
	out := make([]complex128, len(u))
	c := complex(w, 0)
	for i := range u {
		out[i] = u[i] + c*k[i]
	}
	return out
}
