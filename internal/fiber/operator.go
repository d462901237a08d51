package fiber

import (
	"fmt"

	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

// LinearOperator builds the per-unit-length loss/dispersion multiplier in
// transform-native frequency ordering. The result is frozen for the run:
// the linear half-step exponentiates it with the current step size.
func (f *Fiber) LinearOperator(g *grid.Grid) (optic.Operator, error) {
	n := g.N
	loss, err := broadcastLoss(f.Loss, n)
	if err != nil {
		return nil, err
	}

	if len(f.Profile) > 0 {
		if len(f.Profile) != n {
			return nil, fmt.Errorf("explicit profile length %d for grid size %d: %w",
				len(f.Profile), n, optic.ErrDispersionLength)
		}
		// The profile is centered; align the loss with it, combine,
		// and realign the whole operator into native order.
		shifted := transform.Shift(loss)
		centered := make(optic.Operator, n)
		for i := 0; i < n; i++ {
			centered[i] = complex(-shifted[i]/2, 0) - 1i*f.Profile[i]
		}
		return optic.Operator(transform.Shift(centered)), nil
	}

	if len(f.Betas) >= n {
		return nil, fmt.Errorf("%d taylor coefficients for grid size %d: %w",
			len(f.Betas), n, optic.ErrDispersionLength)
	}

	// Native omega is already in place, so the series accumulates directly.
	op := make(optic.Operator, n)
	for k := 0; k < n; k++ {
		w := g.Omega[k]
		beta := 0.0
		pow := 1.0
		fact := 1.0
		for m, b := range f.Betas {
			if m > 0 {
				pow *= w
				fact *= float64(m)
			}
			beta += b * pow / fact
		}
		op[k] = complex(-loss[k]/2, -beta)
	}
	return op, nil
}
