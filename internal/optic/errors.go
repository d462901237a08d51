package optic

import "errors"

// Domain errors for propagation runs. All are fatal: the adaptive stepper
// already reacts to local smoothness, so retrying without new inputs
// cannot succeed.
var (
	// ErrInvalidGrid indicates a grid with odd sample count or
	// non-positive time step.
	ErrInvalidGrid = errors.New("optic: invalid grid (sample count must be even, dt positive)")

	// ErrDispersionLength indicates a dispersion description that is
	// neither a Taylor coefficient list nor a full per-bin profile.
	ErrDispersionLength = errors.New("optic: dispersion profile length mismatch")

	// ErrRamanLength indicates a Raman response not sampled on the grid.
	ErrRamanLength = errors.New("optic: raman response length mismatch")

	// ErrDegenerateField indicates a zero-energy field during step
	// estimation.
	ErrDegenerateField = errors.New("optic: zero-energy field in step estimation")

	// ErrDivergence indicates non-finite samples after an integration
	// stage.
	ErrDivergence = errors.New("optic: non-finite field after integration stage")
)

// PropagationError wraps an error with the step and distance it occurred at.
type PropagationError struct {
	Step    int
	Z       float64
	Wrapped error
}

func (e *PropagationError) Error() string {
	return e.Wrapped.Error()
}

func (e *PropagationError) Unwrap() error {
	return e.Wrapped
}
