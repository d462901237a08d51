package ssfm

import (
	"context"
	"fmt"

	"github.com/san-kum/pulselab/internal/fiber"
	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/transform"
)

// Propagator drives a field through a fiber, one adaptive symmetric
// split step at a time.
type Propagator struct {
	grid *grid.Grid
	fib  *fiber.Fiber
	b    transform.Backend

	op  optic.Operator
	hrw optic.Operator

	metrics   []optic.Metric
	observers []optic.Observer
	progress  optic.ProgressFunc
}

// New freezes the linear operator and Raman kernel for the given grid and
// medium. A nil backend selects the registered default. When the medium
// carries a Raman fraction, the Blow-Wood response sampled on the grid is
// used unless SetRamanResponse supplies another one.
func New(g *grid.Grid, f *fiber.Fiber, b transform.Backend) (*Propagator, error) {
	if b == nil {
		b = transform.Get()
	}

	op, err := f.LinearOperator(g)
	if err != nil {
		return nil, err
	}

	p := &Propagator{grid: g, fib: f, b: b, op: op}

	if f.FR != 0 {
		hrw, err := fiber.RamanKernel(fiber.RamanResponse(g.N, g.Dt), g.N, b)
		if err != nil {
			return nil, err
		}
		p.hrw = hrw
	}
	return p, nil
}

// SetRamanResponse replaces the default time-domain Raman response with a
// caller-supplied one sampled on the run's grid.
func (p *Propagator) SetRamanResponse(hr []complex128) error {
	hrw, err := fiber.RamanKernel(hr, p.grid.N, p.b)
	if err != nil {
		return err
	}
	p.hrw = hrw
	return nil
}

func (p *Propagator) AddMetric(m optic.Metric)     { p.metrics = append(p.metrics, m) }
func (p *Propagator) AddObserver(o optic.Observer) { p.observers = append(p.observers, o) }

// OnProgress installs a callback invoked once per completed step.
func (p *Propagator) OnProgress(fn optic.ProgressFunc) { p.progress = fn }

// Run propagates u0 over the full fiber length. Any estimator or stage
// error is fatal: no partial result is returned.
func (p *Propagator) Run(ctx context.Context, u0 optic.Field, cfg optic.Config) (*optic.Result, error) {
	if len(u0) != p.grid.N {
		return nil, fmt.Errorf("input field length %d does not match grid size %d", len(u0), p.grid.N)
	}
	if cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}
	if !u0.IsValid() {
		return nil, optic.ErrDivergence
	}

	st := newStepper(p.grid.N, p.grid.Dt, p.fib.Gamma, p.fib.FR, p.fib.F0, p.op, p.hrw, p.b)

	for _, m := range p.metrics {
		m.Reset()
	}

	u := u0.Clone()
	spec := optic.Field(p.b.Forward(u))
	z := 0.0
	total := p.fib.Length
	steps := 0

	result := &optic.Result{Metrics: make(map[string]float64)}
	if cfg.CaptureTrajectory {
		result.Trajectory = &optic.Trajectory{}
		result.Trajectory.Append(z, u, spec)
	}

	for z < total {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if cfg.MaxSteps > 0 && steps >= cfg.MaxSteps {
			return nil, &optic.PropagationError{Step: steps, Z: z,
				Wrapped: fmt.Errorf("step budget %d exhausted", cfg.MaxSteps)}
		}

		remaining := total - z
		dz, err := stepSize(u, spec, p.op, p.fib.Gamma, cfg.Tolerance, remaining)
		if err != nil {
			return nil, &optic.PropagationError{Step: steps, Z: z, Wrapped: err}
		}

		u, spec, err = st.step(u, dz)
		if err != nil {
			return nil, &optic.PropagationError{Step: steps, Z: z, Wrapped: err}
		}

		if dz >= remaining {
			z = total
		} else {
			z += dz
		}
		steps++

		for _, m := range p.metrics {
			m.Observe(u, z)
		}
		for _, o := range p.observers {
			o.OnStep(u, z, dz)
		}
		if p.progress != nil {
			p.progress(z, total)
		}
		if result.Trajectory != nil {
			result.Trajectory.Append(z, u, spec)
		}
	}

	result.Field = u
	result.Spectrum = spec
	result.Distance = z
	result.StepsTaken = steps
	for _, m := range p.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
