package ssfm_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pulselab/internal/fiber"
	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/pulse"
	"github.com/san-kum/pulselab/internal/ssfm"
)

type zRecorder struct {
	zs  []float64
	dzs []float64
}

func (r *zRecorder) OnStep(u optic.Field, z, dz float64) {
	r.zs = append(r.zs, z)
	r.dzs = append(r.dzs, dz)
}

var _ = Describe("Propagator", func() {
	var (
		g   *grid.Grid
		f   *fiber.Fiber
		u0  optic.Field
		cfg optic.Config
	)

	BeforeEach(func() {
		var err error
		g, err = grid.New(256, 0.1)
		Expect(err).NotTo(HaveOccurred())

		// Lossless anomalous dispersion with pure Kerr nonlinearity.
		f = &fiber.Fiber{
			Length: 1.0,
			Gamma:  1.0,
			Betas:  []float64{0, 0, -1},
			F0:     math.Inf(1),
		}
		u0 = pulse.Gaussian(g.Time, 1.0, 1.0, 0)
		cfg = optic.DefaultConfig()
	})

	It("conserves energy without loss, Raman or steepening", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		res, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EnergyDrift(u0)).To(BeNumerically("<", 1e-3))
	})

	It("advances strictly monotonically and lands exactly on the length", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		rec := &zRecorder{}
		prop.AddObserver(rec)

		res, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(rec.zs).NotTo(BeEmpty())
		prev := 0.0
		for _, z := range rec.zs {
			Expect(z).To(BeNumerically(">", prev))
			prev = z
		}
		Expect(rec.zs[len(rec.zs)-1]).To(Equal(f.Length))
		Expect(res.Distance).To(Equal(f.Length))
		Expect(res.StepsTaken).To(Equal(len(rec.zs)))
	})

	It("rejects a degenerate zero-energy field", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = prop.Run(context.Background(), make(optic.Field, g.N), cfg)
		Expect(err).To(MatchError(optic.ErrDegenerateField))

		var perr *optic.PropagationError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("is bit-identical across re-runs with the same backend", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		res1, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())
		res2, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(res1.Field).To(Equal(res2.Field))
		Expect(res1.StepsTaken).To(Equal(res2.StepsTaken))
	})

	It("captures one trajectory snapshot per step plus the launch", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		cfg.CaptureTrajectory = true
		res, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Trajectory).NotTo(BeNil())
		Expect(res.Trajectory.Len()).To(Equal(res.StepsTaken + 1))
		Expect(res.Trajectory.Z[0]).To(BeZero())
		Expect(res.Trajectory.Z[res.Trajectory.Len()-1]).To(Equal(f.Length))
	})

	It("reports progress once per step", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		calls := 0
		last := 0.0
		prop.OnProgress(func(z, total float64) {
			calls++
			last = z / total
		})

		res, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(res.StepsTaken))
		Expect(last).To(Equal(1.0))
	})

	It("rejects a field that does not match the grid", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = prop.Run(context.Background(), make(optic.Field, 10), cfg)
		Expect(err).To(HaveOccurred())
	})

	It("stops when the context is canceled", func() {
		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = prop.Run(ctx, u0, cfg)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("runs with delayed Raman response and self-steepening enabled", func() {
		f.Length = 0.1
		f.FR = 0.18
		f.F0 = 193.1

		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		res, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Field.IsValid()).To(BeTrue())

		// The delayed response redistributes energy slowly; over a
		// short lossless span the drift stays small but nonzero.
		Expect(res.EnergyDrift(u0)).To(BeNumerically("<", 0.05))

		again, err := prop.Run(context.Background(), u0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(again.Field).To(Equal(res.Field))
	})

	It("propagates a fundamental soliton with bounded reshaping", func() {
		t0 := 1.0
		sol := pulse.Soliton(g.Time, 1, t0, -1, f.Gamma)

		prop, err := ssfm.New(g, f, nil)
		Expect(err).NotTo(HaveOccurred())

		res, err := prop.Run(context.Background(), sol, cfg)
		Expect(err).NotTo(HaveOccurred())

		// A fundamental soliton keeps its peak power and energy.
		Expect(res.EnergyDrift(sol)).To(BeNumerically("<", 1e-3))
		Expect(res.Field.PeakPower()).To(BeNumerically("~", sol.PeakPower(), 0.05))
	})
})
