package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pulselab/internal/config"
	"github.com/san-kum/pulselab/internal/fiber"
	"github.com/san-kum/pulselab/internal/grid"
	"github.com/san-kum/pulselab/internal/metrics"
	"github.com/san-kum/pulselab/internal/optic"
	"github.com/san-kum/pulselab/internal/pulse"
	"github.com/san-kum/pulselab/internal/ssfm"
	"github.com/san-kum/pulselab/internal/storage"
	"github.com/san-kum/pulselab/internal/transform"
	"github.com/san-kum/pulselab/internal/viz"
)

var (
	dataDir    string
	samples    int
	dt         float64
	length     float64
	gamma      float64
	lossDBKm   float64
	betasFlag  string
	fr         float64
	f0         float64
	tol        float64
	shape      string
	peak       float64
	t0         float64
	chirp      float64
	order      float64
	preset     string
	configFile string
	trajectory bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulselab",
		Short: "optical pulse propagation lab (GNLSE split-step solver)",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pulselab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [label]",
		Short: "propagate a pulse and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPropagation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [label]",
		Short: "propagate with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's intensity profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "plot a stored run's power spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSpectrum,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], args[1])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [file]",
		Short: "export a stored run's field to CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(args[0], args[1])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-16s %d samples, %g m, gamma=%g, fr=%g\n",
					name, cfg.Grid.Samples, cfg.Fiber.Length, cfg.Fiber.Gamma, cfg.Fiber.FR)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, spectrumCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "grid samples (even)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (ps)")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "fiber length (m)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "nonlinearity (1/(W*m))")
	cmd.Flags().Float64Var(&lossDBKm, "loss", 0, "loss (dB/km)")
	cmd.Flags().StringVar(&betasFlag, "betas", "0,0,-1", "dispersion taylor coefficients (ps^k/m)")
	cmd.Flags().Float64Var(&fr, "fr", 0, "fractional raman contribution")
	cmd.Flags().Float64Var(&f0, "f0", 0, "reference frequency (THz), 0 disables self-steepening")
	cmd.Flags().Float64Var(&tol, "tol", config.DefaultTolerance, "step-size tolerance")
	cmd.Flags().StringVar(&shape, "pulse", "gaussian", "pulse shape: gaussian, sech, soliton")
	cmd.Flags().Float64Var(&peak, "peak", config.DefaultPeak, "peak power (W)")
	cmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "pulse width T0 (ps)")
	cmd.Flags().Float64Var(&chirp, "chirp", 0, "linear chirp (gaussian only)")
	cmd.Flags().Float64Var(&order, "order", 1, "soliton order (soliton only)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
	cmd.Flags().BoolVar(&trajectory, "trajectory", false, "capture per-step snapshots")
}

// resolveConfig merges preset, config file and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("samples") {
		cfg.Grid.Samples = samples
	}
	if set("dt") {
		cfg.Grid.Dt = dt
	}
	if set("length") {
		cfg.Fiber.Length = length
	}
	if set("gamma") {
		cfg.Fiber.Gamma = gamma
	}
	if set("loss") {
		cfg.Fiber.LossDBKm = lossDBKm
	}
	if set("betas") {
		betas, err := parseBetas(betasFlag)
		if err != nil {
			return nil, err
		}
		cfg.Fiber.Betas = betas
	}
	if set("fr") {
		cfg.Fiber.FR = fr
	}
	if set("f0") {
		cfg.Fiber.F0 = f0
	}
	if set("tol") {
		cfg.Run.Tolerance = tol
	}
	if set("pulse") {
		cfg.Pulse.Shape = shape
	}
	if set("peak") {
		cfg.Pulse.Peak = peak
	}
	if set("t0") {
		cfg.Pulse.T0 = t0
	}
	if set("chirp") {
		cfg.Pulse.Chirp = chirp
	}
	if set("order") {
		cfg.Pulse.Order = order
	}
	if set("trajectory") {
		cfg.Run.Trajectory = trajectory
	}

	return cfg, cfg.Validate()
}

type session struct {
	cfg  *config.Config
	grid *grid.Grid
	fib  *fiber.Fiber
	prop *ssfm.Propagator
	u0   optic.Field
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Grid.Samples, cfg.Grid.Dt)
	if err != nil {
		return nil, err
	}

	fib := &fiber.Fiber{
		Length: cfg.Fiber.Length,
		Gamma:  cfg.Fiber.Gamma,
		Loss:   []float64{fiber.DBPerKmToAlpha(cfg.Fiber.LossDBKm)},
		Betas:  cfg.Fiber.Betas,
		FR:     cfg.Fiber.FR,
		F0:     cfg.ReferenceFrequency(),
	}

	u0, err := buildPulse(cfg, g)
	if err != nil {
		return nil, err
	}

	prop, err := ssfm.New(g, fib, nil)
	if err != nil {
		return nil, err
	}
	prop.AddMetric(metrics.NewEnergy(g.Dt))
	prop.AddMetric(metrics.NewPeakPower())
	prop.AddMetric(metrics.NewFWHM(g.Time))

	return &session{cfg: cfg, grid: g, fib: fib, prop: prop, u0: u0}, nil
}

func buildPulse(cfg *config.Config, g *grid.Grid) (optic.Field, error) {
	p := cfg.Pulse
	switch p.Shape {
	case "gaussian":
		return pulse.Gaussian(g.Time, p.Peak, p.T0, p.Chirp), nil
	case "sech":
		return pulse.Sech(g.Time, p.Peak, p.T0), nil
	case "soliton":
		beta2 := 0.0
		if len(cfg.Fiber.Betas) > 2 {
			beta2 = cfg.Fiber.Betas[2]
		}
		if beta2 == 0 {
			return nil, fmt.Errorf("soliton pulse needs a non-zero beta2")
		}
		return pulse.Soliton(g.Time, p.Order, p.T0, beta2, cfg.Fiber.Gamma), nil
	default:
		return nil, fmt.Errorf("unknown pulse shape: %s", p.Shape)
	}
}

func runConfig(cfg *config.Config) optic.Config {
	rc := optic.DefaultConfig()
	rc.Tolerance = cfg.Run.Tolerance
	rc.CaptureTrajectory = cfg.Run.Trajectory
	return rc
}

func label(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Pulse.Shape
}

func runPropagation(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	s.prop.OnProgress(func(z, total float64) {
		fmt.Fprintf(os.Stderr, "\rpropagating: %5.1f%%", 100*z/total)
	})

	res, err := s.prop.Run(context.Background(), s.u0, runConfig(s.cfg))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Label:     label(args, s.cfg),
		Samples:   s.grid.N,
		Dt:        s.grid.Dt,
		Length:    s.fib.Length,
		Gamma:     s.fib.Gamma,
		Tolerance: s.cfg.Run.Tolerance,
	}, s.grid.Time, res)
	if err != nil {
		return err
	}

	fmt.Println(viz.Intensity(res.Field, s.grid, "output pulse"))
	fmt.Printf("\nrun %s: %d steps, drift %.2e\n", runID, res.StepsTaken, res.EnergyDrift(s.u0))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	res, err := viz.RunLive(context.Background(), s.prop, s.grid, s.u0,
		runConfig(s.cfg), s.fib.Length, label(args, s.cfg))
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	fmt.Printf("finished: %d steps, drift %.2e\n", res.StepsTaken, res.EnergyDrift(s.u0))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAMPLES\tDT\tLENGTH\tSTEPS\tENERGY")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%d\t%.4g\n",
			r.ID, r.Samples, r.Dt, r.Length, r.Steps, r.Metrics["energy"])
	}
	return w.Flush()
}

func loadRun(runID string) (*grid.Grid, optic.Field, error) {
	store := storage.New(dataDir)
	meta, err := store.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	_, u, err := store.LoadField(runID)
	if err != nil {
		return nil, nil, err
	}
	g, err := grid.New(meta.Samples, meta.Dt)
	if err != nil {
		return nil, nil, err
	}
	if len(u) != g.N {
		return nil, nil, fmt.Errorf("stored field has %d samples, metadata says %d", len(u), g.N)
	}
	return g, u, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	g, u, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.Intensity(u, g, args[0]))
	return nil
}

func plotSpectrum(cmd *cobra.Command, args []string) error {
	g, u, err := loadRun(args[0])
	if err != nil {
		return err
	}
	spec := optic.Field(transform.Get().Forward(u))
	fmt.Println(viz.Spectrum(spec, g, args[0]+" spectrum"))
	return nil
}

func parseBetas(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	betas := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad beta %q: %w", p, err)
		}
		betas = append(betas, v)
	}
	return betas, nil
}
