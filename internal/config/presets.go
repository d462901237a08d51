package config

var Presets = map[string]*Config{
	"soliton": {
		Grid:  GridConfig{Samples: 1024, Dt: 0.01},
		Pulse: PulseConfig{Shape: "soliton", T0: 0.5, Order: 1},
		Fiber: FiberConfig{Length: 2.0, Gamma: 1.0, Betas: []float64{0, 0, -0.01}},
		Run:   RunConfig{Tolerance: 1e-5},
	},
	"higher-order": {
		Grid:  GridConfig{Samples: 2048, Dt: 0.005},
		Pulse: PulseConfig{Shape: "soliton", T0: 0.5, Order: 3},
		Fiber: FiberConfig{Length: 1.0, Gamma: 1.0, Betas: []float64{0, 0, -0.01}},
		Run:   RunConfig{Tolerance: 1e-6, Trajectory: true},
	},
	"smf28": {
		Grid:  GridConfig{Samples: 4096, Dt: 0.05},
		Pulse: PulseConfig{Shape: "gaussian", Peak: 0.1, T0: 5.0},
		Fiber: FiberConfig{
			Length:   1000,
			Gamma:    0.0013,
			LossDBKm: 0.2,
			Betas:    []float64{0, 0, -0.0217},
			FR:       0.18,
			F0:       193.1,
		},
		Run: RunConfig{Tolerance: 1e-5},
	},
	"supercontinuum": {
		Grid:  GridConfig{Samples: 8192, Dt: 0.001},
		Pulse: PulseConfig{Shape: "sech", Peak: 10000, T0: 0.0284},
		Fiber: FiberConfig{
			Length: 0.15,
			Gamma:  0.11,
			Betas:  []float64{0, 0, -0.0111, 8.71e-5},
			FR:     0.18,
			F0:     283.0,
		},
		Run: RunConfig{Tolerance: 1e-6, Trajectory: true},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
