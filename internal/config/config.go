package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSamples   = 1024
	DefaultDt        = 0.01 // ps
	DefaultLength    = 1.0  // m
	DefaultGamma     = 1.0
	DefaultTolerance = 1e-5
	DefaultT0        = 0.5 // ps
	DefaultPeak      = 1.0 // W
)

type Config struct {
	Grid  GridConfig  `yaml:"grid"`
	Pulse PulseConfig `yaml:"pulse"`
	Fiber FiberConfig `yaml:"fiber"`
	Run   RunConfig   `yaml:"run"`
}

type GridConfig struct {
	Samples int     `yaml:"samples"`
	Dt      float64 `yaml:"dt"` // ps
}

type PulseConfig struct {
	Shape string  `yaml:"shape"` // gaussian, sech, soliton
	Peak  float64 `yaml:"peak"`  // W
	T0    float64 `yaml:"t0"`    // ps
	Chirp float64 `yaml:"chirp"`
	Order float64 `yaml:"order"` // soliton order, shape "soliton" only
}

type FiberConfig struct {
	Length   float64   `yaml:"length"` // m
	Gamma    float64   `yaml:"gamma"`  // 1/(W*m)
	LossDBKm float64   `yaml:"loss_db_km"`
	Betas    []float64 `yaml:"betas"` // ps^k/m
	FR       float64   `yaml:"fr"`
	F0       float64   `yaml:"f0"` // THz; 0 disables self-steepening
}

type RunConfig struct {
	Tolerance  float64 `yaml:"tolerance"`
	Trajectory bool    `yaml:"trajectory"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{Samples: DefaultSamples, Dt: DefaultDt},
		Pulse: PulseConfig{
			Shape: "gaussian",
			Peak:  DefaultPeak,
			T0:    DefaultT0,
			Order: 1,
		},
		Fiber: FiberConfig{
			Length: DefaultLength,
			Gamma:  DefaultGamma,
			Betas:  []float64{0, 0, -1},
		},
		Run: RunConfig{Tolerance: DefaultTolerance},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Grid.Samples <= 0 || c.Grid.Samples%2 != 0 {
		return fmt.Errorf("grid samples must be positive and even, got %d", c.Grid.Samples)
	}
	if c.Grid.Dt <= 0 {
		return fmt.Errorf("grid dt must be positive, got %g", c.Grid.Dt)
	}
	if c.Fiber.Length <= 0 {
		return fmt.Errorf("fiber length must be positive, got %g", c.Fiber.Length)
	}
	if c.Run.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Run.Tolerance)
	}
	if c.Fiber.FR < 0 || c.Fiber.FR >= 1 {
		return fmt.Errorf("raman fraction must be in [0, 1), got %g", c.Fiber.FR)
	}
	return nil
}

// ReferenceFrequency maps the configured f0 to the engine convention:
// zero or negative means steepening off, expressed as +Inf.
func (c *Config) ReferenceFrequency() float64 {
	if c.Fiber.F0 <= 0 {
		return math.Inf(1)
	}
	return c.Fiber.F0
}
