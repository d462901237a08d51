package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fiber.Betas = []float64{0, 0, -0.5, 0.01}
	cfg.Fiber.FR = 0.18
	cfg.Run.Trajectory = true

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Fiber.FR != 0.18 || !loaded.Run.Trajectory {
		t.Error("round trip lost fields")
	}
	if len(loaded.Fiber.Betas) != 4 || loaded.Fiber.Betas[2] != -0.5 {
		t.Errorf("round trip lost betas: %v", loaded.Fiber.Betas)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}

	bad := DefaultConfig()
	bad.Grid.Samples = 33
	if bad.Validate() == nil {
		t.Error("odd sample count must fail validation")
	}

	bad = DefaultConfig()
	bad.Fiber.FR = 1.0
	if bad.Validate() == nil {
		t.Error("raman fraction 1 must fail validation")
	}
}

func TestPresetsValidate(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets registered")
	}
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset must return nil")
	}
}

func TestReferenceFrequency(t *testing.T) {
	cfg := DefaultConfig()
	if !math.IsInf(cfg.ReferenceFrequency(), 1) {
		t.Error("unset f0 must map to +Inf")
	}
	cfg.Fiber.F0 = 193.1
	if cfg.ReferenceFrequency() != 193.1 {
		t.Error("set f0 must pass through")
	}
}
