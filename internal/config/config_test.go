package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Family != FamilyQuadrature {
		t.Errorf("expected family quadrature, got %s", cfg.Family)
	}
	if cfg.Params.N <= 0 {
		t.Error("n should be positive")
	}
	if cfg.Params.Epsilon != 0.01 {
		t.Errorf("expected default epsilon 0.01, got %f", cfg.Params.Epsilon)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cooling_ball")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.Y0 != 1200 || cfg.Params.X != 480 || cfg.Params.N != 10 {
		t.Errorf("unexpected cooling ball params %+v", cfg.Params)
	}
}

func TestGetPresetIsCopy(t *testing.T) {
	cfg := GetPreset("sine")
	cfg.Params.N = 99
	cfg.Sweep.Ns[0] = 1

	again := GetPreset("sine")
	if again.Params.N != 10 || again.Sweep.Ns[0] != 10 {
		t.Error("mutating a returned preset should not change the registry")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets(FamilyRoot); len(presets) != 3 {
		t.Errorf("expected 3 root presets, got %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent family")
	}
	if all := ListPresets(""); len(all) != 8 {
		t.Errorf("expected 8 presets overall, got %d", len(all))
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets("") {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"bad family", func(c *Config) { c.Family = "pde" }, false},
		{"no method", func(c *Config) { c.Method = "" }, false},
		{"zero panels", func(c *Config) { c.Params.N = 0 }, false},
		{"ode without steps", func(c *Config) { c.Family = FamilyODE; c.Params.N = 0 }, false},
		{"ode with h", func(c *Config) { c.Family = FamilyODE; c.Params.N = 0; c.Params.H = 0.1 }, true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: ok=%v, err=%v", tt.name, tt.ok, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	cfg := GetPreset("sqrt2_newton")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Method != "newton" || loaded.Params.A != 2 {
		t.Errorf("unexpected round trip %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("family: root\nmethod: bisection\nproblem: sqrt2\nparams:\n  a: 0\n  b: 2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Params.Epsilon != DefaultEpsilon {
		t.Errorf("expected default epsilon to survive, got %f", cfg.Params.Epsilon)
	}
	if cfg.Params.B != 2 {
		t.Errorf("expected b=2, got %f", cfg.Params.B)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("family: pde\nmethod: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}
