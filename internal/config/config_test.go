package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
	"github.com/hhakhilesh/DamperMassSpring/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params.Kind != KindPhysical {
		t.Errorf("expected kind physical, got %s", cfg.Params.Kind)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte(`params:
  kind: modal
  zeta: 0.25
  wn: 3
init_state:
  pos: 1.5
window:
  start: 1
  end: 4
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Params.Kind != KindModal || cfg.Params.Zeta != 0.25 || cfg.Params.Wn != 3 {
		t.Errorf("unexpected params: %+v", cfg.Params)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("missing dt should keep default, got %v", cfg.Dt)
	}

	osc, setup, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := osc.Physical(); !errors.Is(err, dynamo.ErrUnavailableParameter) {
		t.Errorf("modal config should not expose m,c,k: %v", err)
	}
	if setup.Phase() != sim.PhaseReady {
		t.Errorf("setup phase = %v", setup.Phase())
	}
	r, _ := setup.Ready()
	if r.State().X != 1.5 || r.Window() != (sim.TimeWindow{Start: 1, End: 4}) {
		t.Errorf("unexpected snapshot: %+v %+v", r.State(), r.Window())
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("params: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("stiff")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want error
	}{
		{"unknown kind", func(c *Config) { c.Params.Kind = "bogus" }, dynamo.ErrInvalidParameter},
		{"zero damping", func(c *Config) { c.Params.C = 0 }, dynamo.ErrInvalidParameter},
		{"negative wn", func(c *Config) { c.Params = ParamsConfig{Kind: KindModal, Wn: -1} }, dynamo.ErrInvalidParameter},
		{"negative start", func(c *Config) { c.Window.Start = -1 }, dynamo.ErrInvalidTimeWindow},
		{"reversed window", func(c *Config) { c.Window = WindowConfig{Start: 5, End: 1} }, dynamo.ErrInvalidTimeWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if _, _, err := cfg.Build(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Dt = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidStepSize) {
		t.Errorf("expected ErrInvalidStepSize, got %v", err)
	}
}

func TestModelParams(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.ModelParams()
	if err != nil {
		t.Fatal(err)
	}
	if p != (physics.Physical{M: 1, C: 1, K: 1}) {
		t.Errorf("ModelParams() = %#v", p)
	}

	cfg.Params.Kind = "MODAL"
	cfg.Params.Wn = 2
	p, err = cfg.ModelParams()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(physics.Modal); !ok {
		t.Errorf("kind should be case-insensitive, got %#v", p)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("unit")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.InitState.Pos != 2 {
		t.Errorf("expected pos 2, got %f", cfg.InitState.Pos)
	}

	cfg.InitState.Pos = 99
	if Presets["unit"].InitState.Pos != 2 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
