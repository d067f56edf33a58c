package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
	"github.com/hhakhilesh/DamperMassSpring/internal/sim"
)

const (
	KindPhysical = "physical"
	KindModal    = "modal"
)

const (
	DefaultDt    = 0.001
	DefaultEnd   = 10.0
	DefaultMass  = 1.0
	DefaultDamp  = 1.0
	DefaultStiff = 1.0
	DefaultPos   = 2.0
)

type Config struct {
	Params    ParamsConfig    `yaml:"params" json:"params"`
	InitState InitStateConfig `yaml:"init_state" json:"init_state"`
	Window    WindowConfig    `yaml:"window" json:"window"`
	Dt        float32         `yaml:"dt" json:"dt"`
}

// ParamsConfig selects one parameterization by Kind; the other pair is
// ignored.
type ParamsConfig struct {
	Kind string  `yaml:"kind" json:"kind"`
	M    float32 `yaml:"m,omitempty" json:"m,omitempty"`
	C    float32 `yaml:"c,omitempty" json:"c,omitempty"`
	K    float32 `yaml:"k,omitempty" json:"k,omitempty"`
	Zeta float32 `yaml:"zeta,omitempty" json:"zeta,omitempty"`
	Wn   float32 `yaml:"wn,omitempty" json:"wn,omitempty"`
}

type InitStateConfig struct {
	Pos float32 `yaml:"pos" json:"pos"`
	Vel float32 `yaml:"vel" json:"vel"`
}

type WindowConfig struct {
	Start float32 `yaml:"start" json:"start"`
	End   float32 `yaml:"end" json:"end"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: ParamsConfig{
			Kind: KindPhysical,
			M:    DefaultMass,
			C:    DefaultDamp,
			K:    DefaultStiff,
		},
		InitState: InitStateConfig{Pos: DefaultPos},
		Window:    WindowConfig{End: DefaultEnd},
		Dt:        DefaultDt,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg in the same yaml layout Load reads.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ModelParams maps the config onto a physics parameterization.
func (c *Config) ModelParams() (physics.Params, error) {
	switch strings.ToLower(c.Params.Kind) {
	case KindPhysical, "":
		return physics.Physical{M: c.Params.M, C: c.Params.C, K: c.Params.K}, nil
	case KindModal:
		return physics.Modal{Zeta: c.Params.Zeta, Wn: c.Params.Wn}, nil
	}
	return nil, fmt.Errorf("%w: unknown params kind %q (want %s or %s)",
		dynamo.ErrInvalidParameter, c.Params.Kind, KindPhysical, KindModal)
}

// Build constructs the model and a ready setup from the config.
func (c *Config) Build() (*physics.Oscillator, *sim.Setup, error) {
	p, err := c.ModelParams()
	if err != nil {
		return nil, nil, err
	}
	osc, err := physics.New(p)
	if err != nil {
		return nil, nil, err
	}

	setup := &sim.Setup{}
	setup.SetInitialState(c.InitState.Pos, c.InitState.Vel)
	if err := setup.SetTimeWindow(c.Window.End, c.Window.Start); err != nil {
		return nil, nil, err
	}
	return osc, setup, nil
}

// Validate runs every check Build and the integrator would run, without
// keeping the results.
func (c *Config) Validate() error {
	if _, _, err := c.Build(); err != nil {
		return err
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidStepSize, c.Dt)
	}
	return nil
}
