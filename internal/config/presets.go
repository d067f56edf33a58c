package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"unit": {
		Params:    ParamsConfig{Kind: KindPhysical, M: 1, C: 1, K: 1},
		InitState: InitStateConfig{Pos: 2, Vel: 0},
		Window:    WindowConfig{Start: 0, End: 10},
		Dt:        0.001,
	},
	"undamped": {
		Params:    ParamsConfig{Kind: KindModal, Zeta: 0, Wn: 1},
		InitState: InitStateConfig{Pos: 1, Vel: 0},
		Window:    WindowConfig{Start: 0, End: 2 * math.Pi},
		Dt:        0.001,
	},
	"light": {
		Params:    ParamsConfig{Kind: KindModal, Zeta: 0.1, Wn: 2},
		InitState: InitStateConfig{Pos: 1, Vel: 0},
		Window:    WindowConfig{Start: 0, End: 30},
		Dt:        0.001,
	},
	"stiff": {
		Params:    ParamsConfig{Kind: KindPhysical, M: 0.5, C: 0.2, K: 200},
		InitState: InitStateConfig{Pos: 0, Vel: 1},
		Window:    WindowConfig{Start: 0, End: 5},
		Dt:        0.0005,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
