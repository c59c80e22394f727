package config

import "sort"

// Presets reproduce the classic textbook exercises, grouped by family.
var Presets = map[string]map[string]*Config{
	FamilyODE: {
		"cooling_ball": {
			Family: FamilyODE, Method: "rk4", Problem: "cooling_ball",
			Params: ParamsConfig{X0: 0, Y0: 1200, X: 480, N: 10},
			Sweep:  SweepConfig{Ns: []int{10, 20, 40, 80, 160}},
		},
		"cooling_ball_h48": {
			Family: FamilyODE, Method: "rk2", Problem: "cooling_ball",
			Params: ParamsConfig{X0: 0, Y0: 1200, X: 480, H: 48},
		},
		"exp_decay": {
			Family: FamilyODE, Method: "rk4", Problem: "exp_decay",
			Params: ParamsConfig{X0: 0, Y0: 1, X: 1, N: 10},
			Sweep:  SweepConfig{Ns: []int{5, 10, 20, 40, 80}},
		},
	},
	FamilyQuadrature: {
		"sine": {
			Family: FamilyQuadrature, Method: "simpson", Problem: "sine",
			Params: ParamsConfig{A: 0, B: 3.141592653589793, N: 10},
			Sweep:  SweepConfig{Ns: []int{10, 20, 40, 80, 160}},
		},
		"square": {
			Family: FamilyQuadrature, Method: "trapezoid", Problem: "square",
			Params: ParamsConfig{A: 0, B: 1, N: 10},
			Sweep:  SweepConfig{Ns: []int{10, 20, 40, 80, 160}},
		},
	},
	FamilyRoot: {
		"sqrt2_bisection": {
			Family: FamilyRoot, Method: "bisection", Problem: "sqrt2",
			Params: ParamsConfig{A: 0, B: 2, Epsilon: DefaultEpsilon},
		},
		"sqrt2_newton": {
			Family: FamilyRoot, Method: "newton", Problem: "sqrt2",
			Params: ParamsConfig{A: 2, Epsilon: DefaultEpsilon},
		},
		"cubic_bisection": {
			Family: FamilyRoot, Method: "bisection", Problem: "cubic",
			Params: ParamsConfig{A: 1, B: 2, Epsilon: 1e-6},
		},
	},
}

// GetPreset returns a copy of the named preset, searching every family.
func GetPreset(name string) *Config {
	for _, presets := range Presets {
		if cfg, ok := presets[name]; ok {
			c := *cfg
			c.Sweep.Ns = append([]int(nil), cfg.Sweep.Ns...)
			return &c
		}
	}
	return nil
}

// ListPresets returns the sorted preset names of a family, or of all families
// when family is empty.
func ListPresets(family string) []string {
	var names []string
	for fam, presets := range Presets {
		if family != "" && fam != family {
			continue
		}
		for name := range presets {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
