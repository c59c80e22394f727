package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFamily  = "quadrature"
	DefaultMethod  = "simpson"
	DefaultProblem = "sine"
	DefaultN       = 10
	DefaultEpsilon = 0.01
	DefaultMaxIter = 1000
)

// Families of methods.
const (
	FamilyODE        = "ode"
	FamilyQuadrature = "quadrature"
	FamilyRoot       = "root"
)

type Config struct {
	Family  string       `yaml:"family"`
	Method  string       `yaml:"method"`
	Problem string       `yaml:"problem"`
	Params  ParamsConfig `yaml:"params"`
	Sweep   SweepConfig  `yaml:"sweep"`
}

// ParamsConfig holds the numeric inputs. Which fields apply depends on the family:
// A, B, N for quadrature; X0, Y0, X with N or H for ODEs; A, B, Epsilon,
// MaxIter for root finders (A alone is the Newton guess).
type ParamsConfig struct {
	A       float64 `yaml:"a" json:"a"`
	B       float64 `yaml:"b" json:"b"`
	N       int     `yaml:"n" json:"n"`
	H       float64 `yaml:"h" json:"h,omitempty"`
	X0      float64 `yaml:"x0" json:"x0"`
	Y0      float64 `yaml:"y0" json:"y0"`
	X       float64 `yaml:"x" json:"x"`
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
	MaxIter int     `yaml:"max_iter" json:"max_iter"`
}

type SweepConfig struct {
	Ns      []int `yaml:"ns"`
	Workers int   `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Family:  DefaultFamily,
		Method:  DefaultMethod,
		Problem: DefaultProblem,
		Params: ParamsConfig{
			B:       3.141592653589793,
			N:       DefaultN,
			Epsilon: DefaultEpsilon,
			MaxIter: DefaultMaxIter,
		},
		Sweep: SweepConfig{
			Ns: []int{10, 20, 40, 80, 160},
		},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate checks the family name and the fields every family needs.
// Method-specific checks (odd Simpson panels, bracket signs) are left to the
// methods themselves.
func (c *Config) Validate() error {
	switch c.Family {
	case FamilyODE, FamilyQuadrature, FamilyRoot:
	default:
		return fmt.Errorf("unknown family %q (want %s, %s or %s)", c.Family, FamilyODE, FamilyQuadrature, FamilyRoot)
	}
	if c.Method == "" {
		return fmt.Errorf("method is required")
	}
	if c.Family == FamilyQuadrature && c.Params.N <= 0 {
		return fmt.Errorf("quadrature needs a positive panel count, got %d", c.Params.N)
	}
	if c.Family == FamilyODE && c.Params.N <= 0 && c.Params.H == 0 {
		return fmt.Errorf("ode needs a step count n or a step size h")
	}
	return nil
}
