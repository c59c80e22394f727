package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
)

// Root finder names.
const (
	MethodBisection     = "bisection"
	MethodNewton        = "newton"
	MethodNumericNewton = "numeric_newton"
)

type Registry struct {
	problems map[string]*Problem
}

func NewRegistry() *Registry {
	r := &Registry{problems: make(map[string]*Problem)}
	for _, p := range builtinProblems() {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a problem.
func (r *Registry) Register(p *Problem) {
	r.problems[p.Name] = p
}

func (r *Registry) GetProblem(name string) (*Problem, error) {
	p, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return p, nil
}

// ListProblems returns the sorted names of problems usable by family.
func (r *Registry) ListProblems(family string) []string {
	names := make([]string, 0, len(r.problems))
	for name, p := range r.problems {
		if p.supports(family) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ListMethods returns the method names of a family.
func (r *Registry) ListMethods(family string) []string {
	switch family {
	case config.FamilyODE:
		return integrators.Names()
	case config.FamilyQuadrature:
		return quadrature.Names()
	case config.FamilyRoot:
		return []string{MethodBisection, MethodNewton, MethodNumericNewton}
	}
	return nil
}

// CheckMethod verifies that method belongs to family.
func (r *Registry) CheckMethod(family, method string) error {
	for _, m := range r.ListMethods(family) {
		if m == method {
			return nil
		}
	}
	return fmt.Errorf("%w: %s method %q (available: %v)", numeric.ErrUnknownMethod, family, method, r.ListMethods(family))
}

func (p *Problem) supports(family string) bool {
	switch family {
	case config.FamilyODE:
		return p.Slope != nil
	case config.FamilyQuadrature, config.FamilyRoot:
		return p.F != nil
	}
	return false
}
