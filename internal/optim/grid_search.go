// Package optim searches method parameters for the cheapest accurate run.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
)

// Objectives a search can minimize.
const (
	ObjectiveEvals  = "evals"
	ObjectiveAbsErr = "abs_err"
	ObjectiveTime   = "elapsed"
)

// ErrNoFeasible is returned when no grid point satisfies the error cap.
var ErrNoFeasible = errors.New("optim: no parameter combination meets the error cap")

// Objective reads the named quantity from a result.
func Objective(res *experiment.Result, name string) (float64, error) {
	switch name {
	case ObjectiveEvals:
		return float64(res.Evals), nil
	case ObjectiveAbsErr:
		return res.AbsErr, nil
	case ObjectiveTime:
		return res.Elapsed.Seconds(), nil
	}
	return 0, fmt.Errorf("unknown objective %q (want %s, %s or %s)", name, ObjectiveEvals, ObjectiveAbsErr, ObjectiveTime)
}

// Apply sets a named parameter on cfg. Names follow the yaml keys of
// config.ParamsConfig.
func Apply(cfg *config.Config, name string, v float64) error {
	p := &cfg.Params
	switch name {
	case "n":
		p.N = int(v)
		p.H = 0
	case "h":
		p.H = v
		p.N = 0
	case "a":
		p.A = v
	case "b":
		p.B = v
	case "epsilon":
		p.Epsilon = v
	case "max_iter":
		p.MaxIter = int(v)
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	// MaxAbsErr rejects points whose absolute error exceeds it. Zero disables the cap.
	MaxAbsErr float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Best is the winning grid point.
type Best struct {
	Params    map[string]float64
	Value     float64
	Result    *experiment.Result
	Evaluated int
	Failed    int
}

// Search runs every grid point built from base and returns the one with the
// lowest objective. Points whose run fails are counted and skipped. Ties go
// to the point visited first.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, registry *experiment.Registry, objective string) (*Best, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if _, err := Objective(&experiment.Result{}, objective); err != nil {
		return nil, err
	}

	s := &search{
		grid:      g,
		base:      base,
		registry:  registry,
		objective: objective,
		best:      &Best{Value: math.Inf(1)},
	}
	if err := s.recurse(ctx, 0, make(map[string]float64)); err != nil {
		return nil, err
	}
	if s.best.Result == nil {
		return s.best, ErrNoFeasible
	}
	return s.best, nil
}

type search struct {
	grid      *GridSearch
	base      *config.Config
	registry  *experiment.Registry
	objective string
	best      *Best
}

func (s *search) recurse(ctx context.Context, depth int, current map[string]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(s.grid.paramNames) {
		return s.evaluate(ctx, current)
	}

	name := s.grid.paramNames[depth]
	for _, val := range s.grid.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		if err := s.recurse(ctx, depth+1, next); err != nil {
			return err
		}
	}
	return nil
}

func (s *search) evaluate(ctx context.Context, params map[string]float64) error {
	cfg := *s.base
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := Apply(&cfg, k, params[k]); err != nil {
			return err
		}
	}

	s.best.Evaluated++
	res, err := experiment.New(&cfg, s.registry).Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.best.Failed++
		return nil
	}
	if s.grid.MaxAbsErr > 0 && (!res.HasExact || res.AbsErr > s.grid.MaxAbsErr) {
		return nil
	}

	val, _ := Objective(res, s.objective)
	if val < s.best.Value {
		s.best.Value = val
		s.best.Result = res
		s.best.Params = params
	}
	return nil
}
