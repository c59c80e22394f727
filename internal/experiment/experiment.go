package experiment

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/numlab/internal/analysis"
	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/metrics"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
	"github.com/san-kum/numlab/internal/rootfind"
)

// referenceSteps is the RK4 step count used as "exact" for ODEs without a
// closed-form solution.
const referenceSteps = 100000

// Result is the outcome of one run or sweep.
type Result struct {
	Family     string
	Method     string
	Problem    string
	Value      float64
	Exact      float64
	HasExact   bool
	AbsErr     float64
	Evals      int
	Iterations int
	Elapsed    time.Duration

	// Trajectory holds the ODE grid points of a single run.
	Trajectory []integrators.Point

	// Samples and Order are filled by Sweep.
	Samples []analysis.Sample
	Order   float64
}

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	log       logrus.FieldLogger
	collector *metrics.Collector
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return &Experiment{
		cfg:      cfg,
		registry: registry,
		log:      quiet,
	}
}

// SetLogger routes per-run and per-iteration diagnostics to l.
func (e *Experiment) SetLogger(l logrus.FieldLogger) {
	e.log = l
}

// SetCollector mirrors evaluation counts and run outcomes into c.
func (e *Experiment) SetCollector(c *metrics.Collector) {
	e.collector = c
}

func (e *Experiment) setup() (*Problem, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := e.registry.CheckMethod(e.cfg.Family, e.cfg.Method); err != nil {
		return nil, err
	}
	prob, err := e.registry.GetProblem(e.cfg.Problem)
	if err != nil {
		return nil, err
	}
	if !prob.supports(e.cfg.Family) {
		return nil, fmt.Errorf("problem %s has no %s formulation", prob.Name, e.cfg.Family)
	}
	return prob, nil
}

func (e *Experiment) evaluations() *metrics.Evaluations {
	if e.collector != nil {
		return e.collector.Evaluations(e.cfg.Method)
	}
	return metrics.NewEvaluations(e.cfg.Method)
}

func (e *Experiment) fields() logrus.Fields {
	return logrus.Fields{
		"family":  e.cfg.Family,
		"method":  e.cfg.Method,
		"problem": e.cfg.Problem,
	}
}

// Run executes the configured method once.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prob, err := e.setup()
	if err != nil {
		return nil, err
	}

	res := &Result{Family: e.cfg.Family, Method: e.cfg.Method, Problem: prob.Name}
	evals := e.evaluations()
	log := e.log.WithFields(e.fields())
	p := e.cfg.Params

	start := time.Now()
	switch e.cfg.Family {
	case config.FamilyODE:
		err = e.runODE(prob, evals, res)
	case config.FamilyQuadrature:
		res.Value, err = e.integrate(prob, evals, p.N)
		if err == nil {
			res.Exact, res.HasExact = e.exactIntegral(prob), true
		}
	case config.FamilyRoot:
		err = e.runRoot(prob, evals, res, log)
	}
	res.Elapsed = time.Since(start)
	res.Evals = evals.Count()

	if e.collector != nil {
		e.collector.ObserveRun(e.cfg.Family, e.cfg.Method, res.Elapsed, err)
	}
	if err != nil {
		log.WithError(err).Warn("run failed")
		return nil, err
	}

	if res.HasExact {
		res.AbsErr = math.Abs(res.Value - res.Exact)
	}
	log.WithFields(logrus.Fields{
		"value":   res.Value,
		"abs_err": res.AbsErr,
		"evals":   res.Evals,
		"elapsed": res.Elapsed,
	}).Info("run complete")
	return res, nil
}

func (e *Experiment) runODE(prob *Problem, evals *metrics.Evaluations, res *Result) error {
	st, err := integrators.New(e.cfg.Method)
	if err != nil {
		return err
	}
	p := e.cfg.Params
	dy := evals.Deriv(prob.Slope)

	n := p.N
	x := p.X
	if n <= 0 {
		n = integrators.StepCount(p.X0, p.X, p.H)
		x = p.X0 + float64(n)*p.H
		res.Value = integrators.SolveStep(st, dy, p.X0, p.Y0, p.X, p.H)
	} else {
		res.Value = integrators.Solve(st, dy, p.X0, p.Y0, p.X, n)
	}
	res.Iterations = n
	res.Trajectory = integrators.Trajectory(st, prob.Slope, p.X0, p.Y0, x, n)
	res.Exact, res.HasExact = e.exactSolution(prob, x), true
	return nil
}

func (e *Experiment) solveODE(prob *Problem, evals *metrics.Evaluations, n int) (float64, error) {
	st, err := integrators.New(e.cfg.Method)
	if err != nil {
		return 0, err
	}
	p := e.cfg.Params
	return integrators.Solve(st, evals.Deriv(prob.Slope), p.X0, p.Y0, p.X, n), nil
}

func (e *Experiment) exactSolution(prob *Problem, x float64) float64 {
	p := e.cfg.Params
	if prob.Solution != nil {
		return prob.Solution(p.X0, p.Y0, x)
	}
	return integrators.RungeKutta4(p.X0, p.Y0, x, prob.Slope, referenceSteps)
}

func (e *Experiment) integrate(prob *Problem, evals *metrics.Evaluations, n int) (float64, error) {
	rule, err := quadrature.Get(e.cfg.Method)
	if err != nil {
		return 0, err
	}
	p := e.cfg.Params
	return rule(evals.Func(prob.F), p.A, p.B, n)
}

func (e *Experiment) exactIntegral(prob *Problem) float64 {
	p := e.cfg.Params
	if prob.Integral != nil {
		return prob.Integral(p.A, p.B)
	}
	return analysis.Reference(prob.F, p.A, p.B)
}

func (e *Experiment) runRoot(prob *Problem, evals *metrics.Evaluations, res *Result, log logrus.FieldLogger) error {
	p := e.cfg.Params
	opts := []rootfind.Option{
		rootfind.WithMaxIter(p.MaxIter),
		rootfind.WithObserver(func(it numeric.Iteration) {
			res.Iterations = it.Iter
			log.WithFields(logrus.Fields{"iter": it.Iter, "x": it.X, "fx": it.FX}).Debug("iteration")
		}),
	}
	if p.Epsilon > 0 {
		opts = append(opts, rootfind.WithEpsilon(p.Epsilon))
	}

	f := evals.Func(prob.F)
	var err error
	switch e.cfg.Method {
	case MethodBisection:
		res.Value, err = rootfind.Bisection(f, p.A, p.B, opts...)
	case MethodNewton:
		if prob.DF == nil {
			return fmt.Errorf("problem %s has no derivative; use %s", prob.Name, MethodNumericNewton)
		}
		res.Value, err = rootfind.NewtonRaphson(f, prob.DF, p.A, opts...)
	case MethodNumericNewton:
		res.Value, err = rootfind.NumericNewton(f, p.A, opts...)
	}
	if err != nil {
		return err
	}
	res.Exact, res.HasExact = prob.nearestRoot(res.Value)
	return nil
}

// Sweep runs the method at every resolution in the sweep config and fits
// the observed order of convergence. Root finders have no resolution
// parameter and are rejected.
func (e *Experiment) Sweep(ctx context.Context) (*Result, error) {
	prob, err := e.setup()
	if err != nil {
		return nil, err
	}
	if e.cfg.Family == config.FamilyRoot {
		return nil, &numeric.ArgumentError{Method: e.cfg.Method, Argument: "family", Reason: "root finders cannot be swept over n"}
	}
	ns := e.cfg.Sweep.Ns
	if len(ns) < 2 {
		return nil, &numeric.ArgumentError{Method: e.cfg.Method, Argument: "sweep.ns", Reason: "need at least two resolutions"}
	}

	evals := e.evaluations()
	var run analysis.RunFunc
	var exact float64
	switch e.cfg.Family {
	case config.FamilyODE:
		exact = e.exactSolution(prob, e.cfg.Params.X)
		run = func(n int) (float64, error) { return e.solveODE(prob, evals, n) }
	case config.FamilyQuadrature:
		exact = e.exactIntegral(prob)
		run = func(n int) (float64, error) { return e.integrate(prob, evals, n) }
	}

	start := time.Now()
	samples, err := analysis.Convergence(ctx, run, exact, ns, e.cfg.Sweep.Workers)
	elapsed := time.Since(start)
	if e.collector != nil {
		e.collector.ObserveRun(e.cfg.Family, e.cfg.Method, elapsed, err)
	}
	if err != nil {
		return nil, err
	}

	last := samples[len(samples)-1]
	res := &Result{
		Family:   e.cfg.Family,
		Method:   e.cfg.Method,
		Problem:  prob.Name,
		Value:    last.Value,
		Exact:    exact,
		HasExact: true,
		AbsErr:   last.AbsErr,
		Evals:    evals.Count(),
		Elapsed:  elapsed,
		Samples:  samples,
		Order:    analysis.ObservedOrder(samples),
	}
	e.log.WithFields(e.fields()).WithFields(logrus.Fields{
		"points": len(samples),
		"order":  res.Order,
	}).Info("sweep complete")
	return res, nil
}
