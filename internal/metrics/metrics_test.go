package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/quadrature"
)

func TestEvaluationsCountsQuadrature(t *testing.T) {
	e := NewEvaluations("trapezoid")
	f := e.Func(func(x float64) float64 { return x })

	quadrature.Trapezoid(f, 0, 1, 5)

	if e.Count() != 10 {
		t.Errorf("expected 10 evaluations, got %d", e.Count())
	}
	if e.Value() != 10 {
		t.Errorf("expected value 10, got %f", e.Value())
	}
}

func TestEvaluationsReset(t *testing.T) {
	e := NewEvaluations("rk4")
	dy := e.Deriv(func(x, y float64) float64 { return -y })

	integrators.RungeKutta4(0, 1, 1, dy, 3)
	if e.Count() != 12 {
		t.Errorf("expected 12 evaluations, got %d", e.Count())
	}

	e.Reset()
	if e.Count() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEvaluationsNil(t *testing.T) {
	e := NewEvaluations("none")
	if e.Func(nil) != nil || e.Deriv(nil) != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestCollectorMirrorsCounts(t *testing.T) {
	c := NewCollector()

	e := c.Evaluations("riemann")
	quadrature.Riemann(e.Func(func(x float64) float64 { return x }), 0, 1, 4)
	e.Reset()
	quadrature.Riemann(e.Func(func(x float64) float64 { return x }), 0, 1, 4)

	if got := testutil.ToFloat64(c.evals.WithLabelValues("riemann")); got != 8 {
		t.Errorf("prometheus counter should keep counting across resets: got %f", got)
	}
	if e.Count() != 4 {
		t.Errorf("local count should restart after reset: got %d", e.Count())
	}
}

func TestSnapshot(t *testing.T) {
	c := NewCollector()
	c.ObserveRun("root", "bisection", time.Millisecond, nil)
	c.ObserveRun("root", "bisection", time.Millisecond, errors.New("boom"))
	e := c.Evaluations("bisection")
	e.Observe()

	samples, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	found := map[string]float64{}
	for _, s := range samples {
		found[s.Name+"{"+s.Labels+"}"] = s.Value
	}

	checks := map[string]float64{
		"numlab_function_evaluations_total{method=bisection}":             1,
		"numlab_runs_total{family=root,method=bisection,outcome=ok}":      1,
		"numlab_runs_total{family=root,method=bisection,outcome=error}":   1,
		"numlab_run_duration_seconds_count{family=root,method=bisection}": 2,
	}
	for key, want := range checks {
		if got, ok := found[key]; !ok || got != want {
			t.Errorf("%s: expected %v, got %v (present=%v)", key, want, got, ok)
		}
	}
}
