package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/numlab/internal/numeric"
)

// Evaluations counts calls to the functions it wraps. When bound to a
// Prometheus counter every call is mirrored there as well.
type Evaluations struct {
	name    string
	count   atomic.Int64
	counter prometheus.Counter
}

func NewEvaluations(name string) *Evaluations {
	return &Evaluations{name: name}
}

func (e *Evaluations) Name() string { return e.name }

func (e *Evaluations) Observe() {
	e.count.Add(1)
	if e.counter != nil {
		e.counter.Inc()
	}
}

func (e *Evaluations) Value() float64 {
	return float64(e.count.Load())
}

// Count returns the number of calls since the last Reset.
func (e *Evaluations) Count() int {
	return int(e.count.Load())
}

// Reset zeroes the local count. The Prometheus counter is monotonic and is
// left untouched.
func (e *Evaluations) Reset() {
	e.count.Store(0)
}

// Func wraps f so that each call is counted.
func (e *Evaluations) Func(f numeric.Func) numeric.Func {
	if f == nil {
		return nil
	}
	return func(x float64) float64 {
		e.Observe()
		return f(x)
	}
}

// Deriv wraps dy so that each call is counted.
func (e *Evaluations) Deriv(dy numeric.Deriv) numeric.Deriv {
	if dy == nil {
		return nil
	}
	return func(x, y float64) float64 {
		e.Observe()
		return dy(x, y)
	}
}
