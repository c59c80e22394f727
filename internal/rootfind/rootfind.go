// Package rootfind implements scalar root finders.
//
// Both finders stop on the residual test |f(x)| < epsilon and carry no
// iteration cap unless WithMaxIter is given.
package rootfind

import (
	"fmt"
	"math"

	"github.com/san-kum/numlab/internal/numeric"
	"gonum.org/v1/gonum/diff/fd"
)

// DefaultEpsilon is the residual tolerance used when none is given.
const DefaultEpsilon = 0.01

type options struct {
	epsilon  float64
	maxIter  int
	observer numeric.Observer
}

// Option configures a root finder.
type Option func(*options)

// WithEpsilon sets the residual tolerance.
func WithEpsilon(eps float64) Option {
	return func(o *options) { o.epsilon = eps }
}

// WithMaxIter stops the finder with numeric.ErrMaxIterations after n
// iterations. n <= 0 means unbounded.
func WithMaxIter(n int) Option {
	return func(o *options) { o.maxIter = n }
}

// WithObserver registers a callback invoked once per iteration.
func WithObserver(fn numeric.Observer) Option {
	return func(o *options) { o.observer = fn }
}

func newOptions(opts []Option) options {
	o := options{epsilon: DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) observe(method string, iter int, x, fx float64) {
	if o.observer != nil {
		o.observer(numeric.Iteration{Method: method, Iter: iter, X: x, FX: fx})
	}
}

func (o *options) exhausted(iter int) bool {
	return o.maxIter > 0 && iter >= o.maxIter
}

// Sign maps positive values to 1, negative values to -1 and zero to 0.
func Sign(x float64) int {
	return numeric.Sign(x)
}

// Bisection halves the bracket [a, b] until |f(m)| < epsilon at its midpoint m.
//
// f(a) and f(b) must differ in sign; otherwise the error wraps
// numeric.ErrInvalidArgument.
func Bisection(f numeric.Func, a, b float64, opts ...Option) (float64, error) {
	o := newOptions(opts)

	fa, fb := f(a), f(b)
	if Sign(fa) == Sign(fb) {
		return 0, &numeric.ArgumentError{
			Method:   "bisection",
			Argument: "bracket",
			Reason:   fmt.Sprintf("[%g, %g] does not straddle a root", a, b),
		}
	}

	for iter := 1; ; iter++ {
		m := (a + b) / 2
		fm := f(m)
		o.observe("bisection", iter, m, fm)

		if math.Abs(fm) < o.epsilon {
			return m, nil
		}
		if Sign(fm) == Sign(fa) {
			a, fa = m, fm
		} else {
			b = m
		}
		if o.exhausted(iter) {
			return m, &numeric.IterationError{Method: "bisection", Iter: iter, X: m, Wrapped: numeric.ErrMaxIterations}
		}
	}
}

// NewtonRaphson iterates x = x - f(x)/df(x) from the guess a until
// |f(x)| < epsilon. A zero derivative is not guarded against.
func NewtonRaphson(f, df numeric.Func, a float64, opts ...Option) (float64, error) {
	o := newOptions(opts)

	for iter := 1; ; iter++ {
		xn := a - f(a)/df(a)
		fxn := f(xn)
		o.observe("newton", iter, xn, fxn)

		if math.Abs(fxn) < o.epsilon {
			return xn, nil
		}
		a = xn
		if o.exhausted(iter) {
			return xn, &numeric.IterationError{Method: "newton", Iter: iter, X: xn, Wrapped: numeric.ErrMaxIterations}
		}
	}
}

// NumericNewton is NewtonRaphson with df replaced by a central finite
// difference of f.
func NumericNewton(f numeric.Func, a float64, opts ...Option) (float64, error) {
	settings := &fd.Settings{Formula: fd.Central}
	df := func(x float64) float64 {
		return fd.Derivative(f, x, settings)
	}
	return NewtonRaphson(f, df, a, opts...)
}
