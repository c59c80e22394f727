package numeric

import "math"

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Deriv is the right-hand side of dy/dx = f(x, y).
type Deriv func(x, y float64) float64

// Observer receives one callback per iteration of an iterative method.
type Observer func(Iteration)

// Iteration describes a single step of an iterative method.
type Iteration struct {
	Method string
	Iter   int
	X      float64
	FX     float64
}

// Sign maps positive values to 1, negative values to -1 and zero to 0.
// NaN maps to 0.
func Sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
