// Package integrators implements fixed-step Runge-Kutta solvers for scalar
// first-order ODEs dy/dx = f(x, y).
package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// Stepper advances a scalar ODE by one step of size h.
type Stepper interface {
	Name() string
	// Order is the global order of accuracy.
	Order() int
	// Evals is the number of slope evaluations per step.
	Evals() int
	Step(dy numeric.Deriv, x, y, h float64) float64
}

// Point is one grid point of a trajectory.
type Point struct {
	X float64
	Y float64
}

// Solve performs exactly n steps of size (x-x0)/n and returns the
// approximation to y(x). n <= 0 returns y0 unchanged.
func Solve(st Stepper, dy numeric.Deriv, x0, y0, x float64, n int) float64 {
	if n <= 0 {
		return y0
	}
	h := (x - x0) / float64(n)
	for i := 0; i < n; i++ {
		y0 = st.Step(dy, x0, y0, h)
		x0 += h
	}
	return y0
}

// SolveStep integrates from x0 towards x with a fixed step size h.
//
// The number of steps is round((x-x0)/h). When x-x0 is an exact multiple of h
// the final grid point is x; otherwise integration stops at the grid point
// nearest to x. A zero, non-finite or wrong-direction h takes no steps.
func SolveStep(st Stepper, dy numeric.Deriv, x0, y0, x, h float64) float64 {
	n := StepCount(x0, x, h)
	for i := 0; i < n; i++ {
		y0 = st.Step(dy, x0, y0, h)
		x0 += h
	}
	return y0
}

// StepCount returns the number of fixed steps SolveStep takes.
func StepCount(x0, x, h float64) int {
	if h == 0 || !numeric.IsFinite(h) {
		return 0
	}
	steps := math.Round((x - x0) / h)
	if steps <= 0 || !numeric.IsFinite(steps) {
		return 0
	}
	return int(steps)
}

// Trajectory runs the same iteration as Solve and returns every grid point,
// starting with (x0, y0).
func Trajectory(st Stepper, dy numeric.Deriv, x0, y0, x float64, n int) []Point {
	if n <= 0 {
		return []Point{{X: x0, Y: y0}}
	}
	pts := make([]Point, 0, n+1)
	pts = append(pts, Point{X: x0, Y: y0})
	h := (x - x0) / float64(n)
	for i := 0; i < n; i++ {
		y0 = st.Step(dy, x0, y0, h)
		x0 += h
		pts = append(pts, Point{X: x0, Y: y0})
	}
	return pts
}

// New returns the stepper registered under name.
func New(name string) (Stepper, error) {
	switch name {
	case "rk2":
		return NewRK2(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("%w: integrator %q", numeric.ErrUnknownMethod, name)
}

// Names lists the registered stepper names.
func Names() []string {
	return []string{"rk2", "rk4"}
}
