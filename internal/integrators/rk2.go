package integrators

import "github.com/san-kum/numlab/internal/numeric"

// RK2 is Heun's second-order Runge-Kutta method: an Euler predictor
// followed by a trapezoidal corrector.
type RK2 struct{}

func NewRK2() *RK2 {
	return &RK2{}
}

func (r *RK2) Name() string { return "rk2" }
func (r *RK2) Order() int   { return 2 }
func (r *RK2) Evals() int   { return 2 }

func (r *RK2) Step(dy numeric.Deriv, x, y, h float64) float64 {
	k1 := dy(x, y)
	k2 := dy(x+h, y+h*k1)
	return y + h/2*(k1+k2)
}

// RungeKutta2 advances y from x0 to x with n RK2 steps of size (x-x0)/n.
func RungeKutta2(x0, y0, x float64, dy numeric.Deriv, n int) float64 {
	return Solve(NewRK2(), dy, x0, y0, x, n)
}

// RungeKutta2Step advances y from x0 to x with RK2 steps of size h.
func RungeKutta2Step(x0, y0, x float64, dy numeric.Deriv, h float64) float64 {
	return SolveStep(NewRK2(), dy, x0, y0, x, h)
}
