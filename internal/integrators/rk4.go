package integrators

import "github.com/san-kum/numlab/internal/numeric"

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }
func (r *RK4) Evals() int   { return 4 }

func (r *RK4) Step(dy numeric.Deriv, x, y, h float64) float64 {
	half := h / 2
	k1 := dy(x, y)
	k2 := dy(x+half, y+half*k1)
	k3 := dy(x+half, y+half*k2)
	k4 := dy(x+h, y+h*k3)
	return y + h/6*(k1+2*k2+2*k3+k4)
}

// RungeKutta4 advances y from x0 to x with n RK4 steps of size (x-x0)/n.
func RungeKutta4(x0, y0, x float64, dy numeric.Deriv, n int) float64 {
	return Solve(NewRK4(), dy, x0, y0, x, n)
}

// RungeKutta4Step advances y from x0 to x with RK4 steps of size h.
func RungeKutta4Step(x0, y0, x float64, dy numeric.Deriv, h float64) float64 {
	return SolveStep(NewRK4(), dy, x0, y0, x, h)
}
