package experiment

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// Problem is a named test function with whatever closed forms are known.
// Nil fields mean the problem does not apply to that family.
type Problem struct {
	Name        string
	Description string

	// F is the integrand and the root-finding target.
	F numeric.Func

	// DF is the derivative of F, used by Newton-Raphson.
	DF numeric.Func

	// Slope is the ODE right-hand side dy/dx = Slope(x, y).
	Slope numeric.Deriv

	// Integral returns the exact integral of F over [a, b].
	Integral func(a, b float64) float64

	// Solution returns the exact y(x) for the initial condition y(x0) = y0.
	Solution func(x0, y0, x float64) float64

	// Roots lists the exact real roots of F.
	Roots []float64
}

// Radiative cooling of a 1200 K ball in 300 K air.
const (
	coolingRate   = 2.2067e-12
	ambientFourth = 81e8
)

const cubicRealRoot = 1.5213797068045676

func builtinProblems() []*Problem {
	return []*Problem{
		{
			Name:        "cooling_ball",
			Description: "dθ/dt = -2.2067e-12·(θ⁴ - 8.1e9)",
			Slope: func(t, theta float64) float64 {
				return -coolingRate * (math.Pow(theta, 4) - ambientFourth)
			},
		},
		{
			Name:        "exp_decay",
			Description: "dy/dx = -y",
			Slope:       func(x, y float64) float64 { return -y },
			Solution: func(x0, y0, x float64) float64 {
				return y0 * math.Exp(x0-x)
			},
		},
		{
			Name:        "sine",
			Description: "sin(x)",
			F:           math.Sin,
			DF:          math.Cos,
			Integral:    func(a, b float64) float64 { return math.Cos(a) - math.Cos(b) },
			Roots:       []float64{0, math.Pi, -math.Pi, 2 * math.Pi},
		},
		{
			Name:        "square",
			Description: "x²",
			F:           func(x float64) float64 { return x * x },
			DF:          func(x float64) float64 { return 2 * x },
			Integral:    func(a, b float64) float64 { return (b*b*b - a*a*a) / 3 },
			Roots:       []float64{0},
		},
		{
			Name:        "sqrt2",
			Description: "x² - 2",
			F:           func(x float64) float64 { return x*x - 2 },
			DF:          func(x float64) float64 { return 2 * x },
			Integral:    func(a, b float64) float64 { return (b*b*b-a*a*a)/3 - 2*(b-a) },
			Roots:       []float64{math.Sqrt2, -math.Sqrt2},
		},
		{
			Name:        "cubic",
			Description: "x³ - x - 2",
			F:           func(x float64) float64 { return x*x*x - x - 2 },
			DF:          func(x float64) float64 { return 3*x*x - 1 },
			Integral: func(a, b float64) float64 {
				return (b*b*b*b-a*a*a*a)/4 - (b*b-a*a)/2 - 2*(b-a)
			},
			Roots: []float64{cubicRealRoot},
		},
	}
}

// nearestRoot returns the known root closest to x.
func (p *Problem) nearestRoot(x float64) (float64, bool) {
	if len(p.Roots) == 0 {
		return 0, false
	}
	best := p.Roots[0]
	for _, r := range p.Roots[1:] {
		if math.Abs(r-x) < math.Abs(best-x) {
			best = r
		}
	}
	return best, true
}
