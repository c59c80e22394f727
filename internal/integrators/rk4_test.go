package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/numlab/internal/numeric"
	"gonum.org/v1/gonum/floats/scalar"
)

func decay(x, y float64) float64 { return -y }

func coolingBall(t, theta float64) float64 {
	return -2.2067e-12 * (math.Pow(theta, 4) - 81e8)
}

func TestRK4Accuracy(t *testing.T) {
	got := RungeKutta4(0, 1, 1, decay, 10)
	expected := math.Exp(-1)

	if math.Abs(got-expected) > 1e-6 {
		t.Errorf("rk4 error too large: got %.9f, expected %.9f", got, expected)
	}
}

func TestRK2Accuracy(t *testing.T) {
	got := RungeKutta2(0, 1, 1, decay, 10)
	expected := math.Exp(-1)

	if math.Abs(got-expected) > 1e-3 {
		t.Errorf("rk2 error too large: got %.9f, expected %.9f", got, expected)
	}
}

func TestRK4BeatsRK2(t *testing.T) {
	exact := math.Exp(-1)
	for _, n := range []int{1, 2, 4, 10, 20} {
		e2 := math.Abs(RungeKutta2(0, 1, 1, decay, n) - exact)
		e4 := math.Abs(RungeKutta4(0, 1, 1, decay, n) - exact)
		if e4 >= e2 {
			t.Errorf("n=%d: rk4 error %e not below rk2 error %e", n, e4, e2)
		}
	}
}

func TestCoolingBall(t *testing.T) {
	r2 := RungeKutta2(0, 1200, 480, coolingBall, 10)
	r4 := RungeKutta4(0, 1200, 480, coolingBall, 10)
	ref := RungeKutta4(0, 1200, 480, coolingBall, 100000)

	for name, v := range map[string]float64{"rk2": r2, "rk4": r4} {
		if v < 647 || v > 650 {
			t.Errorf("%s: theta(480) = %.4f, want within [647, 650]", name, v)
		}
	}

	if !scalar.EqualWithinAbs(r2, 649.146, 1e-2) {
		t.Errorf("rk2: got %.4f, want ~649.146", r2)
	}
	if !scalar.EqualWithinAbs(r4, 647.563, 1e-2) {
		t.Errorf("rk4: got %.4f, want ~647.563", r4)
	}
	if math.Abs(r4-ref) >= math.Abs(r2-ref) {
		t.Errorf("rk4 residual %e not below rk2 residual %e", math.Abs(r4-ref), math.Abs(r2-ref))
	}
}

func TestEvaluationCount(t *testing.T) {
	tests := []struct {
		st   Stepper
		n    int
		want int
	}{
		{NewRK2(), 10, 20},
		{NewRK4(), 10, 40},
		{NewRK4(), 0, 0},
	}

	for _, tt := range tests {
		calls := 0
		dy := func(x, y float64) float64 {
			calls++
			return -y
		}
		Solve(tt.st, dy, 0, 1, 1, tt.n)
		if calls != tt.want {
			t.Errorf("%s n=%d: expected %d evaluations, got %d", tt.st.Name(), tt.n, tt.want, calls)
		}
		if tt.n > 0 && calls != tt.n*tt.st.Evals() {
			t.Errorf("%s: Evals() = %d disagrees with observed calls", tt.st.Name(), tt.st.Evals())
		}
	}
}

func TestSolveStepMatchesStepCount(t *testing.T) {
	byCount := RungeKutta4(0, 1200, 480, coolingBall, 10)
	byStep := RungeKutta4Step(0, 1200, 480, coolingBall, 48)

	if byCount != byStep {
		t.Errorf("h=48 and n=10 should agree exactly: %v vs %v", byStep, byCount)
	}

	byCount = RungeKutta2(0, 1200, 480, coolingBall, 10)
	byStep = RungeKutta2Step(0, 1200, 480, coolingBall, 48)
	if byCount != byStep {
		t.Errorf("rk2: h=48 and n=10 should agree exactly: %v vs %v", byStep, byCount)
	}
}

func TestSolveStepNonMultiple(t *testing.T) {
	// 100/30 rounds to 3 steps, stopping at x=90.
	got := SolveStep(NewRK4(), decay, 0, 1, 100, 30)
	want := Solve(NewRK4(), decay, 0, 1, 90, 3)

	if got != want {
		t.Errorf("expected nearest grid point result %v, got %v", want, got)
	}
}

func TestStepCount(t *testing.T) {
	tests := []struct {
		x0, x, h float64
		want     int
	}{
		{0, 480, 48, 10},
		{0, 1, 0.1, 10},
		{0, 100, 30, 3},
		{0, 100, 40, 3},
		{1, 0, -0.1, 10},
		{0, 1, 0, 0},
		{0, 1, -0.1, 0},
		{0, 1, math.NaN(), 0},
		{0, 1, math.Inf(1), 0},
	}

	for _, tt := range tests {
		if got := StepCount(tt.x0, tt.x, tt.h); got != tt.want {
			t.Errorf("StepCount(%v, %v, %v) = %d, want %d", tt.x0, tt.x, tt.h, got, tt.want)
		}
	}
}

func TestSolveZeroSteps(t *testing.T) {
	if got := RungeKutta4(0, 3, 1, decay, 0); got != 3 {
		t.Errorf("n=0 should return y0, got %v", got)
	}
	if got := RungeKutta2Step(0, 3, 1, decay, 0); got != 3 {
		t.Errorf("h=0 should return y0, got %v", got)
	}
}

func TestTrajectory(t *testing.T) {
	pts := Trajectory(NewRK4(), decay, 0, 1, 1, 10)

	if len(pts) != 11 {
		t.Fatalf("expected 11 points, got %d", len(pts))
	}
	if pts[0].X != 0 || pts[0].Y != 1 {
		t.Errorf("first point should be the initial condition, got %+v", pts[0])
	}
	if last := pts[len(pts)-1]; last.Y != RungeKutta4(0, 1, 1, decay, 10) {
		t.Errorf("last point %v disagrees with Solve", last.Y)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Y >= pts[i-1].Y {
			t.Errorf("decay trajectory should decrease at %d", i)
		}
	}
}

func TestIdempotent(t *testing.T) {
	for _, name := range Names() {
		st, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		a := Solve(st, coolingBall, 0, 1200, 480, 10)
		b := Solve(st, coolingBall, 0, 1200, 480, 10)
		if a != b {
			t.Errorf("%s: repeated calls differ: %v vs %v", name, a, b)
		}
	}
}

func TestNewUnknown(t *testing.T) {
	for _, name := range []string{"euler", "heun", ""} {
		if _, err := New(name); !errors.Is(err, numeric.ErrUnknownMethod) {
			t.Errorf("New(%q): expected ErrUnknownMethod, got %v", name, err)
		}
	}
}

func TestNewMatchesNames(t *testing.T) {
	for _, name := range Names() {
		st, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if st.Name() != name {
			t.Errorf("New(%q) built %s", name, st.Name())
		}
	}
}
