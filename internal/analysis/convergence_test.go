package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numlab/internal/analysis"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
)

func decay(x, y float64) float64 { return -y }

func square(x float64) float64 { return x * x }

func odeRun(st integrators.Stepper) analysis.RunFunc {
	return func(n int) (float64, error) {
		return integrators.Solve(st, decay, 0, 1, 1, n), nil
	}
}

func quadRun(name string, f numeric.Func, a, b float64) analysis.RunFunc {
	rule, err := quadrature.Get(name)
	Expect(err).NotTo(HaveOccurred())
	return func(n int) (float64, error) {
		return rule(f, a, b, n)
	}
}

var _ = Describe("Convergence", func() {
	ctx := context.Background()
	ns := analysis.Doubling(10, 4)

	It("builds doubling resolutions", func() {
		Expect(ns).To(Equal([]int{10, 20, 40, 80}))
	})

	DescribeTable("observed order matches the method order",
		func(run func() analysis.RunFunc, exact, order, tol float64) {
			samples, err := analysis.Convergence(ctx, run(), exact, ns, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(samples).To(HaveLen(len(ns)))
			Expect(analysis.Monotone(samples)).To(BeTrue())
			Expect(analysis.ObservedOrder(samples)).To(BeNumerically("~", order, tol))
		},
		Entry("rk2", func() analysis.RunFunc { return odeRun(integrators.NewRK2()) }, math.Exp(-1), 2.0, 0.2),
		Entry("rk4", func() analysis.RunFunc { return odeRun(integrators.NewRK4()) }, math.Exp(-1), 4.0, 0.3),
		Entry("riemann", func() analysis.RunFunc { return quadRun("riemann", square, 0, 1) }, 1.0/3, 1.0, 0.1),
		Entry("trapezoid", func() analysis.RunFunc { return quadRun("trapezoid", math.Sin, 0, math.Pi) }, 2.0, 2.0, 0.1),
		Entry("simpson_composite", func() analysis.RunFunc { return quadRun("simpson_composite", math.Sin, 0, math.Pi) }, 2.0, 4.0, 0.2),
	)

	It("keeps samples in the order of ns", func() {
		samples, err := analysis.Convergence(ctx, odeRun(integrators.NewRK4()), math.Exp(-1), []int{80, 10, 40, 20}, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect([]int{samples[0].N, samples[1].N, samples[2].N, samples[3].N}).To(Equal([]int{80, 10, 40, 20}))
	})

	It("returns the first method error", func() {
		_, err := analysis.Convergence(ctx, quadRun("simpson", math.Sin, 0, math.Pi), 2, []int{10, 15, 20}, 1)
		Expect(err).To(MatchError(numeric.ErrInvalidArgument))
	})

	It("stops on a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := analysis.Convergence(cancelled, odeRun(integrators.NewRK4()), 0, ns, 2)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("ObservedOrder", func() {
	It("needs at least two usable samples", func() {
		Expect(math.IsNaN(analysis.ObservedOrder(nil))).To(BeTrue())
		Expect(math.IsNaN(analysis.ObservedOrder([]analysis.Sample{{N: 10, AbsErr: 0.1}, {N: 20, AbsErr: 0}}))).To(BeTrue())
	})

	It("recovers an exact power law", func() {
		samples := []analysis.Sample{{N: 10, AbsErr: 1e-2}, {N: 100, AbsErr: 1e-5}, {N: 1000, AbsErr: 1e-8}}
		Expect(analysis.ObservedOrder(samples)).To(BeNumerically("~", 3, 1e-9))
	})
})

var _ = Describe("Monotone", func() {
	It("rejects a stalled error", func() {
		Expect(analysis.Monotone([]analysis.Sample{{AbsErr: 1}, {AbsErr: 0.5}, {AbsErr: 0.5}})).To(BeFalse())
	})
})

var _ = Describe("Reference", func() {
	It("integrates smooth functions to near machine precision", func() {
		Expect(analysis.Reference(math.Sin, 0, math.Pi)).To(BeNumerically("~", 2, 1e-12))
		Expect(analysis.Reference(math.Exp, 0, 1)).To(BeNumerically("~", math.E-1, 1e-12))
	})
})
