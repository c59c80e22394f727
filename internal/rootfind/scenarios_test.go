package rootfind_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/rootfind"
)

var _ = Describe("square root of two", func() {
	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }

	Describe("Bisection", func() {
		It("lands within epsilon of sqrt(2) on [0, 2]", func() {
			root, err := rootfind.Bisection(f, 0, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(root).To(BeNumerically("~", math.Sqrt2, 0.01))
			Expect(root).To(Equal(1.4140625))
		})

		It("rejects a bracket that does not straddle a root", func() {
			_, err := rootfind.Bisection(f, 2, 3)
			Expect(err).To(MatchError(numeric.ErrInvalidArgument))
			Expect(err.Error()).To(ContainSubstring("does not straddle a root"))
		})

		It("tightens with a smaller epsilon", func() {
			root, err := rootfind.Bisection(f, 0, 2, rootfind.WithEpsilon(1e-10))
			Expect(err).NotTo(HaveOccurred())
			Expect(root).To(BeNumerically("~", math.Sqrt2, 1e-9))
		})
	})

	Describe("NewtonRaphson", func() {
		It("converges from 2 in two iterations", func() {
			iterations := 0
			root, err := rootfind.NewtonRaphson(f, df, 2, rootfind.WithObserver(func(numeric.Iteration) {
				iterations++
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(root).To(BeNumerically("~", math.Sqrt2, 0.01))
			Expect(iterations).To(Equal(2))
		})

		It("is deterministic", func() {
			r1, _ := rootfind.NewtonRaphson(f, df, 2)
			r2, _ := rootfind.NewtonRaphson(f, df, 2)
			Expect(r1).To(Equal(r2))
		})

		It("honours an opt-in iteration cap", func() {
			_, err := rootfind.NewtonRaphson(f, df, 2, rootfind.WithEpsilon(0), rootfind.WithMaxIter(3))
			Expect(err).To(MatchError(numeric.ErrMaxIterations))
		})
	})
})
