package analysis

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/numlab/internal/numeric"
)

// RunFunc computes an approximation at resolution n.
type RunFunc func(n int) (float64, error)

// Sample is one point of a convergence study.
type Sample struct {
	N      int     `json:"n"`
	Value  float64 `json:"value"`
	AbsErr float64 `json:"abs_err"`
}

// Doubling returns count resolutions starting at start, each twice the previous.
func Doubling(start, count int) []int {
	ns := make([]int, count)
	for i := range ns {
		ns[i] = start << i
	}
	return ns
}

// Convergence evaluates run at every n with at most workers concurrent calls
// (workers <= 0 uses GOMAXPROCS) and returns the samples in the order of ns.
// The first error cancels the remaining work.
func Convergence(ctx context.Context, run RunFunc, exact float64, ns []int, workers int) ([]Sample, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samples := make([]Sample, len(ns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, n := range ns {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := run(n)
			if err != nil {
				return err
			}
			samples[i] = Sample{N: n, Value: v, AbsErr: math.Abs(v - exact)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// ObservedOrder fits log(err) = c - p·log(n) by least squares and returns p.
// Samples with zero or non-finite error are ignored; NaN is returned when
// fewer than two usable samples remain.
func ObservedOrder(samples []Sample) float64 {
	var xs, ys []float64
	for _, s := range samples {
		if s.N <= 0 || s.AbsErr <= 0 || !numeric.IsFinite(s.AbsErr) {
			continue
		}
		xs = append(xs, math.Log(float64(s.N)))
		ys = append(ys, math.Log(s.AbsErr))
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return -slope
}

// Monotone reports whether AbsErr strictly decreases from one sample to the next.
func Monotone(samples []Sample) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].AbsErr >= samples[i-1].AbsErr {
			return false
		}
	}
	return true
}

// Reference integrates f over [a, b] with a 64-point Gauss-Legendre rule
// applied on 16 sub-intervals.
func Reference(f numeric.Func, a, b float64) float64 {
	const (
		points = 64
		pieces = 16
	)
	width := (b - a) / pieces
	total := 0.0
	for i := 0; i < pieces; i++ {
		lo := a + float64(i)*width
		total += quad.Fixed(f, lo, lo+width, points, nil, 0)
	}
	return total
}
