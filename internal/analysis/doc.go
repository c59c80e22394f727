// Package analysis provides convergence studies for the numlab methods.
//
// The package characterises how a method's error shrinks with resolution:
//
//   - [Convergence]: runs a method for each panel or step count in parallel
//   - [ObservedOrder]: fitted exponent p in err ≈ C·n^-p
//   - [Monotone]: whether the error decreases at every refinement
//   - [Reference]: high-accuracy Gauss-Legendre integral for problems
//     without a closed form
//
// # Order Estimation
//
// Doubling n should divide the error by 2^p for a method of order p:
//
//	samples, _ := analysis.Convergence(ctx, run, exact, analysis.Doubling(10, 5), 4)
//	p := analysis.ObservedOrder(samples) // ~4 for rk4
package analysis
