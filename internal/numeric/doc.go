// Package numeric provides the primitives shared by the numlab algorithms.
//
// The package defines the function shapes and error values used by the
// solver packages:
//
//   - [Func]: scalar function f(x), used as integrand or root-finding target
//   - [Deriv]: slope function dy/dx = f(x, y) for first-order ODEs
//   - [Observer]: per-iteration callback for iterative methods
//   - [ErrInvalidArgument]: input rejected before any computation
//
// # Example
//
//	area, err := quadrature.Simpson(math.Sin, 0, math.Pi, 10)
//	if errors.Is(err, numeric.ErrInvalidArgument) {
//	    // odd panel count
//	}
//
// # Thread Safety
//
// Every algorithm in numlab is a pure function of its arguments. Calls with
// independent arguments may run concurrently as long as the supplied
// functions are themselves safe to call concurrently.
package numeric
