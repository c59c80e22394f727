// Package quadrature implements fixed-panel rules for definite integrals.
package quadrature

import (
	"fmt"
	"sort"

	"github.com/san-kum/numlab/internal/numeric"
)

// Rule approximates the integral of f over [a, b] using n panels.
type Rule func(f numeric.Func, a, b float64, n int) (float64, error)

// Riemann is the left-endpoint rectangle rule. f is evaluated n times.
func Riemann(f numeric.Func, a, b float64, n int) float64 {
	dx := (b - a) / float64(n)
	area := 0.0

	x := a
	for i := 0; i < n; i++ {
		area += f(x) * dx
		x += dx
	}
	return area
}

// Trapezoid is the trapezoid rule. Each panel evaluates both of its
// endpoints, so f is evaluated 2n times.
func Trapezoid(f numeric.Func, a, b float64, n int) float64 {
	dx := (b - a) / float64(n)
	area := 0.0

	x := a
	for i := 0; i < n; i++ {
		area += (f(x) + f(x+dx)) * dx / 2
		x += dx
	}
	return area
}

// Simpson applies Simpson's weights f(a) + f(b) + 4,2,4,... over the
// interior indices 1 <= i < n-1 and scales by dx/3.
//
// The interior point i = n-1 is not summed, so the result differs from the
// composite rule by 4*f(b-dx)*dx/3; see SimpsonComposite. n must be even.
func Simpson(f numeric.Func, a, b float64, n int) (float64, error) {
	if n%2 != 0 {
		return 0, oddPanels("simpson", n)
	}

	dx := (b - a) / float64(n)
	area := f(a) + f(b)

	for i := 1; i < n-1; i++ {
		if i%2 == 0 {
			area += 2 * f(a+float64(i)*dx)
		} else {
			area += 4 * f(a+float64(i)*dx)
		}
	}
	return area * dx / 3, nil
}

// SimpsonComposite is the composite Simpson's rule over all interior
// points 1 <= i <= n-1. n must be even.
func SimpsonComposite(f numeric.Func, a, b float64, n int) (float64, error) {
	if n%2 != 0 {
		return 0, oddPanels("simpson_composite", n)
	}

	dx := (b - a) / float64(n)
	area := f(a) + f(b)

	for i := 1; i < n; i++ {
		if i%2 == 0 {
			area += 2 * f(a+float64(i)*dx)
		} else {
			area += 4 * f(a+float64(i)*dx)
		}
	}
	return area * dx / 3, nil
}

func oddPanels(method string, n int) error {
	return &numeric.ArgumentError{
		Method:   method,
		Argument: "n",
		Reason:   fmt.Sprintf("panel count %d must be even", n),
	}
}

var rules = map[string]Rule{
	"riemann": func(f numeric.Func, a, b float64, n int) (float64, error) {
		return Riemann(f, a, b, n), nil
	},
	"trapezoid": func(f numeric.Func, a, b float64, n int) (float64, error) {
		return Trapezoid(f, a, b, n), nil
	},
	"simpson":           Simpson,
	"simpson_composite": SimpsonComposite,
}

// Get returns the rule registered under name.
func Get(name string) (Rule, error) {
	r, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: quadrature rule %q", numeric.ErrUnknownMethod, name)
	}
	return r, nil
}

// Names lists the registered rule names in sorted order.
func Names() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
