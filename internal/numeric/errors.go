package numeric

import (
	"errors"
	"fmt"
)

// Domain errors for numerical methods.
var (
	// ErrInvalidArgument indicates an input that the method rejects up front.
	ErrInvalidArgument = errors.New("numeric: invalid argument")

	// ErrMaxIterations indicates an opt-in iteration cap was reached.
	ErrMaxIterations = errors.New("numeric: maximum iterations reached")

	// ErrUnknownMethod indicates a method name missing from a registry.
	ErrUnknownMethod = errors.New("numeric: unknown method")
)

// ArgumentError wraps ErrInvalidArgument with the offending method and argument.
type ArgumentError struct {
	Method   string
	Argument string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Method, e.Argument, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// IterationError reports the state of an iterative method when it stopped early.
type IterationError struct {
	Method  string
	Iter    int
	X       float64
	Wrapped error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("%s: stopped after %d iterations at x=%g: %v", e.Method, e.Iter, e.X, e.Wrapped)
}

func (e *IterationError) Unwrap() error {
	return e.Wrapped
}
