package numeric

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestArgumentErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("run: %w", &ArgumentError{Method: "simpson", Argument: "n", Reason: "panel count 3 must be even"})

	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("expected wrapped ArgumentError to match ErrInvalidArgument")
	}
	if errors.Is(err, ErrMaxIterations) {
		t.Error("ArgumentError should not match ErrMaxIterations")
	}
	if got := err.Error(); got != "run: simpson: invalid n: panel count 3 must be even" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIterationErrorUnwrap(t *testing.T) {
	err := &IterationError{Method: "newton", Iter: 7, X: 1.5, Wrapped: ErrMaxIterations}

	if !errors.Is(err, ErrMaxIterations) {
		t.Error("expected IterationError to unwrap to ErrMaxIterations")
	}
}

func TestSign(t *testing.T) {
	if Sign(2) != 1 || Sign(-2) != -1 || Sign(0) != 0 || Sign(math.NaN()) != 0 {
		t.Error("unexpected sign mapping")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Error("unexpected finiteness")
	}
}
