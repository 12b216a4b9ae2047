package errx

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Failure kinds reported by the toolkit itself. They are distinct from the
// *Error values the toolkit manages and are matched with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrCancelled    = errors.New("cancelled")
	ErrInternal     = errors.New("internal invariant violated")
)

// ArgumentError reports an absent, empty or whitespace-only argument.
type ArgumentError struct {
	Op     string
	Arg    string
	Reason string
}

// NewArgumentError returns an ArgumentError for op and arg.
func NewArgumentError(op, arg, reason string) *ArgumentError {
	return &ArgumentError{Op: op, Arg: arg, Reason: reason}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Op, e.Arg, e.Reason)
}

// Is matches ErrValidation.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrValidation
}

// CheckContext returns an error wrapping ErrCancelled and the context cause
// when ctx is already done, and nil otherwise.
func CheckContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
	default:
		return nil
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func requireNonBlank(op, arg, value string) error {
	if isBlank(value) {
		return NewArgumentError(op, arg, "must not be empty or whitespace")
	}
	return nil
}

func requireNonNil(op, arg string, isNil bool) error {
	if isNil {
		return NewArgumentError(op, arg, "must not be nil")
	}
	return nil
}
