// Package result provides explicit success or failure outcomes carrying
// errx values, as an alternative to returning or panicking with faults for
// expected failures.
package result

import (
	"errors"
	"fmt"

	"errkit/pkg/errx"
)

// Result is the outcome of an operation without a value. The zero Result
// is a success.
type Result struct {
	err *errx.Error
}

func Success() Result {
	return Result{}
}

// Failure returns a failed Result. A nil e is a programming error and
// panics with an error matching errx.ErrValidation.
func Failure(e *errx.Error) Result {
	if e == nil {
		panic(errx.NewArgumentError("Failure", "error", "must not be nil"))
	}
	return Result{err: e}
}

// FromFault returns a failed Result from an error carrying an errx value,
// such as a *errx.Fault. Errors without one fail with errx.ErrValidation.
func FromFault(err error) (Result, error) {
	e, err := valueOf("FromFault", err)
	if err != nil {
		return Result{}, err
	}
	return Result{err: e}, nil
}

func (r Result) IsSuccess() bool { return r.err == nil }

func (r Result) IsFailure() bool { return r.err != nil }

// Err returns the failure value, or nil on success.
func (r Result) Err() *errx.Error { return r.err }

// AsError returns nil on success and a *errx.Fault otherwise, for call
// sites that propagate plain Go errors.
func (r Result) AsError() error {
	if r.err == nil {
		return nil
	}
	return errx.NewFault(r.err)
}

// ThrowIfFailure panics with a *errx.Fault when r is a failure.
func (r Result) ThrowIfFailure() {
	if r.err != nil {
		panic(errx.NewFault(r.err))
	}
}

func (r Result) String() string {
	if r.err == nil {
		return "Success"
	}
	return "Failure: " + r.err.Code().Value()
}

func valueOf(op string, err error) (*errx.Error, error) {
	if err == nil {
		return nil, errx.NewArgumentError(op, "fault", "must not be nil")
	}
	var fault *errx.Fault
	if errors.As(err, &fault) && fault.Value() != nil {
		return fault.Value(), nil
	}
	var e *errx.Error
	if errors.As(err, &e) && e != nil {
		return e, nil
	}
	return nil, errx.NewArgumentError(op, "fault", fmt.Sprintf("%T carries no error value", err))
}
