package result

import (
	"fmt"

	"errkit/pkg/errx"
)

// Of is the outcome of an operation producing a T.
type Of[T any] struct {
	value T
	err   *errx.Error
}

func SuccessOf[T any](v T) Of[T] {
	return Of[T]{value: v}
}

// FailureOf returns a failed Of. A nil e panics as in Failure.
func FailureOf[T any](e *errx.Error) Of[T] {
	if e == nil {
		panic(errx.NewArgumentError("FailureOf", "error", "must not be nil"))
	}
	return Of[T]{err: e}
}

// FromFaultOf is FromFault for Of.
func FromFaultOf[T any](err error) (Of[T], error) {
	e, err := valueOf("FromFaultOf", err)
	if err != nil {
		return Of[T]{}, err
	}
	return Of[T]{err: e}, nil
}

func (r Of[T]) IsSuccess() bool { return r.err == nil }

func (r Of[T]) IsFailure() bool { return r.err != nil }

func (r Of[T]) Err() *errx.Error { return r.err }

// Value returns the success value. Calling it on a failure panics with an
// error wrapping errx.ErrInvalidState.
func (r Of[T]) Value() T {
	if r.err != nil {
		panic(fmt.Errorf("%w: value of failed result (%s)", errx.ErrInvalidState, r.err.Code().Value()))
	}
	return r.value
}

// TryGetValue returns the value and true on success, or the zero T and
// false on failure.
func (r Of[T]) TryGetValue() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

// ToResult drops the value and keeps the error.
func (r Of[T]) ToResult() Result {
	return Result{err: r.err}
}

func (r Of[T]) AsError() error {
	return r.ToResult().AsError()
}

func (r Of[T]) ThrowIfFailure() {
	r.ToResult().ThrowIfFailure()
}

func (r Of[T]) String() string {
	return r.ToResult().String()
}
