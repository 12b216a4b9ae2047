package result

import "errkit/pkg/errx"

// Catch runs fn and turns its returned error or a panic into a failed
// Result through b. Unrecognized faults become values of b's fallback code.
func Catch(b *errx.Bridge, fn func() error) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Result{err: b.FromPanic(v)}
		}
	}()
	if err := fn(); err != nil {
		e, convErr := b.FromFault(err)
		if convErr != nil {
			return Result{err: b.FromPanic(convErr)}
		}
		return Result{err: e}
	}
	return Success()
}

// CatchOf is Catch for functions returning a value.
func CatchOf[T any](b *errx.Bridge, fn func() (T, error)) (res Of[T]) {
	defer func() {
		if v := recover(); v != nil {
			res = Of[T]{err: b.FromPanic(v)}
		}
	}()
	v, err := fn()
	if err != nil {
		e, convErr := b.FromFault(err)
		if convErr != nil {
			return Of[T]{err: b.FromPanic(convErr)}
		}
		return Of[T]{err: e}
	}
	return SuccessOf(v)
}
