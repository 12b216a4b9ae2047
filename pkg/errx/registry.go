package errx

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry maps code values to codes. A value is registered at most once
// per Registry and entries are never removed. Registry is safe for
// concurrent use; construct one with NewRegistry and pass it explicitly.
type Registry struct {
	codes sync.Map // string -> *Code
	count atomic.Int64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// TryRegister inserts code if its value is not yet present. It reports
// whether this call performed the insertion.
func (r *Registry) TryRegister(code *Code) (bool, error) {
	const op = "TryRegister"
	if err := requireNonNil(op, "code", code == nil); err != nil {
		return false, err
	}
	if err := requireNonBlank(op, "code.value", code.Value()); err != nil {
		return false, err
	}
	if _, loaded := r.codes.LoadOrStore(code.Value(), code); loaded {
		return false, nil
	}
	r.count.Add(1)
	return true, nil
}

// Register is TryRegister that fails with ErrConflict on a duplicate.
func (r *Registry) Register(code *Code) error {
	ok, err := r.TryRegister(code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: error code %q is already registered", ErrConflict, code.Value())
	}
	return nil
}

// TryGet returns the code registered under value.
func (r *Registry) TryGet(value string) (*Code, bool, error) {
	if err := requireNonBlank("TryGet", "value", value); err != nil {
		return nil, false, err
	}
	v, ok := r.codes.Load(value)
	if !ok {
		return nil, false, nil
	}
	return v.(*Code), true, nil
}

// TryRegisterContext is TryRegister preceded by a cancellation check.
func (r *Registry) TryRegisterContext(ctx context.Context, code *Code) (bool, error) {
	if err := CheckContext(ctx); err != nil {
		return false, err
	}
	return r.TryRegister(code)
}

// RegisterContext is Register preceded by a cancellation check.
func (r *Registry) RegisterContext(ctx context.Context, code *Code) error {
	if err := CheckContext(ctx); err != nil {
		return err
	}
	return r.Register(code)
}

// TryGetContext is TryGet preceded by a cancellation check.
func (r *Registry) TryGetContext(ctx context.Context, value string) (*Code, bool, error) {
	if err := CheckContext(ctx); err != nil {
		return nil, false, err
	}
	return r.TryGet(value)
}

// Count returns the number of distinct registered values.
func (r *Registry) Count() int {
	return int(r.count.Load())
}

// Codes returns every registered code ordered by value.
func (r *Registry) Codes() []*Code {
	out := make([]*Code, 0, r.Count())
	r.codes.Range(func(_, v any) bool {
		out = append(out, v.(*Code))
		return true
	})
	slices.SortFunc(out, func(a, b *Code) int {
		return strings.Compare(a.Value(), b.Value())
	})
	return out
}
