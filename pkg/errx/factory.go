package errx

import (
	"context"
	"slices"
	"time"
)

var defaultFactory = NewFactory()

type createOptions struct {
	message *string
	inner   *Error
	entries []ContextEntry
}

// Option configures a single Create call.
type Option func(*createOptions)

// WithMessage overrides the code description. An explicit blank message
// is rejected rather than replaced.
func WithMessage(msg string) Option {
	return func(o *createOptions) { o.message = &msg }
}

// WithCause sets the inner error. A nil cause leaves it unset.
func WithCause(inner *Error) Option {
	return func(o *createOptions) { o.inner = inner }
}

// WithEntries appends context entries in order.
func WithEntries(entries ...ContextEntry) Option {
	return func(o *createOptions) { o.entries = append(o.entries, entries...) }
}

// Factory builds Error values from codes.
type Factory struct {
	now func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFactory returns a Factory stamping errors with time.Now.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create validates its input and builds an Error stamped with the factory
// clock in UTC.
func (f *Factory) Create(code *Code, opts ...Option) (*Error, error) {
	const op = "Create"
	if err := requireNonNil(op, "code", code == nil); err != nil {
		return nil, err
	}

	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	message := code.Description()
	if o.message != nil {
		message = *o.message
	}
	if err := requireNonBlank(op, "message", message); err != nil {
		return nil, err
	}

	var entries []ContextEntry
	if len(o.entries) > 0 {
		for _, entry := range o.entries {
			if err := entry.validate(op); err != nil {
				return nil, err
			}
		}
		entries = slices.Clone(o.entries)
	}

	return &Error{
		code:      code,
		message:   message,
		severity:  code.Severity(),
		context:   entries,
		inner:     o.inner,
		timestamp: f.now().UTC(),
	}, nil
}

// CreateContext is Create preceded by a cancellation check.
func (f *Factory) CreateContext(ctx context.Context, code *Code, opts ...Option) (*Error, error) {
	if err := CheckContext(ctx); err != nil {
		return nil, err
	}
	return f.Create(code, opts...)
}
