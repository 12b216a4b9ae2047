package errx

import (
	"maps"
	"slices"
	"time"
)

// Error is an immutable occurrence of a Code. Every With* method returns a
// derived value and leaves the receiver untouched; collections that a
// method does not change are shared between the two values.
type Error struct {
	code      *Code
	message   string
	severity  Severity
	context   []ContextEntry
	metadata  map[string]any
	inner     *Error
	timestamp time.Time
}

// New builds an Error from code using the current time.
func New(code *Code, opts ...Option) (*Error, error) {
	return defaultFactory.Create(code, opts...)
}

// MustNew is like New but panics on invalid input.
func MustNew(code *Code, opts ...Option) *Error {
	e, err := New(code, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Error implements the error interface as "<code>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.code.Value() + ": " + e.message
}

// Unwrap returns the inner error so errors.As walks the cause chain.
func (e *Error) Unwrap() error {
	if e == nil || e.inner == nil {
		return nil
	}
	return e.inner
}

// Code returns the code e was built from.
func (e *Error) Code() *Code {
	if e == nil {
		return nil
	}
	return e.code
}

// Message returns the message, which defaults to the code description.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Severity is copied from the code when the value is built.
func (e *Error) Severity() Severity {
	if e == nil {
		return SeverityError
	}
	return e.severity
}

// Context returns a copy of the ordered context entries.
func (e *Error) Context() []ContextEntry {
	if e == nil || len(e.context) == 0 {
		return nil
	}
	return slices.Clone(e.context)
}

// Metadata returns a copy of the metadata bag.
func (e *Error) Metadata() map[string]any {
	if e == nil || len(e.metadata) == 0 {
		return nil
	}
	return maps.Clone(e.metadata)
}

// MetadataValue returns a single metadata value.
func (e *Error) MetadataValue(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	v, ok := e.metadata[key]
	return v, ok
}

// InnerError returns the wrapped cause, or nil.
func (e *Error) InnerError() *Error {
	if e == nil {
		return nil
	}
	return e.inner
}

// Timestamp returns when e was built.
func (e *Error) Timestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.timestamp
}

// WithContext returns a copy with one more context entry.
func (e *Error) WithContext(key, value string) (*Error, error) {
	return e.withEntry("WithContext", ContextEntry{Key: key, Value: value})
}

// WithContextEntry is WithContext for a prebuilt entry.
func (e *Error) WithContextEntry(entry ContextEntry) (*Error, error) {
	return e.withEntry("WithContextEntry", entry)
}

func (e *Error) withEntry(op string, entry ContextEntry) (*Error, error) {
	if err := requireNonNil(op, "receiver", e == nil); err != nil {
		return nil, err
	}
	if err := entry.validate(op); err != nil {
		return nil, err
	}
	next := make([]ContextEntry, len(e.context), len(e.context)+1)
	copy(next, e.context)
	clone := e.clone()
	clone.context = append(next, entry)
	return clone, nil
}

// WithMetadata returns a copy with key set to value.
func (e *Error) WithMetadata(key string, value any) (*Error, error) {
	const op = "WithMetadata"
	if err := requireNonNil(op, "receiver", e == nil); err != nil {
		return nil, err
	}
	if err := requireNonBlank(op, "key", key); err != nil {
		return nil, err
	}
	clone := e.clone()
	clone.metadata = copyMetadata(e.metadata, 1)
	clone.metadata[key] = value
	return clone, nil
}

// WithMetadataMap merges m into a copy of the metadata. An empty m returns
// the receiver. Every key is checked before anything is merged.
func (e *Error) WithMetadataMap(m map[string]any) (*Error, error) {
	const op = "WithMetadataMap"
	if err := requireNonNil(op, "receiver", e == nil); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return e, nil
	}
	for key := range m {
		if err := requireNonBlank(op, "key", key); err != nil {
			return nil, err
		}
	}
	clone := e.clone()
	clone.metadata = copyMetadata(e.metadata, len(m))
	maps.Copy(clone.metadata, m)
	return clone, nil
}

// WithInnerError returns a copy whose inner error is inner. An existing
// inner error is replaced, not chained.
func (e *Error) WithInnerError(inner *Error) (*Error, error) {
	const op = "WithInnerError"
	if err := requireNonNil(op, "receiver", e == nil); err != nil {
		return nil, err
	}
	if err := requireNonNil(op, "inner", inner == nil); err != nil {
		return nil, err
	}
	clone := e.clone()
	clone.inner = inner
	return clone, nil
}

func (e *Error) clone() *Error {
	c := *e
	return &c
}

func copyMetadata(src map[string]any, extra int) map[string]any {
	dst := make(map[string]any, len(src)+extra)
	maps.Copy(dst, src)
	return dst
}
