// Package problem renders errx values as problem details documents
// (RFC 7807) with lowerCamelCase JSON members.
package problem

import (
	"time"

	"errkit/pkg/errx"
)

// DefaultType is used when neither an explicit type nor a code
// documentation link is available.
const DefaultType = "about:blank"

// Extension keys set by FromError.
const (
	ExtCode      = "code"
	ExtSeverity  = "severity"
	ExtTimestamp = "timestamp"
	ExtContext   = "context"
	ExtMetadata  = "metadata"
	ExtInner     = "inner"
)

// Details is a problem details document.
type Details struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     *int           `json:"status,omitempty"`
	Detail     string         `json:"detail"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type options struct {
	status   *int
	typ      string
	instance string
}

// Option configures FromError.
type Option func(*options)

func WithStatus(status int) Option {
	return func(o *options) { o.status = &status }
}

// WithType overrides the problem type URI.
func WithType(typ string) Option {
	return func(o *options) { o.typ = typ }
}

func WithInstance(instance string) Option {
	return func(o *options) { o.instance = instance }
}

// FromError builds Details from e.
func FromError(e *errx.Error, opts ...Option) (*Details, error) {
	if e == nil {
		return nil, errx.NewArgumentError("FromError", "error", "must not be nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	typ := o.typ
	if typ == "" {
		typ = e.Code().DocumentationLink()
	}
	if typ == "" {
		typ = DefaultType
	}

	ext := map[string]any{
		ExtCode:      e.Code().Value(),
		ExtSeverity:  e.Severity().String(),
		ExtTimestamp: e.Timestamp().Format(time.RFC3339Nano),
	}
	if entries := e.Context(); len(entries) > 0 {
		ext[ExtContext] = entries
	}
	if md := e.Metadata(); len(md) > 0 {
		ext[ExtMetadata] = md
	}
	if inner := e.InnerError(); inner != nil {
		ext[ExtInner] = inner.Code().Value()
	}

	return &Details{
		Type:       typ,
		Title:      e.Code().Description(),
		Status:     o.status,
		Detail:     e.Message(),
		Instance:   o.instance,
		Extensions: ext,
	}, nil
}

// StatusOr returns the status, or def when unset.
func (d *Details) StatusOr(def int) int {
	if d == nil || d.Status == nil {
		return def
	}
	return *d.Status
}

func (d *Details) validate(op string) error {
	if d == nil {
		return errx.NewArgumentError(op, "details", "must not be nil")
	}
	for _, f := range []struct{ name, value string }{
		{"type", d.Type},
		{"title", d.Title},
		{"detail", d.Detail},
	} {
		if isBlank(f.value) {
			return errx.NewArgumentError(op, f.name, "must not be empty or whitespace")
		}
	}
	return nil
}
