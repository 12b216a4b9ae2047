package errx

import (
	"fmt"
	"net/url"
)

// Code describes a class of errors. It is immutable once built and its
// value is the only identity key.
type Code struct {
	value       string
	description string
	severity    Severity
	category    string
	docs        string
}

type codeOptions struct {
	severity Severity
	category *string
	docs     *string
}

// CodeOption configures optional Code attributes.
type CodeOption func(*codeOptions)

// WithSeverity overrides the default SeverityError.
func WithSeverity(s Severity) CodeOption {
	return func(o *codeOptions) { o.severity = s }
}

// WithCategory sets the code category. A blank category is rejected.
func WithCategory(category string) CodeOption {
	return func(o *codeOptions) { o.category = &category }
}

// WithDocumentation sets an absolute documentation URI for the code.
func WithDocumentation(link string) CodeOption {
	return func(o *codeOptions) { o.docs = &link }
}

// NewCode validates and builds a Code.
func NewCode(value, description string, opts ...CodeOption) (*Code, error) {
	const op = "NewCode"
	if err := requireNonBlank(op, "value", value); err != nil {
		return nil, err
	}
	if err := requireNonBlank(op, "description", description); err != nil {
		return nil, err
	}

	o := codeOptions{severity: SeverityError}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.severity.IsValid() {
		return nil, NewArgumentError(op, "severity", fmt.Sprintf("%d is out of range", int(o.severity)))
	}

	c := &Code{value: value, description: description, severity: o.severity}
	if o.category != nil {
		if err := requireNonBlank(op, "category", *o.category); err != nil {
			return nil, err
		}
		c.category = *o.category
	}
	if o.docs != nil {
		u, err := url.Parse(*o.docs)
		if err != nil || !u.IsAbs() {
			return nil, NewArgumentError(op, "documentationLink", fmt.Sprintf("%q is not an absolute URI", *o.docs))
		}
		c.docs = u.String()
	}
	return c, nil
}

// MustCode is like NewCode but panics on invalid input. It is meant for
// package-level code declarations.
func MustCode(value, description string, opts ...CodeOption) *Code {
	c, err := NewCode(value, description, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the unique code string, such as "SYS_001".
func (c *Code) Value() string {
	if c == nil {
		return ""
	}
	return c.value
}

// Description returns the human readable description.
func (c *Code) Description() string {
	if c == nil {
		return ""
	}
	return c.description
}

// Severity returns the default severity of errors built from c.
func (c *Code) Severity() Severity {
	if c == nil {
		return SeverityError
	}
	return c.severity
}

// Category returns the category, or "" when the code has none.
func (c *Code) Category() string {
	if c == nil {
		return ""
	}
	return c.category
}

// DocumentationLink returns the documentation URI, or "" when unset.
func (c *Code) DocumentationLink() string {
	if c == nil {
		return ""
	}
	return c.docs
}

// String returns the code value.
func (c *Code) String() string {
	return c.Value()
}
