package errx

import (
	"errors"
	"fmt"
	"reflect"
)

// Fault carries an *Error through Go's error and panic mechanisms.
type Fault struct {
	err *Error
}

// NewFault wraps e. It returns nil when e is nil.
func NewFault(e *Error) *Fault {
	if e == nil {
		return nil
	}
	return &Fault{err: e}
}

// Error returns the message of the wrapped value.
func (f *Fault) Error() string {
	if f == nil || f.err == nil {
		return ""
	}
	return f.err.Message()
}

// Value returns the wrapped error value.
func (f *Fault) Value() *Error {
	if f == nil {
		return nil
	}
	return f.err
}

func (f *Fault) Unwrap() error {
	if f == nil || f.err == nil {
		return nil
	}
	return f.err
}

// Bridge converts between plain Go errors or panics and *Error values.
// Unrecognized faults become values of the fallback code.
type Bridge struct {
	fallback *Code
	factory  *Factory
}

// NewBridge returns a Bridge using fallback for unrecognized faults.
func NewBridge(fallback *Code) (*Bridge, error) {
	return NewBridgeWithFactory(fallback, defaultFactory)
}

// NewBridgeWithFactory is NewBridge with an explicit factory.
func NewBridgeWithFactory(fallback *Code, factory *Factory) (*Bridge, error) {
	const op = "NewBridge"
	if err := requireNonNil(op, "fallback", fallback == nil); err != nil {
		return nil, err
	}
	if factory == nil {
		factory = defaultFactory
	}
	return &Bridge{fallback: fallback, factory: factory}, nil
}

// Fallback returns the code used for unrecognized faults.
func (b *Bridge) Fallback() *Code {
	return b.fallback
}

// ToFault wraps e into a Fault whose message is e's message.
func (b *Bridge) ToFault(e *Error) (*Fault, error) {
	if err := requireNonNil("ToFault", "error", e == nil); err != nil {
		return nil, err
	}
	return NewFault(e), nil
}

// TryGetError returns the *Error carried by err, if any.
func (b *Bridge) TryGetError(err error) (*Error, bool, error) {
	if e := requireNonNil("TryGetError", "fault", err == nil); e != nil {
		return nil, false, e
	}
	v, ok := extract(err)
	return v, ok, nil
}

// FromFault returns the *Error carried by err, or a fallback value that
// records err's dynamic type.
func (b *Bridge) FromFault(err error) (*Error, error) {
	if e := requireNonNil("FromFault", "fault", err == nil); e != nil {
		return nil, e
	}
	if v, ok := extract(err); ok {
		return v, nil
	}
	return b.fallbackFor(err, "faultMessage", faultMessage(err)), nil
}

// FromPanic converts a recovered panic value. Error values are handled as
// in FromFault.
func (b *Bridge) FromPanic(v any) *Error {
	if err, ok := v.(error); ok && err != nil {
		if e, ok := extract(err); ok {
			return e
		}
		return b.fallbackFor(err, "panicValue", faultMessage(err))
	}
	return b.fallbackFor(v, "panicValue", fmt.Sprint(v))
}

func (b *Bridge) fallbackFor(v any, metaKey string, metaValue any) *Error {
	e, err := b.factory.Create(b.fallback)
	if err != nil {
		// the fallback code was validated by NewCode; only a blank
		// description could get here
		e = &Error{code: b.fallback, message: b.fallback.Value(), severity: b.fallback.Severity()}
	}
	if withType, err := e.WithContext("faultType", faultType(v)); err == nil {
		e = withType
	}
	if withMeta, err := e.WithMetadata(metaKey, metaValue); err == nil {
		e = withMeta
	}
	return e
}

func faultType(v any) string {
	if v == nil {
		return "UnknownFault"
	}
	return fmt.Sprintf("%T", v)
}

// faultMessage returns err.Error(), or "<nil>" for a typed nil whose
// Error method cannot run on a nil receiver.
func faultMessage(err error) (msg string) {
	if v := reflect.ValueOf(err); v.Kind() == reflect.Pointer && v.IsNil() {
		defer func() {
			if recover() != nil {
				msg = "<nil>"
			}
		}()
	}
	return err.Error()
}

func extract(err error) (*Error, bool) {
	var fault *Fault
	if errors.As(err, &fault) && fault != nil && fault.err != nil {
		return fault.err, true
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}
