package errx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UserString returns a user-safe error message.
// It extracts the message of the first errx.Error in the chain,
// falling back to the standard error message for non-errx errors.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		if e.message != "" {
			return e.message
		}
		if desc := e.code.Description(); desc != "" {
			return desc
		}
		if v := e.code.Value(); v != "" {
			return v
		}
	}
	return err.Error()
}

// IsError checks if the given error is or wraps an errx.Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// CodeOf returns the code value of the first errx.Error in the chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code().Value()
	}
	return ""
}

// HasCode reports whether any errx.Error in the chain carries code.
func HasCode(err error, code *Code) bool {
	if err == nil || code == nil {
		return false
	}
	for _, item := range flattenChain(err) {
		if e, ok := item.(*Error); ok && e.Code().Value() == code.Value() {
			return true
		}
	}
	return false
}

// DebugString returns a verbose error string with codes, context, and chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Error:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, typed, typed.Error()))
			b.WriteString(fmt.Sprintf(" | code=%s", typed.code.Value()))
			b.WriteString(fmt.Sprintf(" | severity=%s", typed.severity))
			if cat := typed.code.Category(); cat != "" {
				b.WriteString(fmt.Sprintf(" | category=%q", cat))
			}
			b.WriteString(fmt.Sprintf(" | message=%q", typed.message))
			if len(typed.context) > 0 {
				b.WriteString(" | context={")
				b.WriteString(formatEntries(typed.context))
				b.WriteByte('}')
			}
			if len(typed.metadata) > 0 {
				b.WriteString(" | metadata={")
				b.WriteString(formatMetadata(typed.metadata))
				b.WriteByte('}')
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, item.Error()))
		}
	}
	return b.String()
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func formatEntries(entries []ContextEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.String())
	}
	return strings.Join(parts, ", ")
}

func formatMetadata(md map[string]any) string {
	keys := make([]string, 0, len(md))
	for key := range md {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, md[key]))
	}
	return strings.Join(parts, ", ")
}
