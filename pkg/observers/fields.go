// Package observers provides hub observers that forward published errors
// to loggers, metrics and traces.
package observers

import (
	"sort"

	"errkit/pkg/errx"
)

// Structured field keys shared by every logging observer.
const (
	KeyCode     = "error.code"
	KeyCategory = "error.category"
	KeySeverity = "error.severity"
	KeyMessage  = "error.message"
	KeyInner    = "error.inner"

	contextPrefix  = "error.context."
	metadataPrefix = "error.metadata."
)

type field struct {
	key   string
	value any
}

// fieldsOf flattens e into ordered key/value pairs. Repeated context keys
// collapse to their last value; metadata keys are sorted.
func fieldsOf(e *errx.Error) []field {
	fields := []field{
		{KeyCode, e.Code().Value()},
		{KeyCategory, e.Code().Category()},
		{KeySeverity, e.Severity().String()},
		{KeyMessage, e.Message()},
	}

	entries := e.Context()
	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		if i, ok := seen[entry.Key]; ok {
			fields[i].value = entry.Value
			continue
		}
		seen[entry.Key] = len(fields)
		fields = append(fields, field{contextPrefix + entry.Key, entry.Value})
	}

	md := e.Metadata()
	keys := make([]string, 0, len(md))
	for key := range md {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, field{metadataPrefix + key, md[key]})
	}

	if inner := e.InnerError(); inner != nil {
		fields = append(fields, field{KeyInner, inner.Code().Value()})
	}
	return fields
}
