package errx

import (
	"fmt"
	"strings"
)

// Severity classifies a code and every value built from it.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityFatal
)

var severityNames = [...]string{
	SeverityInfo:     "Info",
	SeverityWarning:  "Warning",
	SeverityError:    "Error",
	SeverityCritical: "Critical",
	SeverityFatal:    "Fatal",
}

// IsValid reports whether s is one of the declared severities.
func (s Severity) IsValid() bool {
	return s >= SeverityInfo && s <= SeverityFatal
}

func (s Severity) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(name string) (Severity, error) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range severityNames {
		if strings.EqualFold(candidate, trimmed) {
			return Severity(i), nil
		}
	}
	return 0, NewArgumentError("ParseSeverity", "name", fmt.Sprintf("%q is not a known severity", name))
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, NewArgumentError("MarshalText", "severity", fmt.Sprintf("%d is out of range", int(s)))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
