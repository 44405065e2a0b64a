// Package schema validates untrusted input and coerces it into canonical
// domain records. Parsing is all-or-nothing: either every constraint holds
// and a fully typed record is returned, or a *ValidationError lists every
// violated constraint.
package schema

import (
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidType      = "invalid_type"
	CodeInvalidEnumValue = "invalid_enum_value"
	CodeInvalidDecimal   = "invalid_decimal"
	CodeInvalidDate      = "invalid_date"
	CodeUnrecognizedKeys = "unrecognized_keys"
	CodeTooSmall         = "too_small"
)

// Issue is a single violated constraint.
type Issue struct {
	Path     []string `json:"path"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Expected string   `json:"expected,omitempty"`
	Received string   `json:"received,omitempty"`
	Options  []string `json:"options,omitempty"`
	Keys     []string `json:"keys,omitempty"`
}

// ValidationError is returned when input fails one or more constraints.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		field := strings.Join(issue.Path, ".")
		if field == "" {
			msgs = append(msgs, issue.Message)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, issue.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HasIssue reports whether any issue points at field.
func (e *ValidationError) HasIssue(field string) bool {
	for _, issue := range e.Issues {
		if len(issue.Path) > 0 && issue.Path[0] == field {
			return true
		}
	}
	return false
}
