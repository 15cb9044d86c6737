package errors

import (
	"sort"
	"strings"
)

// ValidationError collects field-level input problems.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a problem for field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

// HasErrors reports whether any field was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, m := range e.Fields {
		parts = append(parts, f+": "+m)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
