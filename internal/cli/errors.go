package cli

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a saved recipe or command was not found.
type NotFoundError struct {
	Type string // "saved recipe", "command", or "theme"
	ID   string // the name or index that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Type, e.ID)
}

// AmbiguousError indicates a prefix matched more than one candidate.
type AmbiguousError struct {
	Type    string   // what was being matched
	Input   string   // the prefix typed
	Matches []string // every candidate it matched
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s %q matches: %s", e.Type, e.Input, strings.Join(e.Matches, ", "))
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
