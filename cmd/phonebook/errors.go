package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/arthur-debert/phonebook/phonebook/book"
	"github.com/arthur-debert/phonebook/phonebook/storage"
	"github.com/arthur-debert/phonebook/phonebook/store"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "open snapshot", "export")
	Cause       string   // The underlying cause (e.g., "malformed snapshot")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("failed to %s", e.Operation))
	} else {
		msg.WriteString("operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for a bad flag or argument value
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for snapshot and book failures
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		var parseErr *storage.ParseError
		switch {
		case errors.As(underlying, &parseErr):
			cause = fmt.Sprintf("malformed snapshot at line %d", parseErr.Line)
		case errors.Is(underlying, store.ErrLocked):
			cause = "snapshot is currently locked by another process"
		case errors.Is(underlying, book.ErrInconsistent):
			cause = "book indices are inconsistent"
		case errors.Is(underlying, storage.ErrUnencodable):
			cause = "a record cannot be written to the snapshot"
		case errors.Is(underlying, fs.ErrPermission):
			cause = "insufficient permissions to access snapshot"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// CommonSuggestions are hints shared by several errors
var CommonSuggestions = struct {
	SetSnapshot string
	CheckConfig string
	CheckFile   string
	CheckPerms  string
	RetryLater  string
}{
	SetSnapshot: "Pass the snapshot path as an argument or with --snapshot",
	CheckConfig: "Set PHONEBOOK_SNAPSHOT or add 'snapshot:' to phonebook.yaml",
	CheckFile:   "Each snapshot line must read: position last first middle phone",
	CheckPerms:  "Check file permissions and directory access",
	RetryLater:  "Wait for the other phonebook process to finish and retry",
}
