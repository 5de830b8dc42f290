// Package errors provides the structured error type (TransformError) used for
// category-based classification across the traversal engine and its CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a TransformError for classification
type ErrorCategory string

const (
	// Contract violations by the caller
	CategoryValidation  ErrorCategory = "validation"
	CategoryUnsupported ErrorCategory = "unsupported"
	CategoryConfig      ErrorCategory = "config"

	// Infrastructure errors
	CategoryStorage    ErrorCategory = "storage"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the current traversal
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// TransformError is a structured error with category, severity, and context
type TransformError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for TransformError
type ContextFields map[string]any

// Error implements the error interface
func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *TransformError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *TransformError) WithContext(key string, value any) *TransformError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new TransformError
func New(category ErrorCategory, severity ErrorSeverity, message string) *TransformError {
	return &TransformError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new TransformError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *TransformError {
	return &TransformError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if te, ok := err.(*TransformError); ok {
		return te.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if the error is not a TransformError
func GetCategory(err error) ErrorCategory {
	if te, ok := err.(*TransformError); ok {
		return te.Category
	}
	return CategoryInternal
}
