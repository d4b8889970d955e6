// Package errors provides a lightweight structured error type (RestVizError)
// for category-based classification in goal execution and the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a RestViz error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Goal execution errors
	CategoryGoal       ErrorCategory = "goal"
	CategoryExtractor  ErrorCategory = "extractor"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// RestVizError is a structured error with category, severity, and context
type RestVizError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for RestVizError
type ContextFields map[string]any

// Error implements the error interface
func (e *RestVizError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *RestVizError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *RestVizError) WithContext(key string, value any) *RestVizError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new RestVizError
func New(category ErrorCategory, severity ErrorSeverity, message string) *RestVizError {
	return &RestVizError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new RestVizError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *RestVizError {
	return &RestVizError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost RestVizError in err's chain.
func As(err error) (*RestVizError, bool) {
	var rve *RestVizError
	if stdErrors.As(err, &rve) {
		return rve, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if rve, ok := As(err); ok {
		return rve.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a RestVizError
func GetCategory(err error) ErrorCategory {
	if rve, ok := As(err); ok {
		return rve.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error
func ValidationError(message string) *RestVizError {
	return &RestVizError{
		Category: CategoryValidation,
		Severity: SeverityWarning,
		Message:  message,
	}
}
