package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Common error types
var (
	// Session errors
	ErrEntryNotFound     = New("file entry not found")
	ErrInvalidTransition = New("invalid status transition")
	ErrBatchInProgress   = New("a batch run is already in progress")

	// Configuration errors
	ErrMissingAPIKey  = NewValidation("API key is required")
	ErrNoFiles        = NewValidation("no files to process")
	ErrInvalidConfig  = New("invalid configuration")
	ErrUnknownBackend = New("transcription backend not registered")

	// Export errors
	ErrUnsupportedFormat = New("unsupported export format")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// ValidationError is returned when a batch run is refused before any network
// activity. It never alters session state.
type ValidationError struct {
	Message string
}

// NewValidation creates a validation error
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError with the same message
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Message == e.Message
}

// APIError is a non-success response from the transcription endpoint.
// Message is what gets recorded on the failed file entry.
type APIError struct {
	StatusCode int
	Message    string
}

// NewAPIError builds an APIError, falling back to a generic status message.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("API request failed: %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

func (e *APIError) Error() string {
	return e.Message
}

// Retryable reports whether the failure is on the server side. Nothing in the
// batch pipeline retries; metrics label endpoint errors with it.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// ModelDiscoveryError wraps a failure to fetch the remote model catalog.
type ModelDiscoveryError struct {
	cause error
}

// NewModelDiscoveryError wraps err as a discovery failure
func NewModelDiscoveryError(err error) *ModelDiscoveryError {
	return &ModelDiscoveryError{cause: err}
}

func (e *ModelDiscoveryError) Error() string {
	if e.cause == nil {
		return "model discovery failed"
	}
	return fmt.Sprintf("model discovery failed: %v", e.cause)
}

func (e *ModelDiscoveryError) Unwrap() error {
	return e.cause
}

// Helper functions for common patterns

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}

// OutOfRange returns an error for values outside acceptable range
func OutOfRange(field string, min, max interface{}) error {
	return Newf("%s out of range (must be between %v and %v)", field, min, max)
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return Wrapf(ErrEntryNotFound, "%s %s", itemType, identifier)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsAPIError checks if an error came from a non-success endpoint response
func IsAPIError(err error) bool {
	var ae *APIError
	return stderrors.As(err, &ae)
}

// IsModelDiscoveryError checks if an error is a catalog fetch failure
func IsModelDiscoveryError(err error) bool {
	var de *ModelDiscoveryError
	return stderrors.As(err, &de)
}
