package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// NoRenderable reports that kind exposes no display, HTML or MIME rendering.
func NoRenderable(kind string) *AppError {
	return &AppError{
		Code:    ErrCodeNoRenderable,
		Message: fmt.Sprintf("%s has no renderable representation", kind),
		Details: map[string]any{"kind": kind},
	}
}

// UnsupportedOperation reports an operation name outside the table allow-list.
func UnsupportedOperation(name string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedOperation,
		Message: fmt.Sprintf("unsupported operation %q", name),
		Details: map[string]any{"operation": name},
	}
}

// PipelineCollected reports an operation registered after the pipeline was collected.
func PipelineCollected(name string) *AppError {
	return &AppError{
		Code:    ErrCodePipelineCollected,
		Message: fmt.Sprintf("cannot register %q: pipeline already collected, call Reset first", name),
		Details: map[string]any{"operation": name},
	}
}

// ColumnNotFound reports a reference to a column that does not exist.
func ColumnNotFound(name string) *AppError {
	return &AppError{
		Code:    ErrCodeColumnNotFound,
		Message: fmt.Sprintf("column %q not found", name),
		Details: map[string]any{"column": name},
	}
}

// Export reports a failure writing a table to path.
func Export(path string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeExport,
		Message: fmt.Sprintf("export to %s failed", path),
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// InvalidFormat creates a new AppError for an invalid field format.
func InvalidFormat(field, expectedFormat string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		Details: map[string]any{"field": field, "expected_format": expectedFormat},
	}
}

// Unauthorized creates a new AppError for rejected credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{Code: ErrCodeUnauthorized, Message: reason}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "An unexpected error occurred.",
		Cause:   cause,
	}
}

// ExternalServiceError creates a new AppError for an error from an external service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		Retryable: true,
		Details:   map[string]any{"service": service},
		Cause:     cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
