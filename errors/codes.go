package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Table and pipeline errors
const (
	// ErrCodeNoRenderable indicates a value exposes none of the render capabilities.
	ErrCodeNoRenderable ErrorCode = "NO_RENDERABLE"
	// ErrCodeUnsupportedOperation indicates an operation name outside the allow-list.
	ErrCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	// ErrCodePipelineCollected indicates an operation was registered after collection.
	ErrCodePipelineCollected ErrorCode = "PIPELINE_COLLECTED"
	// ErrCodeColumnNotFound indicates a referenced column does not exist.
	ErrCodeColumnNotFound ErrorCode = "COLUMN_NOT_FOUND"
	// ErrCodeExport indicates a table could not be written to its destination.
	ErrCodeExport ErrorCode = "EXPORT_FAILED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// External and internal errors
const (
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeUnauthorized indicates the external service rejected the credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeExternalService: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
