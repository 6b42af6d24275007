// Package errors provides the structured error type shared by every tablekit
// package. Errors carry a machine-readable code so callers can branch on what
// went wrong (an unsupported pipeline operation, a missing column, a failed
// email delivery) without string matching.
package errors
