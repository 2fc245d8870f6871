package domain

import (
	"errors"
	"fmt"
)

// Application error codes
const (
	EFETCH    = "fetch"    // Read from the upstream API failed (non-2xx or transport)
	EMUTATION = "mutation" // Write to the upstream API failed (non-2xx or transport)
	ESCHEMA   = "schema"   // Upstream response body did not match the expected shape
	EINVALID  = "invalid"  // Invalid input or operation not allowed in current state
	EINTERNAL = "internal" // Internal error
)

// Error represents an application error with structured information.
type Error struct {
	Code    string // Machine-readable error code
	Op      string // Operation that failed (e.g., "customers.list")
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, or EINTERNAL if none.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the human-readable message of the error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return "An internal error occurred. Please try again later."
}

// ErrorOp returns the operation of the root error, if any.
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Convenience constructors for common error types

// FetchFailed creates a fetch error for a failed upstream read.
func FetchFailed(op string, status int, err error) *Error {
	msg := "upstream request failed"
	if status > 0 {
		msg = fmt.Sprintf("upstream returned status %d", status)
	}
	return &Error{Code: EFETCH, Op: op, Message: msg, Err: err}
}

// MutationFailed creates a mutation error for a failed upstream write.
func MutationFailed(op string, status int, err error) *Error {
	msg := "upstream request failed"
	if status > 0 {
		msg = fmt.Sprintf("upstream returned status %d", status)
	}
	return &Error{Code: EMUTATION, Op: op, Message: msg, Err: err}
}

// Malformed creates a schema error for an upstream body that does not
// match the expected shape.
func Malformed(op, message string, err error) *Error {
	return &Error{Code: ESCHEMA, Op: op, Message: message, Err: err}
}

// Invalid creates a validation error.
func Invalid(op, message string) *Error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Internal creates an internal error, wrapping the underlying error.
func Internal(err error, op, message string) *Error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}
