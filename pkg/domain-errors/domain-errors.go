package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in resolution terms, not HTTP terms.
type Code string

const (
	// CodeInvalidFormat covers malformed or missing input: an entry number
	// that is not 12 digits, a blank account id, an unsupported upload file,
	// an unrecognized mii type or upload method.
	CodeInvalidFormat Code = "invalid_format"
	// CodeNotFound means an upstream explicitly reported no such record.
	CodeNotFound Code = "not_found"
	// CodeUpstream covers unexpected status codes, malformed upstream JSON,
	// and transport failures against services we do not control.
	CodeUpstream Code = "upstream_error"
	// CodeUnauthorized means no authenticated identity is bound to the request.
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal_error"
)

// Error wraps domain or infrastructure failures with a stable code.
// Field, when set, names the request field the failure should be surfaced on
// so callers can render it inline instead of as a generic failure.
type Error struct {
	Code    Code
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NewField creates an invalid-input style error attached to a request field.
func NewField(code Code, field, msg string) error {
	return &Error{Code: code, Field: field, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code and field
// are preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Field: existing.Field, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FieldOf returns the field an error is attached to, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
