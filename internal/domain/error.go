package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes. The HTTP layer maps each one to a status.
const (
	EINVALID      = "invalid"      // 400: bad input, duplicate ISBN, unknown status, malformed search
	EUNAUTHORIZED = "unauthorized" // 401
	EFORBIDDEN    = "forbidden"    // 403
	ENOTFOUND     = "not_found"    // 404: missing, or owned by someone else
	ECONFLICT     = "conflict"     // 409: empty cart at placement, email taken
	EINTERNAL     = "internal"     // 500: details stay in the logs
)

const internalMessage = "An internal error occurred. Please try again later."

// Error is the application error carried from services to handlers.
//
// Kind sentinels (ErrBookNotFound, ErrEmptyCart, ...) are *Error values.
// Services wrap them with WrapError so errors.Is still matches while the
// message names the offending id.
type Error struct {
	Code    string // one of the E* constants
	Message string // safe to show to API clients
	Op      string // where it happened, e.g. "cart.add_line"; logs only
	Err     error  // cause, if any
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	parts = append(parts, e.Message)
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the outermost *Error in err's chain, or
// EINTERNAL when there is none.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the client-facing message. Internal errors and
// foreign errors get a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok && e.Code != EINTERNAL {
		return e.Message
	}
	return internalMessage
}

// ErrorOp returns the operation recorded on err, if any.
func ErrorOp(err error) string {
	if e, ok := asError(err); ok {
		return e.Op
	}
	return ""
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Errorf builds an error with a formatted message.
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps err (usually a kind sentinel) under code and op with a
// more specific message. A nil err stays nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: message, Err: err}
}

func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

func Unauthorized(op, message string) error {
	return &Error{Code: EUNAUTHORIZED, Op: op, Message: message}
}

func Forbidden(op, message string) error {
	return &Error{Code: EFORBIDDEN, Op: op, Message: message}
}

// Internal wraps an infrastructure failure. Clients only see a generic message.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}

// ValidationError reports per-field problems with a request body or query.
// It always maps to EINVALID.
type ValidationError struct {
	Fields map[string]string // field name -> message
	Op     string
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(op, field, message string) *ValidationError {
	return &ValidationError{Op: op, Fields: map[string]string{field: message}}
}

// Add records another field problem and returns e.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

func (e *ValidationError) Error() string {
	var detail string
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			detail = field + ": " + msg
		}
	} else {
		names := make([]string, 0, len(e.Fields))
		for field := range e.Fields {
			names = append(names, field)
		}
		sort.Strings(names)
		detail = fmt.Sprintf("validation failed for %d fields (%s)", len(names), strings.Join(names, ", "))
	}
	if e.Op != "" {
		return e.Op + ": " + detail
	}
	return detail
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationFields returns the field messages of a *ValidationError in
// err's chain, or nil.
func GetValidationFields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
