package homespace

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level error
// handling (CLI exit codes, log levels). Any non-application error is
// reported as EINTERNAL.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EPARSE       = "parse"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("homespace error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// FieldError reports that a field's fragments could not be normalized.
// It carries the field name and the offending raw fragment so data
// quality problems can be reviewed from the logs.
type FieldError struct {
	Field    string
	Fragment string
	Err      error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: fragment %q: %v", e.Field, e.Fragment, e.Err)
}

// Unwrap returns the underlying cause, so ErrorCode reports the code of
// the normalizer that failed.
func (e *FieldError) Unwrap() error {
	return e.Err
}
