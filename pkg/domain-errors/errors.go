// Package domainerrors provides coded domain errors. Services translate
// infrastructure sentinels (pkg/platform/sentinel) into these so transport
// layers and callers can branch on a stable code rather than error text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks bad caller input.
	CodeValidation Code = "validation"

	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"

	// CodePrecondition marks a rejected operation: the event cannot be
	// handled in the case's current state. No side effects occurred.
	CodePrecondition Code = "precondition"

	// CodeConfiguration marks a fault in process configuration, such as a
	// missing template binding. Fatal, never retried.
	CodeConfiguration Code = "configuration"

	// CodeUnavailable marks a downstream transport failure that external
	// retry of the triggering event may resolve.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks an unexpected internal failure.
	CodeInternal Code = "internal"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error. A nil err yields nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.Cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
