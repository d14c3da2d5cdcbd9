// Package domainerrors carries coded errors from services to transports.
//
// Services return *Error values (optionally wrapping an underlying cause) and
// the HTTP layer maps the Code to a status and a JSON envelope. The Message is
// safe to show to the caller unless the code says otherwise.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeBadRequest is a malformed request the transport could not decode.
	CodeBadRequest Code = "bad_request"
	// CodeValidation is input that fails the active label policy. The user can
	// fix it by re-scanning or re-typing.
	CodeValidation Code = "validation_error"
	// CodeConfiguration is missing or malformed deployment configuration.
	CodeConfiguration Code = "configuration_error"
	// CodeDownstream is a failure reported by the print service.
	CodeDownstream Code = "downstream_error"
	// CodeInternal is anything else.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-facing message of the outermost domain error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
