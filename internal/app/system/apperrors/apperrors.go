// internal/app/system/apperrors/apperrors.go

// Package apperrors defines the closed set of terminal error outcomes the
// policy and flattening layers report to the transport boundary. The codes
// are part of the JSON API contract; transports map them to HTTP statuses.
//
// These errors are never used for control flow and never retried internally.
package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies the error class on the wire.
type Code string

const (
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeMissingParameter Code = "MISSING_PARAMETER"
	CodeDataIntegrity    Code = "DATA_INTEGRITY"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// Error is a coded terminal outcome.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is match on the code, so sentinel comparisons like
// errors.Is(err, apperrors.Forbidden("")) work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func Forbidden(msg string) *Error        { return &Error{Code: CodeForbidden, Message: msg} }
func NotFound(msg string) *Error         { return &Error{Code: CodeNotFound, Message: msg} }
func MissingParameter(msg string) *Error { return &Error{Code: CodeMissingParameter, Message: msg} }
func DataIntegrity(msg string) *Error    { return &Error{Code: CodeDataIntegrity, Message: msg} }
func Internal(msg string) *Error         { return &Error{Code: CodeInternal, Message: msg} }

// CodeOf extracts the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
