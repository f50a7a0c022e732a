// internal/app/features/errors/errors.go

// Package errors renders the JSON error envelope of the API and logs server
// faults. Handlers funnel every terminal outcome through here so the wire
// codes stay consistent with the apperrors taxonomy.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"go.uber.org/zap"
)

// envelope is the error body: {"error":"FORBIDDEN"} plus an optional
// human-readable message.
type envelope struct {
	Error   apperrors.Code `json:"error"`
	Message string         `json:"message,omitempty"`
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeMissingParameter:
		return http.StatusBadRequest
	case apperrors.CodeDataIntegrity:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Render writes the JSON envelope for err, using its code's status.
func Render(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	msg := ""
	if e, ok := err.(*apperrors.Error); ok {
		msg = e.Message
	}
	RenderCode(w, code, msg)
}

// RenderCode writes the JSON envelope for an explicit code.
func RenderCode(w http.ResponseWriter, code apperrors.Code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(envelope{Error: code, Message: msg})
}

// ErrorLogger couples fault logging with the 500 envelope so handlers have
// a one-liner for unexpected storage errors.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger writing to the given logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs the fault with request context and answers 500
// INTERNAL_ERROR. The underlying error is never echoed to the client.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.Log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	RenderCode(w, apperrors.CodeInternal, "")
}
