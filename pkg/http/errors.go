package http

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the API. Callers branch on Code, never on message
// text: ERR_UPSTREAM_UNAVAILABLE and ERR_UPSTREAM mean "retry later",
// ERR_VALIDATION and ERR_INSUFFICIENT_DATA mean "fix your input",
// ERR_NOT_FOUND means "nothing to do".
const (
	CodeValidation          = "ERR_VALIDATION"
	CodeNotFound            = "ERR_NOT_FOUND"
	CodeInsufficientData    = "ERR_INSUFFICIENT_DATA"
	CodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	CodeUpstream            = "ERR_UPSTREAM"
	CodePersistence         = "ERR_PERSISTENCE"
	CodeUnauthorized        = "ERR_UNAUTHORIZED"
	CodeForbidden           = "ERR_FORBIDDEN"
	CodeInternal            = "ERR_INTERNAL"
)

// AppError represents application-level error with HTTP status.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Status:  status,
		Params:  make(map[string]interface{}),
	}
}

// WithParams sets error params.
func (e *AppError) WithParams(params map[string]interface{}) *AppError {
	e.Params = params
	return e
}

// WithParam sets a single error param.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// NotFoundError creates a 404 error.
func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, "", message, http.StatusNotFound)
}

// NotFoundErrorf creates a 404 error with formatting.
func NotFoundErrorf(format string, a ...interface{}) *AppError {
	return NotFoundError(fmt.Sprintf(format, a...))
}

// ValidationError creates a 400 error for malformed or out-of-range input.
func ValidationError(field, message string) *AppError {
	return NewAppError(CodeValidation, field, message, http.StatusBadRequest)
}

// InsufficientDataError creates a 422 error: the request is well-formed but
// there is not enough history to act on it.
func InsufficientDataError(message string) *AppError {
	return NewAppError(CodeInsufficientData, "", message, http.StatusUnprocessableEntity)
}

// UpstreamUnavailableError creates a 503 error: the prediction service could
// not be reached at all.
func UpstreamUnavailableError(err error) *AppError {
	return NewAppError(CodeUpstreamUnavailable, "", "prediction service unavailable", http.StatusServiceUnavailable).WithError(err)
}

// UpstreamError creates a 502 error carrying the upstream status and message.
func UpstreamError(upstreamStatus int, message string) *AppError {
	return NewAppError(CodeUpstream, "", message, http.StatusBadGateway).
		WithParam("upstream_status", upstreamStatus)
}

// PersistenceError creates a 500 error for a transaction that could not commit.
func PersistenceError(err error) *AppError {
	return NewAppError(CodePersistence, "", "could not persist changes", http.StatusInternalServerError).WithError(err)
}

// UnauthorizedError creates a 401 error.
func UnauthorizedError(message string) *AppError {
	return NewAppError(CodeUnauthorized, "", message, http.StatusUnauthorized)
}

// ForbiddenError creates a 403 error.
func ForbiddenError(message string) *AppError {
	return NewAppError(CodeForbidden, "", message, http.StatusForbidden)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError(CodeInternal, "", message, http.StatusInternalServerError)
}

// InternalErrorf creates a 500 error with formatting.
func InternalErrorf(format string, a ...interface{}) *AppError {
	return InternalError(fmt.Sprintf(format, a...))
}
