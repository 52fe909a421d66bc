package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadGateway   = "BAD_GATEWAY"
	CodeInvalidInput = "INVALID_INPUT"
)

// AppError is the single error shape handlers translate into HTTP responses.
// Message is shown to clients; Err is the cause and is only logged.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func newAppError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func NotFound(resource string) *AppError {
	return newAppError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

func NotFoundWithID(resource, id string) *AppError {
	return NotFound(resource).WithDetails(map[string]any{"resource": resource, "id": id})
}

// Validation covers both rejected input and store-level rejections on create
// (duplicate keys, schema violations), which clients see as 422.
func Validation(message string, details map[string]any) *AppError {
	return newAppError(CodeValidation, http.StatusUnprocessableEntity, message).WithDetails(details)
}

func InvalidInput(message string) *AppError {
	return newAppError(CodeInvalidInput, http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return newAppError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newAppError(CodeForbidden, http.StatusForbidden, message)
}

func Internal(message string, err error) *AppError {
	return newAppError(CodeInternal, http.StatusInternalServerError, message).WithCause(err)
}

// BadGateway reports a failed call to a remote the request depended on.
func BadGateway(message string, err error) *AppError {
	return newAppError(CodeBadGateway, http.StatusBadGateway, message).WithCause(err)
}

// AsAppError returns the first AppError in err's chain, or wraps err as an
// internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
