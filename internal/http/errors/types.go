// Package errors is the HTTP error catalog. Handlers return *AppError values
// and WriteError renders them.
package errors

import (
	"fmt"
	"net/http"
)

// AppError es el error estándar de la API.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa: se loguea, nunca se envía
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// FromError devuelve err como *AppError, o ErrInternalServerError con err como causa.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail devuelve una copia con Detail.
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// WithCause devuelve una copia con Err.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// =================================================================================
// CATALOG
// =================================================================================

var (
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "The request is malformed.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "The request body is not valid JSON.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUnsupportedMediaType = &AppError{
		Code:       "UNSUPPORTED_MEDIA_TYPE",
		Message:    "Content-Type must be application/json.",
		HTTPStatus: http.StatusUnsupportedMediaType,
	}

	ErrBodyTooLarge = &AppError{
		Code:       "BODY_TOO_LARGE",
		Message:    "The request body exceeds the maximum size.",
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
)

var (
	ErrTokenMissing = &AppError{
		Code:       "TOKEN_MISSING",
		Message:    "A bearer token is required.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenInvalid = &AppError{
		Code:       "TOKEN_INVALID",
		Message:    "The bearer token is invalid or expired.",
		HTTPStatus: http.StatusUnauthorized,
	}
)

var (
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "The requested resource does not exist.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Method not allowed for this resource.",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
)

var (
	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests, retry later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
)

var (
	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An internal error occurred.",
		HTTPStatus: http.StatusInternalServerError,
	}
)
