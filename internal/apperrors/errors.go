// Package apperrors defines the HTTP error taxonomy returned to API clients
// and the normalisation of storage and decoding errors into it.
package apperrors

import (
	"fmt"
	"net/http"
)

// Details carries structured context attached to an error response.
type Details map[string]any

// HTTPError is an error with a status code and a client-facing message.
// Message is shown to clients only when Expose is set or outside production.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details Details
	Expose  bool
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %s: %v", e.Status, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// New builds an HTTPError whose code is derived from status.
func New(status int, message string, details Details) *HTTPError {
	return &HTTPError{
		Status:  status,
		Code:    StatusCode(status),
		Message: message,
		Details: details,
		Expose:  status < http.StatusInternalServerError,
	}
}

// Wrap attaches the underlying cause. It is logged, never rendered.
func (e *HTTPError) Wrap(err error) *HTTPError {
	e.Err = err
	return e
}

func BadRequest(message string, details Details) *HTTPError {
	return New(http.StatusBadRequest, message, details)
}

func Unauthorized(message string) *HTTPError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *HTTPError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *HTTPError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string, details Details) *HTTPError {
	return New(http.StatusConflict, message, details)
}

func UnprocessableEntity(message string, details Details) *HTTPError {
	return New(http.StatusUnprocessableEntity, message, details)
}

func TooManyRequests(message string) *HTTPError {
	return New(http.StatusTooManyRequests, message, nil)
}

func ServiceUnavailable(message string, details Details) *HTTPError {
	return New(http.StatusServiceUnavailable, message, details)
}

func Internal(message string) *HTTPError {
	return New(http.StatusInternalServerError, message, nil)
}

// StatusCode maps an HTTP status to the machine-readable code in responses.
func StatusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
