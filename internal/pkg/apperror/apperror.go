package apperror

import (
	"context"
	"errors"
	"net/http"

	"github.com/venuebook/venuebook-api/internal/pkg/logger"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
)

// Error kinds shared by every domain package
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Error is a domain error with a human readable message and a kind
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// NotFound creates a NotFound domain error
func NotFound(message string) *Error {
	return &Error{kind: ErrNotFound, message: message}
}

// Conflict creates a Conflict domain error
func Conflict(message string) *Error {
	return &Error{kind: ErrConflict, message: message}
}

// InvalidInput creates an InvalidInput domain error
func InvalidInput(message string) *Error {
	return &Error{kind: ErrInvalidInput, message: message}
}

// Status maps an error to HTTP status and response code
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "REQUEST_TIMEOUT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// Respond writes err to the client. Unknown errors are logged and hidden
// behind a generic 500.
func Respond(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := Status(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(ctx).Error().
			Err(err).
			Msg("Request failed")
		response.InternalError(w)
		return
	}

	message := err.Error()
	var domainErr *Error
	switch {
	case errors.As(err, &domainErr):
		message = domainErr.message
	case status == http.StatusServiceUnavailable:
		message = "Request timed out"
	}
	response.Error(w, status, code, message)
}

