package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-rewriter/internal/auth"
	"github.com/jonathan/resume-rewriter/internal/chunking"
	"github.com/jonathan/resume-rewriter/internal/pipeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUploadTooLarge indicates the request body exceeded the configured limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		tooLargeErr    *ErrUploadTooLarge
		transportErr   *auth.TransportError
		unsupportedErr *chunking.UnsupportedTypeError
		documentErr    *chunking.DocumentError
	)

	switch {
	case errors.As(err, &validationErr), errors.Is(err, pipeline.ErrEmptyJobDescription):
		return http.StatusBadRequest
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupportedErr), errors.Is(err, chunking.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &documentErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message shown to clients for err. Internal causes are logged, not
// returned.
func publicMessage(err error) string {
	var (
		validationErr  *ErrValidation
		tooLargeErr    *ErrUploadTooLarge
		unsupportedErr *chunking.UnsupportedTypeError
	)

	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		if errors.As(err, &validationErr) {
			return fmt.Sprintf("Invalid request: %s %s", validationErr.Field, validationErr.Message)
		}
		return "Invalid request: job_description has no text"
	case http.StatusUnauthorized:
		return "Not Authorized"
	case http.StatusBadGateway:
		return "Authorization service unavailable"
	case http.StatusRequestEntityTooLarge:
		if errors.As(err, &tooLargeErr) {
			return fmt.Sprintf("Resume exceeds the %d byte upload limit", tooLargeErr.Limit)
		}
		return "Resume is too large"
	case http.StatusUnsupportedMediaType:
		if errors.As(err, &unsupportedErr) {
			return fmt.Sprintf("Unsupported resume type %q", unsupportedErr.ContentType)
		}
		return "Unsupported resume type"
	case http.StatusUnprocessableEntity:
		return "Resume could not be read"
	default:
		return "Failed to process resume"
	}
}
