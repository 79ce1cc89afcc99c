package server

import (
	"errors"
	"net/http"

	"github.com/spigell/ats-scorer/internal/pipeline"
	"github.com/spigell/ats-scorer/internal/textextract"
)

// RequestError is an error with a client-facing message and status.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func badRequest(message string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message}
}

// HTTPStatus returns the HTTP status code for err.
func HTTPStatus(err error) int {
	var (
		reqErr      *RequestError
		unsupported *textextract.UnsupportedTypeError
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &reqErr):
		return reqErr.Status
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported),
		errors.Is(err, textextract.ErrNoText),
		errors.Is(err, pipeline.ErrEmptyResume),
		errors.Is(err, pipeline.ErrEmptyJobDescription):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the text sent to clients for err. Internal errors
// get fallback instead of their details.
func publicMessage(err error, fallback string) string {
	var unsupported *textextract.UnsupportedTypeError
	switch {
	case errors.As(err, &unsupported):
		return "Only PDF and DOCX files are allowed"
	case errors.Is(err, textextract.ErrNoText):
		return "Could not extract text from resume"
	case errors.Is(err, pipeline.ErrEmptyResume):
		return "Resume text or file is required"
	case errors.Is(err, pipeline.ErrEmptyJobDescription):
		return "Job description is required"
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "File too large"
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return fallback
}
