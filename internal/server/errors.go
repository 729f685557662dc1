package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/interview-prep/internal/documents"
	"github.com/jonathan/interview-prep/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Only input errors are the caller's fault; configuration, provider and
// malformed-output failures are all server errors.
func HTTPStatus(err error) int {
	var (
		inputErr *types.InputError
		docErr   *documents.Error
		maxErr   *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, documents.ErrTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, documents.ErrUnsupportedFormat),
		errors.Is(err, documents.ErrEmptyDocument),
		errors.As(err, &docErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
