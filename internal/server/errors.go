package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/caseforge/internal/service"
)

// HTTPStatus returns the appropriate HTTP status code for a service error.
func HTTPStatus(err error) int {
	var (
		badRequest *service.ErrBadRequest
		notFound   *service.ErrInstructionNotFound
		conflict   *service.ErrAlreadySubmitted
		rejected   *service.ErrSubmissionRejected
	)
	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &rejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
