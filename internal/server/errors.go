package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/career-coach/internal/career"
	"github.com/jonathan/career-coach/internal/raster"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *career.ValidationError
		notFound    *career.NotFoundError
		persistence *career.PersistenceError
		capture     *raster.CaptureError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, career.ErrNoIdentity):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, raster.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &capture):
		return http.StatusUnprocessableEntity
	case errors.As(err, &persistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
