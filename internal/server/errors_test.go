package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/career-coach/internal/career"
	"github.com/jonathan/career-coach/internal/raster"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "no identity", err: career.ErrNoIdentity, expected: http.StatusUnauthorized},
		{name: "validation", err: &career.ValidationError{Field: "content", Message: "Content cannot be empty"}, expected: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("failed to update profile: %w", &career.ValidationError{Field: "industry"}), expected: http.StatusBadRequest},
		{name: "not found", err: &career.NotFoundError{Resource: "resume"}, expected: http.StatusNotFound},
		{name: "export in progress", err: raster.ErrExportInProgress, expected: http.StatusConflict},
		{name: "capture", err: &raster.CaptureError{Reason: raster.ReasonSurfaceMissing, Message: "no surface"}, expected: http.StatusUnprocessableEntity},
		{name: "persistence", err: &career.PersistenceError{Op: "save resume", Cause: errors.New("conn reset")}, expected: http.StatusBadGateway},
		{name: "emit", err: &raster.EmitError{Message: "boom"}, expected: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
