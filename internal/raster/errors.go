package raster

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when an export is started while another one
// on the same exporter has not finished.
var ErrExportInProgress = errors.New("export already in progress")

// ErrInvalidGeometry is returned when an image or page has no area.
var ErrInvalidGeometry = errors.New("invalid geometry")

// CaptureReason classifies a capture failure.
type CaptureReason string

// Capture failure reasons
const (
	ReasonSurfaceMissing CaptureReason = "surface_missing"
	ReasonNotSettled     CaptureReason = "not_settled"
	ReasonRasterize      CaptureReason = "rasterize_failed"
)

// CaptureError is a terminal failure to snapshot the preview surface. It is
// reported as-is; retrying cannot help until the caller re-renders.
type CaptureError struct {
	Reason  CaptureReason
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error (%s): %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("capture error (%s): %s", e.Reason, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// EmitError represents a failure assembling the output document
type EmitError struct {
	Message string
	Cause   error
}

func (e *EmitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("emit error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("emit error: %s", e.Message)
}

func (e *EmitError) Unwrap() error {
	return e.Cause
}
