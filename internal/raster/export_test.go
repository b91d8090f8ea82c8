package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	img     image.Image
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeCapturer) Capture(ctx context.Context, _ SurfaceHandle) (image.Image, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}

var testSurface = SurfaceHandle{HTML: `<div class="resume-preview">x</div>`, Selector: "div.resume-preview"}

func recordStates() (*[]ExportState, Observer) {
	var states []ExportState
	return &states, func(s ExportState) { states = append(states, s) }
}

func TestExporter_Success(t *testing.T) {
	fc := &fakeCapturer{img: gradient(794, 2600)}
	exp := NewExporter(fc, FormatA4)
	states, observe := recordStates()

	res, err := exp.Export(context.Background(), testSurface, observe)
	require.NoError(t, err)

	assert.Equal(t, []ExportState{StateCapturing, StateCaptured, StatePaginating, StateEmitted}, *states)
	assert.Equal(t, "resume.pdf", res.Filename)
	assert.Equal(t, 3, res.PageCount)
	assert.Equal(t, 794, res.ImageWidth)
	assert.Equal(t, 2600, res.ImageHeight)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
	assert.Equal(t, 3, pdfPageCount(t, res.PDF))
	assert.False(t, exp.Busy())
}

func TestExporter_CaptureFailure(t *testing.T) {
	fc := &fakeCapturer{err: &CaptureError{Reason: ReasonSurfaceMissing, Message: "surface not found"}}
	exp := NewExporter(fc, FormatA4)
	states, observe := recordStates()

	res, err := exp.Export(context.Background(), testSurface, observe)
	assert.Nil(t, res)

	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ReasonSurfaceMissing, ce.Reason)
	assert.Equal(t, []ExportState{StateCapturing, StateFailed}, *states)
	assert.False(t, exp.Busy(), "busy flag must clear after failure")
}

func TestExporter_WrapsForeignCaptureErrors(t *testing.T) {
	boom := errors.New("browser crashed")
	exp := NewExporter(&fakeCapturer{err: boom}, FormatA4)

	_, err := exp.Export(context.Background(), testSurface, nil)

	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ReasonRasterize, ce.Reason)
	assert.ErrorIs(t, err, boom)
}

func TestExporter_InvalidCaptureFails(t *testing.T) {
	exp := NewExporter(&fakeCapturer{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}, FormatA4)
	states, observe := recordStates()

	_, err := exp.Export(context.Background(), testSurface, observe)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.Equal(t, StateFailed, (*states)[len(*states)-1])
}

func TestExporter_RejectsConcurrentExport(t *testing.T) {
	fc := &fakeCapturer{
		img:     gradient(100, 100),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	exp := NewExporter(fc, FormatA4)

	done := make(chan error, 1)
	go func() {
		_, err := exp.Export(context.Background(), testSurface, nil)
		done <- err
	}()

	<-fc.started
	assert.True(t, exp.Busy())

	_, err := exp.Export(context.Background(), testSurface, nil)
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(fc.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fc.calls)
	assert.False(t, exp.Busy())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateIdle, StateCapturing))
	assert.True(t, CanTransition(StateCapturing, StateFailed))
	assert.False(t, CanTransition(StateIdle, StateEmitted))
	assert.False(t, CanTransition(StateFailed, StateCapturing))
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateEmitted.Terminal())
	assert.False(t, StateCaptured.Terminal())
}

func TestBrowserCapturer_MissingSurface(t *testing.T) {
	c := NewBrowserCapturer(CaptureOptions{})

	tests := []struct {
		name    string
		surface SurfaceHandle
	}{
		{"empty page", SurfaceHandle{Selector: "div.resume-preview"}},
		{"empty selector", SurfaceHandle{HTML: "<p>hi</p>"}},
		{"selector absent", SurfaceHandle{HTML: "<html><body><p>hi</p></body></html>", Selector: "div.resume-preview"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Capture(context.Background(), tt.surface)
			var ce *CaptureError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, ReasonSurfaceMissing, ce.Reason)
		})
	}
}
