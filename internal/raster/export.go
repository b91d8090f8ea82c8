package raster

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync/atomic"
)

// DefaultFilename is the fixed name of the exported document.
const DefaultFilename = "resume.pdf"

// ExportState is the state of a single export invocation.
type ExportState string

// Export states
const (
	StateIdle       ExportState = "idle"
	StateCapturing  ExportState = "capturing"
	StateCaptured   ExportState = "captured"
	StateFailed     ExportState = "failed"
	StatePaginating ExportState = "paginating"
	StateEmitted    ExportState = "emitted"
)

var transitions = map[ExportState][]ExportState{
	StateIdle:       {StateCapturing},
	StateCapturing:  {StateCaptured, StateFailed},
	StateCaptured:   {StatePaginating},
	StatePaginating: {StateEmitted, StateFailed},
}

// CanTransition reports whether an export may move from one state to another.
func CanTransition(from, to ExportState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s ExportState) Terminal() bool {
	return len(transitions[s]) == 0
}

// Observer receives every state an export enters, in order.
type Observer func(ExportState)

// Result is a finished export.
type Result struct {
	PDF         []byte
	Filename    string
	PageCount   int
	ImageWidth  int
	ImageHeight int
}

// Exporter runs capture, pagination and emission for one document. Only one
// export runs at a time; a second call while busy fails fast.
type Exporter struct {
	capturer Capturer
	format   PageFormat
	busy     atomic.Bool
	verbose  bool
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithVerbose enables progress logging.
func WithVerbose(v bool) ExporterOption {
	return func(e *Exporter) { e.verbose = v }
}

// NewExporter creates an Exporter writing pages of the given format.
func NewExporter(capturer Capturer, format PageFormat, opts ...ExporterOption) *Exporter {
	if format == "" {
		format = FormatA4
	}
	e := &Exporter{capturer: capturer, format: format}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Busy reports whether an export is currently running.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export captures surface, paginates the image and emits the PDF. observe may
// be nil. Capture failures are returned as *CaptureError.
func (e *Exporter) Export(ctx context.Context, surface SurfaceHandle, observe Observer) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.busy.Store(false)

	run := &exportRun{state: StateIdle, observe: observe}

	run.enter(StateCapturing)
	img, err := e.capturer.Capture(ctx, surface)
	if err != nil {
		run.enter(StateFailed)
		log.Printf("[export] Capture failed: %v", err)
		return nil, asCaptureError(err)
	}
	run.enter(StateCaptured)

	bounds := img.Bounds()
	if e.verbose {
		log.Printf("[export] Captured %dx%d px image", bounds.Dx(), bounds.Dy())
	}

	run.enter(StatePaginating)
	pageW, pageH, err := e.format.Dimensions()
	if err != nil {
		run.enter(StateFailed)
		return nil, &EmitError{Message: "invalid page format", Cause: err}
	}
	pages, err := Paginate(img, pageW, pageH)
	if err != nil {
		run.enter(StateFailed)
		return nil, fmt.Errorf("failed to paginate capture: %w", err)
	}

	var buf bytes.Buffer
	if err := Emit(&buf, pages, e.format); err != nil {
		run.enter(StateFailed)
		log.Printf("[export] Emit failed: %v", err)
		return nil, err
	}
	run.enter(StateEmitted)

	if e.verbose {
		log.Printf("[export] Emitted %s: %d page(s), %d bytes", DefaultFilename, len(pages), buf.Len())
	}

	return &Result{
		PDF:         buf.Bytes(),
		Filename:    DefaultFilename,
		PageCount:   len(pages),
		ImageWidth:  bounds.Dx(),
		ImageHeight: bounds.Dy(),
	}, nil
}

type exportRun struct {
	state   ExportState
	observe Observer
}

func (r *exportRun) enter(next ExportState) {
	if !CanTransition(r.state, next) {
		panic(fmt.Sprintf("raster: invalid export transition %s -> %s", r.state, next))
	}
	r.state = next
	if r.observe != nil {
		r.observe(next)
	}
}
