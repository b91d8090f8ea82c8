package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jonathan/career-coach/internal/rendering"
)

// SurfaceHandle identifies a rendered document: the page holding it and the
// selector of the node to snapshot.
type SurfaceHandle struct {
	HTML     string
	Selector string
}

// Capturer snapshots a rendered surface into an image.
type Capturer interface {
	Capture(ctx context.Context, surface SurfaceHandle) (image.Image, error)
}

// CaptureOptions configures BrowserCapturer.
type CaptureOptions struct {
	// ReadySelector matches once the page reports its layout pass is done.
	ReadySelector string
	// SettleTimeout bounds the wait for ReadySelector.
	SettleTimeout time.Duration
	// SettleDelay is an optional fixed wait after the ready signal, for
	// surfaces that keep animating after layout. Zero disables it.
	SettleDelay time.Duration
	// ViewportWidth is the browser viewport width in CSS pixels.
	ViewportWidth int
	// Timeout bounds the whole capture.
	Timeout time.Duration
	// ExecPath overrides the Chrome/Chromium binary.
	ExecPath string
	Verbose  bool
}

// DefaultCaptureOptions returns options matching the default preview page.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		ReadySelector: rendering.LayoutCompleteSelector,
		SettleTimeout: 10 * time.Second,
		ViewportWidth: rendering.DefaultSurfaceWidthPx,
		Timeout:       30 * time.Second,
	}
}

// BrowserCapturer captures surfaces with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type BrowserCapturer struct {
	opts CaptureOptions
}

// NewBrowserCapturer creates a BrowserCapturer, filling zero options with defaults.
func NewBrowserCapturer(opts CaptureOptions) *BrowserCapturer {
	def := DefaultCaptureOptions()
	if opts.ReadySelector == "" {
		opts.ReadySelector = def.ReadySelector
	}
	if opts.SettleTimeout <= 0 {
		opts.SettleTimeout = def.SettleTimeout
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = def.ViewportWidth
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	return &BrowserCapturer{opts: opts}
}

// Capture loads the surface page, waits for its layout-complete signal and
// screenshots the surface node. Every failure is a *CaptureError.
func (c *BrowserCapturer) Capture(ctx context.Context, surface SurfaceHandle) (image.Image, error) {
	if err := checkSurface(surface); err != nil {
		return nil, err
	}

	if c.opts.Verbose {
		log.Printf("[capture] Starting headless browser for surface %q", surface.Selector)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.opts.Timeout)
	defer cancel()

	pageURL := "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(surface.HTML))
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(c.opts.ViewportWidth), 1024),
		chromedp.Navigate(pageURL),
	)
	if err != nil {
		return nil, &CaptureError{Reason: ReasonRasterize, Message: "failed to load surface", Cause: err}
	}

	settleCtx, cancelSettle := context.WithTimeout(browserCtx, c.opts.SettleTimeout)
	err = chromedp.Run(settleCtx, chromedp.WaitReady(c.opts.ReadySelector, chromedp.ByQuery))
	cancelSettle()
	if err != nil {
		return nil, &CaptureError{
			Reason:  ReasonNotSettled,
			Message: fmt.Sprintf("layout did not complete within %s", c.opts.SettleTimeout),
			Cause:   err,
		}
	}

	var shot []byte
	actions := []chromedp.Action{}
	if c.opts.SettleDelay > 0 {
		actions = append(actions, chromedp.Sleep(c.opts.SettleDelay))
	}
	actions = append(actions, chromedp.Screenshot(surface.Selector, &shot, chromedp.NodeVisible, chromedp.ByQuery))
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, &CaptureError{Reason: ReasonRasterize, Message: "failed to screenshot surface", Cause: err}
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, &CaptureError{Reason: ReasonRasterize, Message: "failed to decode screenshot", Cause: err}
	}

	if c.opts.Verbose {
		log.Printf("[capture] Captured surface: %dx%d px", img.Bounds().Dx(), img.Bounds().Dy())
	}
	return img, nil
}

// checkSurface rejects handles whose page doesn't contain the surface, before
// paying for a browser launch.
func checkSurface(surface SurfaceHandle) error {
	if strings.TrimSpace(surface.HTML) == "" || strings.TrimSpace(surface.Selector) == "" {
		return &CaptureError{Reason: ReasonSurfaceMissing, Message: "no renderable surface"}
	}
	ok, err := rendering.HasSurface(surface.HTML, surface.Selector)
	if err != nil {
		return &CaptureError{Reason: ReasonSurfaceMissing, Message: "surface page is unreadable", Cause: err}
	}
	if !ok {
		return &CaptureError{
			Reason:  ReasonSurfaceMissing,
			Message: fmt.Sprintf("surface %q not found", surface.Selector),
		}
	}
	return nil
}

// asCaptureError makes sure failures coming from any Capturer are reported as
// capture errors.
func asCaptureError(err error) *CaptureError {
	var ce *CaptureError
	if errors.As(err, &ce) {
		return ce
	}
	return &CaptureError{Reason: ReasonRasterize, Message: "capture failed", Cause: err}
}
