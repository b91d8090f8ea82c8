package rendering

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// SurfaceSelector locates the rendered document inside the preview page.
const SurfaceSelector = "div.resume-preview"

// LayoutCompleteSelector matches once the preview page has finished its layout pass.
const LayoutCompleteSelector = `body[data-layout-complete="true"]`

// Default preview geometry: an A4-wide surface at 96 DPI.
const (
	DefaultSurfaceWidthPx = 794
	DefaultPaddingPx      = 32
)

// PreviewOptions controls the geometry of the preview surface.
type PreviewOptions struct {
	WidthPx   int
	PaddingPx int
}

func (o PreviewOptions) withDefaults() PreviewOptions {
	if o.WidthPx <= 0 {
		o.WidthPx = DefaultSurfaceWidthPx
	}
	if o.PaddingPx < 0 {
		o.PaddingPx = DefaultPaddingPx
	}
	return o
}

// previewTemplate is the standalone page the rasterizer captures. The inline
// script flags <body> once fonts are loaded and two frames have painted.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Resume</title>
<style>
html, body { margin: 0; padding: 0; background: #ffffff; }
.resume-preview {
  box-sizing: border-box;
  width: %dpx;
  padding: %dpx;
  background: #ffffff;
  color: #000000;
  font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif, "Apple Color Emoji", "Segoe UI Emoji";
  font-size: 14px;
  line-height: 1.5;
  overflow: visible;
}
.resume-preview h1 { font-size: 28px; margin: 0 0 8px; }
.resume-preview h2 { font-size: 20px; border-bottom: 1px solid #d0d7de; padding-bottom: 4px; margin: 20px 0 8px; }
.resume-preview h3 { font-size: 16px; margin: 12px 0 2px; }
.resume-preview a { color: #0969da; text-decoration: none; }
</style>
</head>
<body>
<div class="resume-preview">
%s
</div>
<script>
(function () {
  var done = function () {
    requestAnimationFrame(function () {
      requestAnimationFrame(function () {
        document.body.setAttribute("data-layout-complete", "true");
      });
    });
  };
  if (document.fonts && document.fonts.ready) {
    document.fonts.ready.then(done, done);
  } else {
    done();
  }
})();
</script>
</body>
</html>`

// Previewer converts document markdown into the preview page.
type Previewer struct {
	md   goldmark.Markdown
	opts PreviewOptions
}

// NewPreviewer creates a Previewer with GFM extensions.
func NewPreviewer(opts PreviewOptions) *Previewer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Previewer{md: md, opts: opts.withDefaults()}
}

// PreviewPage renders markdown to a complete HTML page containing the
// capture surface. Goldmark has no context support, so ctx is only checked up front.
func (p *Previewer) PreviewPage(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := p.md.Convert([]byte(markdown), &buf); err != nil {
		return "", &RenderError{
			Message: "failed to convert markdown",
			Cause:   err,
		}
	}

	return fmt.Sprintf(previewTemplate, p.opts.WidthPx, p.opts.PaddingPx, buf.String()), nil
}

// HasSurface reports whether the page contains a node matching selector.
func HasSurface(page, selector string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return false, &RenderError{
			Message: "failed to parse preview page",
			Cause:   err,
		}
	}
	return doc.Find(selector).Length() > 0, nil
}
