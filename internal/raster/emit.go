package raster

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PageFormat is a physical page size understood by gofpdf ("A4", "Letter", ...).
type PageFormat string

// Supported page formats
const (
	FormatA4     PageFormat = "A4"
	FormatLetter PageFormat = "Letter"
	FormatLegal  PageFormat = "Legal"
)

// pageUnit is the unit page dimensions are expressed in.
const pageUnit = "mm"

// ParsePageFormat accepts a page format name case-insensitively.
func ParsePageFormat(s string) (PageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a4":
		return FormatA4, nil
	case "letter":
		return FormatLetter, nil
	case "legal":
		return FormatLegal, nil
	default:
		return "", fmt.Errorf("unsupported page format: %q", s)
	}
}

// Dimensions returns the portrait page width and height in millimetres.
func (f PageFormat) Dimensions() (width, height float64, err error) {
	pdf := newPDF(f)
	if err := pdf.Error(); err != nil {
		return 0, 0, fmt.Errorf("unknown page format %q: %w", f, err)
	}
	width, height = pdf.GetPageSize()
	return width, height, nil
}

func newPDF(f PageFormat) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", pageUnit, string(f), "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// Emit writes pages, in order, as a PDF with one page per band. Each band
// is placed at the top-left corner at its own placement size, so a single
// page keeps the image's aspect ratio and later pages fill the whole sheet.
func Emit(w io.Writer, pages []Page, format PageFormat) error {
	if len(pages) == 0 {
		return &EmitError{Message: "no pages to emit"}
	}

	pdf := newPDF(format)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	for _, p := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, p.Image); err != nil {
			return &EmitError{
				Message: fmt.Sprintf("failed to encode page %d", p.Index+1),
				Cause:   err,
			}
		}

		name := fmt.Sprintf("page-%d", p.Index)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, p.Width, p.Height, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return &EmitError{
			Message: "failed to write PDF",
			Cause:   err,
		}
	}
	return nil
}
