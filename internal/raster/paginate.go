// Package raster turns a rendered resume surface into a paginated PDF:
// capture the surface as an image, slice it into page-height bands, and emit
// one PDF page per band.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// pageCountTolerance absorbs float error so an exact multiple of the page
// height doesn't spill an empty page.
const pageCountTolerance = 1e-9

// Page is one band of the captured image.
type Page struct {
	Index int
	// Image holds the band at source resolution. Only the last band carries
	// blank rows, past the source bottom; the others hold source rows only.
	Image *image.RGBA
	// SourceTop and SourceBottom bound the band in whole source rows. A band
	// starts exactly where the previous one ended.
	SourceTop    float64
	SourceBottom float64
	// Width and Height are the placement size in page units.
	Width  float64
	Height float64
	// Single is set when the whole image fits on one page.
	Single bool
}

// PageCount returns ceil(scaledHeight / pageHeight), at least 1.
func PageCount(scaledHeight, pageHeight float64) int {
	n := int(math.Ceil(scaledHeight/pageHeight - pageCountTolerance))
	if n < 1 {
		return 1
	}
	return n
}

// Paginate slices img into pages of pageWidth x pageHeight (any unit, as long
// as both agree). The image is scaled so its width matches the page width.
// When the scaled height fits on one page the result is a single full-bleed
// page; otherwise bands of pageHeight/scale source pixels, rounded to whole
// rows, are cut top to bottom and the last band is padded rather than cropped.
func Paginate(img image.Image, pageWidth, pageHeight float64) ([]Page, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidGeometry)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidGeometry, b.Dx(), b.Dy())
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, fmt.Errorf("%w: page is %gx%g", ErrInvalidGeometry, pageWidth, pageHeight)
	}

	scale := pageWidth / float64(b.Dx())
	scaledHeight := float64(b.Dy()) * scale

	if scaledHeight <= pageHeight {
		return []Page{{
			Index:        0,
			Image:        band(img, 0, b.Dy()),
			SourceTop:    0,
			SourceBottom: float64(b.Dy()),
			Width:        pageWidth,
			Height:       scaledHeight,
			Single:       true,
		}}, nil
	}

	count := PageCount(scaledHeight, pageHeight)
	bandHeight := pageHeight / scale
	edge := func(i int) int {
		return int(math.Round(float64(i) * bandHeight))
	}

	pages := make([]Page, count)
	for i := range pages {
		top := edge(i)
		bottom := edge(i + 1)
		if i == count-1 {
			bottom = top + max(int(math.Ceil(bandHeight-pageCountTolerance)), b.Dy()-top)
		}
		pages[i] = Page{
			Index:        i,
			Image:        band(img, top, bottom),
			SourceTop:    float64(top),
			SourceBottom: float64(bottom),
			Width:        pageWidth,
			Height:       pageHeight,
		}
	}
	return pages, nil
}

// band copies source rows [top, bottom) onto a white canvas of bottom-top
// rows. Rows past the source bottom stay white.
func band(img image.Image, top, bottom int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), bottom-top))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y1 := min(bottom, b.Dy())
	if y1 <= top {
		return dst
	}
	draw.Draw(dst, image.Rect(0, 0, b.Dx(), y1-top), img, image.Pt(b.Min.X, b.Min.Y+top), draw.Src)
	return dst
}
