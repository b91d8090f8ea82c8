package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a w x h image whose red channel encodes the row (mod 256)
// so bands can be traced back to source rows.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.RGBA{R: uint8(y % 256), G: 0, B: 0, A: 255}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func isWhite(c color.RGBA) bool {
	return c.R == 255 && c.G == 255 && c.B == 255 && c.A == 255
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name         string
		scaledHeight float64
		pageHeight   float64
		want         int
	}{
		{"fits", 80, 100, 1},
		{"exact page", 100, 100, 1},
		{"just over", 100.5, 100, 2},
		{"2.3 pages", 230, 100, 3},
		{"exact multiple", 300, 100, 3},
		{"float noise on multiple", 0.1 * 3 * 1000, 100, 3},
		{"empty", 0, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageCount(tt.scaledHeight, tt.pageHeight))
		})
	}
}

func TestPaginate_SinglePage(t *testing.T) {
	img := gradient(200, 160)

	pages, err := Paginate(img, 100, 100)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.True(t, p.Single)
	assert.Equal(t, 100.0, p.Width)
	assert.InDelta(t, 80.0, p.Height, 1e-9)
	assert.Equal(t, image.Rect(0, 0, 200, 160), p.Image.Bounds())
	assert.Equal(t, img.RGBAAt(0, 159), p.Image.RGBAAt(0, 159))
}

func TestPaginate_MultiPagePadsLastBand(t *testing.T) {
	// 2.3 page heights tall at scale 1.
	img := gradient(100, 230)

	pages, err := Paginate(img, 100, 100)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, p := range pages {
		assert.Equal(t, i, p.Index)
		assert.False(t, p.Single)
		assert.Equal(t, 100.0, p.Width)
		assert.Equal(t, 100.0, p.Height)
		assert.Equal(t, image.Rect(0, 0, 100, 100), p.Image.Bounds(), "page %d", i)
	}

	assert.Equal(t, img.RGBAAt(5, 0), pages[0].Image.RGBAAt(5, 0))
	assert.Equal(t, img.RGBAAt(5, 100), pages[1].Image.RGBAAt(5, 0))
	assert.Equal(t, img.RGBAAt(5, 200), pages[2].Image.RGBAAt(5, 0))
	assert.Equal(t, img.RGBAAt(5, 229), pages[2].Image.RGBAAt(5, 29))

	for y := 30; y < 100; y++ {
		assert.True(t, isWhite(pages[2].Image.RGBAAt(5, y)), "row %d of last page should be blank", y)
	}
}

func TestPaginate_ExactMultipleHasNoEmptyPage(t *testing.T) {
	pages, err := Paginate(gradient(50, 300), 50, 100)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, gradient(50, 300).RGBAAt(0, 299), pages[2].Image.RGBAAt(0, 99))
}

func TestPaginate_FractionalScale(t *testing.T) {
	// scale 0.5: each page covers 200 source rows.
	img := gradient(200, 450)

	pages, err := Paginate(img, 100, 100)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, 0.0, pages[0].SourceTop)
	assert.Equal(t, 200.0, pages[1].SourceTop)
	assert.Equal(t, 400.0, pages[2].SourceTop)
	for _, p := range pages {
		assert.Equal(t, 200, p.Image.Bounds().Dy())
	}
	assert.Equal(t, img.RGBAAt(0, 449), pages[2].Image.RGBAAt(0, 49))
	assert.True(t, isWhite(pages[2].Image.RGBAAt(0, 50)))
}

func TestPaginate_BandsAreContiguous(t *testing.T) {
	// A4 at the default surface width gives a non-integer band height.
	img := gradient(794, 3000)

	pages, err := Paginate(img, 210, 297)
	require.NoError(t, err)

	scale := 210.0 / 794.0
	want := int(math.Ceil(3000 * scale / 297))
	require.Len(t, pages, want)

	for i := 1; i < len(pages); i++ {
		assert.Equal(t, pages[i-1].SourceBottom, pages[i].SourceTop, "band %d must start where band %d ended", i, i-1)
		assert.InDelta(t, 297.0/scale, float64(pages[i].Image.Bounds().Dy()), 1, "band %d", i)
	}
	assert.GreaterOrEqual(t, pages[len(pages)-1].SourceBottom, 3000.0)

	// Every source row lands on exactly one page.
	covered := 0
	for _, p := range pages {
		top := int(p.SourceTop)
		bottom := min(int(p.SourceBottom), 3000)
		if bottom > top {
			covered += bottom - top
		}
	}
	assert.Equal(t, 3000, covered)
}

func TestPaginate_FractionalBandsHoldOnlySourceRows(t *testing.T) {
	// scale 0.5 and a 1.25 page height make each band 2.5 source rows tall.
	img := gradient(10, 12)

	pages, err := Paginate(img, 5, 1.25)
	require.NoError(t, err)
	require.Len(t, pages, 5)

	heights := make([]int, len(pages))
	next := 0
	for i, p := range pages {
		heights[i] = p.Image.Bounds().Dy()
		assert.Equal(t, 1.25, p.Height, "page %d fills the page height", i)
		for y := 0; y < heights[i]; y++ {
			got := p.Image.RGBAAt(0, y)
			if next < 12 {
				assert.Equal(t, img.RGBAAt(0, next), got, "page %d row %d", i, y)
				next++
				continue
			}
			assert.Equal(t, len(pages)-1, i, "only the last band is padded")
			assert.True(t, isWhite(got))
		}
	}
	assert.Equal(t, 12, next, "every source row is placed once")
	assert.Equal(t, []int{3, 2, 3, 2, 3}, heights)
}

func TestPaginate_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		w, h float64
	}{
		{"nil image", nil, 100, 100},
		{"empty image", image.NewRGBA(image.Rect(0, 0, 0, 0)), 100, 100},
		{"zero page width", gradient(10, 10), 0, 100},
		{"negative page height", gradient(10, 10), 100, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Paginate(tt.img, tt.w, tt.h)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}
