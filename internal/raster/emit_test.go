package raster

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfPageCount(t *testing.T, data []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r.NumPage()
}

func TestParsePageFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PageFormat
		wantErr bool
	}{
		{"", FormatA4, false},
		{"a4", FormatA4, false},
		{" Letter ", FormatLetter, false},
		{"LEGAL", FormatLegal, false},
		{"tabloid-ish", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePageFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageFormat_Dimensions(t *testing.T) {
	w, h, err := FormatA4.Dimensions()
	require.NoError(t, err)
	assert.InDelta(t, 210.0, w, 0.01)
	assert.InDelta(t, 297.0, h, 0.01)

	_, _, err = PageFormat("B99").Dimensions()
	assert.Error(t, err)
}

func TestEmit_OnePagePerBand(t *testing.T) {
	w, h, err := FormatA4.Dimensions()
	require.NoError(t, err)

	// ~2.3 pages at A4 proportions.
	img := gradient(210, 297*23/10)
	pages, err := Paginate(img, w, h)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, pages, FormatA4))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, 3, pdfPageCount(t, buf.Bytes()))
}

func TestEmit_SinglePage(t *testing.T) {
	w, h, err := FormatLetter.Dimensions()
	require.NoError(t, err)

	pages, err := Paginate(gradient(400, 200), w, h)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, pages, FormatLetter))
	assert.Equal(t, 1, pdfPageCount(t, buf.Bytes()))
}

func TestEmit_NoPages(t *testing.T) {
	var buf bytes.Buffer
	err := Emit(&buf, nil, FormatA4)

	var emitErr *EmitError
	require.True(t, errors.As(err, &emitErr))
	assert.Zero(t, buf.Len())
}
