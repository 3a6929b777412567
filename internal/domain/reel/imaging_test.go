package reel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 7 {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk for a w x h RGB image.
// It is enough for DecodeConfig; a full decode would need pixel data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, wantW, wantH int
	}{
		{2048, 1024, 1024, 512},
		{1000, 3000, 341, 1024},
		{1024, 1024, 1024, 1024},
		{4000, 4000, 1024, 1024},
		{500, 300, 500, 300},
		{1025, 10, 1024, 9},
		{100000, 1, 1024, 1},
	}

	for _, tt := range tests {
		w, h := FitWithin(tt.w, tt.h, 1024)
		assert.Equal(t, tt.wantW, w, "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "%dx%d", tt.w, tt.h)
	}
}

func TestFitWithinKeepsAspectRatio(t *testing.T) {
	for w := 1; w <= 5000; w += 397 {
		for h := 1; h <= 5000; h += 421 {
			ow, oh := FitWithin(w, h, 1024)
			assert.LessOrEqual(t, max(ow, oh), 1024)
			if w <= 1024 && h <= 1024 {
				assert.Equal(t, w, ow)
				assert.Equal(t, h, oh)
				continue
			}
			// one pixel of truncation on the short side
			want := float64(w) / float64(h)
			if w > h {
				assert.InDelta(t, float64(ow)/want, float64(oh), 1.0, "%dx%d", w, h)
			} else {
				assert.InDelta(t, float64(oh)*want, float64(ow), 1.0, "%dx%d", w, h)
			}
		}
	}
}

func TestPrepareThumbnailShrinks(t *testing.T) {
	out, size, err := PrepareThumbnail(encodePNG(t, 2048, 1024), DefaultMaxSide, DefaultMaxPixels)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(1024, 512), size)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy())
}

func TestPrepareThumbnailKeepsSmallImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 320, 240)), nil))

	out, size, err := PrepareThumbnail(buf.Bytes(), DefaultMaxSide, DefaultMaxPixels)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(320, 240), size)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
}

func TestPrepareThumbnailRejectsGarbage(t *testing.T) {
	_, _, err := PrepareThumbnail([]byte("<html>not an image</html>"), DefaultMaxSide, DefaultMaxPixels)
	assert.Error(t, err)
}

func TestPrepareThumbnailRejectsHugeDimensions(t *testing.T) {
	data := pngHeader(20000, 20000)
	require.Less(t, len(data), 64)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 20000, cfg.Width)

	_, _, err = PrepareThumbnail(data, DefaultMaxSide, DefaultMaxPixels)
	assert.True(t, errors.Is(err, ErrTooManyPixels), "got %v", err)
}

func TestPrepareThumbnailPixelCapIsInclusive(t *testing.T) {
	data := encodePNG(t, 100, 50)

	_, _, err := PrepareThumbnail(data, DefaultMaxSide, 5000)
	assert.NoError(t, err)

	_, _, err = PrepareThumbnail(data, DefaultMaxSide, 4999)
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestApplyOrientation(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	marker := color.RGBA{R: 255, A: 255}
	src.Set(0, 0, marker)

	tests := []struct {
		o            int
		w, h         int
		markX, markY int
	}{
		{1, 3, 2, 0, 0},
		{2, 3, 2, 2, 0},
		{3, 3, 2, 2, 1},
		{4, 3, 2, 0, 1},
		{5, 2, 3, 0, 0},
		{6, 2, 3, 1, 0},
		{7, 2, 3, 1, 2},
		{8, 2, 3, 0, 2},
	}

	for _, tt := range tests {
		out := applyOrientation(src, tt.o)
		assert.Equal(t, tt.w, out.Bounds().Dx(), "orientation %d", tt.o)
		assert.Equal(t, tt.h, out.Bounds().Dy(), "orientation %d", tt.o)
		r, _, _, _ := out.At(tt.markX, tt.markY).RGBA()
		assert.Equal(t, uint32(0xffff), r, "orientation %d", tt.o)
	}
}
