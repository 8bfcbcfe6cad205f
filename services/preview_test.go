package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnailFitsInsideBounds(t *testing.T) {
	thumb, err := Thumbnail(pngBytes(t, 1200, 600), 512)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 512, decoded.Bounds().Dx())
	assert.Equal(t, 256, decoded.Bounds().Dy())
}

func TestThumbnailDoesNotUpscale(t *testing.T) {
	thumb, err := Thumbnail(pngBytes(t, 40, 20), 512)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 40, decoded.Bounds().Dx())
}

func TestPreviewDataURL(t *testing.T) {
	preview := PreviewDataURL(pngBytes(t, 64, 64), "image/png")
	assert.True(t, strings.HasPrefix(preview, "data:image/jpeg;base64,"))

	raw := PreviewDataURL([]byte("not an image"), "image/png")
	assert.Equal(t, "data:image/png;base64,bm90IGFuIGltYWdl", raw)
}
