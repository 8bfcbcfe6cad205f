package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	previewMaxSide     = 512
	previewJPEGQuality = 85
)

// PreviewDataURL returns a downscaled JPEG data URL of the upload for the
// page preview. Transparent areas are flattened onto white. When the image
// cannot be decoded the original bytes are returned as a data URL.
func PreviewDataURL(data []byte, mediaType string) string {
	preview, err := Thumbnail(data, previewMaxSide)
	if err != nil {
		return DataURL(mediaType, data)
	}
	return DataURL("image/jpeg", preview)
}

// Thumbnail fits the image inside maxSide x maxSide and encodes it as JPEG.
func Thumbnail(data []byte, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("maxSide must be positive")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	bounds := fitted.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flattened := imaging.Overlay(background, fitted, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flattened, imaging.JPEG, imaging.JPEGQuality(previewJPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image to jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
