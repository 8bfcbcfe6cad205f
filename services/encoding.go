package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"stylistapi/models"
)

const dataURLPrefix = "data:"
const base64Marker = ";base64"

// EncodeImage reads an uploaded file once and returns its base64 payload and
// media type. An empty mediaType is sniffed from the content.
func EncodeImage(r io.Reader, mediaType string) (*models.EncodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &EncodingError{Err: fmt.Errorf("failed to read file: %w", err)}
	}
	if strings.TrimSpace(mediaType) == "" {
		mediaType = http.DetectContentType(data)
	}
	encoded, err := ParseDataURL(DataURL(mediaType, data))
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return encoded, nil
}

func DataURL(mediaType string, data []byte) string {
	return dataURLPrefix + mediaType + base64Marker + "," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits "data:<media>;base64,<payload>" into its parts.
func ParseDataURL(dataURL string) (*models.EncodedImage, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, fmt.Errorf("data url has no payload separator")
	}
	if !strings.HasPrefix(header, dataURLPrefix) || !strings.HasSuffix(header, base64Marker) {
		return nil, fmt.Errorf("malformed data url header: %q", header)
	}
	mediaType, _, _ := strings.Cut(strings.TrimPrefix(header, dataURLPrefix), ";")
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		return nil, fmt.Errorf("data url has no media type")
	}
	if payload == "" {
		return nil, fmt.Errorf("data url has empty payload")
	}
	return &models.EncodedImage{Payload: payload, MediaType: mediaType}, nil
}
