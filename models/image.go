package models

import (
	"encoding/base64"
	"fmt"
)

// UploadedImage is the clothing photo held by a session until the next upload.
type UploadedImage struct {
	FileName  string
	MediaType string
	Data      []byte
	// Preview is a data URL rendered for display next to the upload control.
	Preview string
}

// EncodedImage is the base64 payload sent to the provider.
type EncodedImage struct {
	Payload   string `json:"payload"`
	MediaType string `json:"media_type"`
}

// ImageReference is a generated image, embedded.
type ImageReference struct {
	MediaType string
	Data      []byte
}

func (r ImageReference) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", r.MediaType, base64.StdEncoding.EncodeToString(r.Data))
}
