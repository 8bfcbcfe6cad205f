package services

// EncodingError is returned when an uploaded file cannot be read or turned
// into a base64 payload with a media type.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "Failed to parse file data."
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// DescriptionGenerationError is returned when the stylist response is missing
// or does not have the three outfit descriptions.
type DescriptionGenerationError struct {
	Err error
}

func (e *DescriptionGenerationError) Error() string {
	return "Could not understand the stylist's suggestions. Please try again."
}

func (e *DescriptionGenerationError) Unwrap() error {
	return e.Err
}

// ImageGenerationError is returned when the first response part carries no image.
type ImageGenerationError struct {
	Err error
}

func (e *ImageGenerationError) Error() string {
	return "Image generation failed. No image data received."
}

func (e *ImageGenerationError) Unwrap() error {
	return e.Err
}
