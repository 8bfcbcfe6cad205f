package services

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImageKeepsMediaTypeAndPayload(t *testing.T) {
	encoded, err := EncodeImage(strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", encoded.MediaType)
	assert.Equal(t, "cG5nLWJ5dGVz", encoded.Payload)
}

func TestEncodeImageSniffsMissingMediaType(t *testing.T) {
	jpegHeader := "\xff\xd8\xff\xe0\x00\x10JFIF\x00"
	encoded, err := EncodeImage(strings.NewReader(jpegHeader), "")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", encoded.MediaType)
}

func TestEncodeImageEmptyFile(t *testing.T) {
	_, err := EncodeImage(strings.NewReader(""), "image/png")
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "Failed to parse file data.", err.Error())
}

func TestEncodeImageReadFailure(t *testing.T) {
	_, err := EncodeImage(iotest.ErrReader(errors.New("disk gone")), "image/png")
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Contains(t, encErr.Err.Error(), "disk gone")
}

func TestParseDataURL(t *testing.T) {
	encoded, err := ParseDataURL("data:image/webp;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", encoded.MediaType)
	assert.Equal(t, "AAAA", encoded.Payload)

	invalid := []string{
		"image/webp;base64,AAAA",
		"data:image/webp;base64",
		"data:;base64,AAAA",
		"data:image/webp;base64,",
		"data:image/webp,AAAA",
	}
	for _, value := range invalid {
		_, err := ParseDataURL(value)
		assert.Error(t, err, value)
	}
}
