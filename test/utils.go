package test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"

	"stylistapi/models"
)

// NewMultipartUpload builds a form upload with a single file field.
func NewMultipartUpload(target, field, fileName, mediaType string, data []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="` + field + `"; filename="` + fileName + `"`)
	if mediaType != "" {
		header.Set("Content-Type", mediaType)
	}
	part, _ := writer.CreatePart(header)
	_, _ = part.Write(data)
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// FakePNG returns a small valid PNG.
func FakePNG() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: 30, G: 60, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func FakeUploadedImage(fileName string) *models.UploadedImage {
	return &models.UploadedImage{
		FileName:  fileName,
		MediaType: "image/png",
		Data:      FakePNG(),
		Preview:   "data:image/png;base64,cHJldmlldw==",
	}
}

func DefaultDescriptions() models.OutfitDescriptions {
	return models.OutfitDescriptions{
		Casual:   "a t-shirt and jeans",
		Business: "a navy blazer with tailored trousers",
		NightOut: "a leather jacket with a black midi skirt",
	}
}

// StylistProviderMock answers from fixed data and records the order of calls.
type StylistProviderMock struct {
	Descriptions models.OutfitDescriptions
	DescribeErr  error
	// RenderErrs fails the render call for the given description.
	RenderErrs map[string]error
	// OnDescribe and OnRender run inside the call, before it returns.
	OnDescribe func()
	OnRender   func(description string)

	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int
}

func NewStylistProviderMock() *StylistProviderMock {
	return &StylistProviderMock{Descriptions: DefaultDescriptions()}
}

func (m *StylistProviderMock) enter(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
}

func (m *StylistProviderMock) leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}

func (m *StylistProviderMock) DescribeOutfits(ctx context.Context, payload string, mediaType string) (*models.OutfitDescriptions, error) {
	m.enter("describe")
	defer m.leave()
	if m.OnDescribe != nil {
		m.OnDescribe()
	}
	if m.DescribeErr != nil {
		return nil, m.DescribeErr
	}
	descriptions := m.Descriptions
	return &descriptions, nil
}

func (m *StylistProviderMock) RenderOutfitImage(ctx context.Context, description string) (*models.ImageReference, error) {
	m.enter("render:" + description)
	defer m.leave()
	if m.OnRender != nil {
		m.OnRender(description)
	}
	if err, ok := m.RenderErrs[description]; ok {
		return nil, err
	}
	return &models.ImageReference{MediaType: "image/png", Data: []byte("img:" + description)}, nil
}

func (m *StylistProviderMock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MaxInFlight is the largest number of calls that were running at once.
func (m *StylistProviderMock) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}
