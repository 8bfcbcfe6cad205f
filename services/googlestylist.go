package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"stylistapi/models"
)

// LLMModelName is a Gemini model known to the service.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25Image
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25Image:
		return "gemini-2.5-flash-image"
	default:
		return "gemini-2.5-flash"
	}
}

const describeOutfitsPrompt = `You are a virtual fashion stylist. A user has uploaded an image of a single clothing item. Your task is to generate three distinct and complete outfit ideas based on this item for the following occasions: Casual, Business, and Night Out.

For each outfit, provide a detailed textual description of all the pieces that would create a stylish, cohesive look. This includes other clothing items, shoes, and accessories. The description should be clear and descriptive enough to be used as a prompt for an image generation model.

Ensure your descriptions explicitly mention the original item to be included in the final image.`

const flatLayPrompt = `Generate a clean, minimalist flat-lay photograph of a complete fashion outfit, styled on a neutral light gray background. The outfit must consist of: %s. The image should be well-lit, high-quality, and showcase each item clearly.`

var occasionSchemaDescriptions = map[models.Occasion]string{
	models.Casual:   "A detailed description of a casual outfit featuring the user's item.",
	models.Business: "A detailed description of a business-appropriate outfit featuring the user's item.",
	models.NightOut: "A detailed description of a 'night out' outfit featuring the user's item.",
}

// StylistProvider is the generative backend used by the outfit workflow.
type StylistProvider interface {
	DescribeOutfits(ctx context.Context, payload string, mediaType string) (*models.OutfitDescriptions, error)
	RenderOutfitImage(ctx context.Context, description string) (*models.ImageReference, error)
}

type GoogleStylistConfig struct {
	APIKey           string
	BaseURL          string
	DescriptionModel string
	ImageModel       string
	HTTPClient       *http.Client
}

// GoogleStylist implements StylistProvider on the Gemini API.
type GoogleStylist struct {
	cfg    GoogleStylistConfig
	logger zerolog.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewGoogleStylist(cfg GoogleStylistConfig, logger zerolog.Logger) *GoogleStylist {
	if cfg.DescriptionModel == "" {
		cfg.DescriptionModel = Pro25.String()
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = Flash25Image.String()
	}
	return &GoogleStylist{cfg: cfg, logger: logger}
}

// genaiClient creates the client on first use so that a missing key is
// reported by the call that needs it.
func (s *GoogleStylist) genaiClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, fmt.Errorf("Google API key is not configured, set GOOGLE_API_KEY")
	}
	clientConfig := &genai.ClientConfig{
		APIKey:     s.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.cfg.HTTPClient,
	}
	if s.cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: s.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	s.client = client
	return client, nil
}

func outfitDescriptionsSchema() *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}
	for _, occasion := range models.Occasions {
		schema.Properties[occasion.Key()] = &genai.Schema{
			Type:        genai.TypeString,
			Description: occasionSchemaDescriptions[occasion],
		}
		schema.Required = append(schema.Required, occasion.Key())
	}
	return schema
}

func (s *GoogleStylist) DescribeOutfits(ctx context.Context, payload string, mediaType string) (*models.OutfitDescriptions, error) {
	client, err := s.genaiClient(ctx)
	if err != nil {
		return nil, err
	}
	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &EncodingError{Err: fmt.Errorf("invalid base64 payload: %w", err)}
	}

	parts := []*genai.Part{
		{Text: describeOutfitsPrompt},
		{InlineData: &genai.Blob{Data: imageBytes, MIMEType: mediaType}},
	}
	result, err := client.Models.GenerateContent(ctx, s.cfg.DescriptionModel, []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		CandidateCount:   1,
		ResponseSchema:   outfitDescriptionsSchema(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("model", s.cfg.DescriptionModel).Msg("describe outfits request failed")
		return nil, err
	}
	s.logUsage(s.cfg.DescriptionModel, result)

	descriptions, err := ParseOutfitDescriptions(result.Text())
	if err != nil {
		if reason := blockReason(result); reason != "" {
			s.logger.Warn().Str("reason", reason).Msg("stylist response blocked")
			return nil, &DescriptionGenerationError{Err: fmt.Errorf("response blocked: %s", reason)}
		}
		s.logger.Warn().Err(err).Str("response", result.Text()).Msg("failed to parse stylist response")
		return nil, err
	}
	return descriptions, nil
}

func (s *GoogleStylist) RenderOutfitImage(ctx context.Context, description string) (*models.ImageReference, error) {
	client, err := s.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{{Text: fmt.Sprintf(flatLayPrompt, description)}}
	result, err := client.Models.GenerateContent(ctx, s.cfg.ImageModel, []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("model", s.cfg.ImageModel).Msg("render outfit image request failed")
		return nil, err
	}
	s.logUsage(s.cfg.ImageModel, result)
	image, err := FirstInlineImage(result)
	if err != nil {
		if reason := blockReason(result); reason != "" {
			s.logger.Warn().Str("reason", reason).Msg("outfit image blocked")
			return nil, &ImageGenerationError{Err: fmt.Errorf("response blocked: %s", reason)}
		}
		return nil, err
	}
	return image, nil
}

// FirstInlineImage returns the image carried by the first part of the first
// candidate. Images in later parts are ignored.
func FirstInlineImage(result *genai.GenerateContentResponse) (*models.ImageReference, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, &ImageGenerationError{Err: fmt.Errorf("no candidates in response")}
	}
	content := result.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return nil, &ImageGenerationError{Err: fmt.Errorf("first candidate has no parts")}
	}
	inlineData := content.Parts[0].InlineData
	if inlineData == nil || len(inlineData.Data) == 0 {
		return nil, &ImageGenerationError{Err: fmt.Errorf("first part has no inline data")}
	}
	mediaType := inlineData.MIMEType
	if mediaType == "" {
		mediaType = "image/png"
	}
	return &models.ImageReference{MediaType: mediaType, Data: inlineData.Data}, nil
}

// blockReason describes why the prompt or a candidate was blocked, or returns
// "" when nothing was.
func blockReason(result *genai.GenerateContentResponse) string {
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		parts := []string{string(result.PromptFeedback.BlockReason)}
		if result.PromptFeedback.BlockReasonMessage != "" {
			parts = append(parts, result.PromptFeedback.BlockReasonMessage)
		}
		return strings.Join(parts, ": ")
	}
	for _, cand := range result.Candidates {
		for _, rating := range cand.SafetyRatings {
			if rating.Blocked {
				return fmt.Sprintf("safety setting %s", rating.Category)
			}
		}
	}
	return ""
}

func (s *GoogleStylist) logUsage(model string, result *genai.GenerateContentResponse) {
	if result.UsageMetadata == nil {
		s.logger.Debug().Str("model", model).Msg("usage metadata missing")
		return
	}
	s.logger.Info().
		Str("model", model).
		Int32("input_tokens", result.UsageMetadata.PromptTokenCount).
		Int32("output_tokens", result.UsageMetadata.CandidatesTokenCount).
		Int32("thoughts_tokens", result.UsageMetadata.ThoughtsTokenCount).
		Int32("total_tokens", result.UsageMetadata.TotalTokenCount).
		Int("candidates", len(result.Candidates)).
		Msg("generate content finished")
}

var _ StylistProvider = (*GoogleStylist)(nil)
