package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"stylistapi/models"
)

func cleanAIResponseText(text string) string {
	cleanContent := strings.TrimSpace(text)
	cleanContent = strings.TrimPrefix(cleanContent, "```json")
	cleanContent = strings.TrimPrefix(cleanContent, "```")
	cleanContent = strings.TrimSuffix(cleanContent, "```")
	return strings.TrimSpace(cleanContent)
}

// ParseOutfitDescriptions validates the structured stylist response. The
// response schema sent to the model is not enforced by the provider, so every
// field is checked here: all three must be present, strings and non-empty.
func ParseOutfitDescriptions(text string) (*models.OutfitDescriptions, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleanAIResponseText(text)), &raw); err != nil {
		return nil, &DescriptionGenerationError{Err: fmt.Errorf("invalid json: %w", err)}
	}
	if raw == nil {
		return nil, &DescriptionGenerationError{Err: fmt.Errorf("response is not an object")}
	}

	var values [len(models.Occasions)]string
	for i, occasion := range models.Occasions {
		field, ok := raw[occasion.Key()]
		if !ok {
			return nil, &DescriptionGenerationError{Err: fmt.Errorf("missing field %q", occasion.Key())}
		}
		var value string
		if err := json.Unmarshal(field, &value); err != nil {
			return nil, &DescriptionGenerationError{Err: fmt.Errorf("field %q is not a string: %w", occasion.Key(), err)}
		}
		if strings.TrimSpace(value) == "" {
			return nil, &DescriptionGenerationError{Err: fmt.Errorf("field %q is empty", occasion.Key())}
		}
		values[i] = value
	}

	return &models.OutfitDescriptions{
		Casual:   values[models.Casual],
		Business: values[models.Business],
		NightOut: values[models.NightOut],
	}, nil
}
