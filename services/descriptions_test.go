package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutfitDescriptionsOk(t *testing.T) {
	descriptions, err := ParseOutfitDescriptions(`{"casual":"jeans","business":"blazer","nightOut":"heels"}`)
	require.NoError(t, err)
	assert.Equal(t, "jeans", descriptions.Casual)
	assert.Equal(t, "blazer", descriptions.Business)
	assert.Equal(t, "heels", descriptions.NightOut)
}

func TestParseOutfitDescriptionsStripsCodeFence(t *testing.T) {
	descriptions, err := ParseOutfitDescriptions("```json\n{\"casual\":\"a\",\"business\":\"b\",\"nightOut\":\"c\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "c", descriptions.NightOut)
}

func TestParseOutfitDescriptionsRejectsBadResponses(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"not json":    "Here are your outfits!",
		"array":       `["a","b","c"]`,
		"null":        `null`,
		"missing key": `{"casual":"a","business":"b"}`,
		"wrong type":  `{"casual":"a","business":"b","nightOut":3}`,
		"blank value": `{"casual":"a","business":"  ","nightOut":"c"}`,
		"null value":  `{"casual":"a","business":"b","nightOut":null}`,
		"snake case":  `{"casual":"a","business":"b","night_out":"c"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOutfitDescriptions(body)
			require.Error(t, err)

			var descErr *DescriptionGenerationError
			require.True(t, errors.As(err, &descErr))
			assert.Equal(t, "Could not understand the stylist's suggestions. Please try again.", err.Error())
		})
	}
}
