package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccasionsOrder(t *testing.T) {
	titles := []string{}
	keys := []string{}
	for _, o := range Occasions {
		titles = append(titles, o.String())
		keys = append(keys, o.Key())
	}
	assert.Equal(t, []string{"Casual", "Business", "Night Out"}, titles)
	assert.Equal(t, []string{"casual", "business", "nightOut"}, keys)
}

func TestDescriptionsFor(t *testing.T) {
	d := OutfitDescriptions{Casual: "jeans", Business: "blazer", NightOut: "heels"}
	assert.Equal(t, "jeans", d.For(Casual))
	assert.Equal(t, "blazer", d.For(Business))
	assert.Equal(t, "heels", d.For(NightOut))
	assert.Equal(t, "", d.For(Occasion(7)))
}

func TestPendingOutfit(t *testing.T) {
	o := PendingOutfit(NightOut)
	require.True(t, o.IsLoading)
	assert.Equal(t, "Night Out", o.Title)
	assert.Empty(t, o.Description)
	assert.Nil(t, o.ImageURL)
}

func TestImageReferenceDataURL(t *testing.T) {
	ref := ImageReference{MediaType: "image/png", Data: []byte("png")}
	assert.Equal(t, "data:image/png;base64,cG5n", ref.DataURL())
}

func TestSessionViewCanGenerate(t *testing.T) {
	assert.False(t, SessionView{}.CanGenerate())
	assert.True(t, SessionView{HasImage: true}.CanGenerate())
	assert.False(t, SessionView{HasImage: true, State: GenerationState{IsLoading: true}}.CanGenerate())
}
