package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseJSON(t *testing.T) {
	assert.Equal(t, `"idle"`, string(mustJSON(t, PhaseIdle)))
	assert.Equal(t, `"generating_outfit"`, string(mustJSON(t, PhaseGeneratingOutfit)))
	assert.Equal(t, `{"phase":"errored"}`, string(mustJSON(t, struct {
		Phase Phase `json:"phase"`
	}{PhaseErrored})))
	assert.Equal(t, "unknown", Phase(42).String())
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
