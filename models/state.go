package models

// Phase is the position of a session in the generation workflow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDescribingItem
	PhaseGeneratingOutfit
	PhaseCompleted
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDescribingItem:
		return "describing_item"
	case PhaseGeneratingOutfit:
		return "generating_outfit"
	case PhaseCompleted:
		return "completed"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type GenerationState struct {
	IsLoading bool    `json:"is_loading"`
	Stage     string  `json:"stage"`
	Error     *string `json:"error"`
}

// SessionView is a point-in-time copy of a session used for rendering.
type SessionView struct {
	SessionID string          `json:"session_id"`
	HasImage  bool            `json:"has_image"`
	FileName  string          `json:"file_name,omitempty"`
	Preview   string          `json:"preview,omitempty"`
	Outfits   []Outfit        `json:"outfits"`
	State     GenerationState `json:"state"`
	Phase     Phase           `json:"phase"`
	Slot      *int            `json:"slot,omitempty"`
	Attempt   uint64          `json:"attempt"`
}

// CanGenerate reports whether the generate action should be enabled.
func (v SessionView) CanGenerate() bool {
	return v.HasImage && !v.State.IsLoading
}
