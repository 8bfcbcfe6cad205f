package models

// Occasion is one of the three fixed outfit contexts. The order of the
// constants is the order outfits are generated and rendered in.
type Occasion int

const (
	Casual Occasion = iota
	Business
	NightOut
)

// Occasions lists every occasion in slot order.
var Occasions = [3]Occasion{Casual, Business, NightOut}

// String returns the label shown on the outfit card.
func (o Occasion) String() string {
	switch o {
	case Casual:
		return "Casual"
	case Business:
		return "Business"
	case NightOut:
		return "Night Out"
	default:
		return "Unknown"
	}
}

// Key is the property name used in the structured description response.
func (o Occasion) Key() string {
	switch o {
	case Casual:
		return "casual"
	case Business:
		return "business"
	case NightOut:
		return "nightOut"
	default:
		return ""
	}
}

type OutfitDescriptions struct {
	Casual   string `json:"casual"`
	Business string `json:"business"`
	NightOut string `json:"nightOut"`
}

func (d OutfitDescriptions) For(o Occasion) string {
	switch o {
	case Casual:
		return d.Casual
	case Business:
		return d.Business
	case NightOut:
		return d.NightOut
	default:
		return ""
	}
}

// Outfit is the state of one result card.
type Outfit struct {
	Occasion    Occasion `json:"-"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    *string  `json:"image_url"`
	IsLoading   bool     `json:"is_loading"`
}

// PendingOutfit is the placeholder created when a generation attempt starts.
func PendingOutfit(o Occasion) Outfit {
	return Outfit{
		Occasion:  o,
		Title:     o.String(),
		IsLoading: true,
	}
}
