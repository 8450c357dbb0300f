package town

// Area type discriminators as they appear on the wire.
const (
	AreaTypeConversation = "ConversationArea"
	AreaTypeWardrobe     = "WardrobeArea"
)

// ActorModel is the wire projection of an Actor. Clients replace their
// shadow copy on receipt and never mutate it directly.
type ActorModel struct {
	ID         string     `json:"id"`
	UserName   string     `json:"userName"`
	Location   Location   `json:"location"`
	Appearance Appearance `json:"appearance"`
}

// AreaModel is the serializable snapshot of an interactable area. The
// Type field discriminates which kind-specific payload is set.
type AreaModel struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Occupants []string `json:"occupants"`
	IsOpen    bool     `json:"isOpen"`

	// Set when Type is AreaTypeConversation.
	Topic string `json:"topic,omitempty"`

	// Set when Type is AreaTypeWardrobe.
	Wardrobe *WardrobeModel `json:"wardrobe,omitempty"`
}

// WardrobeModel carries the wardrobe-specific slice of an AreaModel:
// the option catalogs plus, while a session is live, its id, holder, and
// the holder's current choices.
type WardrobeModel struct {
	SessionID     string                `json:"sessionId,omitempty"`
	Holder        string                `json:"holder,omitempty"`
	HairOptions   []CustomizationOption `json:"hairOptions"`
	OutfitOptions []CustomizationOption `json:"outfitOptions"`
	HairChoice    *CustomizationOption  `json:"hairChoice,omitempty"`
	OutfitChoice  *CustomizationOption  `json:"outfitChoice,omitempty"`
}
