package town

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors"
)

// Area kind names as they appear in layout asset files.
const (
	LayoutKindConversation = "conversation"
	LayoutKindWardrobe     = "wardrobe"
)

// AreaDefinition describes one interactable region of the town map. The
// asset id becomes the area id, so ids are unique per town by
// construction.
type AreaDefinition struct {
	Kind   string      `json:"kind"`
	Bounds BoundingBox `json:"bounds"`
	Topic  string      `json:"topic,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (d *AreaDefinition) Validate() error {
	el := errors.NewErrorList()

	switch d.Kind {
	case LayoutKindConversation, LayoutKindWardrobe:
	case "":
		el.Add(fmt.Errorf("kind is required"))
	default:
		el.Add(fmt.Errorf("unknown kind %q", d.Kind))
	}

	if d.Bounds.Width <= 0 || d.Bounds.Height <= 0 {
		el.Add(fmt.Errorf("malformed area: width and height must be positive"))
	}

	return el.Err()
}

// WardrobeCatalogs bundles the two catalogs wardrobe areas draw from.
type WardrobeCatalogs struct {
	Hair   *Catalog
	Outfit *Catalog
}

// BuildAreas constructs the town's interactable areas from layout
// definitions, in a deterministic order.
func BuildAreas(defs map[string]*AreaDefinition, catalogs WardrobeCatalogs, profiles ProfileStore, em Emitter) ([]Interactable, error) {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	areas := make([]Interactable, 0, len(ids))
	for _, id := range ids {
		def := defs[id]
		switch def.Kind {
		case LayoutKindConversation:
			areas = append(areas, NewConversationArea(id, def.Bounds, def.Topic, em))
		case LayoutKindWardrobe:
			if catalogs.Hair == nil || catalogs.Outfit == nil {
				return nil, fmt.Errorf("area %q: wardrobe requires hair and outfit catalogs", id)
			}
			areas = append(areas, NewWardrobeArea(id, def.Bounds, catalogs.Hair, catalogs.Outfit, profiles, em))
		default:
			return nil, fmt.Errorf("area %q: unknown kind %q", id, def.Kind)
		}
	}
	return areas, nil
}
