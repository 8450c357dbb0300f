package town

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// OptionCategory names a customization catalog.
type OptionCategory string

const (
	CategoryHair   OptionCategory = "hair"
	CategoryOutfit OptionCategory = "outfit"
)

// Valid reports whether c names a known catalog.
func (c OptionCategory) Valid() bool {
	switch c {
	case CategoryHair, CategoryOutfit:
		return true
	}
	return false
}

// CustomizationOption is one selectable appearance choice within a catalog.
type CustomizationOption struct {
	OptionID int    `json:"option_id"`
	FilePath string `json:"file_path"`
}

// Catalog is the set of options available for one category, loaded from
// asset files.
type Catalog struct {
	Category OptionCategory        `json:"category"`
	Options  []CustomizationOption `json:"options"`
}

// Validate satisfies storage.ValidatingSpec.
func (c *Catalog) Validate() error {
	el := errors.NewErrorList()

	if !c.Category.Valid() {
		el.Add(fmt.Errorf("unknown category %q", c.Category))
	}
	if len(c.Options) == 0 {
		el.Add(fmt.Errorf("catalog must contain at least one option"))
	}

	seen := make(map[int]bool, len(c.Options))
	for i, opt := range c.Options {
		if opt.FilePath == "" {
			el.Add(fmt.Errorf("option %d: file_path is required", i))
		}
		if seen[opt.OptionID] {
			el.Add(fmt.Errorf("duplicate option id %d", opt.OptionID))
		}
		seen[opt.OptionID] = true
	}

	return el.Err()
}

// Find returns the option with the given id, if present.
func (c *Catalog) Find(optionID int) (CustomizationOption, bool) {
	for _, opt := range c.Options {
		if opt.OptionID == optionID {
			return opt, true
		}
	}
	return CustomizationOption{}, false
}

// Appearance is an actor's currently selected customization. A nil choice
// means the actor wears the default for that category. Appearance is also
// the payload persisted by the profile store between visits.
type Appearance struct {
	Hair   *CustomizationOption `json:"hair,omitempty"`
	Outfit *CustomizationOption `json:"outfit,omitempty"`
}

// Validate satisfies storage.ValidatingSpec so appearances can be stored
// as assets.
func (a *Appearance) Validate() error {
	el := errors.NewErrorList()

	if a.Hair != nil && a.Hair.FilePath == "" {
		el.Add(fmt.Errorf("hair choice is missing a file path"))
	}
	if a.Outfit != nil && a.Outfit.FilePath == "" {
		el.Add(fmt.Errorf("outfit choice is missing a file path"))
	}

	return el.Err()
}

// ProfileStore persists actor appearance between visits. It is an external
// collaborator as far as the town is concerned; only success or failure
// matters here.
type ProfileStore interface {
	LoadProfile(actorID string) (*Appearance, error)
	SaveProfile(actorID string, a *Appearance) error
}
