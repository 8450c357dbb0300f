package town

import (
	"fmt"

	"github.com/google/uuid"
)

// WardrobeSession mediates one actor's customization between join and
// leave. A session has exactly one holder for its whole life; ids are
// generated fresh on every join and never reused.
type WardrobeSession struct {
	id     string
	holder *Actor

	hairChoice   *CustomizationOption
	outfitChoice *CustomizationOption
}

func newWardrobeSession(holder *Actor) *WardrobeSession {
	return &WardrobeSession{
		id:     uuid.New().String(),
		holder: holder,
	}
}

// ID returns the session's unique identifier.
func (s *WardrobeSession) ID() string {
	return s.id
}

// HolderID returns the id of the actor holding this session.
func (s *WardrobeSession) HolderID() string {
	return s.holder.ID()
}

// seed initializes the session's choices from a persisted appearance so
// the holder resumes from their saved state.
func (s *WardrobeSession) seed(a *Appearance) {
	if a == nil {
		return
	}
	s.hairChoice = a.Hair
	s.outfitChoice = a.Outfit
	s.holder.Appearance = Appearance{Hair: a.Hair, Outfit: a.Outfit}
}

// apply selects the option with the given id from cat and records it as
// the holder's choice for that category. The holder's outward-facing
// appearance changes immediately; persistence waits for session end.
func (s *WardrobeSession) apply(cat *Catalog, optionID int) error {
	opt, ok := cat.Find(optionID)
	if !ok {
		return fmt.Errorf("option %d in category %q: %w", optionID, cat.Category, ErrOptionNotFound)
	}

	chosen := opt
	switch cat.Category {
	case CategoryHair:
		s.hairChoice = &chosen
		s.holder.Appearance.Hair = &chosen
	case CategoryOutfit:
		s.outfitChoice = &chosen
		s.holder.Appearance.Outfit = &chosen
	}
	return nil
}

// appearance snapshots the session's current choices for persistence.
func (s *WardrobeSession) appearance() *Appearance {
	return &Appearance{
		Hair:   s.hairChoice,
		Outfit: s.outfitChoice,
	}
}
