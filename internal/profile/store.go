// Package profile is the account-storage collaborator: it persists actor
// appearance between visits using the asset file store.
package profile

import (
	"fmt"

	"github.com/pixil98/go-town/internal/storage"
	"github.com/pixil98/go-town/internal/town"
)

// Store implements town.ProfileStore over a Storer of appearances keyed
// by actor id.
type Store struct {
	appearances storage.Storer[*town.Appearance]
}

func NewStore(s storage.Storer[*town.Appearance]) *Store {
	return &Store{appearances: s}
}

// LoadProfile returns the persisted appearance for an actor, or nil when
// the actor has never saved one.
func (s *Store) LoadProfile(actorID string) (*town.Appearance, error) {
	return s.appearances.Get(actorID), nil
}

// SaveProfile writes the actor's appearance through to disk.
func (s *Store) SaveProfile(actorID string, a *town.Appearance) error {
	if a == nil {
		return fmt.Errorf("appearance is nil")
	}
	return s.appearances.Save(actorID, a)
}
