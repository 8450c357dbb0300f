package town

import (
	"fmt"
	"log/slog"
)

// WardrobeArea is a session-bearing area enforcing single occupancy of its
// customization session. The area is open while no session is held; a
// successful join closes it until the holder leaves, disconnects, or walks
// out of the area's bounds.
type WardrobeArea struct {
	interactableArea

	isOpen  bool
	session *WardrobeSession

	hairCatalog   *Catalog
	outfitCatalog *Catalog
	profiles      ProfileStore
}

// NewWardrobeArea creates a wardrobe area from layout data and its two
// option catalogs. The profile store may be nil, in which case sessions
// start from defaults and nothing is persisted.
func NewWardrobeArea(id string, bounds BoundingBox, hair, outfit *Catalog, profiles ProfileStore, em Emitter) *WardrobeArea {
	return &WardrobeArea{
		interactableArea: newInteractableArea(id, bounds, em),
		isOpen:           true,
		hairCatalog:      hair,
		outfitCatalog:    outfit,
		profiles:         profiles,
	}
}

// Add registers an occupant. Occupancy of the area itself is unrestricted;
// only the session is single-holder.
func (w *WardrobeArea) Add(a *Actor) error {
	if w.addOccupant(a) {
		w.notifyChanged(w.ToModel())
	}
	return nil
}

// Remove unregisters an occupant. A holder leaving the bounds ends their
// session exactly as an explicit leave would, pending changes included.
func (w *WardrobeArea) Remove(a *Actor) {
	changed := w.removeOccupant(a)
	if w.session != nil && w.session.HolderID() == a.ID() {
		w.endSession()
		changed = true
	}
	if changed {
		w.notifyChanged(w.ToModel())
	}
}

// IsActive reports whether the area is occupied and a session is live.
func (w *WardrobeArea) IsActive() bool {
	return len(w.occupants) > 0 && w.session != nil
}

// Session returns the live session, or nil while the area is vacant.
func (w *WardrobeArea) Session() *WardrobeSession {
	return w.session
}

// IsOpen reports whether the area accepts a new session join.
func (w *WardrobeArea) IsOpen() bool {
	return w.isOpen
}

// ToModel produces the wire snapshot of this area.
func (w *WardrobeArea) ToModel() AreaModel {
	wm := &WardrobeModel{
		HairOptions:   w.hairCatalog.Options,
		OutfitOptions: w.outfitCatalog.Options,
	}
	if w.session != nil {
		wm.SessionID = w.session.id
		wm.Holder = w.session.HolderID()
		wm.HairChoice = w.session.hairChoice
		wm.OutfitChoice = w.session.outfitChoice
	}
	return AreaModel{
		ID:        w.id,
		Type:      AreaTypeWardrobe,
		Occupants: w.occupantIDs(),
		IsOpen:    w.isOpen,
		Wardrobe:  wm,
	}
}

// HandleCommand dispatches the wardrobe verbs. Every state-mutating verb
// emits a fresh area snapshot before returning.
func (w *WardrobeArea) HandleCommand(cmd Command, actor *Actor) (CommandResult, error) {
	switch c := cmd.(type) {
	case JoinSessionCommand:
		s, err := w.join(actor)
		if err != nil {
			return nil, err
		}
		w.notifyChanged(w.ToModel())
		return JoinSessionResult{SessionID: s.id}, nil

	case LeaveSessionCommand:
		if err := w.leave(actor, c.SessionID); err != nil {
			return nil, err
		}
		w.notifyChanged(w.ToModel())
		return EmptyResult{}, nil

	case ApplyCustomizationCommand:
		if err := w.apply(actor, c.OptionID, c.Category); err != nil {
			return nil, err
		}
		w.notifyChanged(w.ToModel())
		return EmptyResult{}, nil

	default:
		return nil, fmt.Errorf("%s: %w", cmd.CommandType(), ErrUnrecognizedCommand)
	}
}

// join creates a session with the actor as holder. Joining while any
// session is live fails; requests are never queued and never preempt.
func (w *WardrobeArea) join(actor *Actor) (*WardrobeSession, error) {
	if w.session != nil {
		return nil, ErrAlreadyOccupied
	}

	s := newWardrobeSession(actor)
	if w.profiles != nil {
		saved, err := w.profiles.LoadProfile(actor.ID())
		if err != nil {
			slog.Warn("loading profile", "area", w.id, "actor", actor.ID(), "error", err)
		} else {
			s.seed(saved)
		}
	}

	w.session = s
	w.isOpen = false
	return s, nil
}

// leave ends the session. Only the current holder may leave, and a stale
// session id is rejected the same way as a missing session.
func (w *WardrobeArea) leave(actor *Actor, sessionID string) error {
	if w.session == nil {
		return ErrNoActiveSession
	}
	if sessionID != "" && sessionID != w.session.id {
		return fmt.Errorf("session %q: %w", sessionID, ErrNoActiveSession)
	}
	if w.session.HolderID() != actor.ID() {
		return ErrNotHolder
	}

	w.endSession()
	return nil
}

// apply selects a catalog option for the holder.
func (w *WardrobeArea) apply(actor *Actor, optionID int, category OptionCategory) error {
	if w.session == nil {
		return ErrNoActiveSession
	}
	if w.session.HolderID() != actor.ID() {
		return ErrNotHolder
	}

	switch category {
	case CategoryHair:
		return w.session.apply(w.hairCatalog, optionID)
	case CategoryOutfit:
		return w.session.apply(w.outfitCatalog, optionID)
	default:
		return fmt.Errorf("category %q: %w", category, ErrOptionNotFound)
	}
}

// endSession flushes pending changes and reopens the area. The flush is
// fire-and-forget: the session is closed immediately, and a crash before
// the write lands loses the pending changes.
func (w *WardrobeArea) endSession() {
	s := w.session
	w.session = nil
	w.isOpen = true

	if w.profiles == nil {
		return
	}
	holderID := s.HolderID()
	snapshot := s.appearance()
	go func() {
		if err := w.profiles.SaveProfile(holderID, snapshot); err != nil {
			slog.Warn("persisting profile", "area", w.id, "actor", holderID, "error", err)
		}
	}()
}
