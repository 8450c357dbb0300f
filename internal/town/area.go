package town

// Interactable is a named spatial region with occupancy tracking and a
// uniform command entry point. All area kinds implement it; the town only
// ever talks to areas through this interface.
type Interactable interface {
	ID() string
	Bounds() BoundingBox

	// Add registers an occupant. The base behavior accepts any number of
	// occupants; kinds with a capacity limit return an error instead of
	// silently ignoring the request.
	Add(a *Actor) error

	// Remove unregisters an occupant. Removing an absent actor is a no-op
	// because disconnect races can trigger duplicate removals.
	Remove(a *Actor)

	HasOccupant(actorID string) bool
	IsActive() bool

	// ToModel produces the wire snapshot. It must be pure and reflect the
	// current occupants exactly.
	ToModel() AreaModel

	// HandleCommand dispatches one command verb. Unrecognized verbs fail
	// with ErrUnrecognizedCommand.
	HandleCommand(cmd Command, actor *Actor) (CommandResult, error)
}

// interactableArea holds the occupancy bookkeeping shared by every area
// kind. Occupants are kept in arrival order with no duplicate ids.
type interactableArea struct {
	id        string
	bounds    BoundingBox
	occupants []*Actor
	emitter   Emitter
}

func newInteractableArea(id string, bounds BoundingBox, em Emitter) interactableArea {
	return interactableArea{
		id:      id,
		bounds:  bounds,
		emitter: em,
	}
}

func (i *interactableArea) ID() string {
	return i.id
}

func (i *interactableArea) Bounds() BoundingBox {
	return i.bounds
}

// HasOccupant reports whether the actor is currently registered here.
func (i *interactableArea) HasOccupant(actorID string) bool {
	for _, o := range i.occupants {
		if o.ID() == actorID {
			return true
		}
	}
	return false
}

// addOccupant appends the actor if absent. Returns true when the list
// changed.
func (i *interactableArea) addOccupant(a *Actor) bool {
	if i.HasOccupant(a.ID()) {
		return false
	}
	i.occupants = append(i.occupants, a)
	return true
}

// removeOccupant drops the actor if present. Returns true when the list
// changed.
func (i *interactableArea) removeOccupant(a *Actor) bool {
	for n, o := range i.occupants {
		if o.ID() == a.ID() {
			i.occupants = append(i.occupants[:n], i.occupants[n+1:]...)
			return true
		}
	}
	return false
}

// occupantIDs returns the occupant ids in arrival order. The slice is
// always freshly allocated so models never alias internal state.
func (i *interactableArea) occupantIDs() []string {
	ids := make([]string, len(i.occupants))
	for n, o := range i.occupants {
		ids[n] = o.ID()
	}
	return ids
}

// notifyChanged publishes a fresh snapshot on the area's subject. Every
// state-mutating operation calls this before returning.
func (i *interactableArea) notifyChanged(m AreaModel) {
	if i.emitter == nil {
		return
	}
	i.emitter.BroadcastArea(i.id, AreaChangedEvent(m))
}
