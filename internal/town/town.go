package town

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-log"
)

// Town is the single source of truth for all mutable town state: the
// connected actors and the interactable areas. All access goes through its
// methods; the mutex serializes every mutation, so check-then-set logic
// inside areas (the single-occupancy session join in particular) never
// races.
type Town struct {
	mu     sync.Mutex
	actors map[string]*Actor
	areas  []Interactable

	emitter   Emitter
	announcer *Announcer
}

// NewTown creates a town over the given areas. The announcer is optional.
func NewTown(em Emitter, areas []Interactable, announcer *Announcer) *Town {
	return &Town{
		actors:    make(map[string]*Actor),
		areas:     areas,
		emitter:   em,
		announcer: announcer,
	}
}

// AddActor admits a verified participant: creates the actor record,
// announces the arrival, and returns the actor so the caller can hand the
// id and session token back to the client. The new actor's own connection
// does not receive the join broadcast.
func (t *Town) AddActor(userName string) (*Actor, error) {
	userName = NormalizeUserName(userName)
	if userName == "" {
		return nil, ErrEmptyUserName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	a := NewActor(userName)
	if _, exists := t.actors[a.ID()]; exists {
		return nil, ErrActorExists
	}
	t.actors[a.ID()] = a

	t.emitter.BroadcastExcept(a.ID(), ActorJoinedEvent(a.ToModel()))
	t.announce(func(an *Announcer) (string, error) { return an.Arrival(userName) })

	return a, nil
}

// VerifyToken checks that the presented session token belongs to the
// actor. Every client message is gated on this before it mutates state.
func (t *Town) VerifyToken(actorID, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.actors[actorID]
	if !ok {
		return ErrActorNotFound
	}
	if a.SessionToken() != token {
		return ErrInvalidSessionToken
	}
	return nil
}

// Snapshot returns wire models for every actor and every area, for
// seeding a freshly connected client.
func (t *Town) Snapshot() ([]ActorModel, []AreaModel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	actors := make([]ActorModel, 0, len(t.actors))
	for _, a := range t.actors {
		actors = append(actors, a.ToModel())
	}
	areas := make([]AreaModel, 0, len(t.areas))
	for _, area := range t.areas {
		areas = append(areas, area.ToModel())
	}
	return actors, areas
}

// UpdateLocation replaces the actor's location wholesale, fans the
// movement out to every other client, and recomputes area membership.
// Entry and exit are edge-triggered: an area is touched only when the
// actor's membership actually changes, no matter how many updates arrive
// while the actor stays inside.
func (t *Town) UpdateLocation(actorID string, loc Location) error {
	if !loc.Facing.Valid() {
		return fmt.Errorf("facing %q: %w", loc.Facing, ErrInvalidLocation)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.actors[actorID]
	if !ok {
		return ErrActorNotFound
	}

	a.Location = loc
	t.emitter.BroadcastExcept(actorID, ActorMovedEvent(actorID, loc))

	for _, area := range t.areas {
		inside := area.Bounds().Contains(loc)
		member := area.HasOccupant(actorID)
		switch {
		case inside && !member:
			if err := area.Add(a); err != nil {
				slog.Warn("adding occupant", "area", area.ID(), "actor", actorID, "error", err)
			}
		case !inside && member:
			area.Remove(a)
		}
	}
	return nil
}

// HandleAreaCommand routes one command to the target area's dispatch
// entry point. Dispatch runs under the town lock, so the area's
// check-then-set invariants hold without area-level locking.
func (t *Town) HandleAreaCommand(actorID, areaID string, cmd Command) (CommandResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.actors[actorID]
	if !ok {
		return nil, ErrActorNotFound
	}
	area := t.findArea(areaID)
	if area == nil {
		return nil, fmt.Errorf("area %q: %w", areaID, ErrAreaNotFound)
	}
	return area.HandleCommand(cmd, a)
}

// Chat broadcasts a text message from an actor to the whole town.
func (t *Town) Chat(actorID, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.actors[actorID]
	if !ok {
		return ErrActorNotFound
	}
	t.emitter.Broadcast(ChatEvent(ChatMessage{
		ActorID:  a.ID(),
		UserName: a.UserName(),
		Body:     body,
	}))
	return nil
}

// RemoveActor destroys an actor on disconnect. The actor is removed from
// every area before the disconnect broadcast, and any session it held is
// torn down exactly as if it had issued a leave.
func (t *Town) RemoveActor(actorID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.actors[actorID]
	if !ok {
		return ErrActorNotFound
	}

	// Remove from every area unconditionally. Remove is idempotent, and an
	// area may hold state for an actor that is not an occupant (a wardrobe
	// session joined from outside the bounds) that still needs tearing down.
	for _, area := range t.areas {
		area.Remove(a)
	}
	delete(t.actors, actorID)

	t.emitter.Broadcast(ActorDisconnectedEvent(actorID))
	t.announce(func(an *Announcer) (string, error) { return an.Departure(a.UserName()) })

	return nil
}

// Tick logs an occupancy summary. The town driver calls this
// periodically.
func (t *Town) Tick(ctx context.Context) error {
	t.mu.Lock()
	actors := len(t.actors)
	active := 0
	for _, area := range t.areas {
		if area.IsActive() {
			active++
		}
	}
	t.mu.Unlock()

	log.GetLogger(ctx).Infof("town: %d actors, %d active areas", actors, active)
	return nil
}

func (t *Town) findArea(areaID string) Interactable {
	for _, area := range t.areas {
		if area.ID() == areaID {
			return area
		}
	}
	return nil
}

// announce renders and broadcasts a system chat message. Announcement
// failures are logged, never surfaced to clients.
func (t *Town) announce(render func(*Announcer) (string, error)) {
	if t.announcer == nil {
		return
	}
	body, err := render(t.announcer)
	if err != nil {
		slog.Warn("rendering announcement", "error", err)
		return
	}
	t.emitter.Broadcast(ChatEvent(ChatMessage{Body: body, System: true}))
}
