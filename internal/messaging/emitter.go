package messaging

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pixil98/go-town/internal/town"
)

// Subjects carrying town events. Connection sessions subscribe to the
// broadcast subject, the area wildcard, and their own actor subject.
const (
	SubjectBroadcast   = "town.broadcast"
	SubjectAreaPrefix  = "town.area."
	SubjectActorPrefix = "town.actor."
)

// SubjectArea returns the subject carrying one area's change events.
func SubjectArea(areaID string) string {
	return SubjectAreaPrefix + areaID
}

// SubjectActor returns the subject carrying events for one actor only.
func SubjectActor(actorID string) string {
	return SubjectActorPrefix + actorID
}

// Publisher is the slice of the broker the emitter needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Emitter implements town.Emitter over the broker. It tracks the set of
// connected actors so exclusion broadcasts can fan out per actor subject.
// Emission failures are logged, never propagated: an area mutation must
// not fail because a notification did.
type Emitter struct {
	pub Publisher

	mu     sync.RWMutex
	actors map[string]bool
}

func NewEmitter(pub Publisher) *Emitter {
	return &Emitter{
		pub:    pub,
		actors: make(map[string]bool),
	}
}

// Register adds an actor to the fan-out roster. The listener calls this
// when a connection is admitted.
func (e *Emitter) Register(actorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actors[actorID] = true
}

// Unregister removes an actor from the roster on disconnect.
func (e *Emitter) Unregister(actorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.actors, actorID)
}

func (e *Emitter) Broadcast(ev town.Event) {
	e.publish(SubjectBroadcast, ev)
}

func (e *Emitter) BroadcastExcept(actorID string, ev town.Event) {
	e.mu.RLock()
	targets := make([]string, 0, len(e.actors))
	for id := range e.actors {
		if id != actorID {
			targets = append(targets, id)
		}
	}
	e.mu.RUnlock()

	for _, id := range targets {
		e.publish(SubjectActor(id), ev)
	}
}

func (e *Emitter) BroadcastArea(areaID string, ev town.Event) {
	e.publish(SubjectArea(areaID), ev)
}

func (e *Emitter) Send(actorID string, ev town.Event) {
	e.publish(SubjectActor(actorID), ev)
}

func (e *Emitter) publish(subject string, ev town.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("marshalling event", "subject", subject, "error", err)
		return
	}
	if err := e.pub.Publish(subject, data); err != nil {
		slog.Warn("publishing event", "subject", subject, "type", ev.Type, "error", err)
	}
}
