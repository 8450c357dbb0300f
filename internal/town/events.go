package town

// Server-to-client event discriminators.
const (
	EventAreaChanged       = "areaChanged"
	EventActorJoined       = "actorJoined"
	EventActorMoved        = "actorMoved"
	EventActorDisconnected = "actorDisconnected"
	EventChatMessage       = "chatMessage"
)

// Event is one server-to-client notification. The Type field discriminates
// which payload fields are set. Events are applied by full replacement on
// the client, so redelivery is harmless.
type Event struct {
	Type string `json:"type"`

	Area     *AreaModel   `json:"area,omitempty"`
	Actor    *ActorModel  `json:"actor,omitempty"`
	ActorID  string       `json:"actorId,omitempty"`
	Location *Location    `json:"location,omitempty"`
	Chat     *ChatMessage `json:"chat,omitempty"`
}

// ChatMessage is a broadcast text message. System messages (arrival and
// departure announcements) have no originating actor.
type ChatMessage struct {
	ActorID  string `json:"actorId,omitempty"`
	UserName string `json:"userName,omitempty"`
	Body     string `json:"body"`
	System   bool   `json:"system,omitempty"`
}

// AreaChangedEvent snapshots an area after a mutation.
func AreaChangedEvent(m AreaModel) Event {
	return Event{Type: EventAreaChanged, Area: &m}
}

// ActorJoinedEvent announces a newly connected actor.
func ActorJoinedEvent(m ActorModel) Event {
	return Event{Type: EventActorJoined, Actor: &m}
}

// ActorMovedEvent reports an actor's replaced location.
func ActorMovedEvent(actorID string, loc Location) Event {
	return Event{Type: EventActorMoved, ActorID: actorID, Location: &loc}
}

// ActorDisconnectedEvent reports that an actor left the town.
func ActorDisconnectedEvent(actorID string) Event {
	return Event{Type: EventActorDisconnected, ActorID: actorID}
}

// ChatEvent wraps a chat message for broadcast.
func ChatEvent(msg ChatMessage) Event {
	return Event{Type: EventChatMessage, Chat: &msg}
}

// Emitter fans events out to connected clients. Delivery is at-least-once;
// ordering is preserved per area subject but not across independent
// subjects.
type Emitter interface {
	// Broadcast delivers an event to every connected client.
	Broadcast(ev Event)

	// BroadcastExcept delivers an event to every connected client except
	// the named actor. Movement updates use this so an actor's own
	// report is never echoed back.
	BroadcastExcept(actorID string, ev Event)

	// BroadcastArea delivers an event on the given area's subject, reaching
	// the clients subscribed to that area.
	BroadcastArea(areaID string, ev Event)

	// Send delivers an event to a single actor.
	Send(actorID string, ev Event)
}
