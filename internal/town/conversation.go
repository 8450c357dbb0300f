package town

import "fmt"

// ConversationArea is an occupancy-only area with a topic. It carries no
// session and recognizes no commands; it exists so clients can see who is
// gathered where.
type ConversationArea struct {
	interactableArea

	topic string
}

// NewConversationArea creates a conversation area from layout data.
func NewConversationArea(id string, bounds BoundingBox, topic string, em Emitter) *ConversationArea {
	return &ConversationArea{
		interactableArea: newInteractableArea(id, bounds, em),
		topic:            topic,
	}
}

// Add registers an occupant. Conversation areas have no capacity limit.
func (c *ConversationArea) Add(a *Actor) error {
	if c.addOccupant(a) {
		c.notifyChanged(c.ToModel())
	}
	return nil
}

// Remove unregisters an occupant; a no-op when the actor is absent.
func (c *ConversationArea) Remove(a *Actor) {
	if c.removeOccupant(a) {
		c.notifyChanged(c.ToModel())
	}
}

// IsActive reports whether anyone is inside.
func (c *ConversationArea) IsActive() bool {
	return len(c.occupants) > 0
}

// ToModel produces the wire snapshot of this area.
func (c *ConversationArea) ToModel() AreaModel {
	return AreaModel{
		ID:        c.id,
		Type:      AreaTypeConversation,
		Occupants: c.occupantIDs(),
		IsOpen:    true,
		Topic:     c.topic,
	}
}

// HandleCommand rejects every verb; conversation areas have none.
func (c *ConversationArea) HandleCommand(cmd Command, _ *Actor) (CommandResult, error) {
	return nil, fmt.Errorf("%s: %w", cmd.CommandType(), ErrUnrecognizedCommand)
}
