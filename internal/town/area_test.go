package town

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestConversationArea_AddNoDuplicates(t *testing.T) {
	em := &recordingEmitter{}
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", em)
	a := NewActor("alice")

	if err := area.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := area.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := area.ToModel()
	testutil.AssertEqual(t, "occupant count", len(m.Occupants), 1)
	testutil.AssertEqual(t, "occupant id", m.Occupants[0], a.ID())

	// The duplicate add must not re-notify.
	testutil.AssertEqual(t, "areaChanged emissions", len(em.ofType(EventAreaChanged)), 1)
}

func TestConversationArea_RemoveIsIdempotent(t *testing.T) {
	em := &recordingEmitter{}
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", em)
	a := NewActor("alice")
	b := NewActor("bob")

	if err := area.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := area.Add(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	area.Remove(a)
	area.Remove(a) // disconnect races can double-remove; must be a no-op

	m := area.ToModel()
	testutil.AssertEqual(t, "occupant count", len(m.Occupants), 1)
	testutil.AssertEqual(t, "occupant id", m.Occupants[0], b.ID())
}

func TestConversationArea_OccupantsKeepArrivalOrder(t *testing.T) {
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", &recordingEmitter{})
	a := NewActor("alice")
	b := NewActor("bob")
	c := NewActor("carol")

	for _, actor := range []*Actor{a, b, c} {
		if err := area.Add(actor); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	area.Remove(b)

	m := area.ToModel()
	testutil.AssertEqual(t, "occupant count", len(m.Occupants), 2)
	testutil.AssertEqual(t, "first occupant", m.Occupants[0], a.ID())
	testutil.AssertEqual(t, "second occupant", m.Occupants[1], c.ID())
}

func TestConversationArea_IsActive(t *testing.T) {
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", &recordingEmitter{})
	testutil.AssertEqual(t, "empty area active", area.IsActive(), false)

	a := NewActor("alice")
	if err := area.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "occupied area active", area.IsActive(), true)

	area.Remove(a)
	testutil.AssertEqual(t, "emptied area active", area.IsActive(), false)
}

func TestConversationArea_RejectsEveryCommand(t *testing.T) {
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", &recordingEmitter{})
	a := NewActor("alice")

	cmds := []Command{
		JoinSessionCommand{},
		LeaveSessionCommand{SessionID: "s-1"},
		ApplyCustomizationCommand{OptionID: 1, Category: CategoryHair},
	}
	for _, cmd := range cmds {
		_, err := area.HandleCommand(cmd, a)
		if !errors.Is(err, ErrUnrecognizedCommand) {
			t.Errorf("command %s: got %v, want ErrUnrecognizedCommand", cmd.CommandType(), err)
		}
	}
}

func TestConversationArea_ToModel(t *testing.T) {
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", &recordingEmitter{})

	m := area.ToModel()
	testutil.AssertEqual(t, "id", m.ID, "lobby")
	testutil.AssertEqual(t, "type", m.Type, AreaTypeConversation)
	testutil.AssertEqual(t, "topic", m.Topic, "small talk")
	testutil.AssertEqual(t, "isOpen", m.IsOpen, true)
	testutil.AssertEqual(t, "occupants", len(m.Occupants), 0)
}

func TestAreaNotifiesOnMutation(t *testing.T) {
	em := &recordingEmitter{}
	area := NewConversationArea("lobby", BoundingBox{X: 10, Y: 10, Width: 20, Height: 20}, "small talk", em)
	a := NewActor("alice")

	if err := area.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	area.Remove(a)

	changed := em.ofType(EventAreaChanged)
	testutil.AssertEqual(t, "areaChanged emissions", len(changed), 2)
	testutil.AssertEqual(t, "subject area", changed[0].AreaID, "lobby")

	// Snapshots reflect the state at emission time.
	testutil.AssertEqual(t, "first snapshot occupants", len(changed[0].Event.Area.Occupants), 1)
	testutil.AssertEqual(t, "second snapshot occupants", len(changed[1].Event.Area.Occupants), 0)
}
