package town

import "sync"

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Event Event

	// Delivery scope
	Broadcast bool
	Except    string
	AreaID    string
	To        string
}

func (r *recordingEmitter) Broadcast(ev Event) {
	r.record(recordedEvent{Event: ev, Broadcast: true})
}

func (r *recordingEmitter) BroadcastExcept(actorID string, ev Event) {
	r.record(recordedEvent{Event: ev, Except: actorID})
}

func (r *recordingEmitter) BroadcastArea(areaID string, ev Event) {
	r.record(recordedEvent{Event: ev, AreaID: areaID})
}

func (r *recordingEmitter) Send(actorID string, ev Event) {
	r.record(recordedEvent{Event: ev, To: actorID})
}

func (r *recordingEmitter) record(ev recordedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingEmitter) all() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]recordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingEmitter) ofType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, ev := range r.all() {
		if ev.Event.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// mockProfileStore records saves and serves canned loads. Saves are
// signaled on a channel because the wardrobe flushes asynchronously.
type mockProfileStore struct {
	mu      sync.Mutex
	saved   map[string]*Appearance
	loads   map[string]*Appearance
	loadErr error
	saveErr error

	saveDone chan string
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{
		saved:    map[string]*Appearance{},
		loads:    map[string]*Appearance{},
		saveDone: make(chan string, 8),
	}
}

func (m *mockProfileStore) LoadProfile(actorID string) (*Appearance, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loads[actorID], nil
}

func (m *mockProfileStore) SaveProfile(actorID string, a *Appearance) error {
	if m.saveErr != nil {
		m.saveDone <- actorID
		return m.saveErr
	}
	m.mu.Lock()
	m.saved[actorID] = a
	m.mu.Unlock()
	m.saveDone <- actorID
	return nil
}

func (m *mockProfileStore) getSaved(actorID string) *Appearance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[actorID]
}

func testCatalogs() (*Catalog, *Catalog) {
	hair := &Catalog{
		Category: CategoryHair,
		Options: []CustomizationOption{
			{OptionID: 1, FilePath: "hair/short.png"},
			{OptionID: 2, FilePath: "hair/long.png"},
		},
	}
	outfit := &Catalog{
		Category: CategoryOutfit,
		Options: []CustomizationOption{
			{OptionID: 1, FilePath: "outfit/casual.png"},
			{OptionID: 2, FilePath: "outfit/formal.png"},
		},
	}
	return hair, outfit
}

func testWardrobe(em Emitter, profiles ProfileStore) *WardrobeArea {
	hair, outfit := testCatalogs()
	return NewWardrobeArea("wardrobe-1", BoundingBox{X: 100, Y: 100, Width: 50, Height: 50}, hair, outfit, profiles, em)
}

// countingArea wraps an Interactable and counts Add/Remove calls.
type countingArea struct {
	Interactable
	adds    int
	removes int
}

func (c *countingArea) Add(a *Actor) error {
	c.adds++
	return c.Interactable.Add(a)
}

func (c *countingArea) Remove(a *Actor) {
	c.removes++
	c.Interactable.Remove(a)
}
