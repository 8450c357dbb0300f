package town

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Actor is the server's authoritative record of one connected participant.
// One actor exists per accepted connection; the listener constructs it only
// after the identity has been verified.
type Actor struct {
	id           string
	userName     string
	sessionToken string

	// Location is mutated only through Town.UpdateLocation.
	Location Location

	// Appearance is mutated only through a wardrobe session.
	Appearance Appearance
}

// NewActor creates an actor with a generated id and session token, standing
// at the default location.
func NewActor(userName string) *Actor {
	return &Actor{
		id:           uuid.New().String(),
		userName:     userName,
		sessionToken: uuid.New().String(),
		Location:     DefaultLocation(),
	}
}

// ID returns the actor's unique, server-generated identifier.
func (a *Actor) ID() string {
	return a.id
}

// UserName returns the actor's display name. Names are not unique.
func (a *Actor) UserName() string {
	return a.userName
}

// SessionToken returns the opaque credential the client must present on
// every message for this actor.
func (a *Actor) SessionToken() string {
	return a.sessionToken
}

// ToModel produces the wire projection of this actor.
func (a *Actor) ToModel() ActorModel {
	return ActorModel{
		ID:         a.id,
		UserName:   a.userName,
		Location:   a.Location,
		Appearance: a.Appearance,
	}
}

// NormalizeUserName canonicalizes a client-supplied display name: NFC
// normalization, trimmed edges, and inner whitespace collapsed to single
// spaces.
func NormalizeUserName(name string) string {
	name = norm.NFC.String(name)
	return strings.Join(strings.Fields(name), " ")
}
