package listener

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-town/internal/town"
)

// Client-to-server message discriminators.
const (
	msgJoin    = "join"
	msgMove    = "move"
	msgCommand = "command"
	msgChat    = "chat"
)

// Server-to-client frame discriminators. Frames wrap either a direct
// response to a client message or a forwarded town event.
const (
	frameWelcome = "welcome"
	frameResult  = "result"
	frameError   = "error"
	frameEvent   = "event"
)

// codeBadPassword rejects a join against a passworded town. Auth failures
// never reach the town, so the code lives here rather than with the town's
// own reason codes.
const codeBadPassword = "badPassword"

// clientEnvelope is one message from a client. Every message after the
// initial join must carry the actor's session token.
type clientEnvelope struct {
	Type    string          `json:"type"`
	Seq     int64           `json:"seq,omitempty"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinPayload struct {
	UserName string `json:"userName"`
	Password string `json:"password,omitempty"`
}

type movePayload struct {
	Location town.Location `json:"location"`
}

type commandPayload struct {
	AreaID  string          `json:"areaId"`
	Command json.RawMessage `json:"command"`
}

type chatPayload struct {
	Body string `json:"body"`
}

// serverFrame is one message to a client.
type serverFrame struct {
	Type string `json:"type"`
	Seq  int64  `json:"seq,omitempty"`

	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	Welcome *welcomePayload `json:"welcome,omitempty"`
	Result  any             `json:"result,omitempty"`

	Event json.RawMessage `json:"event,omitempty"`
}

type welcomePayload struct {
	ActorID      string            `json:"actorId"`
	SessionToken string            `json:"sessionToken"`
	Actors       []town.ActorModel `json:"actors"`
	Areas        []town.AreaModel  `json:"areas"`
}

// commandEnvelope is the wire form of an area command; Type discriminates
// which of the remaining fields matter.
type commandEnvelope struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	OptionID  int    `json:"optionId,omitempty"`
	Category  string `json:"category,omitempty"`
}

// parseCommand decodes a wire command into the town's tagged union.
func parseCommand(raw json.RawMessage) (town.Command, error) {
	var env commandEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding command: %w", err)
	}

	switch env.Type {
	case town.CommandJoinSession:
		return town.JoinSessionCommand{}, nil
	case town.CommandLeaveSession:
		return town.LeaveSessionCommand{SessionID: env.SessionID}, nil
	case town.CommandApplyCustomization:
		return town.ApplyCustomizationCommand{
			OptionID: env.OptionID,
			Category: town.OptionCategory(env.Category),
		}, nil
	default:
		return nil, fmt.Errorf("%q: %w", env.Type, town.ErrUnrecognizedCommand)
	}
}
