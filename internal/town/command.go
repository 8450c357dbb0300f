package town

// Command verb discriminators as they appear on the wire.
const (
	CommandJoinSession        = "JoinSession"
	CommandLeaveSession       = "LeaveSession"
	CommandApplyCustomization = "ApplyCustomization"
)

// Command is the tagged union of verbs an actor can direct at an area.
// Every area kind recognizes only its own verbs and rejects the rest with
// ErrUnrecognizedCommand, which is the extension point new area kinds use.
type Command interface {
	CommandType() string
}

// JoinSessionCommand asks a session-bearing area to start a session with
// the requesting actor as holder.
type JoinSessionCommand struct{}

func (JoinSessionCommand) CommandType() string { return CommandJoinSession }

// LeaveSessionCommand ends the session identified by SessionID. Only the
// current holder may issue it.
type LeaveSessionCommand struct {
	SessionID string `json:"sessionId"`
}

func (LeaveSessionCommand) CommandType() string { return CommandLeaveSession }

// ApplyCustomizationCommand selects an option from one of the area's
// catalogs and applies it to the holder.
type ApplyCustomizationCommand struct {
	OptionID int            `json:"optionId"`
	Category OptionCategory `json:"category"`
}

func (ApplyCustomizationCommand) CommandType() string { return CommandApplyCustomization }

// CommandResult is the verb-specific response to a successfully handled
// command. Its concrete shape depends on the command's verb, not on a
// fixed schema.
type CommandResult interface {
	isCommandResult()
}

// JoinSessionResult reports the id of the session the actor now holds.
type JoinSessionResult struct {
	SessionID string `json:"sessionId"`
}

func (JoinSessionResult) isCommandResult() {}

// EmptyResult is returned by commands that carry no response payload.
type EmptyResult struct{}

func (EmptyResult) isCommandResult() {}
