package town

import "errors"

var (
	ErrAlreadyOccupied     = errors.New("session is already occupied")
	ErrNotHolder           = errors.New("actor does not hold the session")
	ErrNoActiveSession     = errors.New("no active session")
	ErrOptionNotFound      = errors.New("customization option not found")
	ErrUnrecognizedCommand = errors.New("unrecognized command")

	ErrActorNotFound       = errors.New("actor not found")
	ErrActorExists         = errors.New("actor already exists")
	ErrAreaNotFound        = errors.New("area not found")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrInvalidLocation     = errors.New("invalid location")
	ErrEmptyUserName       = errors.New("user name is empty")
)

// Reason codes surfaced to clients on rejected commands. Each maps to one
// failure kind so client UI can react differently per code.
const (
	CodeAlreadyOccupied     = "alreadyOccupied"
	CodeNotHolder           = "notHolder"
	CodeNoActiveSession     = "noActiveSession"
	CodeOptionNotFound      = "optionNotFound"
	CodeUnrecognizedCommand = "unrecognizedCommand"
	CodeActorNotFound       = "actorNotFound"
	CodeAreaNotFound        = "areaNotFound"
	CodeInvalidToken        = "invalidSessionToken"
	CodeInvalidLocation     = "invalidLocation"
	CodeInternal            = "internal"
)

// ErrorCode maps a command failure to its wire reason code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyOccupied):
		return CodeAlreadyOccupied
	case errors.Is(err, ErrNotHolder):
		return CodeNotHolder
	case errors.Is(err, ErrNoActiveSession):
		return CodeNoActiveSession
	case errors.Is(err, ErrOptionNotFound):
		return CodeOptionNotFound
	case errors.Is(err, ErrUnrecognizedCommand):
		return CodeUnrecognizedCommand
	case errors.Is(err, ErrActorNotFound):
		return CodeActorNotFound
	case errors.Is(err, ErrAreaNotFound):
		return CodeAreaNotFound
	case errors.Is(err, ErrInvalidSessionToken):
		return CodeInvalidToken
	case errors.Is(err, ErrInvalidLocation):
		return CodeInvalidLocation
	default:
		return CodeInternal
	}
}
