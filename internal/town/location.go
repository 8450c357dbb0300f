package town

// Facing is the direction an actor is pointed.
type Facing string

const (
	FacingFront Facing = "front"
	FacingBack  Facing = "back"
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

// Valid reports whether f is one of the four known directions.
func (f Facing) Valid() bool {
	switch f {
	case FacingFront, FacingBack, FacingLeft, FacingRight:
		return true
	}
	return false
}

// Location is an actor's authoritative position in world units. It is
// always fully populated; updates replace it wholesale, never field by
// field.
type Location struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing Facing  `json:"facing"`
	Moving bool    `json:"moving"`
}

// DefaultLocation is where a newly connected actor stands.
func DefaultLocation() Location {
	return Location{X: 0, Y: 0, Facing: FacingFront, Moving: false}
}
