package town

// BoundingBox is a rectangular region of the town map in world units.
// Boxes are fixed once an area is constructed from layout data.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether loc falls inside the box. The left and top
// edges are inclusive so an actor standing exactly on them counts as
// inside; the right and bottom edges belong to the neighboring region.
func (b BoundingBox) Contains(loc Location) bool {
	return loc.X >= b.X && loc.X < b.X+b.Width &&
		loc.Y >= b.Y && loc.Y < b.Y+b.Height
}
