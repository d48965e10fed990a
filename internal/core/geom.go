// Package core provides fundamental types and utilities for the cannon arcade.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a position in world (simulation) coordinates.
// Y grows downward, matching screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Segment is a line segment between two points.
// Blocker and target segments are always vertical with Start above End.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// VSeg builds a vertical segment at x spanning [y0, y1].
func VSeg(x, y0, y1 float64) Segment {
	return Segment{Start: Point{X: x, Y: y0}, End: Point{X: x, Y: y1}}
}

// Vertical reports whether the segment is vertical and top-down ordered.
func (s Segment) Vertical() bool {
	return s.Start.X == s.End.X && s.Start.Y < s.End.Y
}

// Length returns the vertical extent of the segment.
func (s Segment) Length() float64 {
	return s.End.Y - s.Start.Y
}

// ShiftY moves both endpoints vertically by dy.
func (s Segment) ShiftY(dy float64) Segment {
	s.Start.Y += dy
	s.End.Y += dy
	return s
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
