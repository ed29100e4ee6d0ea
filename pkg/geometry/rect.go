// Package geometry implements the rectangle math behind directional focus
// navigation. It partitions candidate rectangles around a target, ranks them
// with direction-specific distance keys and picks a destination.
//
// Nothing here holds state; rectangles are snapshots measured by the caller
// for a single navigation request.
package geometry

import (
	"math"
	"strings"
)

// Point is a position in layout coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box with a derived center point.
type Rect struct {
	Left, Top, Right, Bottom float64
	Width, Height            float64
	Center                   Point
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return FromEdges(x, y, x+w, y+h)
}

// FromEdges creates a rect from its four edges.
// The center is floored to whole units, matching how layout engines report
// integral element midpoints.
func FromEdges(left, top, right, bottom float64) Rect {
	w := right - left
	h := bottom - top
	return Rect{
		Left:   left,
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Width:  w,
		Height: h,
		Center: Point{
			X: left + math.Floor(w/2),
			Y: top + math.Floor(h/2),
		},
	}
}

// Empty reports whether the rect has no visible extent in either dimension.
func (r Rect) Empty() bool {
	return r.Width <= 0 && r.Height <= 0
}

// Contains returns true if the point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersects returns true if the two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right &&
		r.Right > other.Left &&
		r.Top < other.Bottom &&
		r.Bottom > other.Top
}

// CenterRect collapses the rect to a zero-size rect at its center.
func (r Rect) CenterRect() Rect {
	return Rect{
		Left:   r.Center.X,
		Right:  r.Center.X,
		Top:    r.Center.Y,
		Bottom: r.Center.Y,
		Center: r.Center,
	}
}

// Direction is one of the four navigation directions.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists every valid direction.
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection parses a direction name, ignoring case.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

// Valid reports whether d names one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return ""
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
