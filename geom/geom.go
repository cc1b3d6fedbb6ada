// Package geom defines the drawable entities of a sketch surface.
//
// All entity types are plain values. Once an entity has been committed to a
// scene it is never modified again: undo replaces whole collections, it does
// not edit entities in place. Slices held by entities (stroke points) must be
// treated as read-only by every consumer.
//
// Coordinates are surface-local pixels with the origin at the top-left
// corner, X growing right and Y growing down.
package geom

import (
	"image"
	"math"
	"slices"
)

// Point is a surface-local position in pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Stroke is a freehand path.
//
// An eraser stroke is painted with the surface background color instead of
// Color. It covers what lies below it; it does not reveal anything.
type Stroke struct {
	Points []Point
	Color  string
	Width  float64
	Eraser bool
	Layer  string
}

// Clone returns a copy of s that shares no memory with it.
func (s Stroke) Clone() Stroke {
	s.Points = slices.Clone(s.Points)
	return s
}

// ShapeKind selects how a Shape is outlined.
type ShapeKind uint8

// Shape kinds.
const (
	// Rectangle outlines the box spanned by the anchor and the extent.
	Rectangle ShapeKind = iota

	// Ellipse outlines the ellipse inscribed in that box.
	Ellipse
)

// String returns a human-readable name for the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "Rectangle"
	case Ellipse:
		return "Ellipse"
	default:
		return "Unknown"
	}
}

// Shape is a rectangle or ellipse defined by its anchor (the point where the
// drag started) and a signed extent. Negative Width or Height means the drag
// went left or up from the anchor.
type Shape struct {
	AnchorX, AnchorY float64
	Width, Height    float64
	Color            string
	LineWidth        float64
	Kind             ShapeKind
	Layer            string
}

// Empty reports whether the shape has no area.
func (s Shape) Empty() bool {
	return s.Width == 0 || s.Height == 0
}

// Center returns the center of the shape's box.
func (s Shape) Center() Point {
	return Point{X: s.AnchorX + s.Width/2, Y: s.AnchorY + s.Height/2}
}

// Radii returns the ellipse radii for the shape's box.
func (s Shape) Radii() (rx, ry float64) {
	return math.Abs(s.Width / 2), math.Abs(s.Height / 2)
}

// TextLabel is a single line of text anchored at its left baseline.
type TextLabel struct {
	ID    string
	Text  string
	X, Y  float64
	Color string
	Layer string
}

// Image is decoded raster content placed on the surface at (X, Y) and scaled
// to Width x Height. Source is shared, never written to.
type Image struct {
	ID            string
	Source        image.Image
	X, Y          float64
	Width, Height float64
	Layer         string
}

// CloneStrokes returns a copy of strokes with every point slice duplicated.
// A nil input yields nil.
func CloneStrokes(strokes []Stroke) []Stroke {
	if strokes == nil {
		return nil
	}
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}
