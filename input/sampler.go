// Package input turns raw pointer positions into stroke geometry.
//
// Pointer and touch events are sampled by the same Sampler; the input
// modality never changes the produced points.
package input

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/sketch/geom"
)

// Default sampling parameters, in device pixels.
const (
	DefaultMinGap  = 5.0
	DefaultSpacing = 2.0
)

// Sampler densifies a drag so fast pointer motion does not leave gaps.
//
// A raw position closer than MinGap to the last recorded point is appended
// as is. A farther one is reached in floor(d/Spacing) evenly spaced steps,
// the last of which is the raw position itself.
//
// The zero value is not usable; use NewSampler or fill both fields.
type Sampler struct {
	MinGap  float64
	Spacing float64
}

// NewSampler returns a Sampler with the default parameters.
func NewSampler() Sampler {
	return Sampler{MinGap: DefaultMinGap, Spacing: DefaultSpacing}
}

// Append records raw position p after points and returns the extended slice.
// An empty points slice is seeded with p alone.
func (s Sampler) Append(points []geom.Point, p geom.Point) []geom.Point {
	if len(points) == 0 {
		return append(points, p)
	}
	last := points[len(points)-1]
	from := r2.Vec{X: last.X, Y: last.Y}
	delta := r2.Sub(r2.Vec{X: p.X, Y: p.Y}, from)

	d := r2.Norm(delta)
	if d <= s.MinGap || s.Spacing <= 0 {
		return append(points, p)
	}

	steps := int(math.Floor(d / s.Spacing))
	if steps < 1 {
		steps = 1
	}
	step := r2.Scale(1/float64(steps), delta)
	for i := 1; i <= steps; i++ {
		v := r2.Add(from, r2.Scale(float64(i), step))
		points = append(points, geom.Point{X: v.X, Y: v.Y})
	}
	return points
}

// Sample runs a whole gesture through the sampler: the first raw position
// seeds the stroke and every following one is appended.
func (s Sampler) Sample(raw []geom.Point) []geom.Point {
	var out []geom.Point
	for _, p := range raw {
		out = s.Append(out, p)
	}
	return out
}
