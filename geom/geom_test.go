package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{"same", Pt(3, 4), Pt(3, 4), 0},
		{"vertical", Pt(10, 10), Pt(10, 200), 190},
		{"pythagoras", Pt(0, 0), Pt(3, 4), 5},
		{"negative", Pt(-1, -1), Pt(2, 3), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Distance(tt.q); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrokeCloneIsIndependent(t *testing.T) {
	s := Stroke{Points: []Point{Pt(1, 1), Pt(2, 2)}, Color: "#000", Width: 3}
	c := s.Clone()
	c.Points[0] = Pt(9, 9)
	if s.Points[0] != Pt(1, 1) {
		t.Errorf("original point changed to %v after editing clone", s.Points[0])
	}
}

func TestCloneStrokesNil(t *testing.T) {
	if got := CloneStrokes(nil); got != nil {
		t.Errorf("CloneStrokes(nil) = %v, want nil", got)
	}
}

func TestShapeEmpty(t *testing.T) {
	tests := []struct {
		w, h float64
		want bool
	}{
		{0, 0, true},
		{10, 0, true},
		{0, -10, true},
		{10, 10, false},
		{-5, 7, false},
	}
	for _, tt := range tests {
		s := Shape{Width: tt.w, Height: tt.h}
		if got := s.Empty(); got != tt.want {
			t.Errorf("Shape{W:%v,H:%v}.Empty() = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestShapeEllipseGeometry(t *testing.T) {
	// Dragged up and to the left: negative extent.
	s := Shape{AnchorX: 100, AnchorY: 100, Width: -40, Height: -20, Kind: Ellipse}
	if c := s.Center(); c != Pt(80, 90) {
		t.Errorf("Center() = %v, want (80, 90)", c)
	}
	rx, ry := s.Radii()
	if rx != 20 || ry != 10 {
		t.Errorf("Radii() = (%v, %v), want (20, 10)", rx, ry)
	}
}

func TestShapeKindString(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		want string
	}{
		{Rectangle, "Rectangle"},
		{Ellipse, "Ellipse"},
		{ShapeKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ShapeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// =============================================================================
// Color parsing
// =============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want gg.RGBA
	}{
		{"#000000", gg.RGB(0, 0, 0)},
		{"#ffffff", gg.RGB(1, 1, 1)},
		{"#FFF", gg.RGB(1, 1, 1)},
		{"ff0000", gg.RGB(1, 0, 0)},
		{"rgb(0, 255, 0)", gg.RGB(0, 1, 0)},
		{"rgba(0,0,255,0.5)", gg.RGBA2(0, 0, 1, 0.5)},
		{"white", gg.RGB(1, 1, 1)},
		{"  Black ", gg.RGB(0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if !closeColor(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgb(300,0,0)", "rgba(0,0,0,2)", "hsl(1,2,3)", "notacolor"} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseColor(in)
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
			}
			if got != gg.Black {
				t.Errorf("ParseColor(%q) = %+v, want black fallback", in, got)
			}
			if ValidColor(in) {
				t.Errorf("ValidColor(%q) = true, want false", in)
			}
		})
	}
}

func closeColor(a, b gg.RGBA) bool {
	const eps = 1.0 / 255
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
