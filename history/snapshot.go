package history

import (
	"fmt"
	"slices"

	"github.com/gogpu/sketch/geom"
)

// Domain is one collection of the scene that a snapshot can cover.
type Domain uint8

// Scene domains.
const (
	DomainStrokes Domain = iota
	DomainShapes
	DomainTexts
	DomainImages
)

// allDomains lists every domain in restore order.
var allDomains = []Domain{DomainStrokes, DomainShapes, DomainTexts, DomainImages}

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case DomainStrokes:
		return "strokes"
	case DomainShapes:
		return "shapes"
	case DomainTexts:
		return "texts"
	case DomainImages:
		return "images"
	default:
		return "unknown"
	}
}

// Snapshot is a saved copy of one or more scene collections.
//
// This is a sealed interface: the only implementations are Strokes, Shapes,
// Texts, Images and All. The slices inside a snapshot are owned by it and
// must not be modified.
type Snapshot interface {
	// Domains returns the scene collections the snapshot replaces.
	Domains() []Domain

	snapshotMarker()
}

// Strokes saves the committed strokes.
type Strokes struct {
	Strokes []geom.Stroke
}

// Shapes saves the committed shapes.
type Shapes struct {
	Shapes []geom.Shape
}

// Texts saves the committed text labels.
type Texts struct {
	Texts []geom.TextLabel
}

// Images saves the placed images.
type Images struct {
	Images []geom.Image
}

// All saves every collection at once. It is used for the history baseline
// and for a combined clear.
type All struct {
	Strokes []geom.Stroke
	Shapes  []geom.Shape
	Texts   []geom.TextLabel
	Images  []geom.Image
}

func (Strokes) snapshotMarker() {}
func (Shapes) snapshotMarker() {}
func (Texts) snapshotMarker() {}
func (Images) snapshotMarker() {}
func (All) snapshotMarker() {}

// Domains implements Snapshot.
func (Strokes) Domains() []Domain { return []Domain{DomainStrokes} }

// Domains implements Snapshot.
func (Shapes) Domains() []Domain { return []Domain{DomainShapes} }

// Domains implements Snapshot.
func (Texts) Domains() []Domain { return []Domain{DomainTexts} }

// Domains implements Snapshot.
func (Images) Domains() []Domain { return []Domain{DomainImages} }

// Domains implements Snapshot.
func (All) Domains() []Domain { return slices.Clone(allDomains) }

// NewStrokes snapshots strokes.
func NewStrokes(strokes []geom.Stroke) Strokes {
	return Strokes{Strokes: geom.CloneStrokes(strokes)}
}

// NewShapes snapshots shapes.
func NewShapes(shapes []geom.Shape) Shapes {
	return Shapes{Shapes: slices.Clone(shapes)}
}

// NewTexts snapshots text labels.
func NewTexts(texts []geom.TextLabel) Texts {
	return Texts{Texts: slices.Clone(texts)}
}

// NewImages snapshots placed images. Image sources are shared, not copied.
func NewImages(images []geom.Image) Images {
	return Images{Images: slices.Clone(images)}
}

// NewAll snapshots every collection.
func NewAll(strokes []geom.Stroke, shapes []geom.Shape, texts []geom.TextLabel, images []geom.Image) All {
	return All{
		Strokes: geom.CloneStrokes(strokes),
		Shapes:  slices.Clone(shapes),
		Texts:   slices.Clone(texts),
		Images:  slices.Clone(images),
	}
}

// Target receives restored collections. Each call hands over a fresh slice
// that the target may keep.
type Target interface {
	RestoreStrokes([]geom.Stroke)
	RestoreShapes([]geom.Shape)
	RestoreTexts([]geom.TextLabel)
	RestoreImages([]geom.Image)
}

// Apply writes every collection covered by s into t.
func Apply(t Target, s Snapshot) {
	for _, d := range s.Domains() {
		restore(t, s, d)
	}
}

// restore writes the d collection of s into t. A nil s restores the empty
// collection.
func restore(t Target, s Snapshot, d Domain) {
	var (
		strokes []geom.Stroke
		shapes  []geom.Shape
		texts   []geom.TextLabel
		images  []geom.Image
	)
	switch v := s.(type) {
	case nil:
	case Strokes:
		strokes = v.Strokes
	case Shapes:
		shapes = v.Shapes
	case Texts:
		texts = v.Texts
	case Images:
		images = v.Images
	case All:
		strokes, shapes, texts, images = v.Strokes, v.Shapes, v.Texts, v.Images
	default:
		panic(fmt.Sprintf("history: unknown snapshot type %T", s))
	}

	switch d {
	case DomainStrokes:
		t.RestoreStrokes(geom.CloneStrokes(strokes))
	case DomainShapes:
		t.RestoreShapes(slices.Clone(shapes))
	case DomainTexts:
		t.RestoreTexts(slices.Clone(texts))
	case DomainImages:
		t.RestoreImages(slices.Clone(images))
	default:
		panic(fmt.Sprintf("history: unknown domain %d", d))
	}
}

// covers reports whether s saves domain d.
func covers(s Snapshot, d Domain) bool {
	return slices.Contains(s.Domains(), d)
}
