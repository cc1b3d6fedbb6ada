// Package scene holds the live drawing state: committed strokes, shapes,
// text labels and placed images, plus at most one stroke and one shape
// still being dragged.
//
// The Store is the only writer. Every commit records a history snapshot of
// the collection it changed, and every mutation calls the change hook so the
// owner can repaint. Invalid calls are absorbed as no-ops.
//
// A Store is not safe for concurrent use.
package scene

import (
	"image"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/sketch/geom"
	"github.com/gogpu/sketch/history"
	"github.com/gogpu/sketch/input"
)

// Pusher records history snapshots. *history.Manager implements it.
type Pusher interface {
	Push(history.Snapshot)
}

// Scene is a read-only view of a Store at one moment.
//
// Collections share memory with the Store; callers must not modify them.
// Width and Height are the surface size in pixels.
type Scene struct {
	Strokes []geom.Stroke
	Shapes  []geom.Shape
	Texts   []geom.TextLabel
	Images  []geom.Image

	// InProgressStroke and InProgressShape are nil when no drag is active.
	InProgressStroke *geom.Stroke
	InProgressShape  *geom.Shape

	Width, Height int
}

// Option configures a Store.
type Option func(*Store)

// WithSampler replaces the default input sampler.
func WithSampler(s input.Sampler) Option {
	return func(st *Store) {
		st.sampler = s
	}
}

// WithHistory sets where commit snapshots are pushed.
func WithHistory(p Pusher) Option {
	return func(st *Store) {
		st.history = p
	}
}

// WithOnChange sets the hook called after every mutation.
func WithOnChange(fn func()) Option {
	return func(st *Store) {
		st.onChange = fn
	}
}

// WithCombinedClear makes Clear push a single All snapshot instead of one
// snapshot per emptied collection.
func WithCombinedClear(on bool) Option {
	return func(st *Store) {
		st.combinedClear = on
	}
}

// WithLogger sets the logger for ignored-input diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.logger = l
		}
	}
}

// Store owns the scene collections.
type Store struct {
	strokes []geom.Stroke
	shapes  []geom.Shape
	texts   []geom.TextLabel
	images  []geom.Image

	stroke  geom.Stroke
	drawing bool
	shape   geom.Shape
	placing bool

	width, height int
	layer         string
	combinedClear bool

	sampler  input.Sampler
	history  Pusher
	onChange func()
	logger   *slog.Logger
}

// New returns an empty Store for a width x height surface. Non-positive
// dimensions fall back to 1.
func New(width, height int, opts ...Option) *Store {
	s := &Store{
		width:   max(width, 1),
		height:  max(height, 1),
		sampler: input.NewSampler(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scene returns a view of the current state.
func (s *Store) Scene() Scene {
	sc := Scene{
		Strokes: s.strokes,
		Shapes:  s.shapes,
		Texts:   s.texts,
		Images:  s.images,
		Width:   s.width,
		Height:  s.height,
	}
	if s.drawing {
		st := s.stroke
		sc.InProgressStroke = &st
	}
	if s.placing {
		sh := s.shape
		sc.InProgressShape = &sh
	}
	return sc
}

// Size returns the surface dimensions.
func (s *Store) Size() (width, height int) {
	return s.width, s.height
}

// SetLayer sets the layer id recorded on entities committed afterwards.
func (s *Store) SetLayer(id string) {
	s.layer = id
}

// Layer returns the layer id recorded on new entities.
func (s *Store) Layer() string {
	return s.layer
}

// Drawing reports whether a stroke is in progress.
func (s *Store) Drawing() bool { return s.drawing }

// PlacingShape reports whether a shape is in progress.
func (s *Store) PlacingShape() bool { return s.placing }

// =============================================================================
// Strokes
// =============================================================================

// BeginStroke starts a stroke at origin, replacing any stroke in progress.
func (s *Store) BeginStroke(origin geom.Point, color string, width float64, eraser bool) {
	s.stroke = geom.Stroke{
		Points: []geom.Point{origin},
		Color:  color,
		Width:  width,
		Eraser: eraser,
		Layer:  s.layer,
	}
	s.drawing = true
	s.changed()
}

// ExtendStroke feeds p through the sampler into the stroke in progress.
// It does nothing when no stroke is in progress.
func (s *Store) ExtendStroke(p geom.Point) {
	if !s.drawing {
		s.logger.Debug("scene: extend without stroke", "x", p.X, "y", p.Y)
		return
	}
	s.stroke.Points = s.sampler.Append(s.stroke.Points, p)
	s.changed()
}

// CommitStroke appends the stroke in progress if it has more than one point
// and records a Strokes snapshot. The stroke in progress is always cleared.
// It reports whether a stroke was committed.
func (s *Store) CommitStroke() bool {
	if !s.drawing {
		return false
	}
	st := s.stroke
	s.stroke = geom.Stroke{}
	s.drawing = false

	if len(st.Points) < 2 {
		s.logger.Debug("scene: single-point stroke discarded")
		s.changed()
		return false
	}
	s.strokes = append(s.strokes, st)
	s.push(history.NewStrokes(s.strokes))
	s.changed()
	return true
}

// =============================================================================
// Shapes
// =============================================================================

// BeginShape starts a zero-sized shape anchored at anchor.
func (s *Store) BeginShape(anchor geom.Point, color string, lineWidth float64, kind geom.ShapeKind) {
	s.shape = geom.Shape{
		AnchorX:   anchor.X,
		AnchorY:   anchor.Y,
		Color:     color,
		LineWidth: lineWidth,
		Kind:      kind,
		Layer:     s.layer,
	}
	s.placing = true
	s.changed()
}

// UpdateShape sets the extent of the shape in progress so that its far
// corner is p. It does nothing when no shape is in progress.
func (s *Store) UpdateShape(p geom.Point) {
	if !s.placing {
		s.logger.Debug("scene: update without shape", "x", p.X, "y", p.Y)
		return
	}
	s.shape.Width = p.X - s.shape.AnchorX
	s.shape.Height = p.Y - s.shape.AnchorY
	s.changed()
}

// CommitShape appends the shape in progress unless it has zero area, and
// records a Shapes snapshot. The shape in progress is always cleared.
// It reports whether a shape was committed.
func (s *Store) CommitShape() bool {
	if !s.placing {
		return false
	}
	sh := s.shape
	s.shape = geom.Shape{}
	s.placing = false

	if sh.Empty() {
		s.logger.Debug("scene: empty shape discarded", "kind", sh.Kind)
		s.changed()
		return false
	}
	s.shapes = append(s.shapes, sh)
	s.push(history.NewShapes(s.shapes))
	s.changed()
	return true
}

// =============================================================================
// Texts and images
// =============================================================================

// CommitText appends a text label with its left baseline at (x, y) and
// records a Texts snapshot. Text that is empty after trimming is rejected.
func (s *Store) CommitText(text string, x, y float64, color string) (geom.TextLabel, bool) {
	if strings.TrimSpace(text) == "" {
		s.logger.Debug("scene: empty text rejected")
		return geom.TextLabel{}, false
	}
	t := geom.TextLabel{
		ID:    "text-" + uuid.NewString(),
		Text:  norm.NFC.String(text),
		X:     x,
		Y:     y,
		Color: color,
		Layer: s.layer,
	}
	s.texts = append(s.texts, t)
	s.push(history.NewTexts(s.texts))
	s.changed()
	return t, true
}

// CommitImage places src scaled to w x h with its top-left corner at (x, y)
// and records an Images snapshot. A nil source or a non-positive size is
// rejected.
func (s *Store) CommitImage(src image.Image, x, y, w, h float64) (geom.Image, bool) {
	if src == nil || w <= 0 || h <= 0 {
		s.logger.Debug("scene: image rejected", "w", w, "h", h)
		return geom.Image{}, false
	}
	img := geom.Image{
		ID:     "image-" + uuid.NewString(),
		Source: src,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Layer:  s.layer,
	}
	s.images = append(s.images, img)
	s.push(history.NewImages(s.images))
	s.changed()
	return img, true
}

// =============================================================================
// Whole-scene operations
// =============================================================================

// Clear empties every collection and drops any entity in progress.
//
// By default it records one snapshot per collection: Images (only when
// images were placed), then Texts, Shapes and Strokes, so successive undos
// bring back strokes first, then shapes, then texts. With WithCombinedClear
// it records a single All snapshot.
func (s *Store) Clear() {
	hadImages := len(s.images) > 0

	s.strokes, s.shapes, s.texts, s.images = nil, nil, nil, nil
	s.stroke, s.drawing = geom.Stroke{}, false
	s.shape, s.placing = geom.Shape{}, false

	if s.combinedClear {
		s.push(history.NewAll(nil, nil, nil, nil))
	} else {
		if hadImages {
			s.push(history.NewImages(nil))
		}
		s.push(history.NewTexts(nil))
		s.push(history.NewShapes(nil))
		s.push(history.NewStrokes(nil))
	}
	s.changed()
}

// Resize changes the surface size. Entity coordinates are kept as is, so
// shrinking clips content without deleting it. Non-positive dimensions are
// ignored.
func (s *Store) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		s.logger.Debug("scene: resize ignored", "width", width, "height", height)
		return
	}
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.changed()
}

// Baseline returns an All snapshot of the committed collections.
func (s *Store) Baseline() history.All {
	return history.NewAll(s.strokes, s.shapes, s.texts, s.images)
}

// RestoreStrokes implements history.Target.
func (s *Store) RestoreStrokes(v []geom.Stroke) {
	s.strokes = v
	s.changed()
}

// RestoreShapes implements history.Target.
func (s *Store) RestoreShapes(v []geom.Shape) {
	s.shapes = v
	s.changed()
}

// RestoreTexts implements history.Target.
func (s *Store) RestoreTexts(v []geom.TextLabel) {
	s.texts = v
	s.changed()
}

// RestoreImages implements history.Target.
func (s *Store) RestoreImages(v []geom.Image) {
	s.images = v
	s.changed()
}

func (s *Store) push(snap history.Snapshot) {
	if s.history != nil {
		s.history.Push(snap)
	}
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
