package raster

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/sketch/geom"
	"github.com/gogpu/sketch/scene"
)

// DefaultFontSize is the label size in pixels.
const DefaultFontSize = 16.0

// Visibility decides whether entities filed under a layer are drawn.
// *layer.Registry implements it.
type Visibility interface {
	Visible(layerID string) bool
}

// Option configures a Rasterizer.
type Option func(*options)

type options struct {
	background string
	fontSize   float64
	fontData   []byte
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		background: "#ffffff",
		fontSize:   DefaultFontSize,
		fontData:   goregular.TTF,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// WithBackground sets the surface fill color. Eraser strokes paint with it.
func WithBackground(color string) Option {
	return func(o *options) {
		o.background = color
	}
}

// WithFontSize sets the label size in pixels.
func WithFontSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.fontSize = px
		}
	}
}

// WithFont replaces the default Go Regular face with TrueType or OpenType
// data.
func WithFont(data []byte) Option {
	return func(o *options) {
		if len(data) > 0 {
			o.fontData = data
		}
	}
}

// WithLogger sets the logger for rendering diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Rasterizer repaints a whole scene onto a software gg.Context.
//
// Every Paint starts from a solid background fill, so the output depends
// only on the scene passed in. A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	dc     *gg.Context
	bg     gg.RGBA
	src    *text.FontSource
	face   text.Face
	logger *slog.Logger

	// images caches converted image buffers by entity id.
	images map[string]*gg.ImageBuf

	// warned remembers color strings already reported as invalid.
	warned map[string]struct{}
}

// New creates a Rasterizer for a width x height surface.
func New(width, height int, opts ...Option) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bg, err := geom.ParseColor(o.background)
	if err != nil {
		return nil, fmt.Errorf("raster: background: %w", err)
	}
	src, err := text.NewFontSource(o.fontData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFont, err)
	}

	return &Rasterizer{
		dc:     gg.NewContext(width, height),
		bg:     bg,
		src:    src,
		face:   src.Face(o.fontSize),
		logger: o.logger,
		images: make(map[string]*gg.ImageBuf),
		warned: make(map[string]struct{}),
	}, nil
}

// Background returns the surface fill color.
func (r *Rasterizer) Background() gg.RGBA {
	return r.bg
}

// Size returns the current surface size.
func (r *Rasterizer) Size() (width, height int) {
	return r.dc.Width(), r.dc.Height()
}

// Paint draws sc and returns a copy of the result.
//
// Draw order: background, placed images, committed strokes, the stroke in
// progress, committed shapes, the shape in progress, text labels. Entities
// whose layer vis reports hidden are skipped; a nil vis draws everything.
func (r *Rasterizer) Paint(sc scene.Scene, vis Visibility) *image.RGBA {
	if w, h := r.Size(); sc.Width > 0 && sc.Height > 0 && (w != sc.Width || h != sc.Height) {
		if err := r.dc.Resize(sc.Width, sc.Height); err != nil {
			r.logger.Warn("raster: resize failed", "width", sc.Width, "height", sc.Height, "err", err)
		}
	}
	shown := func(layerID string) bool {
		return vis == nil || vis.Visible(layerID)
	}

	r.dc.ClearPath()
	r.dc.ClearWithColor(r.bg)

	live := make(map[string]struct{}, len(sc.Images))
	for _, img := range sc.Images {
		live[img.ID] = struct{}{}
		if shown(img.Layer) {
			r.drawImage(img)
		}
	}
	for id := range r.images {
		if _, ok := live[id]; !ok {
			delete(r.images, id)
		}
	}

	for _, st := range sc.Strokes {
		if shown(st.Layer) {
			r.drawStroke(st)
		}
	}
	if sc.InProgressStroke != nil && shown(sc.InProgressStroke.Layer) {
		r.drawStroke(*sc.InProgressStroke)
	}

	for _, sh := range sc.Shapes {
		if shown(sh.Layer) {
			r.drawShape(sh)
		}
	}
	if sc.InProgressShape != nil && shown(sc.InProgressShape.Layer) {
		r.drawShape(*sc.InProgressShape)
	}

	r.dc.SetFont(r.face)
	for _, t := range sc.Texts {
		if shown(t.Layer) {
			r.dc.SetColor(r.color(t.Color))
			r.dc.DrawString(t.Text, t.X, t.Y)
		}
	}

	return r.snapshot()
}

// EncodePNG writes the last painted surface as PNG.
func (r *Rasterizer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Close releases the drawing context and the font source.
func (r *Rasterizer) Close() error {
	r.images = nil
	if err := r.dc.Close(); err != nil {
		return err
	}
	return r.src.Close()
}

func (r *Rasterizer) drawStroke(st geom.Stroke) {
	if len(st.Points) == 0 {
		return
	}
	col := r.bg
	if !st.Eraser {
		col = r.color(st.Color)
	}
	r.dc.SetColor(col)

	// A lone point has no segment to cap, so it is drawn as a dot.
	if len(st.Points) == 1 {
		p := st.Points[0]
		r.dc.DrawCircle(p.X, p.Y, st.Width/2)
		r.fill()
		return
	}

	r.dc.SetLineWidth(st.Width)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.dc.MoveTo(st.Points[0].X, st.Points[0].Y)
	for _, p := range st.Points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.stroke()
}

func (r *Rasterizer) drawShape(sh geom.Shape) {
	if sh.Empty() {
		return
	}
	r.dc.SetColor(r.color(sh.Color))
	r.dc.SetLineWidth(sh.LineWidth)
	r.dc.SetLineJoin(gg.LineJoinMiter)
	switch sh.Kind {
	case geom.Ellipse:
		c := sh.Center()
		rx, ry := sh.Radii()
		r.dc.DrawEllipse(c.X, c.Y, rx, ry)
	default:
		r.dc.DrawRectangle(sh.AnchorX, sh.AnchorY, sh.Width, sh.Height)
	}
	r.stroke()
}

func (r *Rasterizer) drawImage(img geom.Image) {
	if img.Source == nil {
		return
	}
	buf, ok := r.images[img.ID]
	if !ok {
		buf = gg.ImageBufFromImage(img.Source)
		r.images[img.ID] = buf
	}
	r.dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:         img.X,
		Y:         img.Y,
		DstWidth:  img.Width,
		DstHeight: img.Height,
	})
}

// color resolves a stored color string. Invalid strings paint black and are
// logged once each.
func (r *Rasterizer) color(s string) gg.RGBA {
	c, err := geom.ParseColor(s)
	if err != nil {
		if _, seen := r.warned[s]; !seen {
			r.warned[s] = struct{}{}
			r.logger.Warn("raster: invalid color, using black", "color", s, "err", err)
		}
	}
	return c
}

func (r *Rasterizer) stroke() {
	if err := r.dc.Stroke(); err != nil {
		r.logger.Warn("raster: stroke failed", "err", err)
	}
}

func (r *Rasterizer) fill() {
	if err := r.dc.Fill(); err != nil {
		r.logger.Warn("raster: fill failed", "err", err)
	}
}

// snapshot copies the context pixels into a fresh RGBA image.
func (r *Rasterizer) snapshot() *image.RGBA {
	img := r.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}
