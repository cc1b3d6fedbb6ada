package sketch

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/sketch/config"
	"github.com/gogpu/sketch/export"
	"github.com/gogpu/sketch/geom"
	"github.com/gogpu/sketch/history"
	"github.com/gogpu/sketch/input"
	"github.com/gogpu/sketch/layer"
	"github.com/gogpu/sketch/raster"
	"github.com/gogpu/sketch/scene"
)

// Board is an interactive drawing surface.
//
// A Board is not safe for concurrent use: all methods must be called from the
// goroutine that owns it. Image decodes run on their own goroutines and hand
// their results back through Pump.
type Board struct {
	cfg     config.Config
	store   *scene.Store
	history *history.Manager
	layers  *layer.Registry
	raster  *raster.Rasterizer
	logger  *slog.Logger
	queue   *eventQueue

	tool   Tool
	mode   Mode
	color  string
	width  float64
	textAt geom.Point

	// pending counts image decodes whose results have not been applied.
	pending int

	surface   *image.RGBA
	dirty     bool
	onRepaint func(*image.RGBA)
	closed    bool
}

// New creates a Board with an empty scene, a single default layer and a
// history holding only the empty baseline.
func New(opts ...Option) (*Board, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}

	cfg := o.cfg
	b := &Board{
		cfg:       cfg,
		logger:    logger,
		queue:     newEventQueue(),
		tool:      ToolPen,
		mode:      ModeIdle,
		color:     cfg.Brush.Color,
		width:     cfg.Brush.Width,
		onRepaint: o.onRepaint,
	}

	r, err := raster.New(cfg.Surface.Width, cfg.Surface.Height,
		raster.WithBackground(cfg.Surface.Background),
		raster.WithFontSize(cfg.Text.FontSize),
		raster.WithFont(o.font),
		raster.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("sketch: %w", err)
	}
	b.raster = r

	b.history = history.New(
		history.WithLimit(cfg.History.Limit),
		history.WithLogger(logger),
	)
	b.layers = layer.NewRegistry(logger)
	b.store = scene.New(cfg.Surface.Width, cfg.Surface.Height,
		scene.WithSampler(input.Sampler{MinGap: cfg.Sampler.MinGap, Spacing: cfg.Sampler.Spacing}),
		scene.WithHistory(b.history),
		scene.WithOnChange(b.markDirty),
		scene.WithCombinedClear(cfg.History.CombinedClear),
		scene.WithLogger(logger),
	)
	b.store.SetLayer(b.layers.Active())
	b.history.Push(b.store.Baseline())

	b.dirty = true
	b.flush()
	return b, nil
}

// Close releases the rasterizer. Image jobs already queued finish with
// ErrClosed; jobs whose decode completes later finish the same way on the
// next Pump or Await.
func (b *Board) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.Pump()
	return b.raster.Close()
}

// =============================================================================
// State accessors
// =============================================================================

// Mode returns the current interaction mode.
func (b *Board) Mode() Mode { return b.mode }

// Tool returns the selected tool.
func (b *Board) Tool() Tool { return b.tool }

// Color returns the current drawing color.
func (b *Board) Color() string { return b.color }

// BrushWidth returns the current stroke and outline width.
func (b *Board) BrushWidth() float64 { return b.width }

// Config returns the settings the board was created with.
func (b *Board) Config() config.Config { return b.cfg }

// Scene returns a read-only view of the current scene.
func (b *Board) Scene() scene.Scene { return b.store.Scene() }

// Size returns the surface dimensions.
func (b *Board) Size() (width, height int) { return b.store.Size() }

// CanUndo reports whether Undo would change the scene.
func (b *Board) CanUndo() bool { return b.history.CanUndo() }

// CanRedo reports whether Redo would change the scene.
func (b *Board) CanRedo() bool { return b.history.CanRedo() }

// Surface returns the most recently painted surface. The image is shared
// with later callers and must not be modified.
func (b *Board) Surface() *image.RGBA {
	b.flush()
	return b.surface
}

// =============================================================================
// Tool settings
// =============================================================================

// SetTool selects t. A stroke or shape in progress is committed and a
// pending text position is dropped.
func (b *Board) SetTool(t Tool) {
	if t > ToolImage {
		b.logger.Debug("sketch: unknown tool ignored", "tool", uint8(t))
		return
	}
	b.finishGesture()
	if b.mode == ModePlacingText {
		b.setMode(ModeIdle)
	}
	b.tool = t
	b.flush()
}

// SetColor sets the color of entities created afterwards. Unparseable
// colors are rejected and the previous color is kept.
func (b *Board) SetColor(color string) error {
	if _, err := geom.ParseColor(color); err != nil {
		return err
	}
	b.color = color
	return nil
}

// SetBrushWidth sets the stroke and outline width of entities created
// afterwards. Non-positive widths are ignored.
func (b *Board) SetBrushWidth(w float64) {
	if w <= 0 {
		b.logger.Debug("sketch: brush width ignored", "width", w)
		return
	}
	b.width = w
}

// =============================================================================
// Pointer input
// =============================================================================

// PointerDown starts a gesture at p according to the selected tool.
func (b *Board) PointerDown(p geom.Point) {
	switch b.tool {
	case ToolPen, ToolEraser:
		if b.setMode(ModeDrawing) {
			b.store.BeginStroke(p, b.color, b.width, b.tool == ToolEraser)
		}
	case ToolRectangle, ToolEllipse:
		kind := geom.Rectangle
		if b.tool == ToolEllipse {
			kind = geom.Ellipse
		}
		if b.setMode(ModePlacingShape) {
			b.store.BeginShape(p, b.color, b.width, kind)
		}
	case ToolText:
		if b.setMode(ModePlacingText) {
			b.textAt = p
		}
	default:
		b.logger.Debug("sketch: pointer down ignored", "tool", b.tool)
	}
	b.flush()
}

// PointerMove feeds p to the gesture in progress.
func (b *Board) PointerMove(p geom.Point) {
	switch b.mode {
	case ModeDrawing:
		b.store.ExtendStroke(p)
	case ModePlacingShape:
		b.store.UpdateShape(p)
	default:
		b.logger.Debug("sketch: pointer move ignored", "mode", b.mode)
		return
	}
	b.flush()
}

// PointerUp finalizes the gesture in progress. It behaves the same wherever
// the pointer was released.
func (b *Board) PointerUp() {
	b.finishGesture()
	b.flush()
}

// PointerCancel is PointerUp: an interrupted gesture is finalized, not
// discarded.
func (b *Board) PointerCancel() {
	b.PointerUp()
}

// =============================================================================
// Text placement
// =============================================================================

// TextPosition returns the pending label position and whether text
// placement is active.
func (b *Board) TextPosition() (geom.Point, bool) {
	return b.textAt, b.mode == ModePlacingText
}

// SubmitText commits a label at the pending position and ends text
// placement. Empty or whitespace-only text ends placement without adding
// anything. It reports whether a label was added.
func (b *Board) SubmitText(text string) bool {
	if b.mode != ModePlacingText {
		b.logger.Debug("sketch: text submit ignored", "mode", b.mode)
		return false
	}
	_, ok := b.store.CommitText(text, b.textAt.X, b.textAt.Y, b.color)
	b.setMode(ModeIdle)
	b.flush()
	return ok
}

// CancelText ends text placement without adding anything.
func (b *Board) CancelText() {
	if b.mode == ModePlacingText {
		b.setMode(ModeIdle)
	}
}

// =============================================================================
// Whole-scene operations
// =============================================================================

// Undo reverts the most recent history entry and reports whether anything
// changed. A gesture in progress is finalized first.
func (b *Board) Undo() bool {
	b.finishGesture()
	ok := b.history.Undo(b.store)
	b.flush()
	return ok
}

// Redo re-applies the most recently undone entry and reports whether
// anything changed.
func (b *Board) Redo() bool {
	b.finishGesture()
	ok := b.history.Redo(b.store)
	b.flush()
	return ok
}

// Clear removes every entity. It is undoable.
func (b *Board) Clear() {
	b.store.Clear()
	if b.mode != ModePlacingImage {
		b.mode = ModeIdle
	}
	b.flush()
}

// Resize changes the surface size without moving any entity. Dimensions
// outside [1, config.MaxSurface] are ignored. It reports whether the size
// was accepted.
func (b *Board) Resize(width, height int) bool {
	if width < 1 || height < 1 || width > config.MaxSurface || height > config.MaxSurface {
		b.logger.Debug("sketch: resize ignored", "width", width, "height", height)
		return false
	}
	b.store.Resize(width, height)
	b.flush()
	return true
}

// =============================================================================
// Layers
// =============================================================================

// Layers returns the layers in creation order.
func (b *Board) Layers() []layer.Layer { return b.layers.Layers() }

// ActiveLayer returns the id of the layer new entities are filed under.
func (b *Board) ActiveLayer() string { return b.layers.Active() }

// AddLayer appends a layer and makes it active.
func (b *Board) AddLayer() layer.Layer {
	l := b.layers.Add()
	b.store.SetLayer(l.ID)
	return l
}

// SetActiveLayer files entities created afterwards under id. Unknown ids
// are ignored. It reports whether the layer exists.
func (b *Board) SetActiveLayer(id string) bool {
	if !b.layers.SetActive(id) {
		return false
	}
	b.store.SetLayer(id)
	return true
}

// ToggleLayer flips the visibility of layer id and repaints. Unknown ids
// are ignored. It reports whether the layer exists.
func (b *Board) ToggleLayer(id string) bool {
	if !b.layers.Toggle(id) {
		return false
	}
	b.markDirty()
	b.flush()
	return true
}

// =============================================================================
// Export
// =============================================================================

// ExportPNG writes the current surface to w as PNG.
func (b *Board) ExportPNG(w io.Writer) error {
	if b.closed {
		return ErrClosed
	}
	b.flush()
	return export.PNG(w, b.raster)
}

// ExportPDF writes the current surface to w as a one-page PDF.
func (b *Board) ExportPDF(w io.Writer) error {
	if b.closed {
		return ErrClosed
	}
	b.flush()
	return export.PDF(w, b.raster)
}

// SaveExport writes the current surface into dir under the configured
// export file name and returns the written path.
func (b *Board) SaveExport(dir string) (string, error) {
	if b.closed {
		return "", ErrClosed
	}
	b.flush()
	path, err := export.Save(dir, b.cfg.Export.FileName, b.raster)
	if err != nil {
		return "", err
	}
	b.logger.Info("sketch: export written", "path", path)
	return path, nil
}

// =============================================================================
// Internals
// =============================================================================

// setMode moves to mode to if the transition is legal and reports whether
// it did.
func (b *Board) setMode(to Mode) bool {
	if !b.mode.CanTransition(to) {
		b.logger.Debug("sketch: transition ignored", "from", b.mode, "to", to)
		return false
	}
	b.mode = to
	return true
}

// finishGesture commits a stroke or shape in progress and returns to Idle.
func (b *Board) finishGesture() {
	switch b.mode {
	case ModeDrawing:
		b.store.CommitStroke()
		b.setMode(ModeIdle)
	case ModePlacingShape:
		b.store.CommitShape()
		b.setMode(ModeIdle)
	}
}

func (b *Board) markDirty() {
	b.dirty = true
}

// flush repaints if anything changed since the last paint.
func (b *Board) flush() {
	if !b.dirty || b.closed {
		return
	}
	b.dirty = false
	b.surface = b.raster.Paint(b.store.Scene(), b.layers)
	if b.onRepaint != nil {
		b.onRepaint(b.surface)
	}
}
