// Package sketch is the drawing-state and rendering engine of an interactive
// 2D drawing surface.
//
// # Overview
//
// A Board holds the scene (freehand strokes, rectangle and ellipse outlines,
// text labels and placed images), the undo/redo log, and the layer registry.
// User interface chrome drives it through a small pointer API and receives a
// freshly painted surface after every change. Pointer and touch input use the
// same calls.
//
// # Quick Start
//
//	b, err := sketch.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	b.SetTool(sketch.ToolPen)
//	b.PointerDown(geom.Pt(10, 10))
//	b.PointerMove(geom.Pt(10, 200))
//	b.PointerUp()
//
//	b.Undo()
//	b.Redo()
//
//	f, _ := os.Create("drawing.png")
//	defer f.Close()
//	b.ExportPNG(f)
//
// # Modes
//
// A Board is always in exactly one Mode: Idle, Drawing, PlacingShape,
// PlacingText or PlacingImage. Calls that do not fit the current mode are
// ignored, never reported as errors. Releasing or cancelling the pointer,
// even outside the surface, always finalizes the gesture in progress.
//
// # Images
//
// PlaceImage decodes in the background and returns at once. The finished
// decode is queued as one operation that fits, centers and commits the image;
// queued operations run when the owner calls Pump. A decode failure is
// reported through the job and leaves the scene untouched.
//
// # Architecture
//
// The engine is organized into:
//   - geom: entity value types and color parsing
//   - input: stroke point sampling
//   - scene: committed collections and the entity in progress
//   - history: linear undo/redo over collection snapshots
//   - layer: visibility tags and the active layer
//   - raster: full repaint through gg's software renderer
//   - config: TOML settings
//   - export: PNG and PDF output
//
// # Coordinate System
//
// Surface-local pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package sketch
