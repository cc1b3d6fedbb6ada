package sketch

import (
	"slices"
	"strings"
)

// Tool selects what a pointer press creates.
type Tool uint8

// Tools.
const (
	// ToolPen draws freehand strokes in the current color.
	ToolPen Tool = iota

	// ToolEraser draws freehand strokes in the background color.
	ToolEraser

	// ToolRectangle drags out a rectangle outline.
	ToolRectangle

	// ToolEllipse drags out an ellipse outline.
	ToolEllipse

	// ToolText picks the baseline position of a label; SubmitText commits it.
	ToolText

	// ToolImage does nothing on press; images arrive through PlaceImage.
	ToolImage
)

// String returns a human-readable name for the tool.
func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "Pen"
	case ToolEraser:
		return "Eraser"
	case ToolRectangle:
		return "Rectangle"
	case ToolEllipse:
		return "Ellipse"
	case ToolText:
		return "Text"
	case ToolImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// ParseTool returns the tool whose String matches name, ignoring case.
func ParseTool(name string) (Tool, bool) {
	for t := ToolPen; t <= ToolImage; t++ {
		if strings.EqualFold(t.String(), name) {
			return t, true
		}
	}
	return ToolPen, false
}

// Mode is the interaction state of a Board.
type Mode uint8

// Modes.
const (
	// ModeIdle waits for a press.
	ModeIdle Mode = iota

	// ModeDrawing extends a stroke on every move.
	ModeDrawing

	// ModePlacingShape resizes a shape on every move.
	ModePlacingShape

	// ModePlacingText waits for SubmitText or CancelText.
	ModePlacingText

	// ModePlacingImage waits for pending image decodes to be applied.
	ModePlacingImage
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeDrawing:
		return "Drawing"
	case ModePlacingShape:
		return "PlacingShape"
	case ModePlacingText:
		return "PlacingText"
	case ModePlacingImage:
		return "PlacingImage"
	default:
		return "Unknown"
	}
}

// transitions lists the legal successor modes of each mode. Every gesture
// returns through Idle; a text position may be moved and several images may
// be pending at once.
var transitions = map[Mode][]Mode{
	ModeIdle:         {ModeDrawing, ModePlacingShape, ModePlacingText, ModePlacingImage},
	ModeDrawing:      {ModeIdle},
	ModePlacingShape: {ModeIdle},
	ModePlacingText:  {ModeIdle, ModePlacingText},
	ModePlacingImage: {ModeIdle, ModePlacingImage},
}

// CanTransition reports whether a Board in mode m may move to mode to.
func (m Mode) CanTransition(to Mode) bool {
	return slices.Contains(transitions[m], to)
}
