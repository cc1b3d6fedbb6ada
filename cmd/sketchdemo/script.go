package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/geom"
)

// script is a sequence of board operations.
//
//	[[op]]
//	do = "tool"
//	arg = "rectangle"
//
//	[[op]]
//	do = "down"
//	x = 40
//	y = 40
type script struct {
	Ops []step `toml:"op"`
}

// step is one operation. Do selects it; the other fields are its arguments.
type step struct {
	Do   string  `toml:"do"`
	Arg  string  `toml:"arg"`
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	W    int     `toml:"w"`
	H    int     `toml:"h"`
	Size float64 `toml:"size"`
}

// imageTimeout bounds how long a single image decode may take.
const imageTimeout = 30 * time.Second

// replay runs every step on b. Relative image paths resolve against dir.
func (s script) replay(ctx context.Context, b *sketch.Board, dir string) error {
	for i, st := range s.Ops {
		if err := st.run(ctx, b, dir); err != nil {
			return fmt.Errorf("op %d (%s): %w", i+1, st.Do, err)
		}
	}
	return nil
}

func (st step) run(ctx context.Context, b *sketch.Board, dir string) error {
	switch st.Do {
	case "tool":
		t, ok := sketch.ParseTool(st.Arg)
		if !ok {
			return fmt.Errorf("unknown tool %q", st.Arg)
		}
		b.SetTool(t)
	case "color":
		return b.SetColor(st.Arg)
	case "width":
		b.SetBrushWidth(st.Size)
	case "down":
		b.PointerDown(geom.Pt(st.X, st.Y))
	case "move":
		b.PointerMove(geom.Pt(st.X, st.Y))
	case "up":
		b.PointerUp()
	case "text":
		b.SubmitText(st.Arg)
	case "undo":
		b.Undo()
	case "redo":
		b.Redo()
	case "clear":
		b.Clear()
	case "resize":
		if !b.Resize(st.W, st.H) {
			return fmt.Errorf("invalid size %dx%d", st.W, st.H)
		}
	case "layer":
		b.AddLayer()
	case "toggle":
		if !b.ToggleLayer(st.Arg) {
			return fmt.Errorf("unknown layer %q", st.Arg)
		}
	case "image":
		return placeImage(ctx, b, resolve(dir, st.Arg))
	default:
		return fmt.Errorf("unknown op")
	}
	return nil
}

func placeImage(ctx context.Context, b *sketch.Board, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()
	return b.Await(ctx, b.PlaceImage(ctx, f))
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// demoScript draws a small scene touching every tool.
const demoScript = `
[[op]]
do = "color"
arg = "#1e6fd9"

[[op]]
do = "width"
size = 8

[[op]]
do = "down"
x = 60
y = 420

[[op]]
do = "move"
x = 220
y = 300

[[op]]
do = "move"
x = 380
y = 440

[[op]]
do = "up"

[[op]]
do = "tool"
arg = "rectangle"

[[op]]
do = "color"
arg = "darkorange"

[[op]]
do = "down"
x = 460
y = 80

[[op]]
do = "move"
x = 720
y = 260

[[op]]
do = "up"

[[op]]
do = "layer"

[[op]]
do = "tool"
arg = "ellipse"

[[op]]
do = "color"
arg = "rgb(40, 160, 90)"

[[op]]
do = "down"
x = 100
y = 80

[[op]]
do = "move"
x = 340
y = 240

[[op]]
do = "up"

[[op]]
do = "tool"
arg = "text"

[[op]]
do = "color"
arg = "#222"

[[op]]
do = "down"
x = 420
y = 540

[[op]]
do = "text"
arg = "sketch"

[[op]]
do = "tool"
arg = "eraser"

[[op]]
do = "width"
size = 24

[[op]]
do = "down"
x = 200
y = 160

[[op]]
do = "move"
x = 240
y = 160

[[op]]
do = "up"
`
