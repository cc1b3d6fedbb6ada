package sketch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/sketch/geom"
)

// pngBytes encodes a solid w x h image.
func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func awaitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

var blue = color.RGBA{B: 0xff, A: 0xff}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// placement reports whether img sits at (x, y) with size w x h.
func placement(img geom.Image, x, y, w, h float64) bool {
	return approx(img.X, x) && approx(img.Y, y) && approx(img.Width, w) && approx(img.Height, h)
}

func TestPlaceImageCentersAndScales(t *testing.T) {
	b := newBoard(t)
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 400, 100, blue)))
	if b.Mode() != ModePlacingImage || b.Pending() != 1 {
		t.Fatalf("Mode=%v Pending=%d, want PlacingImage and 1", b.Mode(), b.Pending())
	}
	if err := b.Await(awaitCtx(t), job); err != nil {
		t.Fatalf("Await() error = %v", err)
	}

	img, ok := job.Image()
	if !ok {
		t.Fatal("job.Image() reports no placement")
	}
	// 200x150 surface: scale min(0.5, 1.5) * 0.8 = 0.4.
	if !placement(img, 20, 55, 160, 40) {
		t.Errorf("placement = (%v,%v %vx%v), want (20,55 160x40)", img.X, img.Y, img.Width, img.Height)
	}
	if !strings.HasPrefix(img.ID, "image-") || img.Layer != "layer-1" {
		t.Errorf("ID=%q Layer=%q", img.ID, img.Layer)
	}
	if job.Format() != "png" {
		t.Errorf("Format() = %q, want png", job.Format())
	}
	if b.Mode() != ModeIdle || b.Pending() != 0 {
		t.Errorf("Mode=%v Pending=%d after apply, want Idle and 0", b.Mode(), b.Pending())
	}
	if c := b.Surface().RGBAAt(100, 75); c.B < 200 || c.R > 40 {
		t.Errorf("surface center = %v, want image blue", c)
	}

	if !b.Undo() {
		t.Fatal("Undo() = false after placement")
	}
	if _, _, _, n := counts(b); n != 0 {
		t.Errorf("len(Images) = %d after undo, want 0", n)
	}
	b.Redo()
	if sc := b.Scene(); len(sc.Images) != 1 || sc.Images[0].ID != img.ID {
		t.Errorf("redo did not restore %q", img.ID)
	}
}

func TestPlaceImageKeepsSmallImagesAtNaturalSize(t *testing.T) {
	b := newBoard(t)
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 40, 20, blue)))
	if err := b.Await(awaitCtx(t), job); err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	img, _ := job.Image()
	if !placement(img, 80, 65, 40, 20) {
		t.Errorf("placement = (%v,%v %vx%v), want (80,65 40x20)", img.X, img.Y, img.Width, img.Height)
	}
	if c := b.Surface().RGBAAt(30, 75); c.R < 240 {
		t.Errorf("pixel left of the image = %v, want background", c)
	}
}

func TestPlaceImageDecodeFailure(t *testing.T) {
	b := newBoard(t)
	job := b.PlaceImage(context.Background(), strings.NewReader("not an image"))
	if err := b.Await(awaitCtx(t), job); !errors.Is(err, ErrDecode) {
		t.Fatalf("Await() error = %v, want ErrDecode", err)
	}
	if _, ok := job.Image(); ok {
		t.Error("job.Image() reports a placement after failure")
	}
	if _, _, _, n := counts(b); n != 0 {
		t.Errorf("len(Images) = %d, want 0", n)
	}
	if b.CanUndo() {
		t.Error("failed decode reached history")
	}
	if b.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want Idle", b.Mode())
	}
}

func TestPlaceImageCanceledContext(t *testing.T) {
	b := newBoard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := b.PlaceImage(ctx, bytes.NewReader(pngBytes(t, 4, 4, blue)))
	if err := b.Await(awaitCtx(t), job); !errors.Is(err, context.Canceled) {
		t.Fatalf("Await() error = %v, want context.Canceled", err)
	}
	if b.CanUndo() {
		t.Error("canceled decode reached history")
	}
}

func TestPointerIgnoredWhilePlacingImage(t *testing.T) {
	b := newBoard(t)
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 10, 10, blue)))
	drag(b, geom.Pt(0, 0), geom.Pt(50, 50))
	if s, _, _, _ := counts(b); s != 0 {
		t.Errorf("len(Strokes) = %d while an image is pending, want 0", s)
	}
	if err := b.Await(awaitCtx(t), job); err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	drag(b, geom.Pt(0, 0), geom.Pt(50, 50))
	if s, _, _, _ := counts(b); s != 1 {
		t.Errorf("len(Strokes) = %d after placement, want 1", s)
	}
}

func TestPlaceImageUsesSizeAtApply(t *testing.T) {
	b := newBoard(t)
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 500, 500, blue)))
	b.Resize(400, 300)
	if err := b.Await(awaitCtx(t), job); err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	img, _ := job.Image()
	// 400x300 surface: scale min(0.8, 0.6) * 0.8 = 0.48.
	if !placement(img, 80, 30, 240, 240) {
		t.Errorf("placement = (%v,%v %vx%v), want (80,30 240x240)", img.X, img.Y, img.Width, img.Height)
	}
}

func TestPlaceImageFinalizesGesture(t *testing.T) {
	b := newBoard(t)
	b.PointerDown(geom.Pt(0, 0))
	b.PointerMove(geom.Pt(40, 0))
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 10, 10, blue)))
	if s, _, _, _ := counts(b); s != 1 {
		t.Errorf("len(Strokes) = %d, want the gesture committed", s)
	}
	if err := b.Await(awaitCtx(t), job); err != nil {
		t.Fatal(err)
	}
	b.Undo()
	if s, _, _, n := counts(b); s != 1 || n != 0 {
		t.Errorf("after undo (%d strokes, %d images), want (1, 0)", s, n)
	}
}

func TestPlaceImageOnClosedBoard(t *testing.T) {
	b, err := New(WithSize(20, 20))
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Close()
	job := b.PlaceImage(context.Background(), bytes.NewReader(nil))
	if !errors.Is(job.Err(), ErrClosed) {
		t.Errorf("job.Err() = %v, want ErrClosed", job.Err())
	}
}

func TestFitCentered(t *testing.T) {
	tests := []struct {
		name       string
		bounds     image.Rectangle
		sw, sh     int
		ratio      float64
		x, y, w, h float64
	}{
		{"too wide", image.Rect(0, 0, 1600, 600), 800, 600, 0.8, 80, 180, 640, 240},
		{"too tall", image.Rect(0, 0, 100, 1200), 800, 600, 0.5, 387.5, 150, 25, 300},
		{"exactly the box", image.Rect(0, 0, 100, 300), 800, 600, 0.5, 350, 150, 100, 300},
		{"smaller than the box", image.Rect(0, 0, 10, 10), 800, 600, 0.8, 395, 295, 10, 10},
		{"offset origin", image.Rect(10, 10, 20, 20), 100, 100, 1, 45, 45, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := fitCentered(tt.bounds, tt.sw, tt.sh, tt.ratio)
			if !approx(x, tt.x) || !approx(y, tt.y) || !approx(w, tt.w) || !approx(h, tt.h) {
				t.Errorf("fitCentered() = (%v,%v %vx%v), want (%v,%v %vx%v)",
					x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestCloseFinishesQueuedImageJobs(t *testing.T) {
	b, err := New(WithSize(50, 50))
	if err != nil {
		t.Fatal(err)
	}
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 4, 4, blue)))
	select {
	case <-b.Wake():
	case <-awaitCtx(t).Done():
		t.Fatal("decode never posted its result")
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case <-job.Done():
	default:
		t.Fatal("job.Done() still open after Close")
	}
	if !errors.Is(job.Err(), ErrClosed) {
		t.Errorf("job.Err() = %v, want ErrClosed", job.Err())
	}
	if b.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, want 0", b.Pending())
	}
	if n := b.Pump(); n != 0 {
		t.Errorf("Pump() after Close ran %d ops, want 0", n)
	}
}

func TestAwaitAfterCloseFinishesJob(t *testing.T) {
	b, err := New(WithSize(50, 50))
	if err != nil {
		t.Fatal(err)
	}
	job := b.PlaceImage(context.Background(), bytes.NewReader(pngBytes(t, 4, 4, blue)))
	_ = b.Close()

	// Whether the decode posted before or after Close, the job ends with
	// ErrClosed instead of waiting for the context.
	if err := b.Await(awaitCtx(t), job); !errors.Is(err, ErrClosed) {
		t.Fatalf("Await() after Close error = %v, want ErrClosed", err)
	}
	if _, ok := job.Image(); ok {
		t.Error("job placed an image on a closed board")
	}
}
