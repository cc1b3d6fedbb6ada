package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// surface is a Source backed by an in-memory image.
type surface struct {
	img *image.RGBA
	err error
}

func newSurface(w, h int) *surface {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	return &surface{img: img}
}

func (s *surface) EncodePNG(w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	return png.Encode(w, s.img)
}

func (s *surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, newSurface(12, 7)); err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("bounds = %v, want 12x7", b)
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, newSurface(64, 48)); err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Subtype /Image")) {
		t.Error("PDF has no image XObject")
	}
}

func TestEncodeErrors(t *testing.T) {
	boom := errors.New("boom")
	src := newSurface(4, 4)
	src.err = boom

	for _, f := range []Format{FormatPNG, FormatPDF} {
		err := Write(io.Discard, src, f)
		if !errors.Is(err, ErrEncode) || !errors.Is(err, boom) {
			t.Errorf("Write(%v) error = %v, want ErrEncode wrapping the cause", f, err)
		}
	}
	if err := PDF(io.Discard, &surface{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}); !errors.Is(err, ErrEmptySurface) {
		t.Errorf("PDF(empty) error = %v, want ErrEmptySurface", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, "", newSurface(5, 5))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, FileName))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("saved file is not PNG: %v", err)
	}

	pdfPath, err := Save(dir, "drawing.PDF", newSurface(5, 5))
	if err != nil {
		t.Fatalf("Save(pdf) error = %v", err)
	}
	data, _ = os.ReadFile(pdfPath)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("drawing.PDF is not a PDF")
	}

	if _, err := Save(dir, "../escape.png", newSurface(1, 1)); !errors.Is(err, ErrFileName) {
		t.Errorf("Save(../escape.png) error = %v, want ErrFileName", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"drawing.png", FormatPNG},
		{"drawing.pdf", FormatPDF},
		{"DRAWING.Pdf", FormatPDF},
		{"drawing", FormatPNG},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.name); got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
