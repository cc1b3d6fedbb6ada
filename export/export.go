// Package export serializes a painted surface to a standalone file.
//
// The surface is always flattened: PNG carries the raster as is and PDF wraps
// the same PNG in a single page sized to the surface, one pixel per point.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// FileName is the name exports are saved under unless told otherwise.
const FileName = "drawing.png"

// Source is a painted surface. *raster.Rasterizer implements it.
type Source interface {
	EncodePNG(w io.Writer) error
	Size() (width, height int)
}

// Format selects the export encoding.
type Format uint8

// Export formats.
const (
	FormatPNG Format = iota
	FormatPDF
)

// String returns the file extension of the format, without the dot.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// FormatOf picks the format from a file name extension. Anything other than
// ".pdf" is PNG.
func FormatOf(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return FormatPDF
	}
	return FormatPNG
}

// PNG writes src to w as PNG.
func PNG(w io.Writer, src Source) error {
	if err := src.EncodePNG(w); err != nil {
		return fmt.Errorf("%w: png: %w", ErrEncode, err)
	}
	return nil
}

// PDF writes src to w as a one-page PDF document.
func PDF(w io.Writer, src Source) error {
	width, height := src.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptySurface, width, height)
	}

	var raster bytes.Buffer
	if err := src.EncodePNG(&raster); err != nil {
		return fmt.Errorf("%w: png: %w", ErrEncode, err)
	}

	wd, ht := float64(width), float64(height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("sketch", true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("surface", opts, &raster)
	pdf.ImageOptions("surface", 0, 0, wd, ht, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: pdf: %w", ErrEncode, err)
	}
	return nil
}

// Write encodes src to w in format f.
func Write(w io.Writer, src Source, f Format) error {
	if f == FormatPDF {
		return PDF(w, src)
	}
	return PNG(w, src)
}

// Save writes src into dir under name, picking the format from the name's
// extension. An empty name means FileName. It returns the written path.
func Save(dir, name string, src Source) (string, error) {
	if name == "" {
		name = FileName
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrFileName, name)
	}
	path := filepath.Join(dir, name)

	var buf bytes.Buffer
	if err := Write(&buf, src, FormatOf(name)); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
