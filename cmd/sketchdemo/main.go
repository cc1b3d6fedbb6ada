// Command sketchdemo replays a gesture script on a sketch board and saves
// the result as PNG and, optionally, PDF.
//
// Usage:
//
//	sketchdemo [-config config.toml] [-script gestures.toml] [-out dir] [-pdf] [-v]
//
// Without -script a built-in demo drawing is replayed.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/config"
)

func main() {
	var (
		cfgPath    = flag.String("config", config.Path(), "settings file")
		scriptPath = flag.String("script", "", "gesture script (TOML)")
		outDir     = flag.String("out", ".", "output directory")
		pdf        = flag.Bool("pdf", false, "also write a PDF next to the PNG")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	s, err := loadScript(*scriptPath)
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}

	b, err := sketch.New(sketch.WithConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}
	defer func() { _ = b.Close() }()

	if err := s.replay(context.Background(), b, filepath.Dir(*scriptPath)); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	path, err := b.SaveExport(*outDir)
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	w, h := b.Size()
	log.Printf("Drawing saved to %s (%dx%d)\n", path, w, h)

	if *pdf {
		pdfPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
		if err := writePDF(b, pdfPath); err != nil {
			log.Fatalf("Failed to save PDF: %v", err)
		}
		log.Printf("PDF saved to %s\n", pdfPath)
	}
}

func writePDF(b *sketch.Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.ExportPDF(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// loadScript reads a gesture script, or returns the demo script for an
// empty path.
func loadScript(path string) (script, error) {
	var s script
	if path == "" {
		_, err := toml.Decode(demoScript, &s)
		return s, err
	}
	_, err := toml.DecodeFile(path, &s)
	return s, err
}
