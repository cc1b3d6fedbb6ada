// Package config loads and stores sketch settings as TOML.
//
// A file only needs the keys it changes; everything else keeps its default.
//
//	[surface]
//	width = 800
//	height = 600
//	background = "#ffffff"
//
//	[brush]
//	color = "#000000"
//	width = 5.0
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/sketch/geom"
)

// FileName is the config file name inside Dir.
const FileName = "config.toml"

// MaxSurface bounds both surface dimensions.
const MaxSurface = 8192

// Surface holds the drawing surface settings.
type Surface struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// Brush holds the initial stroke settings.
type Brush struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

// Text holds the label font settings.
type Text struct {
	FontSize float64 `toml:"font_size"`
}

// Sampler holds the stroke densification parameters.
type Sampler struct {
	MinGap  float64 `toml:"min_gap"`
	Spacing float64 `toml:"spacing"`
}

// History holds the undo log settings. A Limit of 0 keeps every entry.
type History struct {
	Limit         int  `toml:"limit"`
	CombinedClear bool `toml:"combined_clear"`
}

// Image holds placement settings for uploaded images.
type Image struct {
	FitRatio float64 `toml:"fit_ratio"`
}

// Export holds raster export settings.
type Export struct {
	FileName string `toml:"file_name"`
}

// Config is the full settings tree.
type Config struct {
	Surface Surface `toml:"surface"`
	Brush   Brush   `toml:"brush"`
	Text    Text    `toml:"text"`
	Sampler Sampler `toml:"sampler"`
	History History `toml:"history"`
	Image   Image   `toml:"image"`
	Export  Export  `toml:"export"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Surface: Surface{Width: 800, Height: 600, Background: "#ffffff"},
		Brush:   Brush{Color: "#000000", Width: 5},
		Text:    Text{FontSize: 16},
		Sampler: Sampler{MinGap: 5, Spacing: 2},
		Image:   Image{FitRatio: 0.8},
		Export:  Export{FileName: "drawing.png"},
	}
}

// Load reads path over the defaults and validates the result. Keys that map
// to no setting are reported with ErrUnknownKey.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s in %s", ErrUnknownKey, strings.Join(keys, ", "), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Write stores c at path, creating the parent directory if needed.
func (c Config) Write(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate reports every out-of-range setting, each wrapped with ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Surface.Width < 1 || c.Surface.Width > MaxSurface {
		bad("surface.width %d not in [1, %d]", c.Surface.Width, MaxSurface)
	}
	if c.Surface.Height < 1 || c.Surface.Height > MaxSurface {
		bad("surface.height %d not in [1, %d]", c.Surface.Height, MaxSurface)
	}
	if !geom.ValidColor(c.Surface.Background) {
		bad("surface.background %q", c.Surface.Background)
	}
	if !geom.ValidColor(c.Brush.Color) {
		bad("brush.color %q", c.Brush.Color)
	}
	if c.Brush.Width <= 0 {
		bad("brush.width %v must be positive", c.Brush.Width)
	}
	if c.Text.FontSize <= 0 {
		bad("text.font_size %v must be positive", c.Text.FontSize)
	}
	if c.Sampler.MinGap < 0 {
		bad("sampler.min_gap %v must not be negative", c.Sampler.MinGap)
	}
	if c.Sampler.Spacing <= 0 {
		bad("sampler.spacing %v must be positive", c.Sampler.Spacing)
	}
	if c.History.Limit < 0 {
		bad("history.limit %d must not be negative", c.History.Limit)
	}
	if c.Image.FitRatio <= 0 || c.Image.FitRatio > 1 {
		bad("image.fit_ratio %v not in (0, 1]", c.Image.FitRatio)
	}
	if name := c.Export.FileName; name == "" || filepath.Base(name) != name {
		bad("export.file_name %q must be a bare file name", name)
	}
	return errors.Join(errs...)
}

// Dir returns the per-user config directory, $XDG_CONFIG_HOME/sketch when set
// and ~/.config/sketch otherwise.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "sketch")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), FileName)
}
