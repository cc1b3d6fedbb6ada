package sketch

import (
	"image"
	"log/slog"

	"github.com/gogpu/sketch/config"
)

// Option configures a Board during creation.
//
// Example:
//
//	// Defaults: 800x600 white surface, black 5px pen
//	b, _ := sketch.New()
//
//	// Settings from a file, with a repaint callback
//	cfg, _ := config.LoadOrDefault(config.Path())
//	b, _ := sketch.New(sketch.WithConfig(cfg), sketch.WithRepaintHook(show))
type Option func(*boardOptions)

// boardOptions holds optional configuration for Board creation.
type boardOptions struct {
	cfg       config.Config
	logger    *slog.Logger
	onRepaint func(*image.RGBA)
	font      []byte
}

// defaultOptions returns the default board options.
func defaultOptions() boardOptions {
	return boardOptions{
		cfg:    config.Default(),
		logger: nil, // Falls back to Logger() if nil
	}
}

// WithConfig replaces the default settings. The config is validated by New.
func WithConfig(cfg config.Config) Option {
	return func(o *boardOptions) {
		o.cfg = cfg
	}
}

// WithSize overrides the configured surface size.
func WithSize(width, height int) Option {
	return func(o *boardOptions) {
		o.cfg.Surface.Width = width
		o.cfg.Surface.Height = height
	}
}

// WithLogger sets the logger for this board instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *boardOptions) {
		o.logger = l
	}
}

// WithRepaintHook sets a function called with every newly painted surface.
// The image belongs to the callee.
func WithRepaintHook(fn func(*image.RGBA)) Option {
	return func(o *boardOptions) {
		o.onRepaint = fn
	}
}

// WithFont replaces the default label face with TrueType or OpenType data.
func WithFont(data []byte) Option {
	return func(o *boardOptions) {
		o.font = data
	}
}
