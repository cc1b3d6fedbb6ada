package sketch

import (
	"log/slog"
	"sync/atomic"
)

// silent returns the logger boards use until SetLogger is called. It matches
// the default of every sketch subpackage.
func silent() *slog.Logger { return slog.New(slog.DiscardHandler) }

// pkgLogger is read by New on whatever goroutine creates a board.
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(silent())
}

// SetLogger configures the logger used by boards created afterwards without
// WithLogger. A board keeps the logger it was created with. By default
// sketch produces no log output; pass nil to restore that.
//
// SetLogger is safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: ignored input, such as moves without a gesture,
//     unknown layer ids or presses the current mode does not accept
//   - [slog.LevelInfo]: exports written, images placed
//   - [slog.LevelWarn]: images not placed, unparseable colors
//
// Example:
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent()
	}
	pkgLogger.Store(l)
}

// Logger returns the current package logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return pkgLogger.Load()
}
