// Package raster2d is a deterministic, CPU-only 2D vector graphics
// rasterizer: paths of line segments, cubic Béziers, and circular arcs
// are flattened, filled or stroked, and composited onto pixel surfaces
// through a batched Porter-Duff/W3C blend engine.
//
// The rendering packages live below this one (pixfmt, surface, color,
// gradient, dither, compositor, path, fillplot, strokeplot, painter);
// this package carries the module-wide logger configuration they share.
package raster2d

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/inkraster/raster2d/wide"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for raster2d and all its sub-packages.
// By default, raster2d produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by raster2d:
//   - [slog.LevelDebug]: internal diagnostics (float-only operators
//     degrading to clear in integer precision, detected SIMD features)
//
// Example:
//
//	// Enable debug-level logging to stderr:
//	raster2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	l.Debug("simd feature detected", "isa", wide.SIMDFeature())
}

// Logger returns the current logger used by raster2d. Sub-packages call
// this to share the same logger configuration without introducing import
// cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
