package huecycle

import (
	"context"
	"log/slog"
	"sync/atomic"
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
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for huecycle and all its sub-packages.
// By default, huecycle produces no log output. Call SetLogger to enable logging.
//
// Canvases, animators and displays capture the logger when they are created,
// so call SetLogger before constructing them.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by huecycle:
//   - [slog.LevelDebug]: per-frame timing, resize sizes, gradient colors
//   - [slog.LevelInfo]: lifecycle events (cycling started/stopped, client connected)
//   - [slog.LevelWarn]: non-fatal issues (dropped frames, present failures)
//
// Example:
//
//	huecycle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by huecycle.
// Sub-packages (surface/term, surface/web) call this to share the same
// logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
