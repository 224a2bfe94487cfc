package gfx

import (
	"context"
	"log/slog"
	"sync"
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

// SetLogger configures the logger for gfx and all its sub-packages.
// By default, gfx produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gfx:
//   - [slog.LevelDebug]: resource lifecycle in the debug layer (handles created and released)
//   - [slog.LevelInfo]: important lifecycle events (HAL adapter and device opened)
//   - [slog.LevelWarn]: rejected handles, resource release errors
//
// Diagnostics produced by validation are not logged here. They are posted
// to the debugger configured on the debug render system.
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by gfx.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// componentLogger caches base.With("component", name) for one base logger.
type componentLogger struct {
	base *slog.Logger
	l    *slog.Logger
}

var components sync.Map // component name -> *componentLogger

// LoggerFor returns the current logger with a "component" attribute.
// Sub-packages (debug, backend, backend/native) log through it so records
// can be filtered by origin. The derived logger is rebuilt only after
// SetLogger replaces the base logger.
//
// LoggerFor is safe for concurrent use.
func LoggerFor(component string) *slog.Logger {
	base := loggerPtr.Load()
	if v, ok := components.Load(component); ok {
		if c := v.(*componentLogger); c.base == base {
			return c.l
		}
	}
	c := &componentLogger{base: base, l: base.With(slog.String("component", component))}
	components.Store(component, c)
	return c.l
}
