package fingerprint

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled is false at all levels, so
// attributes of disabled calls are never evaluated.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() { loggerPtr.Store(newNopLogger()) }

// SetLogger sets the logger shared by this package, the backends and
// hostenv. Nothing is logged until it is called; nil restores silence.
// It may be called while passes are running.
//
// Log levels used by fingerprint:
//   - [slog.LevelDebug]: pass internals (texture size, readback rectangle, payload length)
//   - [slog.LevelInfo]: lifecycle events (GPU adapter selected, backend initialized)
//   - [slog.LevelWarn]: degraded passes (no rendering context, asset stalled)
//
// Example:
//
//	fingerprint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by contexts and backends that keep their own
// logger reference.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the current logger to v if it accepts one.
func propagateLogger(v any) {
	if ls, ok := v.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
}
