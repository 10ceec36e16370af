package fingerpaint

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while trackers on other goroutines are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for fingerpaint and its sub-packages.
// By default, fingerpaint produces no log output. Pass nil to restore the
// default silent behavior.
//
// The logger is also handed to gg, so rendering diagnostics end up in the
// same place as tracking diagnostics.
//
// Log levels used by fingerpaint:
//   - [slog.LevelDebug]: per-event traces (changed points, finger list,
//     chosen assignment, strokes)
//   - [slog.LevelInfo]: session lifecycle (reset, replay summaries)
//   - [slog.LevelWarn]: rejected events (precondition or malformed input)
//
// Example:
//
//	fingerpaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger.
// Sub-packages (render/, eventlog/) call this to share the same logger
// configuration. Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
