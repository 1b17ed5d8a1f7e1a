// Package log supplies the explicit debug-notify collaborator threaded
// through the decoding core. It replaces the teacher's package-level
// log.Printf(debug bool) idiom with a parameter every layer is handed,
// never a process-wide toggle (see design note on the debug-notify hook).
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Notifier is the debug-notify collaborator, carried on config.Config and
// read from there by itemvalues.Read and facade.GetItem to emit structured
// debug traces. A nil Notifier is valid and
// silently discards all events.
type Notifier struct {
	logger zerolog.Logger
	enabled bool
}

// NewNotifier builds a Notifier writing to w. If w is nil debug output is
// discarded entirely but the Notifier remains safe to call.
func NewNotifier(w io.Writer, enabled bool) *Notifier {
	if w == nil {
		w = io.Discard
	}
	return &Notifier{
		logger:  zerolog.New(w).With().Timestamp().Logger(),
		enabled: enabled,
	}
}

// Default returns a Notifier writing to stderr with debug tracing disabled,
// the equivalent of the teacher's ParseMsgFile (debug=false) entry point.
func Default() *Notifier {
	return NewNotifier(os.Stderr, false)
}

// Debug returns a *Notifier equivalent to the teacher's
// ParseMsgFileWithDebug (debug=true) entry point.
func Debug() *Notifier {
	return NewNotifier(os.Stderr, true)
}

// Enabled reports whether debug tracing is on.
func (n *Notifier) Enabled() bool {
	return n != nil && n.enabled
}

// Tracef emits a debug-level trace line when the notifier is enabled.
func (n *Notifier) Tracef(format string, args ...interface{}) {
	if n == nil || !n.enabled {
		return
	}
	n.logger.Debug().Msgf(format, args...)
}

// Event returns a debug-level zerolog.Event for structured field logging.
// The returned event is already disabled (via zerolog.Disabled) when the
// notifier is off, so chaining .Str()/.Int() calls on it is always safe.
func (n *Notifier) Event() *zerolog.Event {
	if n == nil || !n.enabled {
		return zerolog.New(io.Discard).Level(zerolog.Disabled).Debug()
	}
	return n.logger.Debug()
}
