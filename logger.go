package statej

import (
	"log"
	"os"
)

// Logger receives diagnostic output from best-effort paths (render,
// persistence, listener notification). Emission is gated by the debug
// flag; the error handler channel is independent of it.
type Logger interface {
	Logf(format string, args ...any)
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(format string, args ...any)

// Logf calls f.
func (f LoggerFunc) Logf(format string, args ...any) { f(format, args...) }

// stdLogger writes to stderr, the default sink for debug diagnostics.
var stdLogger Logger = stdlog{log.New(os.Stderr, "statej: ", log.LstdFlags)}

type stdlog struct{ l *log.Logger }

func (s stdlog) Logf(format string, args ...any) { s.l.Printf(format, args...) }
