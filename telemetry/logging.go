// Package telemetry is the engine's optional tracing hook (spec.md §7): a
// package-level zerolog logger with Debug/Warn/Error helpers that never
// fail. Within this module only main.go calls it (to initialize it); the
// engine packages do not log their degrade points (unknown-node fallback,
// stale async drop, history eviction) through it.
package telemetry

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(io.Discard).With().Timestamp().Logger()
)

// Init points the package logger at w (os.Stdout, a file, io.Discard to
// disable). Safe to call concurrently with logging calls; a nil w disables
// logging.
func Init(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// InitStderr is a convenience for the common "human console" case.
func InitStderr(level zerolog.Level) {
	Init(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug logs a low-severity trace event: staleness drops, unknown-node
// fallback, eviction decisions. Never surfaced to the caller.
func Debug(event string, fields map[string]any) {
	e := current().Debug()
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(event)
}

// Warn logs a runtime condition worth a human's attention but that the
// engine still recovered from (e.g. dictionary predict() truncated results).
func Warn(event string, fields map[string]any) {
	e := current().Warn()
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(event)
}

// Error logs an open/load boundary failure alongside its kerr.Error.
func Error(event string, err error) {
	current().Error().Err(err).Msg(event)
}
