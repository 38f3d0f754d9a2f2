// Package logging provides zerolog-based structured logging with context
// propagation, component tagging, and trace ID support. All packages obtain
// their logger through FromContext so that CLI flags and config control the
// whole process uniformly.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Format names accepted by Config.Format.
const (
	// FormatJSON emits one JSON object per event (machine-readable).
	FormatJSON = "json"
	// FormatConsole emits human-readable colorized output.
	FormatConsole = "console"
)

// DefaultLevel is used when Config.Level is empty or unparseable.
const DefaultLevel = "info"

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit: trace, debug, info, warn, error.
	Level string
	// Format selects the output encoding: "json" or "console".
	Format string
	// Output receives log events. Defaults to os.Stderr when nil.
	Output io.Writer
	// File, when non-empty, is the log file path. NewLoggerWithPath opens it
	// and falls back to Output if it cannot be opened.
	File string
	// Caller adds the caller file:line to each event.
	Caller bool
}

// New builds a zerolog.Logger from cfg. It never fails: an unparseable level
// falls back to DefaultLevel, a nil Output falls back to os.Stderr.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(cfg.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level, _ = zerolog.ParseLevel(DefaultLevel)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if cfg.Caller {
		logger = logger.With().Caller().Logger()
	}
	return logger.Hook(traceHook{})
}

// FromContext returns the logger stored in ctx, or a disabled logger when none
// was attached. Callers chain events directly: FromContext(ctx).Debug()...
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// ComponentLogger returns a child logger tagged with a component field so that
// events can be filtered per subsystem.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// traceHook copies the trace ID from the event context (attached via .Ctx(ctx))
// into a trace_id field on every event that carries one.
type traceHook struct{}

func (traceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		e.Str("trace_id", traceID)
	}
}
