// Package logging wraps zerolog with the fields persistui attaches to every
// entry. The TUI draws on stdout, so interactive commands log to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Empty means info.
	Level string
	// Format is "json" (default) or "console".
	Format    string
	Writer    io.Writer
	Component string
}

// Logger is a nil-safe structured logger.
type Logger struct {
	base zerolog.Logger
}

// New creates a Logger from opts.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var output io.Writer = writer
	switch strings.ToLower(opts.Format) {
	case "", "json":
	case "console":
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		console.NoColor = true
		output = console
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// OpenFile opens path for appending, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Zerolog exposes the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return l.base
}

// With returns a logger that always writes key.
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Interface(key, value).Logger()}
}

// WithComponent tags entries with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Str("component", name).Logger()}
}

// WithStream tags entries with an event stream id.
func (l *Logger) WithStream(id string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Str("stream_id", id).Logger()}
}

// Debug writes a debug entry. fields are alternating keys and values.
func (l *Logger) Debug(msg string, fields ...any) {
	if l == nil {
		return
	}
	l.base.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...any) {
	if l == nil {
		return
	}
	l.base.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...any) {
	if l == nil {
		return
	}
	l.base.Warn().Fields(fields).Msg(msg)
}

// Error writes an error entry including err when non-nil.
func (l *Logger) Error(err error, msg string, fields ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Fields(fields).Msg(msg)
}

// StreamStarted records an event source task starting.
func (l *Logger) StreamStarted(tick time.Duration, hasInput bool) {
	if l == nil {
		return
	}
	l.base.Debug().
		Dur("tick", tick).
		Bool("input", hasInput).
		Msg("event stream started")
}

// StreamStopped records an event source task exiting.
func (l *Logger) StreamStopped(reason string, delivered uint64) {
	if l == nil {
		return
	}
	l.base.Debug().
		Str("reason", reason).
		Uint64("delivered", delivered).
		Msg("event stream stopped")
}

// FocusChanged records the focused leaf moving between iteration indices.
// -1 means nothing was focused.
func (l *Logger) FocusChanged(from, to int) {
	if l == nil {
		return
	}
	l.base.Debug().Int("from", from).Int("to", to).Msg("focus changed")
}

// WidgetEvent records a widget-level event re-injected as a custom event.
func (l *Logger) WidgetEvent(name string, args int) {
	if l == nil {
		return
	}
	l.base.Info().Str("event", name).Int("args", args).Msg("widget event")
}
