package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/odvcencio/spatialnav/pkg/geometry"
)

// Logger is a structured logger for spatialnav components
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger on stderr
func NewLogger(component string, level slog.Level) *Logger {
	return NewWithWriter(os.Stderr, component, level)
}

// NewWithWriter creates a JSON logger writing to w
func NewWithWriter(w io.Writer, component string, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(w, opts)

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "spatialnav"),
	)

	return &Logger{Logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSection returns a logger with section-specific fields
func (l *Logger) WithSection(sectionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("section_id", sectionID)),
	}
}

// LogMove records the outcome of a directional move
func (l *Logger) LogMove(direction geometry.Direction, sectionID, result string) {
	l.Debug("move",
		slog.String("direction", string(direction)),
		slog.String("section_id", sectionID),
		slog.String("result", result),
	)
}

// LogSectionChange records a registry mutation
func (l *Logger) LogSectionChange(op, sectionID string) {
	l.Debug("section changed",
		slog.String("op", op),
		slog.String("section_id", sectionID),
	)
}

// LogTransition records a focus transition outcome
func (l *Logger) LogTransition(mode, outcome, sectionID string, direction geometry.Direction) {
	l.Debug("focus transition",
		slog.String("mode", mode),
		slog.String("outcome", outcome),
		slog.String("section_id", sectionID),
		slog.String("direction", string(direction)),
	)
}
