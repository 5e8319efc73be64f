// Package logging wraps log/slog behind a small interface. The picker owns the
// terminal for the whole session, so logs only ever go to a file or nowhere.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger interface for dependency injection and testing
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config holds logger configuration
type Config struct {
	Level   slog.Level
	Output  io.Writer
	AddTime bool
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger creates a text logger with the given configuration
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = io.Discard
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	if !config.AddTime {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	}

	return &slogLogger{logger: slog.New(slog.NewTextHandler(config.Output, opts))}
}

// NewDisabledLogger creates a logger that discards all output (useful for tests)
func NewDisabledLogger() Logger {
	return NewLogger(Config{
		Level:  slog.Level(1000),
		Output: io.Discard,
	})
}

// ParseLevel maps a level name to a slog level. Unknown names mean errors only.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// NewFileLoggerFromEnv creates a file logger when CMENU_DEBUG_FILE is set.
// CMENU_DEBUG_LEVEL picks the level. The returned closer is never nil.
func NewFileLoggerFromEnv() (Logger, io.Closer) {
	debugFile := os.Getenv("CMENU_DEBUG_FILE")
	if debugFile == "" {
		return NewDisabledLogger(), io.NopCloser(nil)
	}

	if err := os.MkdirAll(filepath.Dir(debugFile), 0755); err != nil {
		return NewDisabledLogger(), io.NopCloser(nil)
	}

	file, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return NewDisabledLogger(), io.NopCloser(nil)
	}

	return NewLogger(Config{
		Level:   ParseLevel(os.Getenv("CMENU_DEBUG_LEVEL")),
		Output:  file,
		AddTime: true,
	}), file
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With returns a logger with additional attributes
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}
