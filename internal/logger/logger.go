// Package logger provides the application's leveled logger, backed by log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"kgtransfer/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging surface used by handlers, services and middleware.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// New builds a console or rotating-file logger from cfg.
func New(cfg *config.LoggerConfig) (Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	switch cfg.Type {
	case config.LogTypeConsole, "":
		return NewWithWriter(os.Stdout, opts), nil
	case config.LogTypeFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file path required for file logger")
		}
		w := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		}
		return &slogLogger{logger: slog.New(slog.NewJSONHandler(w, opts))}, nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", cfg.Type)
	}
}

// NewWithWriter returns a text logger writing to w.
func NewWithWriter(w io.Writer, opts *slog.HandlerOptions) Logger {
	return &slogLogger{logger: slog.New(slog.NewTextHandler(w, opts))}
}

// Nop discards everything. Used in tests and when a component has no logger wired.
func Nop() Logger {
	return NewWithWriter(io.Discard, nil)
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
