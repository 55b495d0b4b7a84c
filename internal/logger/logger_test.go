package logger

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"kgtransfer/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_WritesLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	l.Debug("hidden")
	l.Info("info message", "id", 7)
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "id=7")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestNew(t *testing.T) {
	l, err := New(&config.LoggerConfig{Level: config.LogLevelDebug, Type: config.LogTypeConsole})
	require.NoError(t, err)
	require.NotNil(t, l)

	path := filepath.Join(t.TempDir(), "app.log")
	l, err = New(&config.LoggerConfig{Level: config.LogLevelInfo, Type: config.LogTypeFile, FilePath: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)
	require.NotPanics(t, func() { l.Info("to file") })

	_, err = New(&config.LoggerConfig{Type: config.LogTypeFile})
	require.Error(t, err)

	_, err = New(&config.LoggerConfig{Type: "syslog"})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(config.LogLevelDebug))
	assert.Equal(t, slog.LevelWarn, parseLevel(config.LogLevelWarning))
	assert.Equal(t, slog.LevelError, parseLevel(config.LogLevelError))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
