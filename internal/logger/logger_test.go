package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log
	log = New(NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	t.Cleanup(func() { log = prev })
	return &buf
}

func TestInit(t *testing.T) {
	prev := log
	defer func() { log = prev }()

	Init()
	assert.NotNil(t, log)
	assert.NotNil(t, L())
}

func TestInfoWithAttributes(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	Info("subscription created", "subscription_id", "abc", "status", "active")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "subscription created", entry["msg"])
	assert.Equal(t, "abc", entry["subscription_id"])
	assert.Equal(t, "active", entry["status"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestInfof(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	Infof("Server starting on port %s", "8080")

	assert.Contains(t, buf.String(), "Server starting on port 8080")
}

func TestError(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	Error("test error", "error", "boom")

	output := buf.String()
	assert.Contains(t, output, "test error")
	assert.Contains(t, output, "boom")
	assert.Contains(t, output, "ERROR")
}

func TestErrorf(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	Errorf("failed to load %d plans", 3)

	assert.Contains(t, buf.String(), "failed to load 3 plans")
}

func TestDebugFiltered(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	Debug("hidden")
	Debugf("hidden %d", 1)

	assert.Empty(t, buf.String())
}

func TestDebugEnabled(t *testing.T) {
	buf := captureJSON(t, slog.LevelDebug)

	Debug("test debug")

	assert.Contains(t, buf.String(), "test debug")
}

func TestWarn(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	Warn("queue slow", "length", 12)

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "queue slow")
}
