package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"vss-session/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONIncludesDefaultAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "info", Format: "json"}, "1.2.3", &buf)

	logger.Info("session restored", "user_id", "42")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vss-session", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "42", entry["user_id"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "warn", Format: "text"}, "dev", &buf)

	logger.Info("ignored")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
