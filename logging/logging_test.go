package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/beggar/gosim/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "loud")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("exploration started", "workers", 4)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "exploration started", line["msg"])
	assert.EqualValues(t, 4, line["workers"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("exploration stopped", "deals", 10)

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "exploration stopped")
	assert.Contains(t, buf.String(), "deals=10")
}

func TestNew_Pterm(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "debug", Format: "pterm"}, &buf)
	require.NoError(t, err)

	logger.Debug("new best")
	assert.Contains(t, buf.String(), "new best")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "xml")

	_, err = New(config.LogConfig{Level: "chatty", Format: "text"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "chatty")
}
