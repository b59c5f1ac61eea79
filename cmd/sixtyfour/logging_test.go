package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"trace", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if !tt.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := newLogHandler(&buf, slog.LevelInfo, "json")
		require.NoError(t, err)

		logger := slog.New(h)
		logger.Debug("hidden")
		logger.Info("frame pump started", "frames", 3)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "frame pump started", rec["msg"])
		assert.Equal(t, float64(3), rec["frames"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := newLogHandler(&buf, slog.LevelWarn, "text")
		require.NoError(t, err)

		logger := slog.New(h)
		logger.Info("hidden")
		logger.Warn("overrun")
		assert.Contains(t, buf.String(), "msg=overrun")
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := newLogHandler(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.Error(t, err)
	})
}
