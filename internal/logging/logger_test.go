package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"keylight/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("info level by default", func(t *testing.T) {
		l, err := New(config.LoggingConfig{Level: "info", Format: "console"}, false)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		l, err := New(config.LoggingConfig{Level: "error", Format: "json"}, true)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "info", Format: "xml"}, false)
		assert.Error(t, err)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "loud"}, false)
		assert.Error(t, err)
	})
}

func TestCategoryAndRun(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriter(&buf, zapcore.DebugLevel)

	l, id := WithRun(root)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	For(l, CategoryParser).Info("parsed", zap.Int("effects", 3))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "parser", entry["logger"])
	assert.Equal(t, id, entry["run_id"])
	assert.Equal(t, "parsed", entry["msg"])
	assert.EqualValues(t, 3, entry["effects"])
}

func TestForNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		For(nil, CategoryWatch).Info("dropped")
	})
}
