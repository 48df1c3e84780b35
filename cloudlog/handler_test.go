package cloudlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerEmitsStructuredSeverityAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(&buf, slog.LevelInfo))
	logger.With("game_id", "abc123").Warn("snake died", "turn", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARNING", entry["severity"])
	assert.Equal(t, "snake died", entry["message"])
	assert.Equal(t, "abc123", entry["game_id"])
	assert.EqualValues(t, 42, entry["turn"])
}

func TestHandlerRespectsMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	h := New(&buf, slog.LevelWarn)
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
