package engage

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

func TestLogSink_Emit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sink := NewLogSink(logger, "")
	sink.Emit("search completed")
	sink.Emit(domain.Params{"q": "#go"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "search completed", first["msg"])
	assert.Equal(t, "DEBUG", first["level"])
	assert.Equal(t, DefaultNamespace, first["component"])

	assert.Equal(t, "trace", second["msg"])
	assert.Equal(t, map[string]any{"q": "#go"}, second["value"])
}

func TestLogSink_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	NewLogSink(logger, "bot").Emit("hidden")

	assert.Empty(t, buf.String())
}
