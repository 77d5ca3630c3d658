package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_toLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, expected := range testCases {
		assert.Equal(t, expected, toLevel(in), "level %q", in)
	}
}

func Test_newLogger_AddsRequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := newLogger(&buf, "info")
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	// when
	log.InfoContext(ctx, "hello")
	log.DebugContext(ctx, "filtered out")

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "req-42", record["request_id"])
}
