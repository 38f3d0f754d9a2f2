package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelParsing(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "mixed case", level: "ERROR", want: zerolog.ErrorLevel},
		{name: "empty falls back to info", level: "", want: zerolog.InfoLevel},
		{name: "garbage falls back to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(Config{Level: tt.level, Output: &bytes.Buffer{}})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestComponentLoggerTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := ComponentLogger(New(Config{Level: "info", Output: &buf}), "engine")

	logger.Info().Msg("hello")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "engine", event["component"])
	assert.Equal(t, "hello", event["message"])
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	require.NotEmpty(t, generated)

	ctx = ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, TraceIDFromContext(ctx))
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}

func TestTraceHookAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf})
	ctx := ContextWithTraceID(context.Background(), "abc-123")

	logger.Info().Ctx(ctx).Msg("traced")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "abc-123", event["trace_id"])
}

func TestNewLoggerWithPathWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	result := NewLoggerWithPath(Config{Level: "info", File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)
	assert.False(t, result.FallbackUsed)

	result.Logger.Info().Msg("to file")
	require.NoError(t, result.Close())

	assert.FileExists(t, path)
}

func TestNewLoggerWithPathFallsBack(t *testing.T) {
	var buf bytes.Buffer
	// Directory path cannot be opened as a file, forcing the fallback.
	result := NewLoggerWithPath(Config{Level: "info", File: t.TempDir(), Output: &buf})

	assert.False(t, result.UsingFile)
	require.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)

	result.Logger.Info().Msg("to fallback")
	assert.Contains(t, buf.String(), "to fallback")
}

func TestFromContextDisabledWhenAbsent(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
