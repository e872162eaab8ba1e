package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name), "level %q", tt.name)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestSetupSetsDefault(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	l, err := Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	fallback, fallbackBuf := NewTestLogger()
	scoped, scopedBuf := NewTestLogger()

	ctx := context.Background()
	assert.Same(t, fallback, FromContextOrDefault(ctx, fallback))

	ctx = WithLogger(ctx, scoped)
	FromContextOrDefault(ctx, fallback).Info("to scoped")
	assert.Contains(t, scopedBuf.String(), "to scoped")
	assert.Empty(t, fallbackBuf.String())

	//nolint:staticcheck // nil context is handled deliberately
	assert.NotNil(t, FromContext(nil))
}

func TestTraceIDAttachedToDefault(t *testing.T) {
	t.Parallel()

	l, buf := NewTestLogger()
	ctx := WithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", TraceID(ctx))

	FromContextOrDefault(ctx, l).Info("traced")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "trace-123", entries[0]["trace_id"])
}
