package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("fetching", slog.String("url", "https://hyper.rs"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=fetching")
	assert.Contains(t, out, "url=https://hyper.rs")
}

func TestNew_NilLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, nil)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewNop(t *testing.T) {
	logger := NewNop()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.Error("dropped")
}
