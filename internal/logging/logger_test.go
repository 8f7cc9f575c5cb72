package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestHandler_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, slog.LevelInfo, FormatText))

	log.Info("iteration failed", "error", errors.New("boom"), "iteration", 3)
	out := buf.String()
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
	assert.Contains(t, out, "iteration=3")
}

func TestHandler_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, slog.LevelWarn, "JSON"))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("stagnating", "best", 12.5)
	assert.Contains(t, buf.String(), `"best":12.5`)
	assert.Contains(t, buf.String(), `"msg":"stagnating"`)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { NewNop().Error("dropped", "error", errors.New("x")) })
}
