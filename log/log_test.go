package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	defer ProgramLevel.Set(ProgramLevel.Level())
	ProgramLevel.Set(slog.LevelInfo)

	var buf bytes.Buffer
	logger := New(&buf, "modal")
	logger.Debug("hidden")
	logger.Info("opened", "entities", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "id=modal")
	assert.Contains(t, out, "msg=opened")
	assert.Contains(t, out, "entities=2")

	buf.Reset()
	ProgramLevel.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Component(New(&buf, ""), "js").Warn("careful")
	assert.Contains(t, buf.String(), "id=js")

	assert.NotPanics(t, func() { Component(nil, "x").Error("dropped") })
}

func TestSetLevel(t *testing.T) {
	defer ProgramLevel.Set(ProgramLevel.Level())

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, slog.LevelWarn, ProgramLevel.Level())
	require.NoError(t, SetLevel("DEBUG"))
	assert.Equal(t, slog.LevelDebug, ProgramLevel.Level())
	assert.Error(t, SetLevel("loud"))
}
