package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.LevelInfo, &buf)

	log.Info("packet decoded", "type", "PUBLISH", "bytes", 14)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "packet decoded")
	assert.Contains(t, out, "type=PUBLISH")
	assert.Contains(t, out, "bytes=14")
	assert.Contains(t, out, "INF")
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.LevelInfo, &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WRN")
}

func TestLoggerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(slog.LevelDebug, &buf)

	log.Error("boom", "err", "broken pipe")
	assert.Contains(t, buf.String(), "ERR")
	assert.Contains(t, buf.String(), "err=broken pipe")

	log.Debug("trace line")
	assert.Contains(t, buf.String(), "DBG")
}
