package codec

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	logger.Debug("ignored", "k", 1)
	logger.Info("ignored")
	logger.Warn("ignored")
	logger.Error("ignored")
	assert.Equal(t, NopLogger{}, logger.With("k", "v"))
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogAdapter(slog.New(handler)).With("component", "codec")

	logger.Debug("decoded document", "nodes", 3)
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "component=codec")
	assert.Contains(t, out, "nodes=3")
}

func TestParser_LogsDecode(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	_, err := ParseWithOptions(
		WithBytes([]byte(`{"a": [1, 2]}`)),
		WithLogger(NewSlogAdapter(slog.New(handler))),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "decoded document")
	assert.Contains(t, buf.String(), "format=json")
	assert.Contains(t, buf.String(), "nodes=4")
}
