package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/chris/transaction-backoffice/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

		logger.Debug("hidden")
		logger.Info("transaction enqueued", "transactionId", "TX1")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "transaction enqueued", line["msg"])
		assert.Equal(t, "TX1", line["transactionId"])
	})

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "TEXT"}, &buf)

		logger.Debug("visible")

		assert.Contains(t, buf.String(), "msg=visible")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
