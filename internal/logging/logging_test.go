package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger, err := NewLogger("chatty")

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("level is case insensitive", func(t *testing.T) {
		logger, err := NewLogger(" DEBUG ")

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("writes JSON lines with ts, level and msg keys", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "log.json")
		logger, err := newConfig("info", []string{path}).Build()
		require.NoError(t, err)

		// Act
		logger.Info("cdr rated", zap.String("session_id", "s-1"))
		require.NoError(t, logger.Sync())

		// Assert
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var line map[string]any
		require.NoError(t, json.Unmarshal(data, &line))
		assert.Equal(t, "info", line["level"])
		assert.Equal(t, "cdr rated", line["msg"])
		assert.Equal(t, "s-1", line["session_id"])
		assert.Contains(t, line, "ts")
	})
}
