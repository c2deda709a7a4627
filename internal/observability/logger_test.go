// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/randtype/internal/config"
)

// syncBuffer adapts a bytes.Buffer to zapcore.WriteSyncer.
type syncBuffer struct {
	bytes.Buffer
}

func (s *syncBuffer) Sync() error { return nil }

func TestInitialize(t *testing.T) {
	t.Run("should initialize console logger with colors", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		var buf syncBuffer

		cfg := config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "TestService",
			Colors:      config.ColorConfig{Info: "green"},
		}
		Initialize(cfg, &buf)
		GetLogger().Info("This is a test message.")
		Sync()

		output := buf.String()
		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "This is a test message.")
		assert.Contains(t, output, colorGreen)
		assert.Contains(t, output, colorReset)
		assert.Contains(t, output, "TestService.")
	})

	t.Run("should initialize json logger", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		var buf syncBuffer

		cfg := config.LoggerConfig{Level: "info", Format: "json", ServiceName: "JSONTest"}
		Initialize(cfg, &buf)
		GetLogger().Warn("This is a JSON message.", zap.String("key", "value"))
		Sync()

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
		assert.Equal(t, "WARN", logEntry["level"])
		assert.Equal(t, "JSONTest", logEntry["logger"])
		assert.Equal(t, "This is a JSON message.", logEntry["msg"])
		assert.Equal(t, "value", logEntry["key"])
	})

	t.Run("should drop entries below the level", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, &buf)
		GetLogger().Info("quiet")
		Sync()
		assert.Empty(t, buf.String())
	})

	t.Run("should default to warn on a bad level", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "loud", Format: "json"}, &buf)
		assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
		assert.True(t, GetLogger().Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("should write to a log file if configured", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		logPath := filepath.Join(t.TempDir(), "randtype.log")

		cfg := config.LoggerConfig{Level: "debug", Format: "json", LogFile: logPath, MaxSize: 1}
		Initialize(cfg, zapcore.AddSync(&bytes.Buffer{}))
		GetLogger().Error("This should go to the file.")
		Sync()

		content, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "This should go to the file.")
	})

	t.Run("should only initialize once", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "info", ServiceName: "First"}, &buf)
		logger1 := GetLogger()
		Initialize(config.LoggerConfig{Level: "debug", ServiceName: "Second"}, &buf)
		logger2 := GetLogger()

		assert.Equal(t, logger1, logger2)
		logger2.Info("test")
		Sync()

		assert.True(t, strings.Contains(buf.String(), "First"))
		assert.False(t, strings.Contains(buf.String(), "Second"))
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("should return a no-op logger if not initialized", func(t *testing.T) {
		ResetForTest()
		logger := GetLogger()
		require.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("should return the global logger after initialization", func(t *testing.T) {
		ResetForTest()
		defer ResetForTest()
		Initialize(config.LoggerConfig{Level: "info", ServiceName: "GlobalTest"}, &syncBuffer{})
		assert.Equal(t, globalLogger.Load(), GetLogger())
	})
}
