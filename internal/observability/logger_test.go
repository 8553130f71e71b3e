package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glasswing-ui/glasswing/internal/config"
)

// captureOutput redirects stdout for the duration of a test. The
// returned cleanup restores the original stdout.
func captureOutput(t *testing.T) (*bytes.Buffer, func()) {
	t.Helper()
	originalStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	cleanup := func() {
		w.Close()
		<-done
		os.Stdout = originalStdout
	}
	return &buf, cleanup
}

// resetGlobalLogger keeps tests isolated despite the global singleton.
func resetGlobalLogger() {
	once = sync.Once{}
	globalLogger.Store(nil)
}

func TestInitializeLogger(t *testing.T) {
	t.Run("console format produces readable output", func(t *testing.T) {
		resetGlobalLogger()
		buf, cleanup := captureOutput(t)

		cfg := config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "glasswing-test",
		}
		InitializeLogger(cfg)
		GetLogger().Info("console test message")
		Sync()
		cleanup()

		output := buf.String()
		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "console test message")
		assert.Contains(t, output, "glasswing-test.")
	})

	t.Run("json format produces parseable entries", func(t *testing.T) {
		resetGlobalLogger()
		buf, cleanup := captureOutput(t)

		cfg := config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "json-test",
		}
		InitializeLogger(cfg)
		GetLogger().Warn("json test message", zap.String("key", "value"))
		Sync()
		cleanup()

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output should be valid JSON")
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "json-test", entry["logger"])
		assert.Equal(t, "json test message", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})

	t.Run("writes to a log file when configured", func(t *testing.T) {
		resetGlobalLogger()
		logFile := t.TempDir() + "/glasswing-test.log"

		cfg := config.LoggerConfig{
			Level:   "debug",
			Format:  "json",
			LogFile: logFile,
			MaxSize: 1,
		}
		InitializeLogger(cfg)
		GetLogger().Error("this should go to the file")
		Sync()

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "this should go to the file")
	})

	t.Run("second initialization is ignored", func(t *testing.T) {
		resetGlobalLogger()
		buf, cleanup := captureOutput(t)

		InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "first"})
		logger1 := GetLogger()
		InitializeLogger(config.LoggerConfig{Level: "debug", Format: "console", ServiceName: "second"})
		logger2 := GetLogger()

		assert.Equal(t, logger1, logger2)
		logger2.Info("test")
		Sync()
		cleanup()

		assert.True(t, strings.Contains(buf.String(), "first"))
		assert.False(t, strings.Contains(buf.String(), "second"))
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("returns a fallback before initialization", func(t *testing.T) {
		resetGlobalLogger()
		logger := GetLogger()
		require.NotNil(t, logger)
	})

	t.Run("returns the stored logger after initialization", func(t *testing.T) {
		resetGlobalLogger()
		InitializeLogger(config.LoggerConfig{Level: "info", ServiceName: "global-test"})
		assert.Equal(t, globalLogger.Load(), GetLogger())
	})
}
