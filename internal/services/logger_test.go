package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLogger_Structured(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProductionLoggerWithWriter("assistant", &buf)

	logger.Info("Question answered", "session_id", "s1", "error", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "assistant", entry["service"])
	assert.Equal(t, "Question answered", entry["message"])
	fields := entry["fields"].(map[string]interface{})
	assert.Equal(t, "s1", fields["session_id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestProductionLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProductionLoggerWithWriter("svc", &buf)
	logger.SetLevel(LogLevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestProductionLogger_HumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProductionLoggerWithWriter("svc", &buf)
	logger.SetStructured(false)

	logger.Error("failed", "status", 502)
	assert.Contains(t, buf.String(), "ERROR [svc] failed status=502")
}

func TestProductionLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewProductionLoggerWithWriter("base", &buf)
	base.With("http").Info("request")
	assert.Contains(t, buf.String(), `"service":"http"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestNewLoggerWithOptions_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pillai.log")
	logger := NewLoggerWithOptions(LogOptions{Service: "svc", Environment: "production", File: path, MaxSizeMB: 1})
	t.Cleanup(func() { _ = CloseLogFile() })

	logger.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewLoggerWithOptions_Test(t *testing.T) {
	assert.IsType(t, &NoOpLogger{}, NewLoggerWithOptions(LogOptions{Environment: "test"}))
}
