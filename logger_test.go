package mpjwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	// Create a zap logger that we can observe
	observed, recorded := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(observed))

	logger.Debug("debug message", "kid", "a")
	assert.Equal(t, 0, recorded.Len(), "Debug message should not be recorded at Info level")

	logger.Info("info message", "kid", "a")
	logger.Warn("warn message")
	logger.Error("error message", "code", "token_expired", "duration", time.Second)

	entries := recorded.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "info message", entries[0].Message)
	assert.Equal(t, map[string]any{"kid": "a"}, entries[0].ContextMap())

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Empty(t, entries[1].ContextMap())

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "token_expired", entries[2].ContextMap()["code"])
	assert.Equal(t, time.Second, entries[2].ContextMap()["duration"])
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("debug message", "kid", "a")
	assert.Empty(t, buf.String(), "Debug message should not be written at Info level")

	logger.Error("error message", "code", "invalid_signature", "error", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "error message", entry["message"])
	assert.Equal(t, "invalid_signature", entry["code"])
	assert.Equal(t, "boom", entry["error"])

	buf.Reset()
	logger.Info("info message")
	logger.Warn("warn message", "principal", "jdoe")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, `"principal":"jdoe"`)
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer

	logrusLogger := logrus.New()
	logrusLogger.Out = &buf
	logrusLogger.Formatter = &logrus.JSONFormatter{}
	logrusLogger.Level = logrus.InfoLevel

	logger := NewLogrusLogger(logrusLogger)

	logger.Debug("debug message", "kid", "a")
	assert.Empty(t, buf.String(), "Debug messages should not be logged at Info level")

	logger.Warn("warn message", "code", "key_not_found", "kid", "a")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "warn message", entry["msg"])
	assert.Equal(t, "key_not_found", entry["code"])
	assert.Equal(t, "a", entry["kid"])

	buf.Reset()
	logrusLogger.Level = logrus.DebugLevel

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Error("error message")

	output := buf.String()
	assert.Contains(t, output, "debug message", "Debug messages should be logged at Debug level")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "error message")
}

func TestFields(t *testing.T) {
	testCases := []struct {
		name     string
		args     []any
		expected map[string]any
	}{
		{
			name:     "pairs",
			args:     []any{"a", 1, "b", "two"},
			expected: map[string]any{"a": 1, "b": "two"},
		},
		{
			name:     "dangling key",
			args:     []any{"a", 1, "b"},
			expected: map[string]any{"a": 1, "!BADKEY": "b"},
		},
		{
			name:     "non-string key",
			args:     []any{42, "answer"},
			expected: map[string]any{"42": "answer"},
		},
		{
			name:     "empty",
			expected: map[string]any{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, fields(testCase.args))
		})
	}
}
