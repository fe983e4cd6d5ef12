package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	t.Setenv("ICONSMITH_LOG_LEVEL", "")
	assert.Equal(t, "warn", GetLogLevel("warn"))
	assert.Equal(t, "info", GetLogLevel("info"))

	t.Setenv("ICONSMITH_LOG_LEVEL", "debug")
	assert.Equal(t, "debug", GetLogLevel("warn"))
}

func TestNewLoggerPrefixesHumanOutput(t *testing.T) {
	t.Setenv("ICONSMITH_JSON_LOG", "")

	var buf bytes.Buffer
	logger := NewLogger("test", "info", &buf)
	logger.Info("hello")

	assert.True(t, strings.HasPrefix(buf.String(), "🎨 "), "got %q", buf.String())
	assert.Contains(t, buf.String(), "hello")
}

func TestNewLoggerLevelFallsBackToWarn(t *testing.T) {
	t.Setenv("ICONSMITH_LOG_LEVEL", "")
	t.Setenv("ICONSMITH_JSON_LOG", "")

	var buf bytes.Buffer
	logger := NewLogger("test", "", &buf)

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}
