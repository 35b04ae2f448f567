package helpers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("keeper", "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("keeper", "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("keeper", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("keeper", "production", "loud").GetLevel())
}

func TestLogErrorWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("keeper", "production", "")
	logger.SetOutput(&buf)

	LogError(logger, "request failed", errors.New("boom"), logrus.Fields{"route": "/api/posts"})

	line := buf.String()
	require.NotEmpty(t, line)
	assert.Equal(t, "request failed", gjson.Get(line, "msg").String())
	assert.Equal(t, "boom", gjson.Get(line, "error").String())
	assert.Equal(t, "/api/posts", gjson.Get(line, "route").String())
	assert.Equal(t, "error", gjson.Get(line, "level").String())
}
