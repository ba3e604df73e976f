package log

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for value, expected := range map[string]LogLevel{
		"trace":   TRACE,
		"DEBUG":   DEBUG,
		"info":    INFO,
		"warning": WARN,
		"err":     ERROR,
	} {
		level, err := ParseLevel(value)
		assert.NoError(t, err, value)
		assert.Equal(t, expected, level, value)
	}
	_, err := ParseLevel("loud")
	assert.EqualError(t, err, "loud: invalid log level")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, WARN)
	defer Init(nil, TRACE)

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("shown %d", 3)
	NewLogger("binder").Errorf("shown %s", "too")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "ERROR ")
	assert.Contains(t, out, "[binder] shown too")
	assert.Contains(t, out, "logger_test.go")
	assert.True(t, Enabled(ERROR))
	assert.False(t, Enabled(DEBUG))
}

func TestDiscard(t *testing.T) {
	Init(nil, TRACE)
	Errorf("nowhere")
	assert.False(t, Enabled(ERROR))
}

func TestCrashReport(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	writeCrashReport(&buf, now, "boom", []byte("goroutine 1 [running]:\n"))

	out := buf.String()
	assert.Contains(t, out, "crashed at 2024-03-01T12:00:00Z")
	assert.Contains(t, out, "panic: boom\n\n")
	assert.True(t, strings.HasSuffix(out, "goroutine 1 [running]:\n"))
}
