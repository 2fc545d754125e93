package logging

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "input %q", tt.input)
	}
	assert.True(t, ValidLevel("Warn"))
	assert.False(t, ValidLevel("verbose"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test"}).
		WithComponent("registry").
		WithField("handle", 7)

	logger.Debug("registered")

	assert.Contains(t, buf.String(), "test: registered {component=registry, handle=7}")
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Level: LevelDebug, Output: &buf})
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "k=v")
}

func TestLogger_DeriveWhileReconfiguring(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelError, Output: &buf})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				logger.SetLevel(LevelWarn)
			} else {
				logger.SetLevel(LevelError)
			}
			logger.SetOutput(&buf)
		}
	}()
	for i := 0; i < 200; i++ {
		child := logger.WithComponent("worker")
		child.Debug("never shown")
	}
	wg.Wait()

	logger.SetLevel(LevelDebug)
	logger.WithComponent("after").Debug("shown")

	out := buf.String()
	assert.NotContains(t, out, "never shown")
	assert.Contains(t, out, "shown {component=after}")
}

func TestNop(t *testing.T) {
	logger := Nop()
	assert.False(t, logger.Enabled(LevelError))
	logger.Error("nothing")

	var nilLogger *Logger
	nilLogger.Info("safe on nil")
	assert.False(t, nilLogger.Enabled(LevelError))
}
