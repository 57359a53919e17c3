// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger captures log output for assertions
type TestLogger struct {
	Buffer *SafeBuffer
	Logger *zerolog.Logger
}

// SafeBuffer is a bytes.Buffer safe for the concurrent writes of background
// goroutines
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *SafeBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// NewTestLogger creates a new test logger that captures output
func NewTestLogger() *TestLogger {
	return NewTestLoggerWithLevel(zerolog.DebugLevel)
}

// NewTestLoggerWithLevel creates a test logger with specified level
func NewTestLoggerWithLevel(level zerolog.Level) *TestLogger {
	buffer := &SafeBuffer{}
	logger := zerolog.New(buffer).Level(level).With().Timestamp().Logger()

	return &TestLogger{
		Buffer: buffer,
		Logger: &logger,
	}
}

// NewSilentTestLogger creates a logger that discards all output
func NewSilentTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard).With().Timestamp().Logger()
	return &logger
}

// NewConsoleTestLogger creates a logger that outputs to console for debugging
func NewConsoleTestLogger() *zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger := zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &logger
}

// GetLogOutput returns the captured log output
func (tl *TestLogger) GetLogOutput() string {
	return tl.Buffer.String()
}

// Reset clears the log buffer
func (tl *TestLogger) Reset() {
	tl.Buffer.Reset()
}

// AssertLogContains asserts that the log buffer contains the specified string
func (tl *TestLogger) AssertLogContains(t *testing.T, message string) {
	t.Helper()
	if !bytes.Contains([]byte(tl.GetLogOutput()), []byte(message)) {
		t.Errorf("Expected log to contain '%s', but got: %s", message, tl.GetLogOutput())
	}
}

// AssertLogNotContains asserts that the log buffer does not contain the specified string
func (tl *TestLogger) AssertLogNotContains(t *testing.T, message string) {
	t.Helper()
	if bytes.Contains([]byte(tl.GetLogOutput()), []byte(message)) {
		t.Errorf("Expected log not to contain '%s', but got: %s", message, tl.GetLogOutput())
	}
}

// AssertLogLevel asserts that a log entry with the specified level exists
func (tl *TestLogger) AssertLogLevel(t *testing.T, level string) {
	t.Helper()
	levelStr := `"level":"` + level + `"`
	if !bytes.Contains([]byte(tl.GetLogOutput()), []byte(levelStr)) {
		t.Errorf("Expected log to contain level '%s', but got: %s", level, tl.GetLogOutput())
	}
}
