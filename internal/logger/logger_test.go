package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	resetLogger(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(false)

	Debug("test message")
	Info("info")
	Warn("warn")
	Section("hidden")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Section("Annotate")

	assert.Equal(t, "\n=== Annotate ===\n", buf.String())
}

func TestInfo(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Info("info message %d", 42)

	assert.Equal(t, "[INFO] info message 42\n", buf.String())
}

func TestWarn(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Warn("text truncated to %d tokens", 10)

	assert.Equal(t, "[WARN] text truncated to 10 tokens\n", buf.String())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(false)

	Error("slide %s failed", "s1")

	assert.Equal(t, "[ERROR] slide s1 failed\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	resetLogger(t)
	SetOutput(io.Discard)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
