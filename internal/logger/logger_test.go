package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("info")
	Debugf("[test] hidden %d", 1)
	assert.Empty(t, buf.String())

	SetLevel("debug")
	Debugf("[test] visible %d", 2)
	assert.Contains(t, buf.String(), "[test] visible 2")
}

func TestSetLevelUnknownFallsBackToInfo(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("chatty")
	Debugf("[test] suppressed")
	Infof("[test] shown")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "shown")
}

func TestFatalfExitsAfterLogging(t *testing.T) {
	buf := captureOutput(t)

	var code int
	osExit = func(c int) { code = c }
	defer func() { osExit = os.Exit }()

	Fatalf("[test] boom: %v", "cause")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "boom: cause")
}
