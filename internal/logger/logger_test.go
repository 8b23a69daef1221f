package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseToggle(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebugRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("visible %d", 2)
	Info("info")
	Warn("warn")
	Section("extract")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] visible 2")
	assert.Contains(t, out, "[INFO] info")
	assert.Contains(t, out, "[WARN] warn")
	assert.Contains(t, out, "=== extract ===")
}
