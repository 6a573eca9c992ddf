package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restore() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebug_Disabled(t *testing.T) {
	t.Cleanup(restore)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestDebug_Enabled(t *testing.T) {
	t.Cleanup(restore)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("value %d", 42)
	assert.Equal(t, "[DEBUG] value 42\n", buf.String())
}

func TestSection(t *testing.T) {
	t.Cleanup(restore)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Training")
	assert.Contains(t, buf.String(), "=== Training ===")
}

func TestIsVerbose(t *testing.T) {
	t.Cleanup(restore)

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
