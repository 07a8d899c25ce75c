package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_SilentByDefault(t *testing.T) {
	buf := withBuffer(t)
	SetVerbose(false)

	Debug("should not appear")
	assert.Empty(t, buf.String())
}

func TestDebug_VerboseEnabled(t *testing.T) {
	buf := withBuffer(t)
	SetVerbose(true)

	Debug("built query with %d spans", 3)
	assert.Contains(t, buf.String(), "[DEBUG] built query with 3 spans")
}

func TestSectionInfoWarn(t *testing.T) {
	buf := withBuffer(t)
	SetVerbose(true)

	Section("Reconcile")
	Info("resolved %d references", 2)
	Warn("no spans of type %q", "LocationMention")

	out := buf.String()
	assert.Contains(t, out, "=== Reconcile ===")
	assert.Contains(t, out, "[INFO] resolved 2 references")
	assert.Contains(t, out, `[WARN] no spans of type "LocationMention"`)
}
