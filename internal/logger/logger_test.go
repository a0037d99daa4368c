package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestVerboseToggle(t *testing.T) {
	defer reset()

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose mode to be enabled")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose mode to be disabled")
	}
}

func TestDebugSilentByDefault(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestVerboseOutput(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("loading %s", "bundle")
	Info("loaded %d records", 3)
	Warn("checksum mismatch")
	Section("Search Execution")

	out := buf.String()
	for _, want := range []string{
		"[DEBUG] loading bundle",
		"[INFO] loaded 3 records",
		"[WARN] checksum mismatch",
		"=== Search Execution ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
