package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "warn", "sandfall")
	if logger.GetLevel() != log.WarnLevel {
		t.Fatalf("level = %v, want warn", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.Warn("shown", "chunk", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("info message leaked through warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "sandfall") || !strings.Contains(out, "chunk=3") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	if lvl := NewWriter(&buf, "chatty", "").GetLevel(); lvl != log.InfoLevel {
		t.Fatalf("level = %v, want info", lvl)
	}
}
