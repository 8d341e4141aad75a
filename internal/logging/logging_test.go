package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelDebug)
	logger.Debug("mount failed", "error", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "err=boom") {
		t.Fatalf("expected err key in %q", out)
	}
	if strings.Contains(out, "error=") {
		t.Fatalf("error key should be rewritten, got %q", out)
	}
}

func TestNewWriter_FiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelWarn)
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" debug ")
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("unexpected level %v (err=%v)", level, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
