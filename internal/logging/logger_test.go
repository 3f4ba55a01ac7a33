package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected Level
	}{
		{"error", LevelError},
		{" WARN ", LevelWarn},
		{"warning", LevelWarn},
		{"Debug", LevelDebug},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, c := range cases {
		if got := ParseLevel(c.input); got != c.expected {
			t.Errorf("ParseLevel(%q) == %v, want %v", c.input, got, c.expected)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("unexpected low-level output: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("missing output: %s", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("no panic")
}
