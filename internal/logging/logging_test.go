package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)
	l.now = fixedClock

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages leaked: %q", out)
	}
	want := "12:00:00.000 [WARN] shown 3\n12:00:00.000 [ERROR] shown 4\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)
	l.now = fixedClock

	l.Named("session").Named("input").Info("latitude %s", "39 54 26 N")

	want := "12:00:00.000 [INFO] session.input: latitude 39 54 26 N\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoggerNoStylingForBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.Error("boom")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal output should not contain ANSI escapes: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	// Must not panic and must not write anywhere
	l.Error("nothing")
	l.Named("x").Debug("nothing")
}

func TestLoggerToFileViaBubbleTea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	l := New(LevelInfo)
	l.now = fixedClock

	f, err := tea.LogToFileWith(path, "ls-sunpos", l)
	if err != nil {
		t.Fatalf("LogToFileWith: %v", err)
	}
	l.Named("session").Info("observer set")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "ls-sunpos 12:00:00.000 [INFO] session: observer set\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}
