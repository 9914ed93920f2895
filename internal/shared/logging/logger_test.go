package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"err":     slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})
	logger.Debug("hidden")
	logger.Info("status applied", slog.String("source", "stream"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"source":"stream"`) {
		t.Fatalf("expected json attrs, got %s", out)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Config{Level: "debug", Format: "console"}).Info("viewer attached")
	if !strings.Contains(buf.String(), "viewer attached") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}
