package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/galton/internal/config"
)

func TestSetupTUILogger(t *testing.T) {
	cfg := config.DefaultConfig().Log
	cfg.Dir = filepath.Join(t.TempDir(), "logs")

	result, err := SetupTUILogger(cfg, slog.LevelDebug)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilePath != filepath.Join(cfg.Dir, "galton-debug.log") {
		t.Errorf("unexpected log path %s", result.FilePath)
	}

	result.Logger.Debug("hello", "units", 100)
	if err := result.LogFile.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", data, err)
	}
	if entry["msg"] != "hello" || entry["units"] != float64(100) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestSetupCLILogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupCLILogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelWarn, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("parseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.err && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
