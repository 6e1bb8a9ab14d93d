package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Level != "INFO" {
		t.Errorf("expected default level INFO, got %q", config.Level)
	}
	if !config.ConsoleEnabled {
		t.Error("expected console logging enabled by default")
	}
	if config.FileEnabled {
		t.Error("expected file logging disabled by default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	if config.Level != "INFO" {
		t.Errorf("expected fallback to defaults, got level %q", config.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	doc := `logging:
  level: DEBUG
  console_enabled: true
  console_format: json
  file_enabled: true
  file_path: logs/test.log
  file_max_size_mb: 25
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config.Level != "DEBUG" {
		t.Errorf("expected level DEBUG, got %q", config.Level)
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("expected console format json, got %q", config.ConsoleFormat)
	}
	if !config.FileEnabled {
		t.Error("expected file logging enabled")
	}
	if config.FilePath != "logs/test.log" {
		t.Errorf("expected file path logs/test.log, got %q", config.FilePath)
	}
	if config.FileMaxSizeMB != 25 {
		t.Errorf("expected max size 25, got %d", config.FileMaxSizeMB)
	}
	if config.FileMaxBackups != 5 {
		t.Errorf("expected default max backups 5, got %d", config.FileMaxBackups)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_FILE_PATH", "/tmp/override.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config.Level != "ERROR" {
		t.Errorf("expected env override level ERROR, got %q", config.Level)
	}
	if config.FilePath != "/tmp/override.log" {
		t.Errorf("expected env override file path, got %q", config.FilePath)
	}
}

func TestInitialize(t *testing.T) {
	config := DefaultConfig()
	if err := Initialize(config); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	// Package-level helpers must not panic after initialization.
	Debug("debug message", "key", "value")
	Info("info message")
	Warning("warning message")
	Error("error message")
}
