package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cronwatch/internal/config"
	"cronwatch/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cronwatch.log")
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("check complete", "outcome", "fresh")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"outcome":"fresh"`) {
		t.Fatalf("expected structured attr in log output, got %s", data)
	}
}

func TestNewFromConfigCreatesLogDir(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	cfg := config.Default()
	cfg.Paths.LogDir = logDir
	cfg.Logging.Format = "json"

	if _, err := logging.NewFromConfig(&cfg); err != nil {
		t.Fatalf("new from config: %v", err)
	}
	if _, err := os.Stat(logDir); err != nil {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestNewNopNeverPanics(t *testing.T) {
	logger := logging.NewNop()
	logger.Info("discarded", "key", "value")
	logger.Error("also discarded")
}
