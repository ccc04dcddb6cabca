package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesFile(t *testing.T) {
	for _, rotation := range []*RotationConfig{nil, {MaxSizeMB: 1}} {
		path := filepath.Join(t.TempDir(), "pkd.log")
		logger := NewLogger(&LoggerConfig{
			Environment: "development",
			Path:        path,
			Rotation:    rotation,
		})
		logger.Debug("debug entry", "action", "add-key")
		logger.Info("info entry")
		logger.Sync()

		buf, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(buf), "debug entry") ||
			!strings.Contains(string(buf), "info entry") {
			t.Error("Unexpected log content:", string(buf))
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkd.log")
	logger := NewLogger(&LoggerConfig{Environment: "production", Path: path})
	logger.Debug("hidden")
	logger.Warn("shown")
	logger.Sync()

	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(buf), "hidden") || !strings.Contains(string(buf), "shown") {
		t.Error("Unexpected log content:", string(buf))
	}
}

func TestNewLoggerBadEnvironment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expect a panic for an unknown environment")
		}
	}()
	NewLogger(&LoggerConfig{Environment: "staging"})
}
