package validator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fedi-e2ee/pkd-go/application"
)

func TestSaveLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	logger := &application.LoggerConfig{
		Environment: "production",
		Path:        "pkdvalidate.log",
		Rotation:    &application.RotationConfig{MaxSizeMB: 5, Compress: true},
	}
	conf := NewConfig(file, "toml", logger, 4096, []string{"add-key", "checkpoint"})
	if err := conf.Save(); err != nil {
		t.Fatal(err)
	}

	var loaded Config
	if err := loaded.Load(file, "toml"); err != nil {
		t.Fatal(err)
	}
	if loaded.MaxMessageSize != 4096 || len(loaded.AllowedActions) != 2 {
		t.Error("Unexpected config", loaded)
	}
	if loaded.Logger.Path != filepath.Join(dir, "pkdvalidate.log") {
		t.Error("Expect the log path relative to the config, got", loaded.Logger.Path)
	}
	if loaded.Logger.Rotation == nil || loaded.Logger.Rotation.MaxSizeMB != 5 || !loaded.Logger.Rotation.Compress {
		t.Error("Unexpected rotation config", loaded.Logger.Rotation)
	}
	if loaded.GetPath() != file {
		t.Error("Unexpected path", loaded.GetPath())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown-action.toml": "allowed_actions = [\"add-keys\"]\n[logger]\nenv = \"production\"\n",
		"negative-size.toml":  "max_message_size = -1\n[logger]\nenv = \"production\"\n",
		"no-logger.toml":      "max_message_size = 10\n",
		"unknown-key.toml":    "max_size = 10\n[logger]\nenv = \"production\"\n",
	} {
		file := filepath.Join(dir, name)
		if err := os.WriteFile(file, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		var conf Config
		if err := conf.Load(file, "toml"); err == nil {
			t.Error(name, "Expect an error")
		}
	}
}

func TestLoadConfigReportsFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		file := filepath.Join(dir, name)
		if err := os.WriteFile(file, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		return file
	}

	var conf Config
	err := conf.Load(write("unknown.toml",
		"max_size = 10\n[logger]\nenv = \"production\"\nlevel = \"debug\"\n"), "toml")
	if !errors.Is(err, application.ErrUnknownConfigKey) {
		t.Fatal("Expect", application.ErrUnknownConfigKey, "got", err)
	}
	if !strings.Contains(err.Error(), "max_size") || !strings.Contains(err.Error(), "logger.level") {
		t.Error("Expect every unknown key to be named, got", err)
	}

	err = conf.Load(write("syntax.toml", "[logger]\nenv = \"production\"\nmax_message_size = 10 10\n"), "toml")
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Error("Expect the line of the syntax error, got", err)
	}

	big := "# " + strings.Repeat("x", application.MaxConfigSize) + "\n[logger]\nenv = \"production\"\n"
	if err := conf.Load(write("big.toml", big), "toml"); err == nil {
		t.Error("Expect an oversized config to be rejected")
	}
}
