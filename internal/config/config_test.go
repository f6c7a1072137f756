package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hdfstate.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Bin != "hdfs" {
		t.Errorf("Bin = %q, want hdfs", cfg.Bin)
	}
	if cfg.SkipTrash == nil || !*cfg.SkipTrash {
		t.Error("SkipTrash must default to true")
	}
	if cfg.TimeoutSeconds != 0 {
		t.Errorf("TimeoutSeconds = %d, want 0", cfg.TimeoutSeconds)
	}
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
bin: /opt/hadoop/bin/hdfs
extra_args: ["--config", "/etc/hadoop/conf"]
skip_trash: false
timeout_seconds: 120
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bin != "/opt/hadoop/bin/hdfs" {
		t.Errorf("Bin = %q", cfg.Bin)
	}
	if len(cfg.ExtraArgs) != 2 || cfg.ExtraArgs[0] != "--config" {
		t.Errorf("ExtraArgs = %v", cfg.ExtraArgs)
	}
	if cfg.SkipTrash == nil || *cfg.SkipTrash {
		t.Error("SkipTrash should be false")
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `timeout_seconds: 30`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bin != "hdfs" {
		t.Errorf("Bin = %q, want default hdfs", cfg.Bin)
	}
	if cfg.SkipTrash == nil || !*cfg.SkipTrash {
		t.Error("SkipTrash must default to true")
	}
}

func TestLoadValidation(t *testing.T) {
	path := writeConfig(t, `
bin: "  "
extra_args: ["", "--config"]
timeout_seconds: -5
`)

	_, err := Load(path)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(vErr.Errors) != 3 {
		t.Errorf("got %d validation errors, want 3: %v", len(vErr.Errors), vErr.Errors)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bin != "hdfs" {
		t.Errorf("Bin = %q, want hdfs", cfg.Bin)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "bin: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
