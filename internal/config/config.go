// Package config loads the optional hdfstate configuration file. Every
// setting has a default, so running without a file is the common case.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tool-level settings. It describes how to reach the
// hdfs CLI, never what state to converge to; desired state always comes
// from the invocation.
type Config struct {
	// Bin is the hdfs executable, looked up on PATH when not absolute.
	Bin string `yaml:"bin"`

	// ExtraArgs are inserted between the binary and the dfs subcommand,
	// e.g. ["--config", "/etc/hadoop/conf"].
	ExtraArgs []string `yaml:"extra_args"`

	// SkipTrash makes deletes bypass the HDFS trash. Defaults to true:
	// reconciliation deletes are meant to be definitive.
	SkipTrash *bool `yaml:"skip_trash"`

	// TimeoutSeconds bounds each CLI invocation. Zero means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	skipTrash := true
	return &Config{
		Bin:       "hdfs",
		SkipTrash: &skipTrash,
	}
}

// Load reads and validates a config file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &cfg, nil
}

// LoadOrDefault loads the file at path, or returns Default() when path is
// empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if cfg.Bin == "" {
		cfg.Bin = "hdfs"
	}
	if cfg.SkipTrash == nil {
		skipTrash := true
		cfg.SkipTrash = &skipTrash
	}
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness. Returns a list of
// validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if strings.TrimSpace(cfg.Bin) == "" {
		errs = append(errs, "bin must not be blank")
	}
	for i, arg := range cfg.ExtraArgs {
		if strings.TrimSpace(arg) == "" {
			errs = append(errs, fmt.Sprintf("extra_args[%d] is blank", i))
		}
	}
	if cfg.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Sprintf("timeout_seconds must not be negative, got %d", cfg.TimeoutSeconds))
	}

	return errs
}
