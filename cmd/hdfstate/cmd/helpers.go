package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/apointeau/hdfstate/internal/config"
	"github.com/apointeau/hdfstate/internal/engine"
	"github.com/apointeau/hdfstate/internal/hdfscli"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errColor     = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// loadConfig reads the config file, or falls back to defaults when no
// --config was given.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newReconciler wires the transport, command builder and logger for one
// invocation.
func newReconciler(cfg *config.Config) *engine.Reconciler {
	builder := hdfscli.NewBuilder(cfg.Bin, cfg.ExtraArgs...)
	return engine.New(hdfscli.NewExecRunner(), builder, newLogger(), *cfg.SkipTrash)
}

// newLogger builds the slog logger for the engine: chatty with --verbose,
// warnings-and-up otherwise, errors only with --quiet.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runContext derives the per-invocation context, honoring the configured
// timeout. The returned cancel must always be called.
func runContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.TimeoutSeconds > 0 {
		return context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	}
	return context.WithCancel(context.Background())
}

// printResponse renders the host-facing result, as JSON when --json is
// set and as colored human output otherwise.
func printResponse(resp engine.Response) error {
	if jsonOutput {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	switch {
	case resp.Failed:
		_, _ = errColor.Fprintf(os.Stderr, "✗ %s\n", resp.Msg)
	case resp.DryRun:
		_, _ = warnColor.Printf("~ %s: %s\n", resp.Path, resp.Msg)
	case resp.Changed:
		_, _ = successColor.Printf("✓ %s: %s\n", resp.Path, resp.Msg)
	default:
		info("%s: %s", resp.Path, resp.Msg)
	}

	for _, op := range resp.Operations {
		detail("%s", op)
	}
	if resp.State != "" && !resp.Failed {
		detail("state: %s owner: %s group: %s mode: %s", resp.State, orDash(resp.Owner), orDash(resp.Group), orDash(resp.Mode))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		_, _ = dimColor.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
