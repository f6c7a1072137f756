// Package hdfstate provides the public Go library API for hdfstate.
//
// hdfstate asserts the state of a single HDFS path (existence, kind,
// owner, group, permission mode, replication) through the hdfs command
// line. This package exposes a Client for embedding the reconciler in
// other Go programs.
//
// # Basic Usage
//
//	client, err := hdfstate.New(hdfstate.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	owner := "alice"
//	resp, err := client.Apply(ctx, hdfstate.DesiredState{
//	    Path:  "/data/reports",
//	    State: hdfstate.StateDirectory,
//	    Owner: &owner,
//	})
//	if err == nil && resp.Changed {
//	    // the directory was created or adjusted
//	}
package hdfstate

import (
	"context"
	"log/slog"

	"github.com/apointeau/hdfstate/internal/config"
	"github.com/apointeau/hdfstate/internal/engine"
	"github.com/apointeau/hdfstate/internal/hdfscli"
)

// Options configures an hdfstate Client.
type Options struct {
	// ConfigPath points at an optional YAML config file. Empty means
	// built-in defaults (hdfs binary on PATH, trash skipped on delete).
	ConfigPath string

	// Runner overrides the transport used to execute CLI invocations.
	// Nil means spawning real subprocesses. Tests inject fakes here.
	Runner hdfscli.Runner

	// Logger receives structured progress events. Nil discards them.
	Logger *slog.Logger

	// DryRun plans every Apply without mutating anything.
	DryRun bool
}

// Applier converges a single path to a desired state.
type Applier interface {
	Apply(ctx context.Context, desired DesiredState) (*Response, error)
}

// StatusReader queries the current state of a path without mutating it.
type StatusReader interface {
	Status(ctx context.Context, path string) (*EntryStatus, error)
}

// Client is the main entry point for the hdfstate library. It implements
// Applier and StatusReader. A Client holds no cross-call state; every
// call re-queries the remote side.
type Client struct {
	reconciler *engine.Reconciler
	dryRun     bool
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	runner := opts.Runner
	if runner == nil {
		runner = hdfscli.NewExecRunner()
	}

	builder := hdfscli.NewBuilder(cfg.Bin, cfg.ExtraArgs...)
	return &Client{
		reconciler: engine.New(runner, builder, opts.Logger, *cfg.SkipTrash),
		dryRun:     opts.DryRun,
	}, nil
}

// Apply converges desired.Path to the desired state and reports the
// outcome. The returned Response is always usable, even on failure: it
// carries the failed flag, the diagnostic message, and any operations
// applied before the failure. The error return mirrors Response.Failed
// for callers that prefer error-style control flow.
func (c *Client) Apply(ctx context.Context, desired DesiredState) (*Response, error) {
	result, err := c.reconciler.Reconcile(ctx, desired, engine.Options{DryRun: c.dryRun})
	resp := engine.Report(desired.Path, result, err)
	return &resp, err
}

// Status queries the current state of path. A missing path yields a
// status with Exists=false, not an error.
func (c *Client) Status(ctx context.Context, path string) (*EntryStatus, error) {
	return c.reconciler.Status(ctx, path)
}

// Move renames src to dst. It fails if dst already exists.
func (c *Client) Move(ctx context.Context, src, dst string) error {
	return c.reconciler.Move(ctx, src, dst)
}
