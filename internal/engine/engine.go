// Package engine implements idempotent reconciliation of a single remote
// entry's state against a declared desired state. It queries the current
// status through the hdfs CLI, plans the minimal ordered set of mutations,
// executes them fail-fast, and re-queries to report the state that is
// actually on the remote side.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/apointeau/hdfstate/internal/hdfscli"
)

// Reconciler drives one path at a time to its desired state. It holds no
// cache and no cross-invocation state; every run re-queries the remote
// side. Concurrent reconciliation of the same path is the caller's
// problem, not serialized here.
type Reconciler struct {
	runner    hdfscli.Runner
	builder   *hdfscli.Builder
	logger    *slog.Logger
	skipTrash bool
}

// Options configures a single reconciliation run.
type Options struct {
	// DryRun plans and reports but executes nothing mutating. Changed
	// then reflects what would have been done.
	DryRun bool
}

// New creates a Reconciler. The runner is the only way the engine touches
// the outside world, which is what makes the whole decision path testable
// with a scripted fake.
func New(runner hdfscli.Runner, builder *hdfscli.Builder, logger *slog.Logger, skipTrash bool) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reconciler{
		runner:    runner,
		builder:   builder,
		logger:    logger,
		skipTrash: skipTrash,
	}
}

// Reconcile converges the entry at d.Path to d. On a pre-flight or query
// failure the result is nil; on a failure during mutation the returned
// result still carries the operations applied before the failure, so the
// caller can reason about partial progress.
func (r *Reconciler) Reconcile(ctx context.Context, d DesiredState, opts Options) (*ReconcileResult, error) {
	if err := validate(d); err != nil {
		return nil, err
	}

	current, err := r.query(ctx, d.Path)
	if err != nil {
		return nil, fmt.Errorf("querying current state: %w", err)
	}
	r.logger.Debug("queried current state",
		"path", d.Path, "exists", current.Exists, "kind", current.Kind)

	ops, err := plan(d, current)
	if err != nil {
		return nil, err
	}
	r.logger.Info("computed plan", "path", d.Path, "operations", len(ops))

	result := &ReconcileResult{Planned: ops, DryRun: opts.DryRun}

	if opts.DryRun {
		for _, op := range ops {
			r.logger.Info("dry-run: would apply", "operation", op.String())
		}
		result.Changed = len(ops) > 0
		result.FinalState = current
		return result, nil
	}

	for _, op := range ops {
		r.logger.Info("applying", "operation", op.String())
		if err := r.execute(ctx, op); err != nil {
			// Fail fast: later operations may depend on this one having
			// succeeded (e.g. chmod after create).
			return result, fmt.Errorf("applying %s: %w", op, err)
		}
		result.Applied = append(result.Applied, op)
	}

	if len(result.Applied) == 0 {
		result.FinalState = current
		return result, nil
	}

	// Report reality, not assumed post-conditions: a mutation may have
	// silently partially failed.
	final, err := r.query(ctx, d.Path)
	if err != nil {
		return result, fmt.Errorf("verifying final state: %w", err)
	}
	result.FinalState = final
	result.Changed = true
	return result, nil
}

// Status queries the current state of a path without mutating anything.
func (r *Reconciler) Status(ctx context.Context, path string) (*hdfscli.EntryStatus, error) {
	if err := hdfscli.ValidatePath(path); err != nil {
		return nil, &ValidationError{Field: "path", Reason: err.Error()}
	}
	status, err := r.query(ctx, path)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Move renames src to dst. It is exposed for hosts that need a rename
// primitive; the reconciliation planner itself never uses it.
func (r *Reconciler) Move(ctx context.Context, src, dst string) error {
	for field, p := range map[string]string{"source path": src, "destination path": dst} {
		if err := hdfscli.ValidatePath(p); err != nil {
			return &ValidationError{Field: field, Reason: err.Error()}
		}
	}
	return r.run(ctx, r.builder.MoveCommand(src, dst), src)
}

func (r *Reconciler) query(ctx context.Context, path string) (hdfscli.EntryStatus, error) {
	cmd := r.builder.StatusCommand(path)
	res, err := r.runner.Run(ctx, cmd.Argv)
	if err != nil {
		return hdfscli.EntryStatus{}, err
	}
	return hdfscli.ParseStatus(path, res)
}

func (r *Reconciler) execute(ctx context.Context, op Operation) error {
	var cmd hdfscli.Command
	switch op.Kind {
	case OpCreateFile, OpTouch:
		cmd = r.builder.TouchCommand(op.Path)
	case OpCreateDirectory:
		cmd = r.builder.MkdirCommand(op.Path)
	case OpDelete:
		cmd = r.builder.RemoveCommand(op.Path, op.Recursive, r.skipTrash)
	case OpSetOwner:
		cmd = r.builder.ChownCommand(op.Path, op.Owner, op.Recursive)
	case OpSetGroup:
		cmd = r.builder.ChgrpCommand(op.Path, op.Group, op.Recursive)
	case OpSetMode:
		cmd = r.builder.ChmodCommand(op.Path, op.Mode, op.Recursive)
	case OpSetReplication:
		cmd = r.builder.SetrepCommand(op.Path, op.Replication)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
	return r.run(ctx, cmd, op.Path)
}

func (r *Reconciler) run(ctx context.Context, cmd hdfscli.Command, path string) error {
	res, err := r.runner.Run(ctx, cmd.Argv)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &hdfscli.RemoteError{
			Op:       cmd.Op,
			Path:     path,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}
	return nil
}

func validate(d DesiredState) error {
	if err := hdfscli.ValidatePath(d.Path); err != nil {
		return &ValidationError{Field: "path", Reason: err.Error()}
	}

	valid := false
	for _, s := range ValidStates {
		if d.State == s {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Field: "state", Reason: fmt.Sprintf("%q is not one of %v", d.State, ValidStates)}
	}

	if d.Replication != nil && *d.Replication < 1 {
		return &ValidationError{Field: "replication", Reason: fmt.Sprintf("must be at least 1, got %d", *d.Replication)}
	}
	if d.Owner != nil && *d.Owner == "" {
		return &ValidationError{Field: "owner", Reason: "must not be empty"}
	}
	if d.Group != nil && *d.Group == "" {
		return &ValidationError{Field: "group", Reason: "must not be empty"}
	}
	return nil
}
