package hdfscli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ExecResult is the raw outcome of one CLI invocation.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes a single argv against the local system. Implementations
// own timeouts and cancellation via the context; a non-zero exit code is
// returned in the ExecResult, not as an error. The error return is reserved
// for transport failures (binary not found, context cancelled).
type Runner interface {
	Run(ctx context.Context, argv []string) (ExecResult, error)
}

// ExecRunner implements Runner by spawning the command with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner that executes commands as subprocesses.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv synchronously and captures stdout and stderr in full.
func (r *ExecRunner) Run(ctx context.Context, argv []string) (ExecResult, error) {
	if len(argv) == 0 {
		return ExecResult{}, fmt.Errorf("empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The process ran to completion with a non-zero status; the
			// caller decides whether that is benign (e.g. "not found").
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", argv[0], err)
	}

	return res, nil
}
