package hdfstate

import (
	"context"
	"strings"
	"testing"

	"github.com/apointeau/hdfstate/internal/hdfscli"
)

// scriptedRunner returns canned results keyed by the joined argv and
// records every invocation.
type scriptedRunner struct {
	responses map[string]hdfscli.ExecResult
	calls     []string
}

func (s *scriptedRunner) Run(ctx context.Context, argv []string) (hdfscli.ExecResult, error) {
	key := strings.Join(argv, " ")
	s.calls = append(s.calls, key)
	if res, ok := s.responses[key]; ok {
		return res, nil
	}
	return hdfscli.ExecResult{}, nil
}

func newClient(t *testing.T, runner hdfscli.Runner, dryRun bool) *Client {
	t.Helper()
	client, err := New(Options{Runner: runner, DryRun: dryRun})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestApplyReportsChanged(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]hdfscli.ExecResult{
		"hdfs dfs -ls -d /tmp/x": {
			ExitCode: 1,
			Stderr:   "ls: `/tmp/x': No such file or directory\n",
		},
	}}

	resp, err := newClient(t, runner, false).Apply(context.Background(), DesiredState{
		Path:  "/tmp/x",
		State: StateDirectory,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Changed || resp.Failed {
		t.Errorf("resp = %+v", resp)
	}

	found := false
	for _, call := range runner.calls {
		if call == "hdfs dfs -mkdir -p /tmp/x" {
			found = true
		}
	}
	if !found {
		t.Errorf("mkdir not issued: %v", runner.calls)
	}
}

func TestApplyDryRun(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]hdfscli.ExecResult{
		"hdfs dfs -ls -d /tmp/x": {
			ExitCode: 1,
			Stderr:   "ls: `/tmp/x': No such file or directory\n",
		},
	}}

	resp, err := newClient(t, runner, true).Apply(context.Background(), DesiredState{
		Path:  "/tmp/x",
		State: StateFile,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Changed || !resp.DryRun {
		t.Errorf("resp = %+v", resp)
	}
	if len(runner.calls) != 1 {
		t.Errorf("dry-run must only query, got %v", runner.calls)
	}
}

func TestApplyFailureResponse(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]hdfscli.ExecResult{
		"hdfs dfs -ls -d /tmp/x": {
			Stdout: "-rw-r--r--   3 alice staff 10 2026-08-20 14:02 /tmp/x\n",
		},
		"hdfs dfs -chown ghost /tmp/x": {
			ExitCode: 1,
			Stderr:   "chown: no such user\n",
		},
	}}

	owner := "ghost"
	resp, err := newClient(t, runner, false).Apply(context.Background(), DesiredState{
		Path:  "/tmp/x",
		State: StateFile,
		Owner: &owner,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !resp.Failed {
		t.Error("expected failed=true")
	}
	if !strings.Contains(resp.Msg, "no such user") {
		t.Errorf("Msg = %q", resp.Msg)
	}
}

func TestStatusAbsent(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]hdfscli.ExecResult{
		"hdfs dfs -ls -d /gone": {
			ExitCode: 1,
			Stderr:   "ls: `/gone': No such file or directory\n",
		},
	}}

	status, err := newClient(t, runner, false).Status(context.Background(), "/gone")
	if err != nil {
		t.Fatal(err)
	}
	if status.Exists {
		t.Error("expected Exists=false")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Options{ConfigPath: "/nonexistent/hdfstate.yaml"}); err == nil {
		t.Error("expected error for missing config file")
	}
}
