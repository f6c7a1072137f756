package cmd

import (
	"testing"

	"github.com/apointeau/hdfstate/internal/engine"
)

func TestDesiredFromFlagsDefaults(t *testing.T) {
	cmd := applyCmd
	cmd.ResetFlags()
	registerApplyFlags()

	desired, err := desiredFromFlags(cmd, "/tmp/x")
	if err != nil {
		t.Fatal(err)
	}
	if desired.State != engine.StateFile {
		t.Errorf("State = %q, want file", desired.State)
	}
	if desired.Owner != nil || desired.Group != nil || desired.Mode != nil || desired.Replication != nil {
		t.Error("unset flags must map to nil attributes")
	}
}

func TestDesiredFromFlagsSpecified(t *testing.T) {
	cmd := applyCmd
	cmd.ResetFlags()
	registerApplyFlags()

	for flag, value := range map[string]string{
		"state":       "directory",
		"owner":       "alice",
		"mode":        "0750",
		"replication": "3",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatal(err)
		}
	}

	desired, err := desiredFromFlags(cmd, "/tmp/x")
	if err != nil {
		t.Fatal(err)
	}
	if desired.State != engine.StateDirectory {
		t.Errorf("State = %q", desired.State)
	}
	if desired.Owner == nil || *desired.Owner != "alice" {
		t.Errorf("Owner = %v", desired.Owner)
	}
	if desired.Group != nil {
		t.Error("group was not specified")
	}
	if desired.Mode == nil {
		t.Fatal("mode should be set")
	}
	if got := desired.Mode.Apply(0); got != 0o750 {
		t.Errorf("mode resolves to %v, want 0750", got)
	}
	if desired.Replication == nil || *desired.Replication != 3 {
		t.Errorf("Replication = %v", desired.Replication)
	}
}

func TestDesiredFromFlagsBadMode(t *testing.T) {
	cmd := applyCmd
	cmd.ResetFlags()
	registerApplyFlags()

	if err := cmd.Flags().Set("mode", "not-a-mode"); err != nil {
		t.Fatal(err)
	}
	if _, err := desiredFromFlags(cmd, "/tmp/x"); err == nil {
		t.Error("expected error for unparsable mode")
	}
}

func TestOrDash(t *testing.T) {
	if orDash("") != "-" {
		t.Error("empty string should render as dash")
	}
	if orDash("alice") != "alice" {
		t.Error("non-empty string must pass through")
	}
}
