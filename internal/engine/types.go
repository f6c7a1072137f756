package engine

import (
	"fmt"
	"strconv"

	"github.com/apointeau/hdfstate/internal/hdfscli"
	"github.com/apointeau/hdfstate/internal/perm"
)

// State is the desired state of a remote entry.
type State string

const (
	StateFile      State = "file"
	StateDirectory State = "directory"
	StateAbsent    State = "absent"

	// StateTouch converges to "file exists with fresh timestamps". An
	// existing directory is left alone apart from its attributes.
	StateTouch State = "touch"
)

// ValidStates lists the accepted desired states, for flag help and
// validation messages.
var ValidStates = []State{StateFile, StateDirectory, StateAbsent, StateTouch}

// DesiredState declares what one remote path should look like. Nil
// attribute fields mean "leave untouched"; they never participate in the
// diff.
type DesiredState struct {
	Path        string
	State       State
	Owner       *string
	Group       *string
	Mode        *perm.Spec
	Replication *int

	// Recurse applies owner/group/mode changes to a directory's contents
	// via the CLI's -R flag.
	Recurse bool

	// Force allows deleting a non-empty file entry tree when converting or
	// absenting; directory deletes are recursive regardless.
	Force bool
}

// OpKind names a mutating remote operation.
type OpKind string

const (
	OpCreateFile      OpKind = "create-file"
	OpCreateDirectory OpKind = "create-directory"
	OpTouch           OpKind = "touch"
	OpDelete          OpKind = "delete"
	OpSetOwner        OpKind = "set-owner"
	OpSetGroup        OpKind = "set-group"
	OpSetMode         OpKind = "set-mode"
	OpSetReplication  OpKind = "set-replication"
)

// Operation is a single planned mutation. Operations are value objects:
// created by the planner, executed once, and discarded with the result.
type Operation struct {
	Kind OpKind
	Path string

	// Value carriers; only the field matching Kind is meaningful.
	Owner       string
	Group       string
	Mode        perm.Mode
	Replication int

	// Recursive maps to -r on delete and -R on the attribute commands.
	Recursive bool
}

func (o Operation) String() string {
	switch o.Kind {
	case OpSetOwner:
		return fmt.Sprintf("%s %s %s", o.Kind, o.Owner, o.Path)
	case OpSetGroup:
		return fmt.Sprintf("%s %s %s", o.Kind, o.Group, o.Path)
	case OpSetMode:
		return fmt.Sprintf("%s %s %s", o.Kind, o.Mode.Octal(), o.Path)
	case OpSetReplication:
		return fmt.Sprintf("%s %s %s", o.Kind, strconv.Itoa(o.Replication), o.Path)
	case OpDelete:
		if o.Recursive {
			return fmt.Sprintf("%s (recursive) %s", o.Kind, o.Path)
		}
		return fmt.Sprintf("%s %s", o.Kind, o.Path)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Path)
	}
}

// ReconcileResult is the outcome of one reconciliation run.
type ReconcileResult struct {
	// Changed is true iff at least one mutating operation was executed
	// and the whole sequence succeeded.
	Changed bool

	// FinalState is re-queried after the last mutation, never assumed
	// from post-conditions.
	FinalState hdfscli.EntryStatus

	// Applied holds the operations executed so far, in order. On failure
	// it stops before the operation that failed.
	Applied []Operation

	// Planned holds the full plan; in dry-run mode nothing moves from
	// Planned to Applied.
	Planned []Operation

	DryRun bool
}
