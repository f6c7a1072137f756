package hdfscli

import (
	"fmt"
	"strings"
)

// RemoteError reports a CLI invocation that exited non-zero for a reason
// other than "no such file or directory".
type RemoteError struct {
	Op       string
	Path     string
	ExitCode int
	Stderr   string
}

func (e *RemoteError) Error() string {
	diag := strings.TrimSpace(e.Stderr)
	if diag == "" {
		diag = "(no diagnostic output)"
	}
	return fmt.Sprintf("hdfs %s %s: exit %d: %s", e.Op, e.Path, e.ExitCode, diag)
}

// ParseError reports CLI output that succeeded but could not be
// structurally understood. It is as severe as a RemoteError: acting on an
// unparsed status risks an incorrect mutation.
type ParseError struct {
	Path   string
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing status of %s: %s (output: %q)", e.Path, e.Reason, strings.TrimSpace(e.Raw))
}
