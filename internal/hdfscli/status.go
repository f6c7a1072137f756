package hdfscli

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/apointeau/hdfstate/internal/perm"
)

// Kind classifies a remote entry.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"

	// KindUnknown means the entry exists but its listing could not be
	// classified. Downstream logic must treat it as unreconcilable, never
	// coerce it to a file or directory.
	KindUnknown Kind = "unknown"
)

// EntryStatus is the structured state of one remote entry. Optional fields
// are nil when the listing did not yield them; all of them are nil when
// the entry does not exist.
type EntryStatus struct {
	Exists      bool
	Kind        Kind
	Owner       *string
	Group       *string
	Mode        *perm.Mode
	Replication *int

	// Raw is the listing line the status was parsed from, kept for
	// diagnostics.
	Raw string
}

var notFoundRe = regexp.MustCompile(`(?i)no such file or directory`)

// IsNotFound reports whether the diagnostic text carries the CLI's
// "No such file or directory" signal.
func IsNotFound(stderr string) bool {
	return notFoundRe.MatchString(stderr)
}

// ParseStatus turns the output of a StatusCommand into an EntryStatus.
//
// A non-zero exit with a not-found diagnostic is a legitimate absent
// status, not an error. Any other non-zero exit is a *RemoteError, and
// zero-exit output that cannot be tokenized is a *ParseError.
func ParseStatus(path string, res ExecResult) (EntryStatus, error) {
	if res.ExitCode != 0 {
		if IsNotFound(res.Stderr) || IsNotFound(res.Stdout) {
			return EntryStatus{Exists: false}, nil
		}
		return EntryStatus{}, &RemoteError{
			Op:       "ls",
			Path:     path,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}

	line := entryLine(res.Stdout)
	if line == "" {
		return EntryStatus{}, &ParseError{Path: path, Raw: res.Stdout, Reason: "no listing line in output"}
	}

	// Single-entry listing shape:
	//   perms repl owner group size date time path
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return EntryStatus{}, &ParseError{Path: path, Raw: line, Reason: "expected at least 8 whitespace-delimited fields"}
	}

	status := EntryStatus{Exists: true, Raw: line}

	owner, group := fields[2], fields[3]
	status.Owner = &owner
	status.Group = &group

	if rep, err := strconv.Atoi(fields[1]); err == nil {
		status.Replication = &rep
	}

	kind, mode, ok := parsePermissions(fields[0])
	status.Kind = kind
	if ok {
		status.Mode = &mode
	}
	return status, nil
}

// entryLine picks the single entry line out of the listing output,
// skipping the "Found N items" preamble some Hadoop versions print.
func entryLine(stdout string) string {
	var last string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Found ") {
			continue
		}
		last = line
	}
	return last
}

// parsePermissions maps an ls permission string ("drwxr-xr-x") to a kind
// and mode bits. A trailing '+' (ACL marker) is tolerated. When the
// permission body is unparsable the kind degrades to KindUnknown and ok is
// false; owner and group may still be usable by the caller.
func parsePermissions(s string) (Kind, perm.Mode, bool) {
	s = strings.TrimSuffix(s, "+")
	if len(s) != 10 {
		return KindUnknown, 0, false
	}

	var kind Kind
	switch s[0] {
	case 'd':
		kind = KindDirectory
	case '-':
		kind = KindFile
	default:
		return KindUnknown, 0, false
	}

	var mode perm.Mode
	for i, c := range []byte(s[1:]) {
		shift := uint(8 - i) // bit position within the 9 rwx bits
		switch c {
		case 'r', 'w', 'x':
			mode |= 1 << shift
		case 's':
			mode |= 1 << shift
			mode |= specialBit(i)
		case 'S', 'T':
			mode |= specialBit(i)
		case 't':
			mode |= 1 << shift
			mode |= specialBit(i)
		case '-':
		default:
			return KindUnknown, 0, false
		}
	}
	return kind, mode, true
}

// specialBit returns the setuid/setgid/sticky bit for the triplet that
// position i (within the 9-character permission body) belongs to.
func specialBit(i int) perm.Mode {
	switch i / 3 {
	case 0:
		return perm.Setuid
	case 1:
		return perm.Setgid
	default:
		return perm.Sticky
	}
}
