// Package hdfscli builds, executes and parses invocations of the Hadoop
// filesystem command line. It is the only package that knows the shape of
// `hdfs dfs` argv vectors and the text they print; everything downstream
// operates on the structured EntryStatus instead.
package hdfscli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apointeau/hdfstate/internal/perm"
)

// DefaultBin is the hdfs executable used when the config names none.
const DefaultBin = "hdfs"

// Command is a fully built argv plus the execution policy attached to it.
// Building never executes; execution is the Runner's job.
type Command struct {
	// Argv is the complete argument vector, binary included.
	Argv []string

	// Op names the logical operation for diagnostics ("ls", "mkdir", ...).
	Op string

	// TolerateNotFound marks commands for which a non-zero exit paired
	// with a "No such file or directory" diagnostic is a benign signal
	// rather than a failure. Only status queries set it.
	TolerateNotFound bool
}

// Builder constructs hdfs dfs argument vectors. Paths handed to builder
// methods must already have passed ValidatePath.
type Builder struct {
	bin       string
	extraArgs []string
}

// NewBuilder creates a Builder invoking the given hdfs binary. extraArgs
// are inserted between the binary and the dfs subcommand (e.g. a custom
// --config dir).
func NewBuilder(bin string, extraArgs ...string) *Builder {
	if bin == "" {
		bin = DefaultBin
	}
	return &Builder{bin: bin, extraArgs: extraArgs}
}

// ValidatePath checks a remote path for well-formedness: non-empty,
// absolute, free of NUL bytes. It never touches the remote side.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q is not absolute", path)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a NUL byte")
	}
	return nil
}

func (b *Builder) dfs(op string, args ...string) []string {
	argv := make([]string, 0, len(b.extraArgs)+len(args)+3)
	argv = append(argv, b.bin)
	argv = append(argv, b.extraArgs...)
	argv = append(argv, "dfs", "-"+op)
	argv = append(argv, args...)
	return argv
}

// StatusCommand queries a single entry. -d keeps directories from being
// expanded into listings, so the output is always the single-entry form.
func (b *Builder) StatusCommand(path string) Command {
	return Command{
		Argv:             b.dfs("ls", "-d", path),
		Op:               "ls",
		TolerateNotFound: true,
	}
}

// MkdirCommand creates a directory, parents included.
func (b *Builder) MkdirCommand(path string) Command {
	return Command{Argv: b.dfs("mkdir", "-p", path), Op: "mkdir"}
}

// TouchCommand creates an empty file, or refreshes the timestamps of an
// existing zero-or-more-byte file.
func (b *Builder) TouchCommand(path string) Command {
	return Command{Argv: b.dfs("touchz", path), Op: "touchz"}
}

// RemoveCommand deletes an entry. recursive is required for non-empty
// directories; skipTrash bypasses the HDFS trash so the delete is final.
func (b *Builder) RemoveCommand(path string, recursive, skipTrash bool) Command {
	args := make([]string, 0, 3)
	if recursive {
		args = append(args, "-r")
	}
	if skipTrash {
		args = append(args, "-skipTrash")
	}
	args = append(args, path)
	return Command{Argv: b.dfs("rm", args...), Op: "rm"}
}

// ChownCommand sets the owner of an entry, recursively when asked.
func (b *Builder) ChownCommand(path, owner string, recurse bool) Command {
	args := make([]string, 0, 3)
	if recurse {
		args = append(args, "-R")
	}
	args = append(args, owner, path)
	return Command{Argv: b.dfs("chown", args...), Op: "chown"}
}

// ChgrpCommand sets the group of an entry, recursively when asked.
func (b *Builder) ChgrpCommand(path, group string, recurse bool) Command {
	args := make([]string, 0, 3)
	if recurse {
		args = append(args, "-R")
	}
	args = append(args, group, path)
	return Command{Argv: b.dfs("chgrp", args...), Op: "chgrp"}
}

// ChmodCommand sets the permission bits of an entry. The mode is always
// rendered in octal so the remote CLI never has to resolve a relative
// symbolic clause.
func (b *Builder) ChmodCommand(path string, mode perm.Mode, recurse bool) Command {
	args := make([]string, 0, 3)
	if recurse {
		args = append(args, "-R")
	}
	args = append(args, mode.Octal(), path)
	return Command{Argv: b.dfs("chmod", args...), Op: "chmod"}
}

// SetrepCommand sets the replication factor. The CLI applies it
// recursively to directories on its own.
func (b *Builder) SetrepCommand(path string, factor int) Command {
	return Command{Argv: b.dfs("setrep", strconv.Itoa(factor), path), Op: "setrep"}
}

// MoveCommand renames src to dst.
func (b *Builder) MoveCommand(src, dst string) Command {
	return Command{Argv: b.dfs("mv", src, dst), Op: "mv"}
}
