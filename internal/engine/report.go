package engine

import (
	"errors"
	"fmt"

	"github.com/apointeau/hdfstate/internal/hdfscli"
)

// Response is the host-facing outcome of a reconciliation: a flat,
// JSON-marshalable structure that carries the changed/failed signals, a
// human-readable message, and the final observed state. Diagnostics are
// limited to the captured CLI text; no stack traces.
type Response struct {
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed"`
	Msg     string `json:"msg"`
	DryRun  bool   `json:"dry_run,omitempty"`

	Path        string `json:"path"`
	State       string `json:"state"`
	Owner       string `json:"owner,omitempty"`
	Group       string `json:"group,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Replication int    `json:"replication,omitempty"`

	Operations []string `json:"operations,omitempty"`
}

// Report converts a reconciliation outcome into a Response. result may be
// nil when the run failed before any mutation; err may be non-nil next to
// a partial result when a mutation failed mid-sequence.
func Report(path string, result *ReconcileResult, err error) Response {
	resp := Response{Path: path, State: string(hdfscli.KindUnknown)}

	if result != nil {
		resp.Changed = result.Changed
		resp.DryRun = result.DryRun
		fillState(&resp, result.FinalState)
		ops := result.Applied
		if result.DryRun {
			ops = result.Planned
		}
		for _, op := range ops {
			resp.Operations = append(resp.Operations, op.String())
		}
	}

	if err != nil {
		resp.Failed = true
		resp.Changed = false
		resp.Msg = err.Error()
		if result != nil && len(result.Applied) > 0 {
			resp.Msg = fmt.Sprintf("%s (after %d applied operation(s))", resp.Msg, len(result.Applied))
		}
		return resp
	}

	switch {
	case result == nil:
		resp.Msg = "no result"
		resp.Failed = true
	case result.DryRun && len(result.Planned) > 0:
		resp.Msg = fmt.Sprintf("dry-run: would apply %d operation(s)", len(result.Planned))
	case result.DryRun:
		resp.Msg = "dry-run: already converged"
	case len(result.Applied) > 0:
		resp.Msg = fmt.Sprintf("applied %d operation(s)", len(result.Applied))
	default:
		resp.Msg = "already converged"
	}
	return resp
}

// ReportStatus converts a bare status query into a Response.
func ReportStatus(path string, status *hdfscli.EntryStatus, err error) Response {
	resp := Response{Path: path, State: string(hdfscli.KindUnknown)}
	if err != nil {
		resp.Failed = true
		resp.Msg = err.Error()
		return resp
	}
	fillState(&resp, *status)
	resp.Msg = "state: " + resp.State
	return resp
}

func fillState(resp *Response, status hdfscli.EntryStatus) {
	if !status.Exists {
		resp.State = string(StateAbsent)
		return
	}
	resp.State = string(status.Kind)
	if status.Owner != nil {
		resp.Owner = *status.Owner
	}
	if status.Group != nil {
		resp.Group = *status.Group
	}
	if status.Mode != nil {
		resp.Mode = status.Mode.Octal()
	}
	if status.Replication != nil {
		resp.Replication = *status.Replication
	}
}

// IsValidation reports whether err (or anything it wraps) is a
// pre-flight validation failure.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
