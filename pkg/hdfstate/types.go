package hdfstate

import (
	"github.com/apointeau/hdfstate/internal/engine"
	"github.com/apointeau/hdfstate/internal/hdfscli"
)

// Type aliases re-export the core types as the public API. Users import
// "github.com/apointeau/hdfstate/pkg/hdfstate" and use hdfstate.DesiredState,
// hdfstate.Response, etc.

type DesiredState = engine.DesiredState
type State = engine.State
type Operation = engine.Operation
type Response = engine.Response
type ValidationError = engine.ValidationError

type EntryStatus = hdfscli.EntryStatus
type Kind = hdfscli.Kind
type RemoteError = hdfscli.RemoteError
type ParseError = hdfscli.ParseError

// Desired states.
const (
	StateFile      = engine.StateFile
	StateDirectory = engine.StateDirectory
	StateAbsent    = engine.StateAbsent
	StateTouch     = engine.StateTouch
)

// Entry kinds reported by Status.
const (
	KindFile      = hdfscli.KindFile
	KindDirectory = hdfscli.KindDirectory
	KindUnknown   = hdfscli.KindUnknown
)

// ErrUnreconcilable is returned when the current remote state cannot be
// driven to the desired state without guessing.
var ErrUnreconcilable = engine.ErrUnreconcilable
