package engine

import (
	"errors"
	"fmt"
)

// ErrUnreconcilable indicates the current remote state cannot be driven
// to the desired state without guessing (e.g. an entry whose kind the
// listing could not classify).
var ErrUnreconcilable = errors.New("entry cannot be reconciled")

// ValidationError reports a malformed desired state. It is raised before
// any CLI call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
