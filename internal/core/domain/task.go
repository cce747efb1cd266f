package domain

import (
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// TaskNode describes a registered task. Invocation state is never stored here.
type TaskNode struct {
	// ID is the stable definition name, used as the cache key.
	ID string
	// PublicName is the name used on the command line. Empty for private tasks.
	PublicName string
	// Description is shown by --list.
	Description string
}

// IsPublic reports whether the task can be requested from the command line.
func (n TaskNode) IsPublic() bool {
	return n.PublicName != ""
}

// Label returns "id (public)" or just the id for private tasks.
func (n TaskNode) Label() string {
	if n.PublicName == "" {
		return n.ID
	}
	return n.ID + " (" + n.PublicName + ")"
}

// ValidateTaskID rejects ids that would corrupt the space-separated cache file.
func ValidateTaskID(id string) error {
	if id == "" || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidTaskName, "task id must be non-empty and contain no whitespace"), "task", id)
	}
	return nil
}

// InvocationState is the lifecycle state of a single task invocation.
type InvocationState string

const (
	// StateFresh indicates the invocation has just started and holds only implicit sources.
	StateFresh InvocationState = "fresh"
	// StateAccumulating indicates at least one source has been declared.
	StateAccumulating InvocationState = "accumulating"
	// StateSkipping indicates the signature matched the cache; actions are no-ops.
	StateSkipping InvocationState = "skipping"
	// StateExecuting indicates the signature differed from the cache; actions run.
	StateExecuting InvocationState = "executing"
	// StateCommitted indicates the body returned and the outcome was recorded.
	StateCommitted InvocationState = "committed"
	// StateAborted indicates a fatal condition ended the invocation.
	StateAborted InvocationState = "aborted"
)

// IsDecided reports whether the skip decision has been made.
func (s InvocationState) IsDecided() bool {
	switch s {
	case StateSkipping, StateExecuting, StateCommitted, StateAborted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the invocation has finished.
func (s InvocationState) IsTerminal() bool {
	return s == StateCommitted || s == StateAborted
}
