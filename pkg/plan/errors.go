package plan

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by wall graph operations. Callers match them
// with errors.Is.
var (
	ErrInvalidReference = errors.New("reference to unknown node or wall")
	ErrDegenerateWall   = errors.New("wall would start and end on the same node")
	ErrNodeInUse        = errors.New("node still has incident walls")
	ErrNotFound         = errors.New("no such entity")
	ErrReplayFailed     = errors.New("history replay failed")
)

// PlanError wraps a graph failure with the operation and entity involved.
type PlanError struct {
	Op     string // operation that failed, e.g. "CreateWall"
	Entity string // "node" or "wall"
	ID     string
	Cause  error
}

func (e *PlanError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying sentinel for error chain matching.
func (e *PlanError) Unwrap() error { return e.Cause }

func opErr(op, entity, id string, cause error) error {
	return &PlanError{Op: op, Entity: entity, ID: id, Cause: cause}
}
