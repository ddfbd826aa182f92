// Package command wraps every structural plan mutation in a reversible
// unit and manages the undo/redo history. Commands capture the minimum
// pre-mutation state needed to reverse themselves exactly; positions, not
// identifiers, are the stable anchor across replay, because undoing a
// deletion recreates entities under fresh identifiers.
package command

import (
	"fmt"

	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

// Command is one user-visible, reversible mutation. Execute and Undo
// return the change set a renderer needs to catch up. Both must be atomic:
// on error the graph is exactly as it was before the call.
type Command interface {
	Name() string
	Execute() (plan.ChangeSet, error)
	Undo() (plan.ChangeSet, error)
}

// replayErr marks an undo/redo failure. These are unreachable while
// identifiers are never reused; if one fires anyway the manager drops the
// history entry rather than risk corrupting the graph.
func replayErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, plan.ErrReplayFailed, err)
}

// EndpointRef names a wall endpoint either as an existing node or as a
// position where one must be created. A ref re-resolves by exact position
// when its original identifier is gone, which keeps redo working after an
// undo rebuilt the surroundings under fresh identifiers.
type EndpointRef struct {
	node plan.NodeID
	pos  geom.Point
}

// AtNode references an existing node, capturing its position for replay.
func AtNode(g *plan.WallGraph, id plan.NodeID) (EndpointRef, error) {
	n, err := g.Node(id)
	if err != nil {
		return EndpointRef{}, err
	}
	return EndpointRef{node: id, pos: n.Pos}, nil
}

// AtPoint references a node to be created at p, or reused if one already
// sits exactly there.
func AtPoint(p geom.Point) EndpointRef {
	return EndpointRef{pos: p}
}

// Pos returns the position the ref was captured at.
func (r EndpointRef) Pos() geom.Point { return r.pos }

// resolve returns the node for the ref, creating one when needed.
func (r EndpointRef) resolve(g *plan.WallGraph) (id plan.NodeID, created bool) {
	if !r.node.IsZero() {
		if _, err := g.Node(r.node); err == nil {
			return r.node, false
		}
	}
	if n := g.NodeAt(r.pos); n != nil {
		return n.ID, false
	}
	return g.CreateNode(r.pos).ID, true
}

// resolveNode finds a node by identifier, falling back to the captured
// position. Shared by every command that must survive replay.
func resolveNode(g *plan.WallGraph, id plan.NodeID, pos geom.Point) (plan.NodeID, bool) {
	if _, err := g.Node(id); err == nil {
		return id, true
	}
	if n := g.NodeAt(pos); n != nil {
		return n.ID, true
	}
	return "", false
}

// wallRecord captures a wall's reconstruction data relative to one anchor
// node, for commands that tear down and rebuild a node's whole incident
// set (merge, node deletion).
type wallRecord struct {
	props         plan.WallProperties
	otherID       plan.NodeID
	otherPos      geom.Point
	anchorIsStart bool

	// per-execute bookkeeping
	replID       plan.WallID // replacement wall created by a merge
	droppedSelf  bool        // wall joined anchor and merge target; dropped
	otherRemoved bool        // other endpoint removed because it became isolated
}

// captureNodeWalls records every wall incident to anchor, in creation
// order, before any of them is touched.
func captureNodeWalls(g *plan.WallGraph, anchor plan.NodeID) ([]wallRecord, error) {
	walls, err := g.NodeWalls(anchor)
	if err != nil {
		return nil, err
	}
	records := make([]wallRecord, 0, len(walls))
	for _, w := range walls {
		other := w.OtherEnd(anchor)
		on, err := g.Node(other)
		if err != nil {
			return nil, err
		}
		records = append(records, wallRecord{
			props:         w.Props,
			otherID:       other,
			otherPos:      on.Pos,
			anchorIsStart: w.Start == anchor,
		})
	}
	return records, nil
}
