package command

import (
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

// MoveNode records the net displacement of one drag gesture. The live
// position updates during the drag go straight to the graph; this command
// exists so the gesture as a whole is a single history entry.
type MoveNode struct {
	graph  *plan.WallGraph
	nodeID plan.NodeID
	from   geom.Point
	to     geom.Point
}

// NewMoveNode captures the drag from its start to its final position.
func NewMoveNode(g *plan.WallGraph, id plan.NodeID, from, to geom.Point) *MoveNode {
	return &MoveNode{graph: g, nodeID: id, from: from, to: to}
}

func (c *MoveNode) Name() string { return "move-node" }

func (c *MoveNode) Execute() (plan.ChangeSet, error) {
	id, ok := resolveNode(c.graph, c.nodeID, c.from)
	if !ok {
		// The node may already sit at the destination (live drag).
		id, ok = resolveNode(c.graph, c.nodeID, c.to)
	}
	if !ok {
		return plan.ChangeSet{}, &plan.PlanError{Op: "MoveNode", Entity: "node", ID: string(c.nodeID), Cause: plan.ErrNotFound}
	}
	c.nodeID = id
	_ = c.graph.SetNodePosition(id, c.to)
	return plan.ChangeSet{MovedNodes: []plan.NodeID{id}}, nil
}

func (c *MoveNode) Undo() (plan.ChangeSet, error) {
	id, ok := resolveNode(c.graph, c.nodeID, c.to)
	if !ok {
		return plan.ChangeSet{}, replayErr("move-node undo",
			&plan.PlanError{Op: "MoveNode", Entity: "node", ID: string(c.nodeID), Cause: plan.ErrNotFound})
	}
	c.nodeID = id
	_ = c.graph.SetNodePosition(id, c.from)
	return plan.ChangeSet{MovedNodes: []plan.NodeID{id}}, nil
}
