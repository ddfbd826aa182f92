package command

import (
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

// DeleteNode removes a node together with every wall attached to it.
// Other endpoints that end up with no walls are removed as well, same
// policy as DeleteWall.
type DeleteNode struct {
	graph  *plan.WallGraph
	nodeID plan.NodeID
	pos    geom.Point

	walls []wallRecord
}

// NewDeleteNode captures the node's position for replay resolution.
func NewDeleteNode(g *plan.WallGraph, id plan.NodeID) (*DeleteNode, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	return &DeleteNode{graph: g, nodeID: id, pos: n.Pos}, nil
}

func (c *DeleteNode) Name() string { return "delete-node" }

func (c *DeleteNode) Execute() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	id, ok := resolveNode(c.graph, c.nodeID, c.pos)
	if !ok {
		return cs, &plan.PlanError{Op: "DeleteNode", Entity: "node", ID: string(c.nodeID), Cause: plan.ErrNotFound}
	}
	c.nodeID = id

	records, err := captureNodeWalls(c.graph, id)
	if err != nil {
		return cs, err
	}

	incident, _ := c.graph.NodeWalls(id)
	for _, w := range incident {
		_ = c.graph.RemoveWall(w.ID)
		cs.RemovedWalls = append(cs.RemovedWalls, w.ID)
	}
	for i := range records {
		on, err := c.graph.Node(records[i].otherID)
		if err != nil || on.Degree() > 0 {
			continue
		}
		_ = c.graph.RemoveNode(records[i].otherID)
		records[i].otherRemoved = true
		cs.RemovedNodes = append(cs.RemovedNodes, records[i].otherID)
	}
	c.walls = records

	_ = c.graph.RemoveNode(id)
	cs.RemovedNodes = append(cs.RemovedNodes, id)
	return cs, nil
}

// Undo recreates the node, then each removed endpoint and wall in the
// original creation order.
func (c *DeleteNode) Undo() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	n := c.graph.CreateNode(c.pos)
	c.nodeID = n.ID
	cs.AddedNodes = append(cs.AddedNodes, n.ID)

	for _, rec := range c.walls {
		var otherID plan.NodeID
		if rec.otherRemoved {
			// Parallel walls can share the endpoint; reuse it once rebuilt.
			if on := c.graph.NodeAt(rec.otherPos); on != nil {
				otherID = on.ID
			} else {
				on := c.graph.CreateNode(rec.otherPos)
				otherID = on.ID
				cs.AddedNodes = append(cs.AddedNodes, on.ID)
			}
		} else {
			id, ok := resolveNode(c.graph, rec.otherID, rec.otherPos)
			if !ok {
				return cs, replayErr("delete-node undo",
					&plan.PlanError{Op: "DeleteNode", Entity: "node", ID: string(rec.otherID), Cause: plan.ErrNotFound})
			}
			otherID = id
		}

		start, end := n.ID, otherID
		if !rec.anchorIsStart {
			start, end = otherID, n.ID
		}
		w, err := c.graph.CreateWall(start, end, rec.props)
		if err != nil {
			return cs, replayErr("delete-node undo", err)
		}
		cs.AddedWalls = append(cs.AddedWalls, w.ID)
	}
	return cs, nil
}
