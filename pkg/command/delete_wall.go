package command

import (
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

// DeleteWall removes a wall, and any endpoint it leaves without walls.
// The graph itself never cascades node removal; deleting orphaned corners
// is this command's policy, captured here so undo can rebuild them.
type DeleteWall struct {
	graph  *plan.WallGraph
	wallID plan.WallID

	props    plan.WallProperties
	startID  plan.NodeID
	endID    plan.NodeID
	startPos geom.Point
	endPos   geom.Point

	removedStart bool
	removedEnd   bool
}

// NewDeleteWall captures the wall's full reconstruction data up front.
func NewDeleteWall(g *plan.WallGraph, id plan.WallID) (*DeleteWall, error) {
	w, err := g.Wall(id)
	if err != nil {
		return nil, err
	}
	a, b := g.WallEndpoints(w)
	return &DeleteWall{
		graph:    g,
		wallID:   id,
		props:    w.Props,
		startID:  w.Start,
		endID:    w.End,
		startPos: a,
		endPos:   b,
	}, nil
}

func (c *DeleteWall) Name() string { return "delete-wall" }

// resolveWall finds the wall by identifier, falling back to the wall
// joining the nodes at the captured endpoint positions.
func (c *DeleteWall) resolveWall() (*plan.Wall, error) {
	if w, err := c.graph.Wall(c.wallID); err == nil {
		return w, nil
	}
	sn := c.graph.NodeAt(c.startPos)
	en := c.graph.NodeAt(c.endPos)
	if sn != nil && en != nil {
		if w := c.graph.WallBetween(sn.ID, en.ID); w != nil {
			return w, nil
		}
	}
	return nil, &plan.PlanError{Op: "DeleteWall", Entity: "wall", ID: string(c.wallID), Cause: plan.ErrNotFound}
}

func (c *DeleteWall) Execute() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	w, err := c.resolveWall()
	if err != nil {
		return cs, err
	}
	c.wallID, c.startID, c.endID = w.ID, w.Start, w.End

	_ = c.graph.RemoveWall(w.ID)
	cs.RemovedWalls = append(cs.RemovedWalls, w.ID)

	c.removedStart = c.removeIfIsolated(c.startID, &cs)
	c.removedEnd = c.removeIfIsolated(c.endID, &cs)
	return cs, nil
}

func (c *DeleteWall) removeIfIsolated(id plan.NodeID, cs *plan.ChangeSet) bool {
	n, err := c.graph.Node(id)
	if err != nil || n.Degree() > 0 {
		return false
	}
	_ = c.graph.RemoveNode(id)
	cs.RemovedNodes = append(cs.RemovedNodes, id)
	return true
}

// Undo recreates the isolated endpoint(s) first, then the wall.
func (c *DeleteWall) Undo() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	startID, err := c.restoreEndpoint(c.startID, c.startPos, c.removedStart, &cs)
	if err != nil {
		return cs, err
	}
	endID, err := c.restoreEndpoint(c.endID, c.endPos, c.removedEnd, &cs)
	if err != nil {
		return cs, err
	}

	w, err := c.graph.CreateWall(startID, endID, c.props)
	if err != nil {
		return cs, replayErr("delete-wall undo", err)
	}
	c.wallID, c.startID, c.endID = w.ID, startID, endID
	cs.AddedWalls = append(cs.AddedWalls, w.ID)
	return cs, nil
}

func (c *DeleteWall) restoreEndpoint(id plan.NodeID, pos geom.Point, removed bool, cs *plan.ChangeSet) (plan.NodeID, error) {
	if removed {
		n := c.graph.CreateNode(pos)
		cs.AddedNodes = append(cs.AddedNodes, n.ID)
		return n.ID, nil
	}
	resolved, ok := resolveNode(c.graph, id, pos)
	if !ok {
		return "", replayErr("delete-wall undo",
			&plan.PlanError{Op: "DeleteWall", Entity: "node", ID: string(id), Cause: plan.ErrNotFound})
	}
	return resolved, nil
}
