package command

import (
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

// SplitWall inserts a node into a wall, replacing it with two walls that
// inherit its properties. The original wall's full data is captured before
// the split so undo can rebuild it between the original endpoints.
type SplitWall struct {
	graph  *plan.WallGraph
	wallID plan.WallID
	at     geom.Point

	props    plan.WallProperties
	startID  plan.NodeID
	endID    plan.NodeID
	startPos geom.Point
	endPos   geom.Point

	nodeID  plan.NodeID
	wallAID plan.WallID
	wallBID plan.WallID
}

// NewSplitWall captures the wall to be split and the split position.
func NewSplitWall(g *plan.WallGraph, id plan.WallID, at geom.Point) (*SplitWall, error) {
	w, err := g.Wall(id)
	if err != nil {
		return nil, err
	}
	a, b := g.WallEndpoints(w)
	return &SplitWall{
		graph:    g,
		wallID:   id,
		at:       at,
		props:    w.Props,
		startID:  w.Start,
		endID:    w.End,
		startPos: a,
		endPos:   b,
	}, nil
}

func (c *SplitWall) Name() string { return "split-wall" }

func (c *SplitWall) resolveWall() (*plan.Wall, error) {
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
	return nil, &plan.PlanError{Op: "SplitWall", Entity: "wall", ID: string(c.wallID), Cause: plan.ErrNotFound}
}

func (c *SplitWall) Execute() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	w, err := c.resolveWall()
	if err != nil {
		return cs, err
	}
	c.wallID, c.startID, c.endID = w.ID, w.Start, w.End

	res, err := c.graph.SplitWall(w.ID, c.at)
	if err != nil {
		return cs, err
	}
	c.nodeID = res.Node.ID
	c.wallAID = res.WallA.ID
	c.wallBID = res.WallB.ID

	cs.RemovedWalls = append(cs.RemovedWalls, w.ID)
	cs.AddedNodes = append(cs.AddedNodes, res.Node.ID)
	cs.AddedWalls = append(cs.AddedWalls, res.WallA.ID, res.WallB.ID)
	return cs, nil
}

// resolveHalf finds one half of the split by identifier, falling back to
// the wall joining the nodes at the half's endpoint positions. The halves
// can carry stale identifiers when a later command deleted and recreated
// one of them.
func (c *SplitWall) resolveHalf(id plan.WallID, aPos, bPos geom.Point) (plan.WallID, error) {
	if _, err := c.graph.Wall(id); err == nil {
		return id, nil
	}
	an := c.graph.NodeAt(aPos)
	bn := c.graph.NodeAt(bPos)
	if an != nil && bn != nil {
		if w := c.graph.WallBetween(an.ID, bn.ID); w != nil {
			return w.ID, nil
		}
	}
	return "", &plan.PlanError{Op: "SplitWall", Entity: "wall", ID: string(id), Cause: plan.ErrNotFound}
}

// Undo removes the two halves and the inserted node, then recreates the
// original wall between the original endpoints.
func (c *SplitWall) Undo() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	halves := []struct {
		id         plan.WallID
		aPos, bPos geom.Point
	}{
		{c.wallAID, c.startPos, c.at},
		{c.wallBID, c.at, c.endPos},
	}
	for _, h := range halves {
		wid, err := c.resolveHalf(h.id, h.aPos, h.bPos)
		if err != nil {
			return cs, replayErr("split-wall undo", err)
		}
		if err := c.graph.RemoveWall(wid); err != nil {
			return cs, replayErr("split-wall undo", err)
		}
		cs.RemovedWalls = append(cs.RemovedWalls, wid)
	}

	nodeID := c.nodeID
	if _, err := c.graph.Node(nodeID); err != nil {
		if n := c.graph.NodeAt(c.at); n != nil {
			nodeID = n.ID
		}
	}
	if err := c.graph.RemoveNode(nodeID); err != nil {
		return cs, replayErr("split-wall undo", err)
	}
	cs.RemovedNodes = append(cs.RemovedNodes, nodeID)

	startID, ok := resolveNode(c.graph, c.startID, c.startPos)
	if !ok {
		return cs, replayErr("split-wall undo",
			&plan.PlanError{Op: "SplitWall", Entity: "node", ID: string(c.startID), Cause: plan.ErrNotFound})
	}
	endID, ok := resolveNode(c.graph, c.endID, c.endPos)
	if !ok {
		return cs, replayErr("split-wall undo",
			&plan.PlanError{Op: "SplitWall", Entity: "node", ID: string(c.endID), Cause: plan.ErrNotFound})
	}

	w, err := c.graph.CreateWall(startID, endID, c.props)
	if err != nil {
		return cs, replayErr("split-wall undo", err)
	}
	c.wallID, c.startID, c.endID = w.ID, startID, endID
	cs.AddedWalls = append(cs.AddedWalls, w.ID)
	return cs, nil
}

// Node returns the inserted node's identifier after Execute.
func (c *SplitWall) Node() plan.NodeID { return c.nodeID }
