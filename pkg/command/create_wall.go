package command

import (
	"github.com/chazu/atrium/pkg/plan"
)

// CreateWall draws one wall segment, creating endpoint nodes on demand
// when no existing node was within snap range.
type CreateWall struct {
	graph *plan.WallGraph
	start EndpointRef
	end   EndpointRef
	props plan.WallProperties

	startID      plan.NodeID
	endID        plan.NodeID
	createdStart bool
	createdEnd   bool
	wallID       plan.WallID
}

// NewCreateWall builds the command; nothing is mutated until Execute.
func NewCreateWall(g *plan.WallGraph, start, end EndpointRef, props plan.WallProperties) *CreateWall {
	return &CreateWall{graph: g, start: start, end: end, props: props}
}

func (c *CreateWall) Name() string { return "create-wall" }

// Execute resolves both endpoints and creates the wall. If the wall is
// rejected, any node created while resolving is removed again so the graph
// is untouched.
func (c *CreateWall) Execute() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	c.startID, c.createdStart = c.start.resolve(c.graph)
	c.endID, c.createdEnd = c.end.resolve(c.graph)

	w, err := c.graph.CreateWall(c.startID, c.endID, c.props)
	if err != nil {
		if c.createdEnd {
			_ = c.graph.RemoveNode(c.endID)
		}
		if c.createdStart {
			_ = c.graph.RemoveNode(c.startID)
		}
		return plan.ChangeSet{}, err
	}
	c.wallID = w.ID

	if c.createdStart {
		cs.AddedNodes = append(cs.AddedNodes, c.startID)
	}
	if c.createdEnd {
		cs.AddedNodes = append(cs.AddedNodes, c.endID)
	}
	cs.AddedWalls = append(cs.AddedWalls, w.ID)
	return cs, nil
}

// Undo removes the wall, plus any node this command created that has not
// since acquired other walls.
func (c *CreateWall) Undo() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	// A later command's undo may have recreated this wall under a fresh
	// identifier; fall back to finding it by endpoint positions.
	if _, err := c.graph.Wall(c.wallID); err != nil {
		sid, okS := resolveNode(c.graph, c.startID, c.start.pos)
		eid, okE := resolveNode(c.graph, c.endID, c.end.pos)
		if okS && okE {
			if w := c.graph.WallBetween(sid, eid); w != nil {
				c.wallID, c.startID, c.endID = w.ID, sid, eid
			}
		}
	}

	if err := c.graph.RemoveWall(c.wallID); err != nil {
		return cs, replayErr("create-wall undo", err)
	}
	cs.RemovedWalls = append(cs.RemovedWalls, c.wallID)

	for _, created := range []struct {
		was bool
		id  plan.NodeID
	}{
		{c.createdEnd, c.endID},
		{c.createdStart, c.startID},
	} {
		if !created.was {
			continue
		}
		n, err := c.graph.Node(created.id)
		if err != nil || n.Degree() > 0 {
			continue
		}
		_ = c.graph.RemoveNode(created.id)
		cs.RemovedNodes = append(cs.RemovedNodes, created.id)
	}
	return cs, nil
}

// StartNode returns the resolved start node after Execute.
func (c *CreateWall) StartNode() plan.NodeID { return c.startID }

// EndNode returns the resolved end node after Execute; the drawing tool
// chains the next segment from it.
func (c *CreateWall) EndNode() plan.NodeID { return c.endID }

// Wall returns the created wall's identifier after Execute.
func (c *CreateWall) Wall() plan.WallID { return c.wallID }
