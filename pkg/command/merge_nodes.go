package command

import (
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

// MergeNodes welds the dragged node (source) into the stationary node it
// was dropped on (target). Undo resurrects the source where the drag left
// it and swaps every re-routed wall back.
type MergeNodes struct {
	graph     *plan.WallGraph
	sourceID  plan.NodeID
	targetID  plan.NodeID
	sourcePos geom.Point
	targetPos geom.Point

	walls []wallRecord
}

// NewMergeNodes captures both node positions; the source's current
// position is where undo will recreate it.
func NewMergeNodes(g *plan.WallGraph, source, target plan.NodeID) (*MergeNodes, error) {
	sn, err := g.Node(source)
	if err != nil {
		return nil, err
	}
	tn, err := g.Node(target)
	if err != nil {
		return nil, err
	}
	return &MergeNodes{
		graph:     g,
		sourceID:  source,
		targetID:  target,
		sourcePos: sn.Pos,
		targetPos: tn.Pos,
	}, nil
}

func (c *MergeNodes) Name() string { return "merge-nodes" }

func (c *MergeNodes) Execute() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	sourceID, ok := resolveNode(c.graph, c.sourceID, c.sourcePos)
	if !ok {
		return cs, &plan.PlanError{Op: "MergeNodes", Entity: "node", ID: string(c.sourceID), Cause: plan.ErrNotFound}
	}
	targetID, ok := resolveNode(c.graph, c.targetID, c.targetPos)
	if !ok {
		return cs, &plan.PlanError{Op: "MergeNodes", Entity: "node", ID: string(c.targetID), Cause: plan.ErrNotFound}
	}
	c.sourceID, c.targetID = sourceID, targetID

	// Re-capture on every execute: after an undo/redo cycle the incident
	// walls carry fresh identifiers.
	records, err := captureNodeWalls(c.graph, sourceID)
	if err != nil {
		return cs, err
	}

	res, err := c.graph.MergeNodes(sourceID, targetID)
	if err != nil {
		return cs, err
	}

	// MergeNodes visits the incident walls in the same creation order the
	// capture did, so records and replacements line up by index.
	for i, r := range res.Replaced {
		cs.RemovedWalls = append(cs.RemovedWalls, r.Old.ID)
		if r.New != nil {
			records[i].replID = r.New.ID
			cs.AddedWalls = append(cs.AddedWalls, r.New.ID)
		} else {
			records[i].droppedSelf = true
		}
	}
	c.walls = records
	cs.RemovedNodes = append(cs.RemovedNodes, sourceID)
	return cs, nil
}

// Undo recreates the source node, tears out the re-routed walls and
// rebuilds the originals with their captured direction.
func (c *MergeNodes) Undo() (plan.ChangeSet, error) {
	var cs plan.ChangeSet

	targetID, ok := resolveNode(c.graph, c.targetID, c.targetPos)
	if !ok {
		return cs, replayErr("merge-nodes undo",
			&plan.PlanError{Op: "MergeNodes", Entity: "node", ID: string(c.targetID), Cause: plan.ErrNotFound})
	}
	c.targetID = targetID

	source := c.graph.CreateNode(c.sourcePos)
	c.sourceID = source.ID
	cs.AddedNodes = append(cs.AddedNodes, source.ID)

	for _, rec := range c.walls {
		otherID := targetID
		if !rec.droppedSelf {
			if err := c.removeReplacement(rec, targetID, &cs); err != nil {
				return cs, err
			}
			otherID, ok = resolveNode(c.graph, rec.otherID, rec.otherPos)
			if !ok {
				return cs, replayErr("merge-nodes undo",
					&plan.PlanError{Op: "MergeNodes", Entity: "node", ID: string(rec.otherID), Cause: plan.ErrNotFound})
			}
		}

		start, end := source.ID, otherID
		if !rec.anchorIsStart {
			start, end = otherID, source.ID
		}
		w, err := c.graph.CreateWall(start, end, rec.props)
		if err != nil {
			return cs, replayErr("merge-nodes undo", err)
		}
		cs.AddedWalls = append(cs.AddedWalls, w.ID)
	}
	return cs, nil
}

func (c *MergeNodes) removeReplacement(rec wallRecord, targetID plan.NodeID, cs *plan.ChangeSet) error {
	replID := rec.replID
	if _, err := c.graph.Wall(replID); err != nil {
		other := c.graph.NodeAt(rec.otherPos)
		if other == nil {
			return replayErr("merge-nodes undo",
				&plan.PlanError{Op: "MergeNodes", Entity: "wall", ID: string(replID), Cause: plan.ErrNotFound})
		}
		w := c.graph.WallBetween(targetID, other.ID)
		if w == nil {
			return replayErr("merge-nodes undo",
				&plan.PlanError{Op: "MergeNodes", Entity: "wall", ID: string(replID), Cause: plan.ErrNotFound})
		}
		replID = w.ID
	}
	if err := c.graph.RemoveWall(replID); err != nil {
		return replayErr("merge-nodes undo", err)
	}
	cs.RemovedWalls = append(cs.RemovedWalls, replID)
	return nil
}

// Target returns the surviving node's identifier after Execute.
func (c *MergeNodes) Target() plan.NodeID { return c.targetID }
