package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/plan"
)

func props() plan.WallProperties {
	return plan.WallProperties{Thickness: 15, Height: 240, Material: "drywall"}
}

func TestCreateWallCreatesNodesOnDemand(t *testing.T) {
	g := plan.NewWallGraph()
	cmd := NewCreateWall(g, AtPoint(geom.Point{X: 0, Y: 0}), AtPoint(geom.Point{X: 100, Y: 0}), props())

	cs, err := cmd.Execute()
	require.NoError(t, err)
	assert.Len(t, cs.AddedNodes, 2)
	assert.Len(t, cs.AddedWalls, 1)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.WallCount())
	require.NoError(t, g.CheckIntegrity())
}

func TestCreateWallReusesExistingNode(t *testing.T) {
	g := plan.NewWallGraph()
	n := g.CreateNode(geom.Point{X: 0, Y: 0})

	start, err := AtNode(g, n.ID)
	require.NoError(t, err)
	cmd := NewCreateWall(g, start, AtPoint(geom.Point{X: 100, Y: 0}), props())

	cs, err := cmd.Execute()
	require.NoError(t, err)
	assert.Len(t, cs.AddedNodes, 1, "only the free endpoint is created")
	assert.Equal(t, n.ID, cmd.StartNode())
}

func TestCreateWallUndoRemovesCreatedNodes(t *testing.T) {
	g := plan.NewWallGraph()
	cmd := NewCreateWall(g, AtPoint(geom.Point{X: 0, Y: 0}), AtPoint(geom.Point{X: 100, Y: 0}), props())
	_, err := cmd.Execute()
	require.NoError(t, err)

	cs, err := cmd.Undo()
	require.NoError(t, err)
	assert.Len(t, cs.RemovedNodes, 2)
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.WallCount())
}

func TestCreateWallUndoKeepsNodesWithOtherWalls(t *testing.T) {
	g := plan.NewWallGraph()
	cmd := NewCreateWall(g, AtPoint(geom.Point{X: 0, Y: 0}), AtPoint(geom.Point{X: 100, Y: 0}), props())
	_, err := cmd.Execute()
	require.NoError(t, err)

	// The end node acquires a second wall before the undo.
	other := g.CreateNode(geom.Point{X: 200, Y: 0})
	_, err = g.CreateWall(cmd.EndNode(), other.ID, props())
	require.NoError(t, err)

	cs, err := cmd.Undo()
	require.NoError(t, err)
	assert.Len(t, cs.RemovedNodes, 1, "only the now-isolated start node goes")
	_, err = g.Node(cmd.EndNode())
	assert.NoError(t, err, "end node must survive, it has another wall")
}

func TestCreateWallRejectsDegenerateAtomically(t *testing.T) {
	g := plan.NewWallGraph()
	n := g.CreateNode(geom.Point{X: 0, Y: 0})
	start, _ := AtNode(g, n.ID)
	end, _ := AtNode(g, n.ID)

	cmd := NewCreateWall(g, start, end, props())
	_, err := cmd.Execute()
	assert.ErrorIs(t, err, plan.ErrDegenerateWall)
	assert.Equal(t, 1, g.NodeCount(), "failed execute must not leave extra nodes")
}

func TestDeleteWallRemovesIsolatedEndpoints(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	c := g.CreateNode(geom.Point{X: 200, Y: 0})
	w1, _ := g.CreateWall(a.ID, b.ID, props())
	g.CreateWall(b.ID, c.ID, props())

	cmd, err := NewDeleteWall(g, w1.ID)
	require.NoError(t, err)
	cs, err := cmd.Execute()
	require.NoError(t, err)

	assert.ElementsMatch(t, []plan.NodeID{a.ID}, cs.RemovedNodes, "a is isolated, b still carries a wall")
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.WallCount())

	cs, err = cmd.Undo()
	require.NoError(t, err)
	assert.Len(t, cs.AddedNodes, 1)
	assert.Len(t, cs.AddedWalls, 1)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.WallCount())
	require.NoError(t, g.CheckIntegrity())
}

func TestMoveNodeRoundTrip(t *testing.T) {
	g := plan.NewWallGraph()
	n := g.CreateNode(geom.Point{X: 0, Y: 0})
	require.NoError(t, g.SetNodePosition(n.ID, geom.Point{X: 40, Y: 40}))

	cmd := NewMoveNode(g, n.ID, geom.Point{X: 0, Y: 0}, geom.Point{X: 40, Y: 40})
	_, err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, geom.Point{X: 40, Y: 40}, n.Pos)

	_, err = cmd.Undo()
	require.NoError(t, err)
	assert.Equal(t, geom.Point{X: 0, Y: 0}, n.Pos)

	_, err = cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, geom.Point{X: 40, Y: 40}, n.Pos)
}

func TestSplitWallRoundTrip(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	w, _ := g.CreateWall(a.ID, b.ID, props())

	cmd, err := NewSplitWall(g, w.ID, geom.Point{X: 50, Y: 0})
	require.NoError(t, err)

	cs, err := cmd.Execute()
	require.NoError(t, err)
	assert.Len(t, cs.AddedNodes, 1)
	assert.Len(t, cs.AddedWalls, 2)
	assert.Len(t, cs.RemovedWalls, 1)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.WallCount())

	cs, err = cmd.Undo()
	require.NoError(t, err)
	assert.Len(t, cs.RemovedNodes, 1)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.WallCount())
	restored := g.WallBetween(a.ID, b.ID)
	require.NotNil(t, restored)
	assert.Equal(t, props(), restored.Props)
	require.NoError(t, g.CheckIntegrity())

	// Redo after undo: the wall carries a fresh identifier, the command
	// must find it by endpoint positions.
	_, err = cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.WallCount())
	require.NoError(t, g.CheckIntegrity())
}

func TestMergeNodesRoundTrip(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	c := g.CreateNode(geom.Point{X: 100, Y: 100})
	g.CreateWall(a.ID, c.ID, props())

	cmd, err := NewMergeNodes(g, c.ID, b.ID)
	require.NoError(t, err)

	cs, err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, cs.RemovedNodes, c.ID)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.WallCount())
	require.NotNil(t, g.WallBetween(a.ID, b.ID))

	cs, err = cmd.Undo()
	require.NoError(t, err)
	assert.Len(t, cs.AddedNodes, 1)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 1, g.WallCount())
	source := g.NodeAt(geom.Point{X: 100, Y: 100})
	require.NotNil(t, source, "source node restored at its captured position")
	require.NoError(t, g.CheckIntegrity())

	// Redo resolves the recreated source by position.
	_, err = cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	require.NoError(t, g.CheckIntegrity())
}

func TestMergeNodesDropsConnectingWallOnUndo(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 10, Y: 0})
	g.CreateWall(a.ID, b.ID, props())

	cmd, err := NewMergeNodes(g, a.ID, b.ID)
	require.NoError(t, err)

	_, err = cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.WallCount())

	_, err = cmd.Undo()
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.WallCount(), "dropped connecting wall is rebuilt")
	require.NoError(t, g.CheckIntegrity())
}

func TestDeleteNodeRoundTrip(t *testing.T) {
	g := plan.NewWallGraph()
	hub := g.CreateNode(geom.Point{X: 0, Y: 0})
	a := g.CreateNode(geom.Point{X: 100, Y: 0})
	b := g.CreateNode(geom.Point{X: 0, Y: 100})
	c := g.CreateNode(geom.Point{X: -100, Y: 0})
	g.CreateWall(hub.ID, a.ID, props())
	g.CreateWall(hub.ID, b.ID, props())
	// c also connects to a, so a survives the hub deletion.
	g.CreateWall(c.ID, a.ID, props())

	cmd, err := NewDeleteNode(g, hub.ID)
	require.NoError(t, err)

	cs, err := cmd.Execute()
	require.NoError(t, err)
	assert.Len(t, cs.RemovedWalls, 2)
	// hub and the now-isolated b; a keeps its wall to c.
	assert.Len(t, cs.RemovedNodes, 2)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.WallCount())

	_, err = cmd.Undo()
	require.NoError(t, err)
	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 3, g.WallCount())
	require.NoError(t, g.CheckIntegrity())
}
