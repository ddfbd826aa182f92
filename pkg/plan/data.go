package plan

import (
	"github.com/chazu/atrium/pkg/geom"
)

// NodeData is the serialized form of a node: a plain record with no
// back-references.
type NodeData struct {
	ID NodeID `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// WallData is the serialized form of a wall.
type WallData struct {
	ID    WallID         `json:"id"`
	Start NodeID         `json:"start"`
	End   NodeID         `json:"end"`
	Props WallProperties `json:"props"`
}

// PlanData is the serialized form of a whole graph, the unit a storage
// collaborator saves and loads. The graph knows nothing about files or
// formats beyond this structure.
type PlanData struct {
	Nodes []NodeData `json:"nodes"`
	Walls []WallData `json:"walls"`
}

// Data snapshots the graph in creation order.
func (g *WallGraph) Data() *PlanData {
	d := &PlanData{
		Nodes: make([]NodeData, 0, len(g.nodes)),
		Walls: make([]WallData, 0, len(g.walls)),
	}
	for _, n := range g.AllNodes() {
		d.Nodes = append(d.Nodes, NodeData{ID: n.ID, X: n.Pos.X, Y: n.Pos.Y})
	}
	for _, w := range g.AllWalls() {
		d.Walls = append(d.Walls, WallData{ID: w.ID, Start: w.Start, End: w.End, Props: w.Props})
	}
	return d
}

// FromData rebuilds a graph from its serialized form, preserving the
// stored identifiers. References are validated the same way live
// operations validate them.
func FromData(d *PlanData) (*WallGraph, error) {
	g := NewWallGraph()
	for _, nd := range d.Nodes {
		if nd.ID.IsZero() {
			return nil, opErr("FromData", "node", "", ErrInvalidReference)
		}
		if _, exists := g.nodes[nd.ID]; exists {
			return nil, opErr("FromData", "node", string(nd.ID), ErrInvalidReference)
		}
		g.seq++
		g.nodes[nd.ID] = &Node{
			ID:    nd.ID,
			Pos:   geom.Point{X: nd.X, Y: nd.Y},
			walls: make(map[WallID]struct{}),
			seq:   g.seq,
		}
	}
	for _, wd := range d.Walls {
		if wd.ID.IsZero() {
			return nil, opErr("FromData", "wall", "", ErrInvalidReference)
		}
		if _, exists := g.walls[wd.ID]; exists {
			return nil, opErr("FromData", "wall", string(wd.ID), ErrInvalidReference)
		}
		if wd.Start == wd.End {
			return nil, opErr("FromData", "wall", string(wd.ID), ErrDegenerateWall)
		}
		sn, ok := g.nodes[wd.Start]
		if !ok {
			return nil, opErr("FromData", "node", string(wd.Start), ErrInvalidReference)
		}
		en, ok := g.nodes[wd.End]
		if !ok {
			return nil, opErr("FromData", "node", string(wd.End), ErrInvalidReference)
		}
		g.seq++
		w := &Wall{ID: wd.ID, Start: wd.Start, End: wd.End, Props: wd.Props, seq: g.seq}
		g.walls[w.ID] = w
		sn.walls[w.ID] = struct{}{}
		en.walls[w.ID] = struct{}{}
	}
	return g, nil
}

// Restore replaces the graph's contents with the serialized plan. The
// graph instance itself survives, so components holding a reference keep
// working against the loaded plan. On error the graph is unchanged.
func (g *WallGraph) Restore(d *PlanData) error {
	ng, err := FromData(d)
	if err != nil {
		return err
	}
	g.nodes = ng.nodes
	g.walls = ng.walls
	g.seq = ng.seq
	return nil
}
