package plan

import (
	"sort"

	"github.com/chazu/atrium/pkg/geom"
)

// WallGraph owns the authoritative node and wall maps for one editing
// session. It is the single source of truth: no other component holds a
// copy that can drift. Operations validate first and mutate second, so a
// failed call never leaves a partial change behind — that fail-fast
// discipline is what lets the command layer treat every operation as
// atomic.
//
// The graph is not safe for concurrent use; the editor drives it from the
// single input-handling goroutine.
type WallGraph struct {
	nodes map[NodeID]*Node
	walls map[WallID]*Wall
	seq   uint64
}

// NewWallGraph returns an empty graph.
func NewWallGraph() *WallGraph {
	return &WallGraph{
		nodes: make(map[NodeID]*Node),
		walls: make(map[WallID]*Wall),
	}
}

// CreateNode adds a node at p and returns it. Always succeeds.
func (g *WallGraph) CreateNode(p geom.Point) *Node {
	g.seq++
	n := &Node{
		ID:    NewNodeID(),
		Pos:   p,
		walls: make(map[WallID]struct{}),
		seq:   g.seq,
	}
	g.nodes[n.ID] = n
	return n
}

// Node returns the node with the given ID.
func (g *WallGraph) Node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, opErr("Node", "node", string(id), ErrNotFound)
	}
	return n, nil
}

// Wall returns the wall with the given ID.
func (g *WallGraph) Wall(id WallID) (*Wall, error) {
	w, ok := g.walls[id]
	if !ok {
		return nil, opErr("Wall", "wall", string(id), ErrNotFound)
	}
	return w, nil
}

// CreateWall connects two existing nodes and registers the wall as
// incident to both.
func (g *WallGraph) CreateWall(start, end NodeID, props WallProperties) (*Wall, error) {
	if start == end {
		return nil, opErr("CreateWall", "wall", "", ErrDegenerateWall)
	}
	sn, ok := g.nodes[start]
	if !ok {
		return nil, opErr("CreateWall", "node", string(start), ErrInvalidReference)
	}
	en, ok := g.nodes[end]
	if !ok {
		return nil, opErr("CreateWall", "node", string(end), ErrInvalidReference)
	}
	g.seq++
	w := &Wall{ID: NewWallID(), Start: start, End: end, Props: props, seq: g.seq}
	g.walls[w.ID] = w
	sn.walls[w.ID] = struct{}{}
	en.walls[w.ID] = struct{}{}
	return w, nil
}

// RemoveWall deletes a wall and deregisters it from both endpoints. Nodes
// left with no walls are kept; whether to remove them is a policy decision
// that belongs to the command layer, not the graph.
func (g *WallGraph) RemoveWall(id WallID) error {
	w, ok := g.walls[id]
	if !ok {
		return opErr("RemoveWall", "wall", string(id), ErrNotFound)
	}
	delete(g.nodes[w.Start].walls, id)
	delete(g.nodes[w.End].walls, id)
	delete(g.walls, id)
	return nil
}

// RemoveNode deletes a node. It fails while walls still reference it;
// callers must remove or re-route those walls first.
func (g *WallGraph) RemoveNode(id NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return opErr("RemoveNode", "node", string(id), ErrNotFound)
	}
	if len(n.walls) > 0 {
		return opErr("RemoveNode", "node", string(id), ErrNodeInUse)
	}
	delete(g.nodes, id)
	return nil
}

// SetNodePosition moves a node. Every incident wall follows automatically
// because walls never cache endpoint positions.
func (g *WallGraph) SetNodePosition(id NodeID, p geom.Point) error {
	n, ok := g.nodes[id]
	if !ok {
		return opErr("SetNodePosition", "node", string(id), ErrNotFound)
	}
	n.Pos = p
	return nil
}

// FindClosestNode returns the node nearest to p within maxDist, or nil.
// Ties are broken by creation order: the earlier-created node wins. Nodes
// listed in except are skipped.
func (g *WallGraph) FindClosestNode(p geom.Point, maxDist float64, except ...NodeID) *Node {
	var best *Node
	var bestDist float64
	for _, n := range g.AllNodes() {
		if excluded(n.ID, except) {
			continue
		}
		d := geom.Distance(n.Pos, p)
		if d > maxDist {
			continue
		}
		// Strict < keeps the earlier-created node on equal distance.
		if best == nil || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func excluded(id NodeID, except []NodeID) bool {
	for _, e := range except {
		if id == e {
			return true
		}
	}
	return false
}

// NodeAt returns the node exactly at p, or nil. With several nodes on the
// same position the earliest-created one is returned.
func (g *WallGraph) NodeAt(p geom.Point) *Node {
	for _, n := range g.AllNodes() {
		if n.Pos == p {
			return n
		}
	}
	return nil
}

// WallHit is the result of a wall intersection lookup.
type WallHit struct {
	Wall  *Wall
	Point geom.Point // query point projected onto the wall segment
}

// FindWallIntersection returns the wall whose segment passes within
// tolerance of p, with p projected onto that segment. The closest wall
// wins; ties go to the earlier-created one.
func (g *WallGraph) FindWallIntersection(p geom.Point, tolerance float64) (WallHit, bool) {
	var best WallHit
	var bestDist float64
	found := false
	for _, w := range g.AllWalls() {
		a, b := g.WallEndpoints(w)
		d := geom.DistanceToSegment(a, b, p)
		if d > tolerance {
			continue
		}
		if !found || d < bestDist {
			q, _ := geom.ProjectOnSegment(a, b, p)
			best = WallHit{Wall: w, Point: q}
			bestDist = d
			found = true
		}
	}
	return best, found
}

// WallBetween returns the earliest-created wall joining a and b, or nil.
func (g *WallGraph) WallBetween(a, b NodeID) *Wall {
	for _, w := range g.AllWalls() {
		if w.Connects(a, b) {
			return w
		}
	}
	return nil
}

// NodeWalls returns the walls incident to a node in creation order.
func (g *WallGraph) NodeWalls(id NodeID) ([]*Wall, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, opErr("NodeWalls", "node", string(id), ErrNotFound)
	}
	walls := make([]*Wall, 0, len(n.walls))
	for wid := range n.walls {
		walls = append(walls, g.walls[wid])
	}
	sort.Slice(walls, func(i, j int) bool { return walls[i].seq < walls[j].seq })
	return walls, nil
}

// SplitResult holds the node and the two walls produced by SplitWall.
type SplitResult struct {
	Node  *Node
	WallA *Wall // original start -> inserted node
	WallB *Wall // inserted node -> original end
}

// SplitWall replaces a wall with two walls joined at a new node at p. Both
// halves inherit the original wall's properties. Only the split wall is
// replaced; every other wall keeps its identity, so renderers and history
// entries anchored on them stay valid.
func (g *WallGraph) SplitWall(id WallID, p geom.Point) (SplitResult, error) {
	w, ok := g.walls[id]
	if !ok {
		return SplitResult{}, opErr("SplitWall", "wall", string(id), ErrNotFound)
	}
	// Validated; none of the mutations below can fail.
	n := g.CreateNode(p)
	a, _ := g.CreateWall(w.Start, n.ID, w.Props)
	b, _ := g.CreateWall(n.ID, w.End, w.Props)
	_ = g.RemoveWall(id)
	return SplitResult{Node: n, WallA: a, WallB: b}, nil
}

// WallReplacement records one wall re-routed (or dropped) by MergeNodes.
type WallReplacement struct {
	Old Wall  // descriptor of the removed wall
	New *Wall // replacement, nil when the wall joined source and target
}

// MergeResult describes what MergeNodes did.
type MergeResult struct {
	Target    *Node
	SourceID  NodeID
	SourcePos geom.Point
	Replaced  []WallReplacement
}

// MergeNodes welds source into target: every wall incident to source is
// replaced by an equivalent wall ending on target, then source is removed.
// A wall that already joined source and target is dropped rather than
// recreated as a self-loop. Walls not touching source keep their identity.
func (g *WallGraph) MergeNodes(source, target NodeID) (MergeResult, error) {
	if source == target {
		return MergeResult{}, opErr("MergeNodes", "node", string(source), ErrDegenerateWall)
	}
	sn, ok := g.nodes[source]
	if !ok {
		return MergeResult{}, opErr("MergeNodes", "node", string(source), ErrInvalidReference)
	}
	tn, ok := g.nodes[target]
	if !ok {
		return MergeResult{}, opErr("MergeNodes", "node", string(target), ErrInvalidReference)
	}

	res := MergeResult{Target: tn, SourceID: source, SourcePos: sn.Pos}
	incident, _ := g.NodeWalls(source)
	for _, w := range incident {
		old := *w
		_ = g.RemoveWall(w.ID)
		var repl *Wall
		if !old.Connects(source, target) {
			if old.Start == source {
				repl, _ = g.CreateWall(target, old.End, old.Props)
			} else {
				repl, _ = g.CreateWall(old.Start, target, old.Props)
			}
		}
		res.Replaced = append(res.Replaced, WallReplacement{Old: old, New: repl})
	}
	_ = g.RemoveNode(source)
	return res, nil
}

// Clear removes all nodes and walls. The sequence counter keeps running so
// creation order stays globally monotonic across resets.
func (g *WallGraph) Clear() {
	g.nodes = make(map[NodeID]*Node)
	g.walls = make(map[WallID]*Wall)
}

// AllNodes returns every node in creation order.
func (g *WallGraph) AllNodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].seq < nodes[j].seq })
	return nodes
}

// AllWalls returns every wall in creation order.
func (g *WallGraph) AllWalls() []*Wall {
	walls := make([]*Wall, 0, len(g.walls))
	for _, w := range g.walls {
		walls = append(walls, w)
	}
	sort.Slice(walls, func(i, j int) bool { return walls[i].seq < walls[j].seq })
	return walls
}

// NodeCount returns the number of nodes.
func (g *WallGraph) NodeCount() int { return len(g.nodes) }

// WallCount returns the number of walls.
func (g *WallGraph) WallCount() int { return len(g.walls) }

// WallEndpoints returns the live positions of the wall's two endpoints.
func (g *WallGraph) WallEndpoints(w *Wall) (geom.Point, geom.Point) {
	return g.nodes[w.Start].Pos, g.nodes[w.End].Pos
}

// WallLength returns the wall's current length.
func (g *WallGraph) WallLength(w *Wall) float64 {
	a, b := g.WallEndpoints(w)
	return geom.Distance(a, b)
}

// WallAngle returns the wall's current angle in radians.
func (g *WallGraph) WallAngle(w *Wall) float64 {
	a, b := g.WallEndpoints(w)
	return geom.Angle(a, b)
}

// CheckIntegrity verifies referential integrity: every wall's endpoints
// resolve to live nodes that list the wall as incident, and every entry in
// a node's incident set is a live wall referencing that node. Read-only.
func (g *WallGraph) CheckIntegrity() error {
	for id, w := range g.walls {
		if w.Start == w.End {
			return opErr("CheckIntegrity", "wall", string(id), ErrDegenerateWall)
		}
		for _, nid := range []NodeID{w.Start, w.End} {
			n, ok := g.nodes[nid]
			if !ok {
				return opErr("CheckIntegrity", "wall", string(id), ErrInvalidReference)
			}
			if !n.HasWall(id) {
				return opErr("CheckIntegrity", "node", string(nid), ErrInvalidReference)
			}
		}
	}
	for nid, n := range g.nodes {
		for wid := range n.walls {
			w, ok := g.walls[wid]
			if !ok {
				return opErr("CheckIntegrity", "node", string(nid), ErrInvalidReference)
			}
			if w.Start != nid && w.End != nid {
				return opErr("CheckIntegrity", "wall", string(wid), ErrInvalidReference)
			}
		}
	}
	return nil
}
