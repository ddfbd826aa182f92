package plan

import (
	"github.com/google/uuid"

	"github.com/chazu/atrium/pkg/geom"
)

// NodeID identifies a node for the node's whole lifetime. IDs are never
// reused, which is what keeps history replay honest.
type NodeID string

// WallID identifies a wall. Never reused.
type WallID string

// NewNodeID returns a fresh node identifier.
func NewNodeID() NodeID { return NodeID(uuid.NewString()) }

// NewWallID returns a fresh wall identifier.
func NewWallID() WallID { return WallID(uuid.NewString()) }

// IsZero reports whether the ID is the zero value.
func (id NodeID) IsZero() bool { return id == "" }

// Short returns an abbreviated form for log and error messages.
func (id NodeID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// IsZero reports whether the ID is the zero value.
func (id WallID) IsZero() bool { return id == "" }

// Short returns an abbreviated form for log and error messages.
func (id WallID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Node is a vertex of the wall graph. It owns no walls; the incident set
// holds identifiers only and is maintained by the owning WallGraph, so
// "is this node still connected" is a map lookup, never a dangling pointer.
type Node struct {
	ID  NodeID     `json:"id"`
	Pos geom.Point `json:"pos"`

	walls map[WallID]struct{}
	seq   uint64 // creation order, the snap tie-break
}

// Degree returns the number of walls incident to the node.
func (n *Node) Degree() int { return len(n.walls) }

// HasWall reports whether the wall is registered as incident to the node.
func (n *Node) HasWall(id WallID) bool {
	_, ok := n.walls[id]
	return ok
}

// WallProperties carries the physical attributes of a wall. Both halves of
// a split and every wall re-routed by a merge inherit them unchanged.
type WallProperties struct {
	Thickness float64 `json:"thickness"`
	Height    float64 `json:"height"`
	Material  string  `json:"material,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Wall is an edge of the wall graph, connecting two node identifiers. It
// never caches endpoint positions; those are looked up live through the
// owning graph, which is why moving a node moves every incident wall.
type Wall struct {
	ID    WallID         `json:"id"`
	Start NodeID         `json:"start"`
	End   NodeID         `json:"end"`
	Props WallProperties `json:"props"`

	seq uint64
}

// OtherEnd returns the endpoint opposite to id, or the zero NodeID when id
// is not an endpoint of the wall.
func (w *Wall) OtherEnd(id NodeID) NodeID {
	switch id {
	case w.Start:
		return w.End
	case w.End:
		return w.Start
	}
	return ""
}

// Connects reports whether the wall joins a and b in either direction.
func (w *Wall) Connects(a, b NodeID) bool {
	return (w.Start == a && w.End == b) || (w.Start == b && w.End == a)
}
