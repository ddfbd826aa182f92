package plan

// ChangeSet describes what a mutation did, in enough detail for a renderer
// to redraw incrementally. Renderers that prefer to start over can always
// take a full snapshot via AllNodes/AllWalls instead.
type ChangeSet struct {
	AddedNodes   []NodeID `json:"addedNodes,omitempty"`
	RemovedNodes []NodeID `json:"removedNodes,omitempty"`
	MovedNodes   []NodeID `json:"movedNodes,omitempty"`
	AddedWalls   []WallID `json:"addedWalls,omitempty"`
	RemovedWalls []WallID `json:"removedWalls,omitempty"`
}

// IsEmpty reports whether the change set records no changes.
func (c ChangeSet) IsEmpty() bool {
	return len(c.AddedNodes) == 0 && len(c.RemovedNodes) == 0 &&
		len(c.MovedNodes) == 0 && len(c.AddedWalls) == 0 && len(c.RemovedWalls) == 0
}

// Merge appends the other change set's entries onto c.
func (c *ChangeSet) Merge(other ChangeSet) {
	c.AddedNodes = append(c.AddedNodes, other.AddedNodes...)
	c.RemovedNodes = append(c.RemovedNodes, other.RemovedNodes...)
	c.MovedNodes = append(c.MovedNodes, other.MovedNodes...)
	c.AddedWalls = append(c.AddedWalls, other.AddedWalls...)
	c.RemovedWalls = append(c.RemovedWalls, other.RemovedWalls...)
}
