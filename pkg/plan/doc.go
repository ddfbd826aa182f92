// Package plan defines the topological wall graph backing the floor-plan
// editor: nodes (wall endpoints and corners), walls (edges carrying
// thickness, height and material), and the WallGraph that owns both and
// keeps them referentially consistent.
package plan
