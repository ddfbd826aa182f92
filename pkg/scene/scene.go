// Package scene turns a wall graph into kernel solids for the 3D view.
// Each wall becomes its own mesh so the renderer can restyle or remove it
// by label; junction columns are unioned into one mesh.
package scene

import (
	"fmt"
	"sort"

	"github.com/chazu/atrium/pkg/kernel"
	"github.com/chazu/atrium/pkg/plan"
)

// Options tunes the generated solids.
type Options struct {
	// NodeColumns adds a cylindrical column at every junction where two
	// or more walls meet, covering the unmitred wall ends.
	NodeColumns bool
	// ColumnRadius is the junction column radius; zero derives it per
	// junction from the thickest incident wall.
	ColumnRadius float64
}

// Build meshes every wall in the graph, in creation order. Walls are
// modeled as boxes along X, rotated to the wall's angle and lifted so
// they stand on the z=0 floor plane. Mesh labels are "wall/<id>".
func Build(g *plan.WallGraph, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh

	for _, w := range g.AllWalls() {
		m, err := buildWall(g, k, w)
		if err != nil {
			return nil, fmt.Errorf("mesh wall %s: %w", w.ID.Short(), err)
		}
		meshes = append(meshes, m)
	}

	if opts.NodeColumns {
		m, err := buildColumns(g, k, opts)
		if err != nil {
			return nil, err
		}
		if m != nil {
			meshes = append(meshes, m)
		}
	}
	return meshes, nil
}

func buildWall(g *plan.WallGraph, k kernel.Kernel, w *plan.Wall) (*kernel.Mesh, error) {
	length := g.WallLength(w)
	angle := g.WallAngle(w)
	a, b := g.WallEndpoints(w)

	s := k.Box(length, w.Props.Thickness, w.Props.Height)
	s = k.RotateZ(s, angle)
	s = k.Translate(s, geomMid(a.X, b.X), geomMid(a.Y, b.Y), w.Props.Height/2)

	m, err := k.ToMesh(s)
	if err != nil {
		return nil, err
	}
	m.Label = "wall/" + string(w.ID)
	return m, nil
}

func geomMid(a, b int) float64 {
	return (float64(a) + float64(b)) / 2
}

// buildColumns unions one cylinder per junction node into a single solid.
// Returns nil when the graph has no junctions.
func buildColumns(g *plan.WallGraph, k kernel.Kernel, opts Options) (*kernel.Mesh, error) {
	var combined kernel.Solid
	for _, n := range g.AllNodes() {
		if n.Degree() < 2 {
			continue
		}
		radius := opts.ColumnRadius
		height := 0.0
		walls, _ := g.NodeWalls(n.ID)
		for _, w := range walls {
			if w.Props.Height > height {
				height = w.Props.Height
			}
			if opts.ColumnRadius <= 0 && w.Props.Thickness/2 > radius {
				radius = w.Props.Thickness / 2
			}
		}
		if radius <= 0 || height <= 0 {
			continue
		}
		c := k.Cylinder(height, radius)
		c = k.Translate(c, float64(n.Pos.X), float64(n.Pos.Y), height/2)
		if combined == nil {
			combined = c
		} else {
			combined = k.Union(combined, c)
		}
	}
	if combined == nil {
		return nil, nil
	}
	m, err := k.ToMesh(combined)
	if err != nil {
		return nil, fmt.Errorf("mesh junctions: %w", err)
	}
	m.Label = "junctions"
	return m, nil
}

// Labels returns the mesh labels in order, for tests and debugging.
func Labels(meshes []*kernel.Mesh) []string {
	labels := make([]string, 0, len(meshes))
	for _, m := range meshes {
		labels = append(labels, m.Label)
	}
	sort.Strings(labels)
	return labels
}
