package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/kernel"
	"github.com/chazu/atrium/pkg/plan"
)

// fakeSolid carries the trace of operations that produced it, so tests can
// assert on geometry without running marching cubes.
type fakeSolid struct {
	trace string
}

func (s *fakeSolid) BoundingBox() (min, max [3]float64) { return }

// fakeKernel records every call; ToMesh emits a one-triangle mesh.
type fakeKernel struct {
	meshed []string
}

func (k *fakeKernel) Box(x, y, z float64) kernel.Solid {
	return &fakeSolid{trace: fmt.Sprintf("box(%.0f,%.0f,%.0f)", x, y, z)}
}

func (k *fakeKernel) Cylinder(height, radius float64) kernel.Solid {
	return &fakeSolid{trace: fmt.Sprintf("cyl(%.0f,%.1f)", height, radius)}
}

func (k *fakeKernel) Union(a, b kernel.Solid) kernel.Solid {
	return &fakeSolid{trace: fmt.Sprintf("union(%s,%s)", a.(*fakeSolid).trace, b.(*fakeSolid).trace)}
}

func (k *fakeKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return &fakeSolid{trace: fmt.Sprintf("move(%s,%.1f,%.1f,%.1f)", s.(*fakeSolid).trace, x, y, z)}
}

func (k *fakeKernel) RotateZ(s kernel.Solid, radians float64) kernel.Solid {
	return &fakeSolid{trace: fmt.Sprintf("rotz(%s,%.2f)", s.(*fakeSolid).trace, radians)}
}

func (k *fakeKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	k.meshed = append(k.meshed, s.(*fakeSolid).trace)
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}, nil
}

func wallProps() plan.WallProperties {
	return plan.WallProperties{Thickness: 15, Height: 240, Material: "drywall"}
}

func TestBuildEmptyGraph(t *testing.T) {
	g := plan.NewWallGraph()
	k := &fakeKernel{}

	meshes, err := Build(g, k, Options{})
	require.NoError(t, err)
	assert.Empty(t, meshes)
}

func TestBuildSingleWall(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	w, _ := g.CreateWall(a.ID, b.ID, wallProps())

	k := &fakeKernel{}
	meshes, err := Build(g, k, Options{})
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, "wall/"+string(w.ID), meshes[0].Label)

	// Box sized by length/thickness/height, rotated by the wall angle,
	// lifted so it stands on the floor and centered on the midpoint.
	require.Len(t, k.meshed, 1)
	assert.Equal(t, "move(rotz(box(100,15,240),0.00),50.0,0.0,120.0)", k.meshed[0])
}

func TestBuildJunctionColumns(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	c := g.CreateNode(geom.Point{X: 100, Y: 100})
	g.CreateWall(a.ID, b.ID, wallProps())
	g.CreateWall(b.ID, c.ID, wallProps())

	k := &fakeKernel{}
	meshes, err := Build(g, k, Options{NodeColumns: true})
	require.NoError(t, err)
	require.Len(t, meshes, 3, "two walls plus one junction mesh")
	assert.Equal(t, "junctions", meshes[2].Label)
	assert.Contains(t, Labels(meshes), "junctions")

	// Only b is a junction (degree 2); the column derives its radius from
	// the thickest incident wall.
	last := k.meshed[len(k.meshed)-1]
	assert.Equal(t, "move(cyl(240,7.5),100.0,0.0,120.0)", last)
}

func TestBuildNoColumnsForEndpoints(t *testing.T) {
	g := plan.NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	g.CreateWall(a.ID, b.ID, wallProps())

	k := &fakeKernel{}
	meshes, err := Build(g, k, Options{NodeColumns: true})
	require.NoError(t, err)
	assert.Len(t, meshes, 1, "degree-1 endpoints get no columns")
}
