package plan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/chazu/atrium/pkg/geom"
)

func buildSample() *WallGraph {
	g := NewWallGraph()
	a := g.CreateNode(geom.Point{X: 0, Y: 0})
	b := g.CreateNode(geom.Point{X: 100, Y: 0})
	c := g.CreateNode(geom.Point{X: 100, Y: 100})
	g.CreateWall(a.ID, b.ID, WallProperties{Thickness: 15, Height: 240, Material: "drywall"})
	g.CreateWall(b.ID, c.ID, WallProperties{Thickness: 30, Height: 260, Material: "brick"})
	return g
}

func TestDataRoundTrip(t *testing.T) {
	g := buildSample()

	restored, err := FromData(g.Data())
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if restored.NodeCount() != g.NodeCount() || restored.WallCount() != g.WallCount() {
		t.Fatalf("counts differ after round trip")
	}
	for i, n := range g.AllNodes() {
		rn := restored.AllNodes()[i]
		if rn.ID != n.ID || rn.Pos != n.Pos {
			t.Errorf("node %d differs: %v vs %v", i, rn, n)
		}
	}
	for i, w := range g.AllWalls() {
		rw := restored.AllWalls()[i]
		if rw.ID != w.ID || rw.Start != w.Start || rw.End != w.End || rw.Props != w.Props {
			t.Errorf("wall %d differs", i)
		}
	}
	if err := restored.CheckIntegrity(); err != nil {
		t.Errorf("CheckIntegrity: %v", err)
	}
}

func TestDataJSONRoundTrip(t *testing.T) {
	g := buildSample()

	raw, err := json.Marshal(g.Data())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var d PlanData
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored, err := FromData(&d)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if restored.WallCount() != 2 || restored.NodeCount() != 3 {
		t.Errorf("counts %d/%d after JSON round trip", restored.NodeCount(), restored.WallCount())
	}
}

func TestFromDataRejectsMissingEndpoint(t *testing.T) {
	d := &PlanData{
		Nodes: []NodeData{{ID: NewNodeID(), X: 0, Y: 0}},
		Walls: []WallData{{ID: NewWallID(), Start: NewNodeID(), End: NewNodeID()}},
	}
	if _, err := FromData(d); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestFromDataRejectsDegenerateWall(t *testing.T) {
	id := NewNodeID()
	d := &PlanData{
		Nodes: []NodeData{{ID: id, X: 0, Y: 0}},
		Walls: []WallData{{ID: NewWallID(), Start: id, End: id}},
	}
	if _, err := FromData(d); !errors.Is(err, ErrDegenerateWall) {
		t.Errorf("expected ErrDegenerateWall, got %v", err)
	}
}

func TestRestoreKeepsInstance(t *testing.T) {
	g := NewWallGraph()
	g.CreateNode(geom.Point{X: 5, Y: 5})

	sample := buildSample()
	if err := g.Restore(sample.Data()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if g.NodeCount() != 3 || g.WallCount() != 2 {
		t.Errorf("restore replaced contents incorrectly: %d/%d", g.NodeCount(), g.WallCount())
	}
	if err := g.CheckIntegrity(); err != nil {
		t.Errorf("CheckIntegrity: %v", err)
	}
}
