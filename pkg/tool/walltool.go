package tool

import (
	"github.com/chazu/atrium/pkg/command"
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/logging"
	"github.com/chazu/atrium/pkg/plan"
)

// Defaults used when the caller leaves Config fields at zero.
const (
	DefaultSnapThreshold = 20
	DefaultWallTolerance = 5
)

// Config tunes the wall tool's hit testing and the properties stamped
// onto every wall it draws.
type Config struct {
	SnapThreshold float64
	WallTolerance float64
	WallDefaults  plan.WallProperties
}

func (c Config) withDefaults() Config {
	if c.SnapThreshold <= 0 {
		c.SnapThreshold = DefaultSnapThreshold
	}
	if c.WallTolerance <= 0 {
		c.WallTolerance = DefaultWallTolerance
	}
	return c
}

// WallTool is the drawing tool. One pointer-down decides the mode: on a
// node it starts a drag, on a wall it starts a split, on empty space it
// starts a wall chain. The chain commits one CreateWall per further
// pointer-down; the first node is not created until the first segment
// commits, so cancelling an empty chain leaves no trace.
type WallTool struct {
	graph *plan.WallGraph
	cmds  *command.Manager
	log   *logging.Logger
	cfg   Config

	mode    Mode
	pointer geom.Point

	// Drawing
	anchor command.EndpointRef

	// MovingNode
	dragID    plan.NodeID
	dragFrom  geom.Point
	dragMoved bool

	// SplittingWall
	splitWall plan.WallID
	splitAt   geom.Point
}

// NewWallTool wires the tool to its graph and command manager. A nil
// logger is replaced with a no-op.
func NewWallTool(g *plan.WallGraph, cmds *command.Manager, cfg Config, log *logging.Logger) *WallTool {
	if log == nil {
		log = logging.Nop()
	}
	return &WallTool{graph: g, cmds: cmds, log: log, cfg: cfg.withDefaults()}
}

func (t *WallTool) Name() string { return "wall" }

// Mode returns the current interaction state.
func (t *WallTool) Mode() Mode { return t.mode }

// Pointer returns the last pointer position seen, for preview rendering.
func (t *WallTool) Pointer() geom.Point { return t.pointer }

// PreviewAnchor returns the pending chain anchor while drawing.
func (t *WallTool) PreviewAnchor() (geom.Point, bool) {
	if t.mode != Drawing {
		return geom.Point{}, false
	}
	return t.anchor.Pos(), true
}

func (t *WallTool) Activate() { t.reset() }

// Deactivate abandons any interaction in progress.
func (t *WallTool) Deactivate() { t.cancel() }

func (t *WallTool) PointerDown(ev PointerEvent) {
	t.pointer = ev.Pos
	switch t.mode {
	case Idle:
		t.beginInteraction(ev.Pos)
	case Drawing:
		t.commitSegment(ev.Pos)
	case MovingNode, SplittingWall:
		// A second pointer-down mid-gesture is out of protocol; ignore it.
	}
}

// beginInteraction decides the mode for a pointer-down in Idle. Node hits
// win over wall hits so a click near a junction grabs the node.
func (t *WallTool) beginInteraction(p geom.Point) {
	if n := t.graph.FindClosestNode(p, t.cfg.SnapThreshold); n != nil {
		t.mode = MovingNode
		t.dragID = n.ID
		t.dragFrom = n.Pos
		t.dragMoved = false
		t.log.Debug("drag started", logging.String("node", n.ID.Short()))
		return
	}
	if hit, ok := t.graph.FindWallIntersection(p, t.cfg.WallTolerance); ok {
		t.mode = SplittingWall
		t.splitWall = hit.Wall.ID
		t.splitAt = hit.Point
		t.log.Debug("split started", logging.String("wall", hit.Wall.ID.Short()))
		return
	}
	t.mode = Drawing
	t.anchor = command.AtPoint(p)
	t.log.Debug("chain started", logging.String("at", p.String()))
}

// commitSegment executes one CreateWall from the chain anchor to the
// clicked position, snapping to an existing node when one is in range.
func (t *WallTool) commitSegment(p geom.Point) {
	end := command.AtPoint(p)
	if n := t.graph.FindClosestNode(p, t.cfg.SnapThreshold); n != nil {
		ref, err := command.AtNode(t.graph, n.ID)
		if err == nil {
			end = ref
		}
	}

	cmd := command.NewCreateWall(t.graph, t.anchor, end, t.cfg.WallDefaults)
	if err := t.cmds.Execute(cmd); err != nil {
		// Clicking the anchor again is the common way in here; keep the
		// chain open so the user can pick another endpoint.
		t.log.Debug("segment rejected", logging.Error(err))
		return
	}
	if ref, err := command.AtNode(t.graph, cmd.EndNode()); err == nil {
		t.anchor = ref
	}
}

func (t *WallTool) PointerMove(ev PointerEvent) {
	t.pointer = ev.Pos
	if t.mode != MovingNode {
		return
	}
	// Live mutation outside the command layer: one MoveNode for the whole
	// gesture is synthesized on pointer-up.
	if err := t.graph.SetNodePosition(t.dragID, ev.Pos); err != nil {
		t.log.Warn("drag lost its node", logging.String("node", t.dragID.Short()), logging.Error(err))
		t.reset()
		return
	}
	t.dragMoved = true
}

func (t *WallTool) PointerUp(ev PointerEvent) {
	t.pointer = ev.Pos
	switch t.mode {
	case MovingNode:
		t.finishDrag()
	case SplittingWall:
		t.finishSplit()
	case Idle, Drawing:
		// Drawing commits on pointer-down; release is a no-op.
	}
}

// finishDrag turns the gesture into history: a merge when the node was
// dropped within snap range of another node, otherwise a single MoveNode
// for the net displacement. A click without movement records nothing.
func (t *WallTool) finishDrag() {
	defer t.reset()

	n, err := t.graph.Node(t.dragID)
	if err != nil {
		return
	}
	// A click with no movement is not a gesture. The guard must come
	// before the merge check: a node resting within snap range of a
	// neighbor would otherwise merge away on a plain click.
	if !t.dragMoved || n.Pos == t.dragFrom {
		return
	}
	if target := t.graph.FindClosestNode(n.Pos, t.cfg.SnapThreshold, t.dragID); target != nil {
		cmd, err := command.NewMergeNodes(t.graph, t.dragID, target.ID)
		if err != nil {
			t.log.Warn("merge setup failed", logging.Error(err))
			return
		}
		if err := t.cmds.Execute(cmd); err != nil {
			t.log.Warn("merge rejected", logging.Error(err))
		}
		return
	}
	cmd := command.NewMoveNode(t.graph, t.dragID, t.dragFrom, n.Pos)
	if err := t.cmds.Execute(cmd); err != nil {
		t.log.Warn("move rejected", logging.Error(err))
	}
}

func (t *WallTool) finishSplit() {
	defer t.reset()

	cmd, err := command.NewSplitWall(t.graph, t.splitWall, t.splitAt)
	if err != nil {
		t.log.Warn("split setup failed", logging.Error(err))
		return
	}
	if err := t.cmds.Execute(cmd); err != nil {
		t.log.Warn("split rejected", logging.Error(err))
	}
}

func (t *WallTool) KeyDown(ev KeyEvent) {
	if ev.Key == KeyCancel {
		t.cancel()
	}
}

func (t *WallTool) KeyUp(KeyEvent) {}

// cancel abandons the interaction without committing anything. A drag in
// flight is rolled back directly: its live position changes never entered
// the history, so there is nothing to undo.
func (t *WallTool) cancel() {
	if t.mode == MovingNode && t.dragMoved {
		_ = t.graph.SetNodePosition(t.dragID, t.dragFrom)
	}
	t.reset()
}

func (t *WallTool) reset() {
	t.mode = Idle
	t.anchor = command.EndpointRef{}
	t.dragID = ""
	t.dragMoved = false
	t.splitWall = ""
}
