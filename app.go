package main

import (
	"context"
	"errors"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chazu/atrium/pkg/command"
	"github.com/chazu/atrium/pkg/config"
	"github.com/chazu/atrium/pkg/engine"
	"github.com/chazu/atrium/pkg/geom"
	"github.com/chazu/atrium/pkg/kernel"
	"github.com/chazu/atrium/pkg/kernel/sdfx"
	"github.com/chazu/atrium/pkg/logging"
	"github.com/chazu/atrium/pkg/plan"
	"github.com/chazu/atrium/pkg/scene"
	"github.com/chazu/atrium/pkg/store"
	"github.com/chazu/atrium/pkg/tool"
)

// errNoSessionStore is reported by session bindings when the app was
// started without a session database.
var errNoSessionStore = errors.New("session store unavailable")

// colorPalette assigns distinct colors to meshes in the 3D view.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It owns the editing session: one graph, one
// command history, one active tool. All bindings run on the single event
// goroutine Wails dispatches to, matching the graph's no-locking contract.
type App struct {
	ctx      context.Context
	cfg      config.Config
	log      *logging.Logger
	graph    *plan.WallGraph
	cmds     *command.Manager
	tools    *tool.Registry
	wall     *tool.WallTool
	eng      *engine.Engine
	kern     kernel.Kernel
	sessions *store.Store
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Label    string    `json:"label"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is returned by EvaluateScript. An empty Errors slice means
// the script replaced the current plan.
type ScriptResult struct {
	Errors []EvalErrorData `json:"errors"`
}

// NewApp wires the session together. The store may be nil; session
// bindings then report an error instead of persisting.
func NewApp(cfg config.Config, log *logging.Logger, sessions *store.Store) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		cfg:      cfg,
		log:      log,
		graph:    plan.NewWallGraph(),
		kern:     sdfx.New(cfg.MeshCells),
		eng:      engine.NewEngine(cfg.Wall.Props()),
		tools:    tool.NewRegistry(),
		sessions: sessions,
	}
	a.cmds = command.NewManager(cfg.HistoryLimit, log.With(logging.String("component", "command")))
	a.cmds.SetNotifier(a.planChanged)

	a.wall = tool.NewWallTool(a.graph, a.cmds, tool.Config{
		SnapThreshold: cfg.SnapThreshold,
		WallTolerance: cfg.WallTolerance,
		WallDefaults:  cfg.Wall.Props(),
	}, log.With(logging.String("component", "tool")))
	a.tools.Register(a.wall)
	_ = a.tools.Activate(a.wall.Name())
	return a
}

// startup is called by Wails on app startup. The context is saved so
// change notifications can reach the frontend.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) planChanged(cs plan.ChangeSet) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, "plan:changed", cs)
}

func (a *App) planReset() {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, "plan:reset")
}

// --- Pointer and keyboard bindings -----------------------------------------

// PointerDown routes a pointer-down in plan coordinates to the active tool.
func (a *App) PointerDown(x, y float64) {
	a.tools.PointerDown(tool.PointerEvent{Pos: geom.PointAt(x, y)})
}

// PointerMove routes a pointer-move to the active tool. Live drags mutate
// the graph here, so a redraw event follows.
func (a *App) PointerMove(x, y float64) {
	a.tools.PointerMove(tool.PointerEvent{Pos: geom.PointAt(x, y)})
	if a.wall.Mode() == tool.MovingNode {
		a.planChanged(plan.ChangeSet{})
	}
}

// PointerUp routes a pointer-up to the active tool.
func (a *App) PointerUp(x, y float64) {
	a.tools.PointerUp(tool.PointerEvent{Pos: geom.PointAt(x, y)})
}

// KeyDown routes a key-down to the active tool.
func (a *App) KeyDown(key string) {
	a.tools.KeyDown(tool.KeyEvent{Key: key})
}

// KeyUp routes a key-up to the active tool.
func (a *App) KeyUp(key string) {
	a.tools.KeyUp(tool.KeyEvent{Key: key})
}

// CancelInteraction abandons the in-progress interaction, same as Escape.
func (a *App) CancelInteraction() {
	a.tools.KeyDown(tool.KeyEvent{Key: tool.KeyCancel})
	a.planReset()
}

// Mode reports the active tool's interaction state for the status bar.
func (a *App) Mode() string {
	return a.wall.Mode().String()
}

// --- Delete bindings -------------------------------------------------------

// DeleteWallAt removes the wall under the pointer. Endpoints left without
// any other wall are removed with it.
func (a *App) DeleteWallAt(x, y float64) error {
	hit, ok := a.graph.FindWallIntersection(geom.PointAt(x, y), a.cfg.WallTolerance)
	if !ok {
		return plan.ErrNotFound
	}
	cmd, err := command.NewDeleteWall(a.graph, hit.Wall.ID)
	if err != nil {
		return err
	}
	return a.cmds.Execute(cmd)
}

// DeleteNodeAt removes the node under the pointer along with its walls.
func (a *App) DeleteNodeAt(x, y float64) error {
	n := a.graph.FindClosestNode(geom.PointAt(x, y), a.cfg.SnapThreshold)
	if n == nil {
		return plan.ErrNotFound
	}
	cmd, err := command.NewDeleteNode(a.graph, n.ID)
	if err != nil {
		return err
	}
	return a.cmds.Execute(cmd)
}

// --- History bindings ------------------------------------------------------

// Undo reverses the most recent command.
func (a *App) Undo() error { return a.cmds.Undo() }

// Redo re-applies the most recently undone command.
func (a *App) Redo() error { return a.cmds.Redo() }

// CanUndo reports whether history holds an undoable command.
func (a *App) CanUndo() bool { return a.cmds.CanUndo() }

// CanRedo reports whether history holds a redoable command.
func (a *App) CanRedo() bool { return a.cmds.CanRedo() }

// --- Plan bindings ---------------------------------------------------------

// Plan returns a full snapshot for the 2D canvas.
func (a *App) Plan() *plan.PlanData {
	return a.graph.Data()
}

// NewPlan discards the current plan and history. Not a command: there is
// deliberately no undo out of a reset.
func (a *App) NewPlan() {
	a.wall.Deactivate()
	a.wall.Activate()
	a.graph.Clear()
	a.cmds.Reset()
	a.log.Info("plan reset")
	a.planReset()
}

// Meshes builds the 3D view of the current plan.
func (a *App) Meshes() ([]MeshData, error) {
	meshes, err := scene.Build(a.graph, a.kern, scene.Options{NodeColumns: true})
	if err != nil {
		a.log.Error("scene build failed", logging.Error(err))
		return nil, err
	}
	out := make([]MeshData, 0, len(meshes))
	for i, m := range meshes {
		out = append(out, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Label:    m.Label,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return out, nil
}

// --- Script binding --------------------------------------------------------

// EvaluateScript evaluates plan DSL source and, on success, replaces the
// current plan with the scripted one. History is reset, as with NewPlan.
func (a *App) EvaluateScript(source string) ScriptResult {
	result := ScriptResult{Errors: []EvalErrorData{}}

	g, evalErrs, err := a.eng.Evaluate(source)
	if err != nil {
		a.log.Error("script evaluation failed", logging.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.wall.Deactivate()
	a.wall.Activate()
	_ = a.graph.Restore(g.Data())
	a.cmds.Reset()
	a.log.Info("plan replaced by script",
		logging.Int("nodes", a.graph.NodeCount()),
		logging.Int("walls", a.graph.WallCount()))
	a.planReset()
	return result
}

// --- Session bindings ------------------------------------------------------

// SaveSession persists the current plan under name.
func (a *App) SaveSession(name string) error {
	if a.sessions == nil {
		return errNoSessionStore
	}
	if err := a.sessions.Save(name, a.graph); err != nil {
		a.log.Error("save session failed", logging.String("name", name), logging.Error(err))
		return err
	}
	a.log.Info("session saved", logging.String("name", name))
	return nil
}

// LoadSession replaces the current plan with the named saved one.
func (a *App) LoadSession(name string) error {
	if a.sessions == nil {
		return errNoSessionStore
	}
	g, err := a.sessions.Load(name)
	if err != nil {
		a.log.Error("load session failed", logging.String("name", name), logging.Error(err))
		return err
	}
	a.wall.Deactivate()
	a.wall.Activate()
	_ = a.graph.Restore(g.Data())
	a.cmds.Reset()
	a.log.Info("session loaded", logging.String("name", name))
	a.planReset()
	return nil
}

// Sessions lists the saved sessions, most recent first.
func (a *App) Sessions() ([]store.SessionInfo, error) {
	if a.sessions == nil {
		return nil, nil
	}
	return a.sessions.List()
}

// DeleteSession removes a saved session.
func (a *App) DeleteSession(name string) error {
	if a.sessions == nil {
		return errNoSessionStore
	}
	return a.sessions.Delete(name)
}
