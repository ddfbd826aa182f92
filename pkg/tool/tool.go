// Package tool turns raw pointer and keyboard events into graph commands.
// Each tool is a small state machine; the registry tracks which one is
// active and routes events to it.
package tool

import (
	"fmt"

	"github.com/chazu/atrium/pkg/geom"
)

// Mode is the interaction state of a tool.
type Mode int

const (
	Idle Mode = iota
	Drawing
	MovingNode
	SplittingWall
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case MovingNode:
		return "moving-node"
	case SplittingWall:
		return "splitting-wall"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// PointerEvent is one pointer-down/move/up sample in plan coordinates.
type PointerEvent struct {
	Pos geom.Point
}

// KeyEvent carries a logical key identifier, matching the DOM key names
// the frontend reports.
type KeyEvent struct {
	Key string
}

// KeyCancel aborts the interaction in progress.
const KeyCancel = "Escape"

// Tool handles the event stream while it is the active tool. Variants
// implement this directly; there is no base-tool hierarchy.
type Tool interface {
	Name() string
	Activate()
	Deactivate()
	PointerDown(PointerEvent)
	PointerMove(PointerEvent)
	PointerUp(PointerEvent)
	KeyDown(KeyEvent)
	KeyUp(KeyEvent)
}

// Registry holds the available tools and dispatches to the active one.
// Events arriving while no tool is active are dropped.
type Registry struct {
	tools  map[string]Tool
	active Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its own name, replacing any previous
// registration of that name.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Activate switches to the named tool, deactivating the current one.
func (r *Registry) Activate(name string) error {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Errorf("activate tool: unknown tool %q", name)
	}
	if r.active == t {
		return nil
	}
	if r.active != nil {
		r.active.Deactivate()
	}
	r.active = t
	t.Activate()
	return nil
}

// Active returns the active tool, or nil.
func (r *Registry) Active() Tool { return r.active }

// PointerDown forwards to the active tool.
func (r *Registry) PointerDown(ev PointerEvent) {
	if r.active != nil {
		r.active.PointerDown(ev)
	}
}

// PointerMove forwards to the active tool.
func (r *Registry) PointerMove(ev PointerEvent) {
	if r.active != nil {
		r.active.PointerMove(ev)
	}
}

// PointerUp forwards to the active tool.
func (r *Registry) PointerUp(ev PointerEvent) {
	if r.active != nil {
		r.active.PointerUp(ev)
	}
}

// KeyDown forwards to the active tool.
func (r *Registry) KeyDown(ev KeyEvent) {
	if r.active != nil {
		r.active.KeyDown(ev)
	}
}

// KeyUp forwards to the active tool.
func (r *Registry) KeyUp(ev KeyEvent) {
	if r.active != nil {
		r.active.KeyUp(ev)
	}
}
