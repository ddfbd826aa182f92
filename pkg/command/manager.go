package command

import (
	"github.com/chazu/atrium/pkg/logging"
	"github.com/chazu/atrium/pkg/plan"
)

// DefaultCapacity bounds the undo history when the caller does not choose
// a limit of its own.
const DefaultCapacity = 100

// Notifier receives the change set of every successful mutation, executed
// or replayed. The app layer forwards these to the frontend.
type Notifier func(plan.ChangeSet)

// Manager owns the undo and redo stacks. Executing a fresh command clears
// the redo stack; undo and redo shuttle entries between the two. A command
// whose replay fails is dropped from the history entirely rather than left
// in an unknown state.
type Manager struct {
	log      *logging.Logger
	notify   Notifier
	undo     []Command
	redo     []Command
	capacity int
}

// NewManager returns a manager with the given history capacity; zero or
// negative means DefaultCapacity. A nil logger is replaced with a no-op.
func NewManager(capacity int, log *logging.Logger) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{log: log, capacity: capacity}
}

// SetNotifier installs the change-set callback. Passing nil disables it.
func (m *Manager) SetNotifier(fn Notifier) { m.notify = fn }

// Execute runs the command and, on success, pushes it onto the undo stack.
// The oldest entry is evicted once the stack exceeds capacity.
func (m *Manager) Execute(cmd Command) error {
	cs, err := cmd.Execute()
	if err != nil {
		m.log.Warn("command rejected", logging.String("command", cmd.Name()), logging.Error(err))
		return err
	}
	m.undo = append(m.undo, cmd)
	if len(m.undo) > m.capacity {
		copy(m.undo, m.undo[1:])
		m.undo = m.undo[:m.capacity]
	}
	m.redo = m.redo[:0]
	m.log.Debug("command executed", logging.String("command", cmd.Name()))
	m.emit(cs)
	return nil
}

// Undo reverses the most recent command. With an empty history it does
// nothing and reports no error.
func (m *Manager) Undo() error {
	if len(m.undo) == 0 {
		return nil
	}
	cmd := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]

	cs, err := cmd.Undo()
	if err != nil {
		m.log.Error("undo failed, dropping history entry",
			logging.String("command", cmd.Name()), logging.Error(err))
		return err
	}
	m.redo = append(m.redo, cmd)
	m.log.Debug("command undone", logging.String("command", cmd.Name()))
	m.emit(cs)
	return nil
}

// Redo re-applies the most recently undone command. With an empty redo
// stack it does nothing and reports no error.
func (m *Manager) Redo() error {
	if len(m.redo) == 0 {
		return nil
	}
	cmd := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]

	cs, err := cmd.Execute()
	if err != nil {
		m.log.Error("redo failed, dropping history entry",
			logging.String("command", cmd.Name()), logging.Error(err))
		return err
	}
	m.undo = append(m.undo, cmd)
	m.log.Debug("command redone", logging.String("command", cmd.Name()))
	m.emit(cs)
	return nil
}

// CanUndo reports whether an undoable command exists.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether a redoable command exists.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoDepth returns the number of undoable commands.
func (m *Manager) UndoDepth() int { return len(m.undo) }

// RedoDepth returns the number of redoable commands.
func (m *Manager) RedoDepth() int { return len(m.redo) }

// Reset discards both stacks; used when a new plan replaces the current
// one wholesale.
func (m *Manager) Reset() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) emit(cs plan.ChangeSet) {
	if m.notify == nil || cs.IsEmpty() {
		return
	}
	m.notify(cs)
}
