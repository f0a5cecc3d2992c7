// Package history provides the bounded undo/redo stack of grid snapshots.
// History is strictly linear: any push after an undo clears the redo stack.
package history

import (
	"errors"

	"lifegrid/internal/core"
)

// ErrEmptyHistory indicates an undo or redo with no saved state to restore.
var ErrEmptyHistory = errors.New("history: no state to restore")

// Snapshot is an action label plus an owned deep copy of a grid.
type Snapshot struct {
	Label string
	Grid  *core.Grid
}

// Summary describes the current undo/redo stacks for display.
type Summary struct {
	UndoCount int
	RedoCount int
	LastUndo  string
	LastRedo  string
}

// UndoManager holds bounded undo and redo stacks of snapshots. It requires
// single-writer discipline; there is no internal locking.
type UndoManager struct {
	max  int
	undo []Snapshot
	redo []Snapshot
}

// DefaultMaxHistory is the snapshot cap used when none is configured.
const DefaultMaxHistory = 100

// New creates an undo manager retaining at most max snapshots per stack.
func New(max int) *UndoManager {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &UndoManager{max: max}
}

// Push deep-copies grid onto the undo stack, evicting the oldest snapshot
// once the cap is exceeded, and clears the redo stack.
func (m *UndoManager) Push(label string, grid *core.Grid) {
	m.undo = append(m.undo, Snapshot{Label: label, Grid: grid.Clone()})
	if len(m.undo) > m.max {
		m.undo = m.undo[1:]
	}
	m.redo = m.redo[:0]
}

// Undo pops the most recent snapshot, pushing a copy of current onto the
// redo stack so the step can be replayed.
func (m *UndoManager) Undo(current *core.Grid) (Snapshot, error) {
	if len(m.undo) == 0 {
		return Snapshot{}, ErrEmptyHistory
	}
	snap := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, Snapshot{Label: snap.Label, Grid: current.Clone()})
	if len(m.redo) > m.max {
		m.redo = m.redo[1:]
	}
	return snap, nil
}

// Redo pops the most recent redo snapshot, pushing a copy of current back
// onto the undo stack.
func (m *UndoManager) Redo(current *core.Grid) (Snapshot, error) {
	if len(m.redo) == 0 {
		return Snapshot{}, ErrEmptyHistory
	}
	snap := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, Snapshot{Label: snap.Label, Grid: current.Clone()})
	if len(m.undo) > m.max {
		m.undo = m.undo[1:]
	}
	return snap, nil
}

// CanUndo reports whether an undo snapshot is available.
func (m *UndoManager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (m *UndoManager) CanRedo() bool { return len(m.redo) > 0 }

// Clear drops all history.
func (m *UndoManager) Clear() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

// HistorySummary reports stack depths and the most recent action labels.
func (m *UndoManager) HistorySummary() Summary {
	s := Summary{UndoCount: len(m.undo), RedoCount: len(m.redo)}
	if len(m.undo) > 0 {
		s.LastUndo = m.undo[len(m.undo)-1].Label
	}
	if len(m.redo) > 0 {
		s.LastRedo = m.redo[len(m.redo)-1].Label
	}
	return s
}
