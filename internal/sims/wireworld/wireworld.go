// Package wireworld implements the wire-logic automaton family: electron
// heads travel along conductors, decaying through tails back to conductor.
package wireworld

import (
	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/core"
	"lifegrid/internal/rule"
)

// Cell states.
const (
	Empty     = 0
	Conductor = 1
	Head      = 2
	Tail      = 3
)

// Wire is a Wireworld automaton.
type Wire struct {
	bnd    boundary.Strategy
	be     backend.Backend
	grid   *core.Grid
	next   *core.Grid
	counts []uint8
}

// New builds a Wireworld automaton.
func New(w, h int, bnd boundary.Strategy, be backend.Backend) (*Wire, error) {
	if bnd == nil || be == nil {
		return nil, core.ErrMissingDependency
	}
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	next, _ := core.NewGrid(w, h)
	return &Wire{bnd: bnd, be: be, grid: grid, next: next, counts: make([]uint8, w*h)}, nil
}

// Name identifies the automaton.
func (w *Wire) Name() string { return "wireworld" }

// Size returns the grid dimensions.
func (w *Wire) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// States returns the state count (empty, conductor, head, tail).
func (w *Wire) States() int { return 4 }

// Reset zeroes all cells.
func (w *Wire) Reset() { w.grid.Clear() }

// Step advances one tick: head to tail, tail to conductor, and a conductor
// becomes a head when exactly one or two of its neighbors are heads.
func (w *Wire) Step() {
	gw, gh := w.grid.W, w.grid.H
	cur, nxt := w.grid.Cells(), w.next.Cells()
	w.be.CountState(cur, gw, gh, rule.Moore, w.bnd, Head, w.counts)
	for i, v := range cur {
		switch v {
		case Head:
			nxt[i] = Tail
		case Tail:
			nxt[i] = Conductor
		case Conductor:
			if n := w.counts[i]; n == 1 || n == 2 {
				nxt[i] = Head
			} else {
				nxt[i] = Conductor
			}
		default:
			nxt[i] = Empty
		}
	}
	w.grid, w.next = w.next, w.grid
}

// SetCell writes a single cell, bounds- and state-checked.
func (w *Wire) SetCell(x, y int, value uint8) error {
	if int(value) >= w.States() {
		return core.ErrInvalidState
	}
	return w.grid.Set(x, y, value)
}

// Cells exposes the current state buffer.
func (w *Wire) Cells() []uint8 { return w.grid.Cells() }

// PopulationCells is identical to Cells: the family has no overlay.
func (w *Wire) PopulationCells() []uint8 { return w.grid.Cells() }

// LoadCells overwrites the cell states from a snapshot buffer.
func (w *Wire) LoadCells(cells []uint8) error { return w.grid.LoadCells(cells) }
