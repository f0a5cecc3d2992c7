// Package decay implements the multi-state decay automaton family: every
// non-dormant state has a fixed successor, and the birth/survival check only
// gates the dormant-to-active transition.
package decay

import (
	"fmt"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/core"
	"lifegrid/internal/rule"
)

// Brian's Brain states.
const (
	StateDead   = 0
	StateFiring = 1
	StateDying  = 2
)

// Brain implements Brian's Brain: firing cells always enter the refractory
// state, refractory cells die, and dead cells fire on exactly two firing
// neighbors.
type Brain struct {
	bnd    boundary.Strategy
	be     backend.Backend
	grid   *core.Grid
	next   *core.Grid
	counts []uint8
}

// NewBrain builds a Brian's Brain automaton.
func NewBrain(w, h int, bnd boundary.Strategy, be backend.Backend) (*Brain, error) {
	if bnd == nil || be == nil {
		return nil, core.ErrMissingDependency
	}
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	next, _ := core.NewGrid(w, h)
	return &Brain{bnd: bnd, be: be, grid: grid, next: next, counts: make([]uint8, w*h)}, nil
}

// Name identifies the automaton.
func (b *Brain) Name() string { return "briansbrain" }

// Size returns the grid dimensions.
func (b *Brain) Size() core.Size { return core.Size{W: b.grid.W, H: b.grid.H} }

// States returns the state count (dead, firing, dying).
func (b *Brain) States() int { return 3 }

// Reset zeroes all cells.
func (b *Brain) Reset() { b.grid.Clear() }

// Step advances the automaton by one tick.
func (b *Brain) Step() {
	w, h := b.grid.W, b.grid.H
	cur, nxt := b.grid.Cells(), b.next.Cells()
	b.be.CountState(cur, w, h, rule.Moore, b.bnd, StateFiring, b.counts)
	for i, v := range cur {
		switch v {
		case StateFiring:
			nxt[i] = StateDying
		case StateDying:
			nxt[i] = StateDead
		default:
			if b.counts[i] == 2 {
				nxt[i] = StateFiring
			} else {
				nxt[i] = StateDead
			}
		}
	}
	b.grid, b.next = b.next, b.grid
}

// SetCell writes a single cell, bounds- and state-checked.
func (b *Brain) SetCell(x, y int, value uint8) error {
	if int(value) >= b.States() {
		return core.ErrInvalidState
	}
	return b.grid.Set(x, y, value)
}

// Cells exposes the current state buffer.
func (b *Brain) Cells() []uint8 { return b.grid.Cells() }

// PopulationCells is identical to Cells: the family has no overlay.
func (b *Brain) PopulationCells() []uint8 { return b.grid.Cells() }

// LoadCells overwrites the cell states from a snapshot buffer.
func (b *Brain) LoadCells(cells []uint8) error { return b.grid.LoadCells(cells) }

// Generations implements the Generations family: a B/S rule governs birth
// from the dormant state and survival of state 1; every other state decays
// one step per generation until it reaches dormancy.
type Generations struct {
	r      rule.Rule
	states int
	bnd    boundary.Strategy
	be     backend.Backend
	grid   *core.Grid
	next   *core.Grid
	counts []uint8
}

// NewGenerations builds a Generations automaton with n total states, n >= 3.
func NewGenerations(w, h int, r rule.Rule, states int, bnd boundary.Strategy, be backend.Backend) (*Generations, error) {
	if bnd == nil || be == nil {
		return nil, core.ErrMissingDependency
	}
	if states < 3 {
		return nil, fmt.Errorf("decay: generations needs at least 3 states, got %d", states)
	}
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	next, _ := core.NewGrid(w, h)
	return &Generations{
		r:      r,
		states: states,
		bnd:    bnd,
		be:     be,
		grid:   grid,
		next:   next,
		counts: make([]uint8, w*h),
	}, nil
}

// Name identifies the automaton.
func (g *Generations) Name() string { return "generations" }

// Size returns the grid dimensions.
func (g *Generations) Size() core.Size { return core.Size{W: g.grid.W, H: g.grid.H} }

// States returns the configured state count.
func (g *Generations) States() int { return g.states }

// Reset zeroes all cells.
func (g *Generations) Reset() { g.grid.Clear() }

// Step advances the automaton by one generation. Only state-1 cells count
// as neighbors; decaying cells are inert.
func (g *Generations) Step() {
	w, h := g.grid.W, g.grid.H
	cur, nxt := g.grid.Cells(), g.next.Cells()
	g.be.CountState(cur, w, h, g.r.Neighborhood(), g.bnd, 1, g.counts)
	for i, v := range cur {
		n := int(g.counts[i])
		switch {
		case v == 0:
			if g.r.Born(n) {
				nxt[i] = 1
			} else {
				nxt[i] = 0
			}
		case v == 1:
			if g.r.Survives(n) {
				nxt[i] = 1
			} else {
				nxt[i] = 2
			}
		default:
			if int(v)+1 >= g.states {
				nxt[i] = 0
			} else {
				nxt[i] = v + 1
			}
		}
	}
	g.grid, g.next = g.next, g.grid
}

// SetCell writes a single cell, bounds- and state-checked.
func (g *Generations) SetCell(x, y int, value uint8) error {
	if int(value) >= g.states {
		return core.ErrInvalidState
	}
	return g.grid.Set(x, y, value)
}

// Cells exposes the current state buffer.
func (g *Generations) Cells() []uint8 { return g.grid.Cells() }

// PopulationCells is identical to Cells: the family has no overlay.
func (g *Generations) PopulationCells() []uint8 { return g.grid.Cells() }

// LoadCells overwrites the cell states from a snapshot buffer.
func (g *Generations) LoadCells(cells []uint8) error { return g.grid.LoadCells(cells) }
