// Package lifelike implements the birth/survival automaton family over
// Moore or hexagonal neighborhoods, covering Conway's Game of Life and its
// relatives through a single declarative rule.
package lifelike

import (
	"fmt"
	"sort"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/core"
	"lifegrid/internal/rule"
)

// SoupDensity is the live-cell probability used by Soup seeding.
const SoupDensity = 0.15

// Automaton is a generic life-like cellular automaton.
type Automaton struct {
	name   string
	r      rule.Rule
	bnd    boundary.Strategy
	be     backend.Backend
	grid   *core.Grid
	next   *core.Grid
	counts []uint8
}

// New builds a life-like automaton with an explicit rule. The boundary
// strategy and compute backend are required; the rule was validated against
// its neighborhood at construction.
func New(name string, w, h int, r rule.Rule, bnd boundary.Strategy, be backend.Backend) (*Automaton, error) {
	if bnd == nil || be == nil {
		return nil, core.ErrMissingDependency
	}
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	next, _ := core.NewGrid(w, h)
	return &Automaton{
		name:   name,
		r:      r,
		bnd:    bnd,
		be:     be,
		grid:   grid,
		next:   next,
		counts: make([]uint8, w*h),
	}, nil
}

type preset struct {
	rulestring string
	neigh      rule.Neighborhood
}

var presets = map[string]preset{
	"life":     {"B3/S23", rule.Moore},
	"highlife": {"B36/S23", rule.Moore},
	"seeds":    {"B2/S", rule.Moore},
	"daynight": {"B3678/S34678", rule.Moore},
	"hexlife":  {"B2/S34", rule.Hex},
}

// NewPreset builds an automaton from a named preset rule.
func NewPreset(name string, w, h int, bnd boundary.Strategy, be backend.Backend) (*Automaton, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("lifelike: unknown preset %q", name)
	}
	r, err := rule.ParseBSNeighborhood(p.rulestring, p.neigh)
	if err != nil {
		return nil, err
	}
	return New(name, w, h, r, bnd, be)
}

// Presets lists the built-in preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the automaton identifier.
func (a *Automaton) Name() string { return a.name }

// Size returns the grid dimensions.
func (a *Automaton) Size() core.Size { return core.Size{W: a.grid.W, H: a.grid.H} }

// States returns the state count (dead, alive).
func (a *Automaton) States() int { return 2 }

// Rule returns the active rule definition.
func (a *Automaton) Rule() rule.Rule { return a.r }

// Reset zeroes all cells.
func (a *Automaton) Reset() { a.grid.Clear() }

// Soup randomizes the board with live cells at SoupDensity.
func (a *Automaton) Soup(seed int64) {
	core.FillSoup(core.NewRNG(seed), a.grid.Cells(), SoupDensity)
}

// Step advances the automaton by one generation: neighbor counts for the
// whole grid in one pass, then the rule applied into the back buffer.
func (a *Automaton) Step() {
	w, h := a.grid.W, a.grid.H
	cur, nxt := a.grid.Cells(), a.next.Cells()
	a.be.CountState(cur, w, h, a.r.Neighborhood(), a.bnd, 1, a.counts)
	for i, v := range cur {
		n := int(a.counts[i])
		switch {
		case v == 1 && a.r.Survives(n):
			nxt[i] = 1
		case v == 0 && a.r.Born(n):
			nxt[i] = 1
		default:
			nxt[i] = 0
		}
	}
	a.grid, a.next = a.next, a.grid
}

// SetCell writes a single cell, bounds- and state-checked.
func (a *Automaton) SetCell(x, y int, value uint8) error {
	if int(value) >= a.States() {
		return core.ErrInvalidState
	}
	return a.grid.Set(x, y, value)
}

// Cells exposes the current state buffer.
func (a *Automaton) Cells() []uint8 { return a.grid.Cells() }

// PopulationCells is identical to Cells: the family has no overlay.
func (a *Automaton) PopulationCells() []uint8 { return a.grid.Cells() }

// LoadCells overwrites the cell states from a snapshot buffer.
func (a *Automaton) LoadCells(cells []uint8) error { return a.grid.LoadCells(cells) }
