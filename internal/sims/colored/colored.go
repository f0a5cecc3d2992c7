// Package colored implements the multi-color life-like variants Immigration
// and Rainbow: the classic birth/survival counts run over cells of any color,
// survivors keep their color, and a newborn cell derives its color from its
// three parents.
package colored

import (
	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/core"
	"lifegrid/internal/rule"
)

// Game is a multi-color automaton. Dead is 0; live colors are 1..colors.
type Game struct {
	name    string
	colors  int
	newborn func(colorSum int) uint8
	bnd     boundary.Strategy
	be      backend.Backend
	grid    *core.Grid
	next    *core.Grid
	counts  []uint8
	alive   []uint8
	sums    []int
}

func newGame(name string, w, h, colors int, newborn func(int) uint8, bnd boundary.Strategy, be backend.Backend) (*Game, error) {
	if bnd == nil || be == nil {
		return nil, core.ErrMissingDependency
	}
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	next, _ := core.NewGrid(w, h)
	return &Game{
		name:    name,
		colors:  colors,
		newborn: newborn,
		bnd:     bnd,
		be:      be,
		grid:    grid,
		next:    next,
		counts:  make([]uint8, w*h),
		alive:   make([]uint8, w*h),
		sums:    make([]int, w*h),
	}, nil
}

// NewImmigration builds the Immigration game: three live colors, and a
// newborn takes the successor of its parents' average color.
func NewImmigration(w, h int, bnd boundary.Strategy, be backend.Backend) (*Game, error) {
	return newGame("immigration", w, h, 3, func(colorSum int) uint8 {
		return uint8((colorSum/3)%3 + 1)
	}, bnd, be)
}

// NewRainbow builds the Rainbow game: six live colors, and a newborn takes
// its parents' average color directly.
func NewRainbow(w, h int, bnd boundary.Strategy, be backend.Backend) (*Game, error) {
	return newGame("rainbow", w, h, 6, func(colorSum int) uint8 {
		return uint8(colorSum / 3)
	}, bnd, be)
}

// Name identifies the automaton.
func (g *Game) Name() string { return g.name }

// Size returns the grid dimensions.
func (g *Game) Size() core.Size { return core.Size{W: g.grid.W, H: g.grid.H} }

// States returns the state count: dead plus every live color.
func (g *Game) States() int { return g.colors + 1 }

// Reset zeroes all cells.
func (g *Game) Reset() { g.grid.Clear() }

// Soup randomizes the board: live cells at the classic density, each with a
// uniformly random color.
func (g *Game) Soup(seed int64) {
	r := core.NewRNG(seed)
	cells := g.grid.Cells()
	for i := range cells {
		if r.Float64() < 0.15 {
			cells[i] = uint8(1 + r.Source().IntN(g.colors))
		} else {
			cells[i] = 0
		}
	}
}

// Step advances one generation. Neighbor counts run once per color through
// the backend; the per-cell totals give both the live-neighbor count and the
// color sum a birth draws on.
func (g *Game) Step() {
	w, h := g.grid.W, g.grid.H
	cur, nxt := g.grid.Cells(), g.next.Cells()
	for i := range g.alive {
		g.alive[i] = 0
		g.sums[i] = 0
	}
	for c := 1; c <= g.colors; c++ {
		g.be.CountState(cur, w, h, rule.Moore, g.bnd, uint8(c), g.counts)
		for i, n := range g.counts {
			g.alive[i] += n
			g.sums[i] += c * int(n)
		}
	}
	for i, v := range cur {
		n := g.alive[i]
		switch {
		case v > 0 && (n == 2 || n == 3):
			nxt[i] = v
		case v == 0 && n == 3:
			nxt[i] = g.newborn(g.sums[i])
		default:
			nxt[i] = 0
		}
	}
	g.grid, g.next = g.next, g.grid
}

// SetCell writes a single cell, bounds- and state-checked.
func (g *Game) SetCell(x, y int, value uint8) error {
	if int(value) >= g.States() {
		return core.ErrInvalidState
	}
	return g.grid.Set(x, y, value)
}

// Cells exposes the current state buffer.
func (g *Game) Cells() []uint8 { return g.grid.Cells() }

// PopulationCells is identical to Cells: the family has no overlay.
func (g *Game) PopulationCells() []uint8 { return g.grid.Cells() }

// LoadCells overwrites the cell states from a snapshot buffer.
func (g *Game) LoadCells(cells []uint8) error { return g.grid.LoadCells(cells) }
