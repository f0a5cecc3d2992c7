// Package ant implements Langton's Ant, the agent automaton family: grid
// state plus an explicit agent position and heading. The ant marker is a
// display-only overlay and never appears in the population cells.
package ant

import (
	"lifegrid/internal/boundary"
	"lifegrid/internal/core"
)

// Cell and overlay values.
const (
	White  = 0
	Black  = 1
	Marker = 2
)

// Heading values, clockwise from north.
const (
	North = 0
	East  = 1
	South = 2
	West  = 3
)

var moves = [4][2]int{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

// Ant is a Langton's Ant automaton. The agent family does no bulk neighbor
// counting, so unlike the other families it takes no compute backend.
type Ant struct {
	bnd     boundary.Strategy
	grid    *core.Grid
	display []uint8
	x, y    int
	heading int
}

// New builds a Langton's Ant automaton with the ant centered, facing north.
func New(w, h int, bnd boundary.Strategy) (*Ant, error) {
	if bnd == nil {
		return nil, core.ErrMissingDependency
	}
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	return &Ant{
		bnd:     bnd,
		grid:    grid,
		display: make([]uint8, w*h),
		x:       w / 2,
		y:       h / 2,
		heading: North,
	}, nil
}

// Name identifies the automaton.
func (a *Ant) Name() string { return "ant" }

// Size returns the grid dimensions.
func (a *Ant) Size() core.Size { return core.Size{W: a.grid.W, H: a.grid.H} }

// States returns the state count including the display marker.
func (a *Ant) States() int { return 3 }

// Position returns the ant's current cell.
func (a *Ant) Position() (int, int) { return a.x, a.y }

// Heading returns the ant's current heading.
func (a *Ant) Heading() int { return a.heading }

// Reset zeroes all cells and recenters the ant facing north.
func (a *Ant) Reset() {
	a.grid.Clear()
	a.x, a.y = a.grid.W/2, a.grid.H/2
	a.heading = North
}

// Step turns the ant by the cell beneath it, flips that cell, and advances.
// On a white cell the ant turns right, on a black cell left. The move is
// resolved through the boundary strategy; under a Fixed boundary a move off
// the grid leaves the ant in place.
func (a *Ant) Step() {
	cells := a.grid.Cells()
	idx := a.grid.Index(a.x, a.y)
	if cells[idx] == White {
		a.heading = (a.heading + 1) % 4
		cells[idx] = Black
	} else {
		a.heading = (a.heading + 3) % 4
		cells[idx] = White
	}
	mv := moves[a.heading]
	nx, ny, ok := a.bnd.Resolve(a.x+mv[0], a.y+mv[1], a.grid.W, a.grid.H)
	if ok {
		a.x, a.y = nx, ny
	}
}

// SetCell writes a single cell. The marker value is display-only and is
// rejected here.
func (a *Ant) SetCell(x, y int, value uint8) error {
	if value > Black {
		return core.ErrInvalidState
	}
	return a.grid.Set(x, y, value)
}

// Cells returns the display buffer: cell states with the ant marker overlaid.
func (a *Ant) Cells() []uint8 {
	copy(a.display, a.grid.Cells())
	a.display[a.grid.Index(a.x, a.y)] = Marker
	return a.display
}

// PopulationCells returns the bare cell states without the ant marker.
func (a *Ant) PopulationCells() []uint8 { return a.grid.Cells() }

// LoadCells overwrites the cell states from a snapshot buffer. The ant's
// position and heading are not part of the snapshot.
func (a *Ant) LoadCells(cells []uint8) error { return a.grid.LoadCells(cells) }
