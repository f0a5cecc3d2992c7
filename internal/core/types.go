package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Automaton defines the contract every cellular automaton family implements.
//
// Cells returns the display buffer, which for families with a non-cell
// overlay (an agent marker) includes the overlay. PopulationCells returns
// the bare cell states so population counts are never skewed by overlays;
// for most families both return the same buffer.
type Automaton interface {
	Name() string
	Size() Size
	// States is the number of distinct cell states, including overlay values.
	States() int
	// Reset zeroes every cell and returns the automaton to its initial state.
	Reset()
	// Step advances the automaton by one generation.
	Step()
	// SetCell writes a single cell, rejecting out-of-range coordinates and
	// values outside [0, States).
	SetCell(x, y int, value uint8) error
	Cells() []uint8
	PopulationCells() []uint8
	// LoadCells overwrites the cell states from a snapshot buffer.
	LoadCells(cells []uint8) error
}
