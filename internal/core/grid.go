package core

// Grid stores a 2D grid of byte-sized cell values in row-major order.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}, nil
}

// GridFromCells builds a grid around a copy of the provided cell buffer.
func GridFromCells(w, h int, cells []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(cells) != w*h {
		return nil, ErrSizeMismatch
	}
	data := make([]uint8, len(cells))
	copy(data, cells)
	return &Grid{W: w, H: h, data: data}, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the value at (x, y).
func (g *Grid) Get(x, y int) (uint8, error) {
	if !g.InBounds(x, y) {
		return 0, ErrOutOfRange
	}
	return g.data[y*g.W+x], nil
}

// Set writes value at (x, y). The grid is left unmodified on a bounds error.
func (g *Grid) Set(x, y int, value uint8) error {
	if !g.InBounds(x, y) {
		return ErrOutOfRange
	}
	g.data[y*g.W+x] = value
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]uint8, len(g.data))
	copy(data, g.data)
	return &Grid{W: g.W, H: g.H, data: data}
}

// CopyFrom overwrites the grid contents with those of src.
func (g *Grid) CopyFrom(src *Grid) error {
	if src.W != g.W || src.H != g.H {
		return ErrSizeMismatch
	}
	copy(g.data, src.data)
	return nil
}

// LoadCells overwrites the grid contents from a raw cell buffer.
func (g *Grid) LoadCells(cells []uint8) error {
	if len(cells) != len(g.data) {
		return ErrSizeMismatch
	}
	copy(g.data, cells)
	return nil
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, v := range g.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}
