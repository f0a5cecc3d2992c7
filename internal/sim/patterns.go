package sim

import (
	"fmt"
	"sort"
)

// Named seed patterns as offsets from the pattern's own origin.
var patterns = map[string][]Cell{
	"glider": {
		{X: 1, Y: 0},
		{X: 2, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
	},
	"block": {
		{X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
	},
	"blinker": {
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	},
	"r-pentomino": {
		{X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 1, Y: 2},
	},
}

// Patterns lists the available seed pattern names in sorted order.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pattern returns the named pattern's cells centered on a w-by-h grid.
// Cells falling outside the grid are clipped.
func Pattern(name string, w, h int) ([]Cell, error) {
	offsets, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("sim: unknown pattern %q", name)
	}
	maxX, maxY := 0, 0
	for _, c := range offsets {
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	offX := (w - maxX - 1) / 2
	offY := (h - maxY - 1) / 2
	out := make([]Cell, 0, len(offsets))
	for _, c := range offsets {
		x, y := c.X+offX, c.Y+offY
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		out = append(out, Cell{X: x, Y: y})
	}
	return out, nil
}
