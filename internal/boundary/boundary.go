// Package boundary implements the edge policies used for out-of-range
// neighbor lookups: toroidal Wrap, dead-border Fixed, and mirror Reflect.
//
// Every automaton routes all neighbor counting through exactly one Strategy,
// either per cell via Count or in bulk via the compute backend, which calls
// the same Resolve. The two paths therefore agree by construction.
package boundary

import (
	"errors"
	"fmt"
	"strings"

	"lifegrid/internal/rule"
)

// ErrUnknownMode indicates a boundary mode name that is not wrap, fixed or reflect.
var ErrUnknownMode = errors.New("boundary: unknown boundary mode")

// Strategy resolves an out-of-range coordinate to an in-range one.
// ok=false means the lookup contributes the dead state.
type Strategy interface {
	Name() string
	Resolve(x, y, w, h int) (int, int, bool)
}

// Wrap applies toroidal wrapping: coordinates are taken modulo width/height.
type Wrap struct{}

// Name returns "wrap".
func (Wrap) Name() string { return "wrap" }

// Resolve wraps both coordinates onto the torus.
func (Wrap) Resolve(x, y, w, h int) (int, int, bool) {
	return (x%w + w) % w, (y%h + h) % h, true
}

// Fixed treats everything outside the grid as permanently dead.
type Fixed struct{}

// Name returns "fixed".
func (Fixed) Name() string { return "fixed" }

// Resolve rejects out-of-range coordinates.
func (Fixed) Resolve(x, y, w, h int) (int, int, bool) {
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// Reflect mirrors out-of-range coordinates across the nearest edge.
type Reflect struct{}

// Name returns "reflect".
func (Reflect) Name() string { return "reflect" }

// Resolve mirrors each coordinate: -x-1 below zero, 2w-x-1 past the edge.
func (Reflect) Resolve(x, y, w, h int) (int, int, bool) {
	return reflect(x, w), reflect(y, h), true
}

func reflect(v, n int) int {
	// Repeated folding handles offsets larger than the axis, which only
	// occurs on grids narrower than the neighborhood radius.
	for v < 0 || v >= n {
		if v < 0 {
			v = -v - 1
		} else {
			v = 2*n - v - 1
		}
	}
	return v
}

// FromString parses a boundary mode name.
func FromString(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wrap":
		return Wrap{}, nil
	case "fixed":
		return Fixed{}, nil
	case "reflect":
		return Reflect{}, nil
	}
	return nil, fmt.Errorf("%w: %q (choose wrap, fixed or reflect)", ErrUnknownMode, name)
}

// Count returns the number of neighbors of (x, y) equal to state, resolving
// every lookup through the strategy.
func Count(s Strategy, cells []uint8, w, h int, neigh rule.Neighborhood, x, y int, state uint8) int {
	count := 0
	for _, off := range neigh.Offsets(y) {
		nx, ny, ok := s.Resolve(x+off[0], y+off[1], w, h)
		if !ok {
			continue
		}
		if cells[ny*w+nx] == state {
			count++
		}
	}
	return count
}
