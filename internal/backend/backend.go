// Package backend provides the bulk-array compute strategy behind every
// automaton: neighbor convolution, reductions and the local-diversity
// transform. Two interchangeable implementations exist, a plain CPU path
// and an Arrow-accelerated path using SIMD reduction kernels. The backend
// is selected once at startup; probe failures fall back to the CPU silently
// and permanently for the process.
package backend

import (
	"lifegrid/internal/boundary"
	"lifegrid/internal/rule"
)

// Backend is the bulk-array compute contract shared by all automata.
type Backend interface {
	Name() string
	// CountState writes into dst, for every cell, the number of neighbors
	// equal to state. Every lookup resolves through the boundary strategy.
	CountState(cells []uint8, w, h int, neigh rule.Neighborhood, s boundary.Strategy, state uint8, dst []uint8)
	// Population returns the number of non-dead cells.
	Population(cells []uint8) int
	// Histogram returns per-state cell counts for states in [0, states).
	Histogram(cells []uint8, states int) []int
	// LocalDiversity returns the mean fraction of Moore neighbors differing
	// from each cell, a windowed complexity score in [0, 1].
	LocalDiversity(cells []uint8, w, h int, s boundary.Strategy) float64
}

// countState is the single convolution routine shared by both backends so
// their neighbor counts are identical by construction.
func countState(cells []uint8, w, h int, neigh rule.Neighborhood, s boundary.Strategy, state uint8, dst []uint8) {
	for y := 0; y < h; y++ {
		offsets := neigh.Offsets(y)
		for x := 0; x < w; x++ {
			count := uint8(0)
			for _, off := range offsets {
				nx, ny, ok := s.Resolve(x+off[0], y+off[1], w, h)
				if !ok {
					continue
				}
				if cells[ny*w+nx] == state {
					count++
				}
			}
			dst[y*w+x] = count
		}
	}
}

// CPU is the always-available scalar compute backend.
type CPU struct{}

// NewCPU returns the scalar backend.
func NewCPU() *CPU { return &CPU{} }

// Name returns "cpu".
func (*CPU) Name() string { return "cpu" }

// CountState computes neighbor counts for the whole grid in one pass.
func (*CPU) CountState(cells []uint8, w, h int, neigh rule.Neighborhood, s boundary.Strategy, state uint8, dst []uint8) {
	countState(cells, w, h, neigh, s, state, dst)
}

// Population counts non-dead cells.
func (*CPU) Population(cells []uint8) int {
	n := 0
	for _, v := range cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Histogram counts cells per state.
func (*CPU) Histogram(cells []uint8, states int) []int {
	hist := make([]int, states)
	for _, v := range cells {
		if int(v) < states {
			hist[v]++
		}
	}
	return hist
}

// LocalDiversity computes the mean differing-neighbor fraction.
func (*CPU) LocalDiversity(cells []uint8, w, h int, s boundary.Strategy) float64 {
	if len(cells) == 0 {
		return 0
	}
	diff := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := cells[y*w+x]
			for _, off := range rule.Moore.Offsets(y) {
				nx, ny, ok := s.Resolve(x+off[0], y+off[1], w, h)
				if !ok {
					continue
				}
				if cells[ny*w+nx] != v {
					diff++
				}
			}
		}
	}
	return float64(diff) / float64(8*len(cells))
}
