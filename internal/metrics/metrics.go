// Package metrics collects per-generation derived statistics: population,
// delta, density, Shannon entropy, a windowed complexity score, and a
// cycle-period estimate from a capped hash history.
package metrics

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
)

// Record is an immutable per-generation metrics entry. CyclePeriod is 0 when
// no earlier identical grid state is within the hash history.
type Record struct {
	Generation  int
	Population  int
	Delta       int
	Density     float64
	Entropy     float64
	Complexity  float64
	CyclePeriod int
}

// Summary aggregates the retained metrics log.
type Summary struct {
	Generations       int
	CurrentPopulation int
	MaxPopulation     int
	AvgDensity        float64
	AvgEntropy        float64
}

type hashEntry struct {
	generation int
	hash       uint64
}

// Default capacities for the metrics log and hash history.
const (
	DefaultLogCapacity  = 1000
	DefaultHashCapacity = 256
)

// Collector records per-generation statistics into a capacity-bounded log.
// Oldest entries are evicted once a capacity is exceeded; the hash history
// used for cycle detection is bounded the same way.
type Collector struct {
	be      backend.Backend
	logCap  int
	hashCap int
	records []Record
	hashes  []hashEntry
	prevPop int
	primed  bool
}

// NewCollector builds a collector using the given compute backend for bulk
// grid reductions. Non-positive capacities fall back to the defaults.
func NewCollector(be backend.Backend, logCap, hashCap int) *Collector {
	if logCap <= 0 {
		logCap = DefaultLogCapacity
	}
	if hashCap <= 0 {
		hashCap = DefaultHashCapacity
	}
	return &Collector{be: be, logCap: logCap, hashCap: hashCap}
}

// Record computes and appends the metrics for a post-step grid. cells must
// be the population view, free of any display overlay.
func (c *Collector) Record(generation int, cells []uint8, w, h, states int, bnd boundary.Strategy) Record {
	pop := c.be.Population(cells)
	delta := 0
	if c.primed {
		delta = pop - c.prevPop
	}
	c.prevPop = pop
	c.primed = true

	rec := Record{
		Generation:  generation,
		Population:  pop,
		Delta:       delta,
		Density:     float64(pop) / float64(len(cells)),
		Entropy:     c.entropy(cells, states),
		Complexity:  c.be.LocalDiversity(cells, w, h, bnd),
		CyclePeriod: c.cyclePeriod(generation, cells),
	}

	c.records = append(c.records, rec)
	if len(c.records) > c.logCap {
		c.records = c.records[1:]
	}
	return rec
}

// entropy is the Shannon entropy of the normalized state histogram, base 2.
// A grid holding a single state has exactly zero entropy.
func (c *Collector) entropy(cells []uint8, states int) float64 {
	hist := c.be.Histogram(cells, states)
	total := float64(len(cells))
	e := 0.0
	for _, n := range hist {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		e -= p * math.Log2(p)
	}
	return e
}

// cyclePeriod hashes the grid state and reports the distance to the most
// recent identical hash in the bounded history, 0 if none.
func (c *Collector) cyclePeriod(generation int, cells []uint8) int {
	h := xxhash.Sum64(cells)
	period := 0
	for i := len(c.hashes) - 1; i >= 0; i-- {
		if c.hashes[i].hash == h {
			period = generation - c.hashes[i].generation
			break
		}
	}
	c.hashes = append(c.hashes, hashEntry{generation: generation, hash: h})
	if len(c.hashes) > c.hashCap {
		c.hashes = c.hashes[1:]
	}
	return period
}

// Records returns a copy of the retained metrics log, oldest first.
func (c *Collector) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of retained records.
func (c *Collector) Len() int { return len(c.records) }

// HashLen returns the number of retained grid hashes.
func (c *Collector) HashLen() int { return len(c.hashes) }

// Reset drops all recorded state.
func (c *Collector) Reset() {
	c.records = c.records[:0]
	c.hashes = c.hashes[:0]
	c.prevPop = 0
	c.primed = false
}

// Summarize aggregates the retained log.
func (c *Collector) Summarize() Summary {
	s := Summary{Generations: len(c.records)}
	if len(c.records) == 0 {
		return s
	}
	sumDensity, sumEntropy := 0.0, 0.0
	for _, r := range c.records {
		if r.Population > s.MaxPopulation {
			s.MaxPopulation = r.Population
		}
		sumDensity += r.Density
		sumEntropy += r.Entropy
	}
	s.CurrentPopulation = c.records[len(c.records)-1].Population
	s.AvgDensity = sumDensity / float64(len(c.records))
	s.AvgEntropy = sumEntropy / float64(len(c.records))
	return s
}
