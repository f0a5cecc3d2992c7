package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/metrics"
)

func TestRecordBasics(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 10, 10)
	cells := make([]uint8, 16)
	cells[0], cells[5], cells[10], cells[15] = 1, 1, 1, 1

	rec := c.Record(1, cells, 4, 4, 2, boundary.Wrap{})
	assert.Equal(t, 1, rec.Generation)
	assert.Equal(t, 4, rec.Population)
	assert.Zero(t, rec.Delta, "first record has no baseline")
	assert.InDelta(t, 0.25, rec.Density, 1e-12)

	cells[1] = 1
	rec = c.Record(2, cells, 4, 4, 2, boundary.Wrap{})
	assert.Equal(t, 1, rec.Delta)
}

func TestUniformGridEntropyIsZero(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 10, 10)
	cells := make([]uint8, 64)

	rec := c.Record(1, cells, 8, 8, 2, boundary.Wrap{})
	assert.Zero(t, rec.Entropy)
	assert.Zero(t, rec.Complexity)

	for i := range cells {
		cells[i] = 1
	}
	rec = c.Record(2, cells, 8, 8, 2, boundary.Wrap{})
	assert.Zero(t, rec.Entropy)
}

func TestHalfAndHalfEntropyIsOneBit(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 10, 10)
	cells := make([]uint8, 64)
	for i := 32; i < 64; i++ {
		cells[i] = 1
	}
	rec := c.Record(1, cells, 8, 8, 2, boundary.Wrap{})
	assert.InDelta(t, 1.0, rec.Entropy, 1e-12)
}

func TestCycleDetection(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 10, 10)
	// A blinker alternates between two phases with period 2.
	horiz := make([]uint8, 25)
	horiz[11], horiz[12], horiz[13] = 1, 1, 1
	vert := make([]uint8, 25)
	vert[7], vert[12], vert[17] = 1, 1, 1

	r1 := c.Record(1, horiz, 5, 5, 2, boundary.Wrap{})
	r2 := c.Record(2, vert, 5, 5, 2, boundary.Wrap{})
	r3 := c.Record(3, horiz, 5, 5, 2, boundary.Wrap{})

	assert.Zero(t, r1.CyclePeriod)
	assert.Zero(t, r2.CyclePeriod)
	assert.Equal(t, 2, r3.CyclePeriod)
}

func TestCapacitiesEvictOldest(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 3, 2)
	cells := make([]uint8, 9)
	for gen := 1; gen <= 6; gen++ {
		cells[gen%9] = uint8(gen % 2)
		c.Record(gen, cells, 3, 3, 2, boundary.Wrap{})
	}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.HashLen())

	recs := c.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, 4, recs[0].Generation)
	assert.Equal(t, 6, recs[2].Generation)
}

func TestCycleBeyondHashCapacityMissed(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 10, 2)
	a := []uint8{1, 0, 0, 0}
	b := []uint8{0, 1, 0, 0}
	d := []uint8{0, 0, 1, 0}

	c.Record(1, a, 2, 2, 2, boundary.Wrap{})
	c.Record(2, b, 2, 2, 2, boundary.Wrap{})
	c.Record(3, d, 2, 2, 2, boundary.Wrap{})
	// a's hash was evicted at generation 3; its return is not detected.
	rec := c.Record(4, a, 2, 2, 2, boundary.Wrap{})
	assert.Zero(t, rec.CyclePeriod)
}

func TestSummarizeAndReset(t *testing.T) {
	c := metrics.NewCollector(backend.NewCPU(), 10, 10)
	assert.Zero(t, c.Summarize().Generations)

	cells := make([]uint8, 16)
	cells[0] = 1
	c.Record(1, cells, 4, 4, 2, boundary.Wrap{})
	cells[1], cells[2] = 1, 1
	c.Record(2, cells, 4, 4, 2, boundary.Wrap{})

	s := c.Summarize()
	assert.Equal(t, 2, s.Generations)
	assert.Equal(t, 3, s.CurrentPopulation)
	assert.Equal(t, 3, s.MaxPopulation)
	assert.InDelta(t, (1.0/16+3.0/16)/2, s.AvgDensity, 1e-12)

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.HashLen())
	rec := c.Record(5, cells, 4, 4, 2, boundary.Wrap{})
	assert.Zero(t, rec.Delta, "reset clears the delta baseline")
}
