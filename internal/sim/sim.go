// Package sim provides the Simulator, the composition root of the engine.
// It owns one automaton, the undo manager and the metrics collector, and is
// the sole interface external collaborators use.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/core"
	"lifegrid/internal/history"
	"lifegrid/internal/metrics"
	"lifegrid/internal/plugin"
	"lifegrid/internal/rule"
	"lifegrid/internal/sims/ant"
	"lifegrid/internal/sims/colored"
	"lifegrid/internal/sims/decay"
	"lifegrid/internal/sims/lifelike"
	"lifegrid/internal/sims/wireworld"
	"lifegrid/pkg/automaton"
)

var (
	// ErrUnknownRule indicates an initialize request for a rule id that is
	// neither built in, registered as a plugin, nor a parseable rulestring.
	ErrUnknownRule = errors.New("sim: unknown rule")
	// ErrNotInitialized indicates an operation before Initialize.
	ErrNotInitialized = errors.New("sim: automaton not initialized, call Initialize first")
	// ErrNegativeSteps indicates a Step call with a negative count.
	ErrNegativeSteps = errors.New("sim: step count must be >= 0")
)

// Cell is a live-cell coordinate used for initial patterns.
type Cell struct {
	X, Y int
}

// Options configures a Simulator.
type Options struct {
	Width             int
	Height            int
	UndoDepth         int
	MetricsCapacity   int
	HashCapacity      int
	GenerationsStates int
}

// Summary aggregates metrics and history availability.
type Summary struct {
	Metrics       metrics.Summary
	UndoAvailable bool
	RedoAvailable bool
}

type factory func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error)

// Simulator drives one automaton generation by generation, recording undo
// snapshots and per-generation metrics. It is single-threaded: callers
// provide their own scheduling and synchronization.
type Simulator struct {
	log       *slog.Logger
	opts      Options
	bnd       boundary.Strategy
	be        backend.Backend
	reg       *plugin.Registry
	builtins  map[string]factory
	auto      core.Automaton
	collector *metrics.Collector
	undo      *history.UndoManager
	gen       int
	onStep    func(metrics.Record)
}

// New builds a Simulator. The boundary strategy and compute backend are
// required dependencies; configuration errors surface here, not at first
// step. A nil registry gets an empty one.
func New(opts Options, bnd boundary.Strategy, be backend.Backend, reg *plugin.Registry, log *slog.Logger) (*Simulator, error) {
	if bnd == nil || be == nil {
		return nil, core.ErrMissingDependency
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, core.ErrInvalidDimensions
	}
	if log == nil {
		log = slog.Default()
	}
	if reg == nil {
		reg = plugin.NewRegistry(log)
	}
	if opts.GenerationsStates == 0 {
		opts.GenerationsStates = 5
	}
	s := &Simulator{
		log:       log,
		opts:      opts,
		bnd:       bnd,
		be:        be,
		reg:       reg,
		collector: metrics.NewCollector(be, opts.MetricsCapacity, opts.HashCapacity),
		undo:      history.New(opts.UndoDepth),
	}
	s.builtins = map[string]factory{
		"briansbrain": func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error) {
			return decay.NewBrain(w, h, bnd, be)
		},
		"generations": func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error) {
			r, err := rule.ParseBS("B3/S23")
			if err != nil {
				return nil, err
			}
			return decay.NewGenerations(w, h, r, opts.GenerationsStates, bnd, be)
		},
		"ant": func(w, h int, bnd boundary.Strategy, _ backend.Backend) (core.Automaton, error) {
			return ant.New(w, h, bnd)
		},
		"wireworld": func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error) {
			return wireworld.New(w, h, bnd, be)
		},
		"immigration": func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error) {
			return colored.NewImmigration(w, h, bnd, be)
		},
		"rainbow": func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error) {
			return colored.NewRainbow(w, h, bnd, be)
		},
	}
	for _, name := range lifelike.Presets() {
		preset := name
		s.builtins[preset] = func(w, h int, bnd boundary.Strategy, be backend.Backend) (core.Automaton, error) {
			return lifelike.NewPreset(preset, w, h, bnd, be)
		}
	}
	return s, nil
}

// Rules returns every rule id Initialize accepts by name: built-in families
// first, then registered plugins, all sorted within their group.
func (s *Simulator) Rules() []string {
	names := make([]string, 0, len(s.builtins))
	for name := range s.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, s.reg.List()...)
}

// Initialize constructs the automaton for ruleID and optionally seeds it
// with live cells. ruleID is a built-in family name, a registered plugin
// name, or a B/S rulestring like "B36/S23". Cells outside the grid are
// ignored. Metrics and history restart from zero.
func (s *Simulator) Initialize(ruleID string, cells []Cell) error {
	a, err := s.build(ruleID)
	if err != nil {
		return err
	}
	s.auto = a
	s.gen = 0
	s.collector.Reset()
	s.undo.Clear()
	for _, c := range cells {
		if err := a.SetCell(c.X, c.Y, 1); err != nil && !errors.Is(err, core.ErrOutOfRange) {
			return err
		}
	}
	s.log.Debug("initialized", "rule", ruleID, "width", s.opts.Width, "height", s.opts.Height,
		"boundary", s.bnd.Name(), "backend", s.be.Name())
	return nil
}

func (s *Simulator) build(ruleID string) (core.Automaton, error) {
	if f, ok := s.builtins[ruleID]; ok {
		return f(s.opts.Width, s.opts.Height, s.bnd, s.be)
	}
	if _, ok := s.reg.Get(ruleID); ok {
		return s.reg.Create(ruleID, s.opts.Width, s.opts.Height)
	}
	if strings.Contains(ruleID, "/") {
		r, err := rule.ParseBS(ruleID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownRule, ruleID, err)
		}
		return lifelike.New(ruleID, s.opts.Width, s.opts.Height, r, s.bnd, s.be)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, ruleID)
}

// Step advances the simulation n generations, returning one metrics record
// per generation. Each generation pushes an undo snapshot, steps the
// automaton, records metrics and invokes the step callback. ctx is checked
// between generations so a long batch can be cancelled; the partial results
// are returned with the context error.
func (s *Simulator) Step(ctx context.Context, n int) ([]metrics.Record, error) {
	if s.auto == nil {
		return nil, ErrNotInitialized
	}
	if n < 0 {
		return nil, ErrNegativeSteps
	}
	records := make([]metrics.Record, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		s.pushSnapshot(fmt.Sprintf("generation %d", s.gen))
		s.auto.Step()
		s.gen++
		rec := s.record()
		records = append(records, rec)
		if s.onStep != nil {
			s.onStep(rec)
		}
	}
	return records, nil
}

func (s *Simulator) record() metrics.Record {
	size := s.auto.Size()
	return s.collector.Record(s.gen, s.auto.PopulationCells(), size.W, size.H, s.auto.States(), s.bnd)
}

func (s *Simulator) pushSnapshot(label string) {
	size := s.auto.Size()
	grid, err := core.GridFromCells(size.W, size.H, s.auto.PopulationCells())
	if err != nil {
		// Unreachable: the automaton's own buffer always matches its size.
		panic(err)
	}
	s.undo.Push(label, grid)
}

// PushEdit snapshots the current grid under label so one editing gesture
// maps to exactly one undo entry. Grouping multi-cell gestures is the
// caller's contract; the engine never merges pushes.
func (s *Simulator) PushEdit(label string) error {
	if s.auto == nil {
		return ErrNotInitialized
	}
	s.pushSnapshot(label)
	return nil
}

// SetCell writes one cell. Out-of-range coordinates and invalid states are
// rejected with the grid unmodified.
func (s *Simulator) SetCell(x, y int, value uint8) error {
	if s.auto == nil {
		return ErrNotInitialized
	}
	return s.auto.SetCell(x, y, value)
}

// Soup seeds the grid with state-1 cells at the classic 15% density.
func (s *Simulator) Soup(seed int64) error {
	if s.auto == nil {
		return ErrNotInitialized
	}
	size := s.auto.Size()
	cells := make([]uint8, size.W*size.H)
	core.FillSoup(core.NewRNG(seed), cells, lifelike.SoupDensity)
	return s.auto.LoadCells(cells)
}

// Grid returns an immutable copy of the display grid, including any agent
// overlay. Callers never receive a live reference.
func (s *Simulator) Grid() (*core.Grid, error) {
	if s.auto == nil {
		return nil, ErrNotInitialized
	}
	size := s.auto.Size()
	return core.GridFromCells(size.W, size.H, s.auto.Cells())
}

// PopulationGrid returns an immutable copy of the bare cell states, free of
// display overlays.
func (s *Simulator) PopulationGrid() (*core.Grid, error) {
	if s.auto == nil {
		return nil, ErrNotInitialized
	}
	size := s.auto.Size()
	return core.GridFromCells(size.W, size.H, s.auto.PopulationCells())
}

// Undo restores the previous snapshot, returning its label and a copy of
// the restored grid.
func (s *Simulator) Undo() (string, *core.Grid, error) {
	if s.auto == nil {
		return "", nil, ErrNotInitialized
	}
	current, err := s.PopulationGrid()
	if err != nil {
		return "", nil, err
	}
	snap, err := s.undo.Undo(current)
	if err != nil {
		return "", nil, err
	}
	if err := s.auto.LoadCells(snap.Grid.Cells()); err != nil {
		return "", nil, err
	}
	if s.gen > 0 {
		s.gen--
	}
	return snap.Label, snap.Grid.Clone(), nil
}

// Redo replays the most recently undone snapshot.
func (s *Simulator) Redo() (string, *core.Grid, error) {
	if s.auto == nil {
		return "", nil, ErrNotInitialized
	}
	current, err := s.PopulationGrid()
	if err != nil {
		return "", nil, err
	}
	snap, err := s.undo.Redo(current)
	if err != nil {
		return "", nil, err
	}
	if err := s.auto.LoadCells(snap.Grid.Cells()); err != nil {
		return "", nil, err
	}
	s.gen++
	return snap.Label, snap.Grid.Clone(), nil
}

// Reset zeroes the automaton and restarts metrics and history.
func (s *Simulator) Reset() error {
	if s.auto == nil {
		return ErrNotInitialized
	}
	s.auto.Reset()
	s.gen = 0
	s.collector.Reset()
	s.undo.Clear()
	return nil
}

// SetStepCallback installs fn to be invoked with each generation's record.
func (s *Simulator) SetStepCallback(fn func(metrics.Record)) { s.onStep = fn }

// RegisterPlugin adds a plugin descriptor to the simulator's registry.
func (s *Simulator) RegisterPlugin(d automaton.Descriptor) error { return s.reg.Register(d) }

// Generation returns the current generation counter.
func (s *Simulator) Generation() int { return s.gen }

// RuleName returns the active automaton's name, or "" before Initialize.
func (s *Simulator) RuleName() string {
	if s.auto == nil {
		return ""
	}
	return s.auto.Name()
}

// Records returns a copy of the retained metrics log.
func (s *Simulator) Records() []metrics.Record { return s.collector.Records() }

// MetricsSummary aggregates the retained metrics log and reports history
// availability.
func (s *Simulator) MetricsSummary() Summary {
	return Summary{
		Metrics:       s.collector.Summarize(),
		UndoAvailable: s.undo.CanUndo(),
		RedoAvailable: s.undo.CanRedo(),
	}
}

// HistorySummary reports undo/redo stack depths and last action labels.
func (s *Simulator) HistorySummary() history.Summary { return s.undo.HistorySummary() }
