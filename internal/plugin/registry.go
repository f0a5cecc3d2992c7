// Package plugin maintains the registry of externally supplied automaton
// rules. The registry is built once by the composition root and passed where
// needed; there is no package-global state.
package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	goplugin "plugin"
	"sort"

	"lifegrid/internal/core"
	"lifegrid/pkg/automaton"
)

var (
	// ErrDuplicateName indicates a plugin name that is already registered.
	ErrDuplicateName = errors.New("plugin: name already registered")
	// ErrUnknownPlugin indicates a create request for an unregistered name.
	ErrUnknownPlugin = errors.New("plugin: unknown plugin")
	// ErrBadDescriptor indicates a descriptor missing its name or factory.
	ErrBadDescriptor = errors.New("plugin: descriptor needs a name and a factory")
)

// LoadFailure records one plugin file that could not be loaded.
type LoadFailure struct {
	File string
	Err  error
}

// LoadReport summarizes a LoadFromDirectory call.
type LoadReport struct {
	Loaded   int
	Failures []LoadFailure
}

// Registry holds registered plugin descriptors.
type Registry struct {
	log     *slog.Logger
	entries map[string]automaton.Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{log: log, entries: make(map[string]automaton.Descriptor)}
}

// Register adds a descriptor. Registering an existing name fails with
// ErrDuplicateName; overwriting is the explicit Replace.
func (r *Registry) Register(d automaton.Descriptor) error {
	if d.Name == "" || d.New == nil {
		return ErrBadDescriptor
	}
	if _, ok := r.entries[d.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
	}
	r.entries[d.Name] = d
	return nil
}

// Replace registers a descriptor, overwriting any existing entry of the
// same name.
func (r *Registry) Replace(d automaton.Descriptor) error {
	if d.Name == "" || d.New == nil {
		return ErrBadDescriptor
	}
	r.entries[d.Name] = d
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (automaton.Descriptor, bool) {
	d, ok := r.entries[name]
	return d, ok
}

// List returns the registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds an automaton from the named plugin, adapted to the engine
// contract.
func (r *Registry) Create(name string, w, h int) (core.Automaton, error) {
	d, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}
	inner, err := d.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("plugin %q: %w", name, err)
	}
	return &adapted{inner: inner}, nil
}

// LoadFromDirectory opens every .so file in dir and registers the descriptor
// each exports. A malformed file never aborts the scan: failures are
// isolated per file and reported in the result.
func (r *Registry) LoadFromDirectory(dir string) LoadReport {
	var report LoadReport
	entries, err := os.ReadDir(dir)
	if err != nil {
		// A missing plugin directory is not an error, just nothing to load.
		r.log.Debug("plugin directory not readable", "dir", dir, "error", err)
		return report
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".so" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := r.loadFile(path); err != nil {
			r.log.Warn("skipping plugin", "file", path, "error", err)
			report.Failures = append(report.Failures, LoadFailure{File: path, Err: err})
			continue
		}
		report.Loaded++
	}
	return report
}

func (r *Registry) loadFile(path string) error {
	p, err := goplugin.Open(path)
	if err != nil {
		return fmt.Errorf("opening plugin: %w", err)
	}
	sym, err := p.Lookup(automaton.SymbolName)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", automaton.SymbolName, err)
	}
	d, ok := sym.(*automaton.Descriptor)
	if !ok {
		return fmt.Errorf("%s has type %T, want *automaton.Descriptor", automaton.SymbolName, sym)
	}
	if err := r.Register(*d); err != nil {
		return err
	}
	r.log.Debug("loaded plugin", "name", d.Name, "version", d.Version, "file", path)
	return nil
}

// adapted bridges the public plugin contract to the engine automaton
// contract. Plugin automata have no overlay, so the population view is the
// cell buffer itself.
type adapted struct {
	inner automaton.Automaton
}

func (a *adapted) Name() string    { return a.inner.Name() }
func (a *adapted) Size() core.Size { return core.Size{W: a.inner.Width(), H: a.inner.Height()} }
func (a *adapted) States() int     { return a.inner.States() }
func (a *adapted) Reset()          { a.inner.Reset() }
func (a *adapted) Step()           { a.inner.Step() }

func (a *adapted) SetCell(x, y int, value uint8) error {
	return a.inner.SetCell(x, y, value)
}

func (a *adapted) Cells() []uint8                { return a.inner.Cells() }
func (a *adapted) PopulationCells() []uint8      { return a.inner.Cells() }
func (a *adapted) LoadCells(cells []uint8) error { return a.inner.LoadCells(cells) }
