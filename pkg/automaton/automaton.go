// Package automaton is the public contract for plugin-supplied automata.
// A plugin shared object exports a variable named Plugin of type Descriptor;
// the engine discovers it at load time and drives the automaton through the
// Automaton interface.
package automaton

// Automaton is the stepping contract a plugin implements. Cells returns the
// current state buffer in row-major order with values in [0, States).
type Automaton interface {
	Name() string
	Width() int
	Height() int
	States() int
	Reset()
	Step()
	SetCell(x, y int, value uint8) error
	Cells() []uint8
	LoadCells(cells []uint8) error
}

// Descriptor identifies a plugin and provides its automaton factory.
type Descriptor struct {
	Name        string
	Version     string
	Description string
	New         func(width, height int) (Automaton, error)
}

// SymbolName is the exported variable the engine looks up in a plugin
// shared object.
const SymbolName = "Plugin"
