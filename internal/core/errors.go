package core

import "errors"

var (
	// ErrInvalidDimensions indicates a grid was requested with a non-positive width or height.
	ErrInvalidDimensions = errors.New("core: width and height must be positive")
	// ErrOutOfRange indicates a cell coordinate outside the grid.
	ErrOutOfRange = errors.New("core: cell coordinates out of range")
	// ErrInvalidState indicates a cell value outside [0, states) for the active rule.
	ErrInvalidState = errors.New("core: cell value out of range for rule")
	// ErrSizeMismatch indicates a cell buffer whose length does not match the grid.
	ErrSizeMismatch = errors.New("core: cell buffer length does not match grid dimensions")
	// ErrMissingDependency indicates an automaton constructed without a
	// boundary strategy or compute backend.
	ErrMissingDependency = errors.New("core: boundary strategy and compute backend are required")
)
