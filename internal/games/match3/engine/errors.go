package engine

import "errors"

// Errors returned by the engine. Callers match them with errors.Is; the
// returned values are usually wrapped with the offending positions.
var (
	// ErrOutOfRange reports a position outside the board.
	ErrOutOfRange = errors.New("engine: position out of range")

	// ErrInvalidSwap reports a swap between positions that are not orthogonal neighbours.
	ErrInvalidSwap = errors.New("engine: positions are not adjacent")

	// ErrEmptyCatalog reports a configuration without tile types.
	ErrEmptyCatalog = errors.New("engine: tile catalog is empty")

	// ErrCatalogTooSmall reports a catalog with fewer than MinCatalogSize distinct types.
	ErrCatalogTooSmall = errors.New("engine: tile catalog is too small")

	// ErrInvalidSize reports non-positive board dimensions or ragged rows.
	ErrInvalidSize = errors.New("engine: invalid board size")

	// ErrNotIdle reports a swap request while the engine cannot accept input.
	ErrNotIdle = errors.New("engine: not accepting swaps")
)
