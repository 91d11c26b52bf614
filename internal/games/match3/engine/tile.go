// Package engine implements the match-3 board state machine: run detection,
// swap resolution, gravity refill and stalemate lookahead.
//
// The package has no platform dependencies. Every operation runs to
// completion synchronously and reports what happened as a list of stage
// events, which a presentation layer may replay at its own pace.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"
)

// MinCatalogSize is the smallest number of distinct tile types the engine
// accepts. With three types a match-free fill always exists, which bounds
// cascade resolution.
const MinCatalogSize = 3

// TileType identifies a tile category. Two tiles match when their types are equal.
type TileType int

// Catalog is the fixed set of tile types a board draws from.
type Catalog []TileType

// Distinct returns the catalog without duplicate types, preserving order.
func (c Catalog) Distinct() Catalog {
	return lo.Uniq(c)
}

// Contains reports whether t belongs to the catalog.
func (c Catalog) Contains(t TileType) bool {
	return lo.Contains(c, t)
}

// Validate checks that the catalog can produce a playable board.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	if n := len(c.Distinct()); n < MinCatalogSize {
		return fmt.Errorf("%w: %d distinct types, need %d", ErrCatalogTooSmall, n, MinCatalogSize)
	}
	return nil
}

// Draw picks a tile type uniformly at random.
func (c Catalog) Draw(rng *rand.Rand) TileType {
	return c[rng.Intn(len(c))]
}
