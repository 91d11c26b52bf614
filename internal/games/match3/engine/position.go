package engine

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Position is a cell coordinate. X grows to the right, Y grows downward,
// so row Height-1 is the bottom of the board.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether other is one of the four orthogonal neighbours.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// PositionSet is an unordered set of positions.
type PositionSet map[Position]struct{}

// NewPositionSet creates a set holding the given positions.
func NewPositionSet(ps ...Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

// Add inserts p into the set.
func (s PositionSet) Add(p Position) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set.
func (s PositionSet) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of positions in the set.
func (s PositionSet) Len() int {
	return len(s)
}

// Union adds every position of other to s.
func (s PositionSet) Union(other PositionSet) {
	for p := range other {
		s.Add(p)
	}
}

// Sorted returns the positions in row-major order.
func (s PositionSet) Sorted() []Position {
	ps := lo.Keys(map[Position]struct{}(s))
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
	return ps
}
