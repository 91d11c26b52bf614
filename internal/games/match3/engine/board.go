package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is a width×height grid of tile types stored in row-major order:
// index = y*width + x. Every cell always holds a tile type; the board has
// no notion of an empty cell.
type Board struct {
	width  int
	height int
	cells  []TileType
}

// NewBoard creates a board with every cell set to the zero tile type.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]TileType, width*height),
	}, nil
}

// BoardFromRows builds a board from rows[y][x]. All rows must have the same length.
func BoardFromRows(rows [][]TileType) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	b, err := NewBoard(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != b.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, y, len(row), b.width)
		}
		copy(b.cells[y*b.width:], row)
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds returns true if the position is on the board.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

func (b *Board) at(x, y int) TileType {
	return b.cells[y*b.width+x]
}

func (b *Board) put(x, y int, t TileType) {
	b.cells[y*b.width+x] = t
}

func (b *Board) swap(p, q Position) {
	i := p.Y*b.width + p.X
	j := q.Y*b.width + q.X
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Get returns the tile type at p.
func (b *Board) Get(p Position) (TileType, error) {
	if !b.InBounds(p) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	return b.at(p.X, p.Y), nil
}

// Set overwrites the tile type at p.
func (b *Board) Set(p Position, t TileType) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	b.put(p.X, p.Y, t)
	return nil
}

// Swap exchanges the tile types at p and q. Adjacency is not checked here;
// the engine validates swap requests before calling it.
func (b *Board) Swap(p, q Position) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	if !b.InBounds(q) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, q)
	}
	b.swap(p, q)
	return nil
}

// Neighbors returns the in-bounds orthogonal neighbours of p
// in the order up, right, down, left.
func (b *Board) Neighbors(p Position) []Position {
	if !b.InBounds(p) {
		return nil
	}
	candidates := [4]Position{p.Add(0, -1), p.Add(1, 0), p.Add(0, 1), p.Add(-1, 0)}
	result := make([]Position, 0, len(candidates))
	for _, n := range candidates {
		if b.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// Fill assigns every cell a type from draw, in row-major order.
func (b *Board) Fill(draw func() TileType) {
	for i := range b.cells {
		b.cells[i] = draw()
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]TileType, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		width:  b.width,
		height: b.height,
		cells:  cells,
	}
}

// Equal returns true if two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i, t := range b.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the board as rows[y][x].
func (b *Board) Rows() [][]TileType {
	rows := make([][]TileType, b.height)
	for y := range rows {
		rows[y] = make([]TileType, b.width)
		copy(rows[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return rows
}

// String renders the board as space separated type ids, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(b.at(x, y))))
		}
	}
	return sb.String()
}
