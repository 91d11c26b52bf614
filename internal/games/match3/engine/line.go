package engine

// line addresses a single row or column so that row and column scans share
// one implementation. Index i runs along the line; a perpendicular offset
// of -1 or +1 selects the same index on the neighbouring line.
type line struct {
	b        *Board
	vertical bool
	n        int // row y for horizontal lines, column x for vertical ones
}

// lines returns every row followed by every column.
func (b *Board) lines() []line {
	result := make([]line, 0, b.width+b.height)
	for y := 0; y < b.height; y++ {
		result = append(result, line{b: b, n: y})
	}
	for x := 0; x < b.width; x++ {
		result = append(result, line{b: b, vertical: true, n: x})
	}
	return result
}

func (l line) length() int {
	if l.vertical {
		return l.b.height
	}
	return l.b.width
}

func (l line) pos(i, off int) Position {
	if l.vertical {
		return Position{X: l.n + off, Y: i}
	}
	return Position{X: i, Y: l.n + off}
}

// at returns the type at index i on the line itself. i must be in range.
func (l line) at(i int) TileType {
	p := l.pos(i, 0)
	return l.b.at(p.X, p.Y)
}

// typeAt returns the type at index i and perpendicular offset off,
// and false when that cell is off the board.
func (l line) typeAt(i, off int) (TileType, bool) {
	p := l.pos(i, off)
	if !l.b.InBounds(p) {
		return 0, false
	}
	return l.b.at(p.X, p.Y), true
}
