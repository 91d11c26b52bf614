package engine

// TileMove records a surviving tile sliding down its column.
type TileMove struct {
	X     int
	FromY int
	ToY   int
	Type  TileType
}

// TileFill records a new tile drawn into a vacated cell.
type TileFill struct {
	X    int
	Y    int
	Type TileType
}

// ColumnFall describes how one column changed during a collapse.
// Distance equals the number of cleared cells in the column.
type ColumnFall struct {
	X        int
	Distance int
	Moves    []TileMove
	Fills    []TileFill
}

// Collapse removes the cleared cells, slides the survivors of each column
// down preserving their order and refills the vacated top cells with
// independent draws. Columns without cleared cells are left untouched and
// omitted from the result.
func Collapse(b *Board, cleared PositionSet, draw func() TileType) []ColumnFall {
	var falls []ColumnFall
	for x := 0; x < b.width; x++ {
		write := b.height - 1
		var moves []TileMove
		for y := b.height - 1; y >= 0; y-- {
			if cleared.Has(Position{X: x, Y: y}) {
				continue
			}
			if y != write {
				t := b.at(x, y)
				b.put(x, write, t)
				moves = append(moves, TileMove{X: x, FromY: y, ToY: write, Type: t})
			}
			write--
		}
		if write < 0 {
			// write only moves past the top when nothing was cleared
			continue
		}

		fall := ColumnFall{X: x, Distance: write + 1, Moves: moves}
		for y := 0; y <= write; y++ {
			t := draw()
			b.put(x, y, t)
			fall.Fills = append(fall.Fills, TileFill{X: x, Y: y, Type: t})
		}
		falls = append(falls, fall)
	}
	return falls
}
