package engine

// FindPotentialMoves flags tiles that one adjacent swap would turn into a
// match. It inspects local patterns around each short run instead of
// simulating swaps:
//
//	run of two    T T     a T at start-2, end+2, or diagonally beside start-1 or end+1
//	run of one    T       two Ts among start-2 and the cells beside start-1
//
// Each flagged pattern contributes the run and the helper tiles. Runs of
// MinRun or more are ignored; callers only ask about quiescent boards.
func FindPotentialMoves(b *Board) PositionSet {
	flagged := make(PositionSet)
	for _, l := range b.lines() {
		n := l.length()
		for start := 0; start < n; {
			t := l.at(start)
			end := start
			for end+1 < n && l.at(end+1) == t {
				end++
			}
			count := end - start + 1

			if count < MinRun {
				helpers := l.helpers(t, start-1, start-2)
				if count == 2 {
					helpers = append(helpers, l.helpers(t, end+1, end+2)...)
				}
				need := 1
				if count == 1 {
					need = 2
				}
				if len(helpers) >= need {
					for i := start; i <= end; i++ {
						flagged.Add(l.pos(i, 0))
					}
					for _, p := range helpers {
						flagged.Add(p)
					}
				}
			}
			start = end + 1
		}
	}
	return flagged
}

// HasMoves reports whether at least one swap on the board produces a match.
func HasMoves(b *Board) bool {
	return FindPotentialMoves(b).Len() > 0
}

// helpers collects the cells of type t that could be swapped into gap:
// the in-line cell at beyond and the two cells beside gap.
func (l line) helpers(t TileType, gap, beyond int) []Position {
	if gap < 0 || gap >= l.length() {
		return nil
	}
	var result []Position
	if beyond >= 0 && beyond < l.length() && l.at(beyond) == t {
		result = append(result, l.pos(beyond, 0))
	}
	for _, off := range [2]int{-1, 1} {
		if got, ok := l.typeAt(gap, off); ok && got == t {
			result = append(result, l.pos(gap, off))
		}
	}
	return result
}
