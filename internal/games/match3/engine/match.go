package engine

// MinRun is the shortest run of equal tile types that counts as a match.
const MinRun = 3

// FindMatches returns every position that belongs to a horizontal or
// vertical run of at least MinRun equal tile types. Positions shared by a
// row run and a column run (L and T shapes) appear once.
func FindMatches(b *Board) PositionSet {
	matched := make(PositionSet)
	for _, l := range b.lines() {
		matched.Union(l.runs())
	}
	return matched
}

// runs returns the positions of the line's runs of MinRun or more.
func (l line) runs() PositionSet {
	found := make(PositionSet)
	n := l.length()
	for start := 0; start < n; {
		t := l.at(start)
		end := start + 1
		for end < n && l.at(end) == t {
			end++
		}
		if end-start >= MinRun {
			for i := start; i < end; i++ {
				found.Add(l.pos(i, 0))
			}
		}
		start = end
	}
	return found
}
