package engine

// Event is a stage of a resolved operation, in the order it happened.
// The set of events is closed; switch on the concrete type.
type Event interface {
	engineEvent()
}

// SwapApplied is emitted when two tiles exchange places.
type SwapApplied struct {
	A, B Position
}

// SwapReverted is emitted when a swap produced no match and was undone.
type SwapReverted struct {
	A, B Position
}

// TilesCleared lists the matched positions removed in one cascade step.
type TilesCleared struct {
	Cascade   int
	Positions []Position
}

// ColumnsCompacted describes the gravity pass that followed a clear.
type ColumnsCompacted struct {
	Cascade int
	Columns []ColumnFall
}

// ScoreChanged reports points awarded for one cascade step.
type ScoreChanged struct {
	Delta      int
	Multiplier int
	Total      int
}

// StalemateReached is emitted when no swap can produce a match.
type StalemateReached struct{}

// BoardReset carries the quiescent board produced by Reset and the points
// scored by matches in the initial fill.
type BoardReset struct {
	Seed  int64
	Board *Board
	Score int
}

// BoardSettled is emitted when a cascade hit the iteration cap and the
// board was redrawn without matches.
type BoardSettled struct {
	Board *Board
}

func (SwapApplied) engineEvent()      {}
func (SwapReverted) engineEvent()     {}
func (TilesCleared) engineEvent()     {}
func (ColumnsCompacted) engineEvent() {}
func (ScoreChanged) engineEvent()     {}
func (StalemateReached) engineEvent() {}
func (BoardReset) engineEvent()       {}
func (BoardSettled) engineEvent()     {}
