package engine

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"
)

// DefaultMaxCascades bounds cascade steps per swap when Config leaves it unset.
const DefaultMaxCascades = 50

// State is the resolution state of the engine.
type State int

const (
	StateIdle State = iota
	StateSwapping
	StateCascading
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwapping:
		return "swapping"
	case StateCascading:
		return "cascading"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config holds the engine parameters.
type Config struct {
	Width         int
	Height        int
	Catalog       Catalog
	PointsPerTile int
	// MaxCascades caps cascade steps per swap; zero means DefaultMaxCascades.
	MaxCascades int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.MaxCascades < 0 {
		return fmt.Errorf("engine: max cascades must not be negative, got %d", c.MaxCascades)
	}
	return c.Catalog.Validate()
}

// Stats accumulates counters over one game.
type Stats struct {
	Swaps        int // committed swaps
	Reverts      int // swaps undone for lack of a match
	Cascades     int // scored cascade steps
	BestChain    int // most cascade steps produced by one swap
	TilesCleared int // tiles removed by cascades, initial fill included
	Settles      int // cascades stopped by the iteration cap
}

// Outcome is the result of a swap request.
type Outcome struct {
	Accepted   bool
	Events     []Event
	ScoreDelta int
	Cascades   int
	Settled    bool
	State      State
}

// Engine owns a board and resolves swaps on it to quiescence.
// It is not safe for concurrent use.
type Engine struct {
	cfg     Config
	catalog Catalog
	board   *Board
	rng     *rand.Rand
	draw    func() TileType

	seed  int64
	state State
	score int
	stats Stats
}

// New validates cfg and returns an engine reset with seed.
func New(cfg Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxCascades == 0 {
		cfg.MaxCascades = DefaultMaxCascades
	}
	board, err := NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		catalog: cfg.Catalog.Distinct(),
		board:   board,
	}
	e.draw = func() TileType {
		return e.catalog.Draw(e.rng)
	}
	e.Reset(seed)
	return e, nil
}

// Reset clears score and stats, fills the board from a fresh random stream
// and resolves any matches in the fill. Those matches score like a cascade,
// so a game may start above zero. The same seed always yields the same board
// and starting score.
func (e *Engine) Reset(seed int64) []Event {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
	e.score = 0
	e.stats = Stats{}
	e.board.Fill(e.draw)
	e.cascade(FindMatches(e.board))

	events := []Event{BoardReset{Seed: seed, Board: e.board.Clone(), Score: e.score}}
	return e.finish(events)
}

// Swap exchanges the tiles at a and b and resolves the result. A swap that
// produces no match is undone and reported with Accepted false.
func (e *Engine) Swap(a, b Position) (Outcome, error) {
	if e.state != StateIdle {
		return Outcome{State: e.state}, fmt.Errorf("%w: state is %v", ErrNotIdle, e.state)
	}
	for _, p := range [2]Position{a, b} {
		if !e.board.InBounds(p) {
			return Outcome{State: e.state}, fmt.Errorf("%w: %v", ErrOutOfRange, p)
		}
	}
	if !a.Adjacent(b) {
		return Outcome{State: e.state}, fmt.Errorf("%w: %v and %v", ErrInvalidSwap, a, b)
	}

	e.state = StateSwapping
	e.board.swap(a, b)
	events := []Event{SwapApplied{A: a, B: b}}

	matches := FindMatches(e.board)
	if matches.Len() == 0 {
		e.board.swap(a, b)
		e.stats.Reverts++
		e.state = StateIdle
		events = append(events, SwapReverted{A: a, B: b})
		return Outcome{Events: events, State: e.state}, nil
	}

	e.state = StateCascading
	e.stats.Swaps++
	res := e.cascade(matches)
	events = append(events, res.events...)
	e.stats.Cascades += res.cascades
	e.stats.BestChain = max(e.stats.BestChain, res.cascades)

	events = e.finish(events)
	return Outcome{
		Accepted:   true,
		Events:     events,
		ScoreDelta: res.delta,
		Cascades:   res.cascades,
		Settled:    res.settled,
		State:      e.state,
	}, nil
}

type cascadeResult struct {
	events   []Event
	delta    int
	cascades int
	settled  bool
}

// cascade clears, scores and collapses until the board is quiescent.
func (e *Engine) cascade(matches PositionSet) cascadeResult {
	var res cascadeResult
	multiplier := 1
	for matches.Len() > 0 {
		if res.cascades >= e.cfg.MaxCascades {
			e.settle()
			e.stats.Settles++
			res.settled = true
			res.events = append(res.events, BoardSettled{Board: e.board.Clone()})
			break
		}
		res.cascades++

		cleared := matches.Sorted()
		res.events = append(res.events, TilesCleared{Cascade: res.cascades, Positions: cleared})
		delta := len(cleared) * e.cfg.PointsPerTile * multiplier
		e.score += delta
		e.stats.TilesCleared += len(cleared)
		res.delta += delta
		res.events = append(res.events, ScoreChanged{Delta: delta, Multiplier: multiplier, Total: e.score})
		multiplier++

		columns := Collapse(e.board, matches, e.draw)
		res.events = append(res.events, ColumnsCompacted{Cascade: res.cascades, Columns: columns})
		matches = FindMatches(e.board)
	}
	return res
}

// settle redraws every cell in row-major order, avoiding any type that
// would complete a run with the two cells to the left or the two above.
// At most two types are excluded per cell, so a catalog of MinCatalogSize
// types always leaves a candidate.
func (e *Engine) settle() {
	b := e.board
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			candidates := lo.Filter(e.catalog, func(t TileType, _ int) bool {
				if x >= 2 && b.at(x-1, y) == t && b.at(x-2, y) == t {
					return false
				}
				if y >= 2 && b.at(x, y-1) == t && b.at(x, y-2) == t {
					return false
				}
				return true
			})
			b.put(x, y, candidates[e.rng.Intn(len(candidates))])
		}
	}
}

// finish runs the stalemate check and moves to Idle or GameOver.
func (e *Engine) finish(events []Event) []Event {
	if HasMoves(e.board) {
		e.state = StateIdle
		return events
	}
	e.state = StateGameOver
	return append(events, StalemateReached{})
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Score returns the total score since the last reset.
func (e *Engine) Score() int {
	return e.score
}

// State returns the current resolution state.
func (e *Engine) State() State {
	return e.state
}

// Stats returns the counters since the last reset.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Seed returns the seed passed to the last reset.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the distinct tile types the engine draws from.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}
