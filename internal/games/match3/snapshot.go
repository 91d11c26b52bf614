package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Seed      int64
	Score     int
	Board     string // rows of tile ids, as shown on screen
	Cursor    engine.Position
	Selected  *engine.Position
	Swaps     int
	BestChain int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.gameOver():
		state = StateGameOver
	case g.playing():
		state = StateResolving
	}

	snap := Snapshot{
		Tick:   g.tick,
		Seed:   g.seed,
		Score:  g.shownScore,
		Cursor: g.cursor,
		State:  state,
	}
	if g.selected != nil {
		sel := *g.selected
		snap.Selected = &sel
	}
	if g.view != nil {
		snap.Board = g.view.String()
	}
	if g.eng != nil {
		stats := g.eng.Stats()
		snap.Swaps = stats.Swaps
		snap.BestChain = stats.BestChain
	}
	return snap
}
