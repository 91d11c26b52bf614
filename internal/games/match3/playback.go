package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// stage is one step of a replayed resolution: a change to the view and the
// number of ticks it stays on screen.
type stage struct {
	apply func(g *Game)
	hold  int
}

func (g *Game) playing() bool {
	return len(g.queue) > 0 || g.wait > 0
}

// enqueue turns engine events into presentation stages.
func (g *Game) enqueue(events []engine.Event) {
	pace := g.cfg.Playback
	for _, ev := range events {
		switch ev := ev.(type) {
		case engine.SwapApplied:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) { _ = g.view.Swap(ev.A, ev.B) },
				hold:  pace.SwapTicks,
			})

		case engine.SwapReverted:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) {
					_ = g.view.Swap(ev.A, ev.B)
					g.message = "No match"
				},
				hold: pace.SwapTicks,
			})

		case engine.TilesCleared:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) { g.flash = engine.NewPositionSet(ev.Positions...) },
				hold:  pace.ClearTicks,
			})

		case engine.ScoreChanged:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) {
					g.shownScore = ev.Total
					g.multiplier = ev.Multiplier
					g.lastGain = ev.Delta
					if ev.Multiplier > 1 {
						g.message = fmt.Sprintf("Chain x%d  +%d", ev.Multiplier, ev.Delta)
					} else {
						g.message = fmt.Sprintf("+%d", ev.Delta)
					}
				},
			})

		case engine.ColumnsCompacted:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) {
					g.flash = nil
					applyFalls(g.view, ev.Columns)
				},
				hold: pace.FallTicks * maxDistance(ev.Columns),
			})

		case engine.BoardSettled:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) {
					g.flash = nil
					g.view = ev.Board.Clone()
					g.message = "Board reshuffled"
				},
				hold: pace.ClearTicks,
			})

		case engine.BoardReset:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) {
					g.view = ev.Board.Clone()
					g.shownScore = ev.Score
				},
			})

		case engine.StalemateReached:
			g.queue = append(g.queue, stage{
				apply: func(g *Game) { g.message = "No moves left" },
			})
		}
	}
}

// advancePlayback runs stages until one asks to be held on screen.
func (g *Game) advancePlayback() {
	if g.wait > 0 {
		g.wait--
		if g.wait > 0 {
			return
		}
	}

	for len(g.queue) > 0 {
		s := g.queue[0]
		g.queue = g.queue[1:]
		s.apply(g)
		if s.hold > 0 {
			g.wait = s.hold
			return
		}
	}

	// Replay is done; the engine board is authoritative.
	g.view = g.eng.Board()
	g.flash = nil
	g.shownScore = g.eng.Score()
}

// applyFalls replays a gravity pass: moves in engine order, then fills.
func applyFalls(b *engine.Board, columns []engine.ColumnFall) {
	for _, col := range columns {
		for _, m := range col.Moves {
			_ = b.Set(engine.P(m.X, m.ToY), m.Type)
		}
		for _, f := range col.Fills {
			_ = b.Set(engine.P(f.X, f.Y), f.Type)
		}
	}
}

func maxDistance(columns []engine.ColumnFall) int {
	d := 0
	for _, col := range columns {
		d = max(d, col.Distance)
	}
	return d
}
