// Package match3 adapts the board engine to the terminal platform: cursor
// selection, paced replay of resolution stages and rendering.
package match3

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Registered game IDs.
const (
	IDEasy = "match3"
	IDHard = "match3_hard"
)

var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file for games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes debug traces of resolved swaps to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// GameID returns the registered game ID for a difficulty preset.
func GameID(preset config.DifficultyPreset) string {
	if preset == config.DifficultyHard {
		return IDHard
	}
	return IDEasy
}

func init() {
	registry.Register(IDEasy, func() registry.Game {
		return New(config.DifficultyEasy)
	})
	registry.Register(IDHard, func() registry.Game {
		return New(config.DifficultyHard)
	})
}

type tileStyle struct {
	glyph rune
	color core.Color
}

// Game implements registry.Game for the match-3 puzzle.
type Game struct {
	preset config.DifficultyPreset
	cfg    config.Match3Config
	tiles  map[engine.TileType]tileStyle
	eng    *engine.Engine
	err    error // configuration problem, shown instead of the board

	// Presentation state, replayed from engine events
	view       *engine.Board
	flash      engine.PositionSet
	queue      []stage
	wait       int
	shownScore int
	multiplier int
	lastGain   int
	message    string

	cursor   engine.Position
	selected *engine.Position

	tick     uint64
	seed     int64
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a game for the given difficulty preset.
func New(preset config.DifficultyPreset) *Game {
	return &Game{preset: preset}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID(g.preset)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.preset == config.DifficultyHard {
		return "Match-3 (Hard)"
	}
	return "Match-3"
}

// Reset loads the configuration and deals a new board from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.seed = cfg.Seed
	g.paused = false
	g.queue = nil
	g.wait = 0
	g.flash = nil
	g.selected = nil
	g.shownScore = 0
	g.multiplier = 0
	g.lastGain = 0
	g.message = ""
	g.err = nil

	if err := g.setup(); err != nil {
		g.err = err
		logger.Error("cannot start game", "game", g.ID(), "error", err)
		g.Resize(cfg.ScreenW, cfg.ScreenH)
		return
	}

	g.eng.Reset(cfg.Seed)
	g.view = g.eng.Board()
	g.shownScore = g.eng.Score()
	g.cursor = engine.P(g.view.Width()/2, g.view.Height()/2)
	if g.eng.State() == engine.StateGameOver {
		g.message = "No moves left"
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	logger.Debug("board dealt", "game", g.ID(), "seed", cfg.Seed,
		"moves", engine.FindPotentialMoves(g.view).Len())
}

// setup loads the config and builds the engine on first use.
func (g *Game) setup() error {
	if g.eng != nil {
		return nil
	}

	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		return err
	}
	diff, err := cfg.Difficulty(g.preset)
	if err != nil {
		return err
	}

	catalog := make(engine.Catalog, 0, len(diff.TileTypes))
	tiles := make(map[engine.TileType]tileStyle, len(diff.TileTypes))
	for _, tt := range diff.TileTypes {
		t := engine.TileType(tt.ID)
		catalog = append(catalog, t)
		tiles[t] = tileStyle{glyph: tt.GlyphRune(), color: tt.ColorValue()}
	}

	eng, err := engine.New(engine.Config{
		Width:         cfg.Board.Width,
		Height:        cfg.Board.Height,
		Catalog:       catalog,
		PointsPerTile: diff.TilePoints,
		MaxCascades:   cfg.Cascade.MaxIterations,
	}, 0)
	if err != nil {
		return fmt.Errorf("difficulty %q: %w", g.preset, err)
	}

	g.cfg = cfg
	g.tiles = tiles
	g.eng = eng
	return nil
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.view == nil {
		g.tooSmall = false
		return
	}
	need := layoutFor(g.view)
	g.tooSmall = w < need.minW || h < need.minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if g.playing() {
		g.advancePlayback()
		return core.StepResult{State: g.State()}
	}
	if g.gameOver() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	}
	if dx != 0 || dy != 0 {
		g.cursor = engine.P(
			core.Clamp(g.cursor.X+dx, 0, g.view.Width()-1),
			core.Clamp(g.cursor.Y+dy, 0, g.view.Height()-1),
		)
	}

	if in.Has(core.ActionCancel) {
		g.selected = nil
	}
	if in.Has(core.ActionSelect) {
		g.selectAt(g.cursor)
	}
}

// selectAt marks the first tile of a swap, or requests the swap when p
// neighbours the marked tile. Any other pick clears the mark.
func (g *Game) selectAt(p engine.Position) {
	if g.selected == nil {
		sel := p
		g.selected = &sel
		g.message = ""
		return
	}

	from := *g.selected
	g.selected = nil
	if !from.Adjacent(p) {
		return
	}
	g.swap(from, p)
}

func (g *Game) swap(a, b engine.Position) {
	out, err := g.eng.Swap(a, b)
	if err != nil {
		logger.Warn("swap rejected", "from", a, "to", b, "error", err)
		return
	}

	logger.Debug("swap resolved",
		"from", a, "to", b,
		"accepted", out.Accepted,
		"cascades", out.Cascades,
		"gain", out.ScoreDelta,
		"score", g.eng.Score(),
		"settled", out.Settled,
		"state", out.State,
	)
	g.enqueue(out.Events)
}

func (g *Game) gameOver() bool {
	return g.eng != nil && g.eng.State() == engine.StateGameOver && !g.playing()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.shownScore,
		GameOver: g.gameOver(),
		Paused:   g.paused,
		Busy:     g.playing(),
	}
}

// RunSummary describes the current run for the run history.
func (g *Game) RunSummary() core.RunSummary {
	summary := core.RunSummary{
		Seed:       g.seed,
		Difficulty: string(g.preset),
	}
	if g.eng == nil {
		return summary
	}
	stats := g.eng.Stats()
	summary.Score = g.eng.Score()
	summary.Swaps = stats.Swaps
	summary.Cascades = stats.Cascades
	summary.BestChain = stats.BestChain
	summary.Stalemate = g.eng.State() == engine.StateGameOver
	return summary
}
