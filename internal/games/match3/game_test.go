package match3

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// newGame returns an easy game with moves available, dealt from the
// first seed at or after seed that is not an immediate stalemate.
func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	g := New(config.DifficultyEasy)
	for s := seed; s < seed+100; s++ {
		g.Reset(testRuntime(s))
		if g.err != nil {
			t.Fatalf("Reset() error = %v", g.err)
		}
		if !g.State().GameOver {
			return g
		}
	}
	t.Fatalf("no playable board for seeds %d..%d", seed, seed+99)
	return nil
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// drain steps the game until the replay of the last swap has finished.
func drain(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.playing(); i++ {
		if i > 100000 {
			t.Fatal("playback did not finish")
		}
		g.Step(core.NewInputFrame())
	}
}

// findSwap returns an adjacent pair whose swap does (or does not) match.
func findSwap(b *engine.Board, matching bool) (engine.Position, engine.Position, bool) {
	for y := range b.Height() {
		for x := range b.Width() {
			p := engine.P(x, y)
			for _, q := range []engine.Position{p.Add(1, 0), p.Add(0, 1)} {
				if !b.InBounds(q) {
					continue
				}
				c := b.Clone()
				_ = c.Swap(p, q)
				if (engine.FindMatches(c).Len() > 0) == matching {
					return p, q, true
				}
			}
		}
	}
	return engine.Position{}, engine.Position{}, false
}

func requestSwap(g *Game, a, b engine.Position) {
	g.cursor = a
	press(g, core.ActionSelect)
	g.cursor = b
	press(g, core.ActionSelect)
}

func TestGameIDs(t *testing.T) {
	for _, id := range []string{IDEasy, IDHard} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestTitles(t *testing.T) {
	if got := New(config.DifficultyEasy).Title(); got != "Match-3" {
		t.Errorf("easy Title() = %q, expected %q", got, "Match-3")
	}
	if got := New(config.DifficultyHard).Title(); got != "Match-3 (Hard)" {
		t.Errorf("hard Title() = %q, expected %q", got, "Match-3 (Hard)")
	}
}

func TestGameIDForPreset(t *testing.T) {
	if got := GameID(config.DifficultyHard); got != IDHard {
		t.Errorf("GameID(hard) = %q, expected %q", got, IDHard)
	}
	if got := GameID(config.ParsePreset("")); got != IDEasy {
		t.Errorf("GameID(\"\") = %q, expected %q", got, IDEasy)
	}
}

func TestResetDealsQuiescentBoard(t *testing.T) {
	g := newGame(t, 1)

	if n := engine.FindMatches(g.view).Len(); n != 0 {
		t.Errorf("dealt board has %d matched tiles", n)
	}
	if !g.view.Equal(g.eng.Board()) {
		t.Error("view differs from engine board after reset")
	}
	if g.view.Width() != 8 || g.view.Height() != 8 {
		t.Errorf("board = %dx%d, expected 8x8", g.view.Width(), g.view.Height())
	}
	state := g.State()
	if state.Score != g.eng.Score() || state.Busy || state.Paused {
		t.Errorf("State() = %+v, expected fresh game scoring %d", state, g.eng.Score())
	}
	if g.eng.Stats().Swaps != 0 {
		t.Errorf("Swaps = %d, expected 0", g.eng.Stats().Swaps)
	}
}

func TestResetShowsInitialScore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New(config.DifficultyEasy)

	// look for a deal whose fill contained runs
	for seed := int64(1); seed <= 200; seed++ {
		g.Reset(testRuntime(seed))
		if g.eng.Score() > 0 {
			if g.State().Score != g.eng.Score() {
				t.Errorf("seed %d: shown score %d, engine %d", seed, g.State().Score, g.eng.Score())
			}
			screen := core.NewScreen(80, 24)
			g.Render(screen)
			if want := fmt.Sprintf("Score: %d", g.eng.Score()); !strings.Contains(screen.String(), want) {
				t.Errorf("seed %d: render missing %q", seed, want)
			}
			return
		}
	}
	t.Fatal("no seed in 1..200 scored during reset")
}

func TestHardUsesLargerCatalog(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New(config.DifficultyHard)
	g.Reset(testRuntime(3))
	if g.err != nil {
		t.Fatalf("Reset() error = %v", g.err)
	}
	if n := len(g.eng.Catalog()); n != 7 {
		t.Errorf("catalog size = %d, expected 7", n)
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{
		core.ActionLeft, core.ActionSelect, core.ActionRight, core.ActionSelect,
		core.ActionDown, core.ActionSelect, core.ActionUp, core.ActionSelect,
		core.ActionLeft, core.ActionLeft, core.ActionSelect, core.ActionDown, core.ActionSelect,
	}

	g1 := newGame(t, 42)
	g2 := newGame(t, 42)

	for i := range 2000 {
		var actions []core.Action
		if i%5 == 0 {
			actions = append(actions, script[(i/5)%len(script)])
		}
		press(g1, actions...)
		press(g2, actions...)

		if s1, s2 := g1.Snapshot(), g2.Snapshot(); !reflect.DeepEqual(s1, s2) {
			t.Fatalf("tick %d: snapshots differ\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestCursorClamps(t *testing.T) {
	g := newGame(t, 1)

	for range 20 {
		press(g, core.ActionLeft)
		press(g, core.ActionUp)
	}
	if g.cursor != engine.P(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", g.cursor)
	}

	for range 20 {
		press(g, core.ActionRight)
		press(g, core.ActionDown)
	}
	if g.cursor != engine.P(7, 7) {
		t.Errorf("cursor = %v, expected (7,7)", g.cursor)
	}
}

func TestSelection(t *testing.T) {
	g := newGame(t, 1)
	g.cursor = engine.P(2, 2)

	press(g, core.ActionSelect)
	if g.selected == nil || *g.selected != engine.P(2, 2) {
		t.Fatalf("selected = %v, expected (2,2)", g.selected)
	}

	press(g, core.ActionSelect)
	if g.selected != nil {
		t.Error("selecting the marked tile again should clear the selection")
	}

	press(g, core.ActionSelect)
	press(g, core.ActionCancel)
	if g.selected != nil {
		t.Error("cancel should clear the selection")
	}

	press(g, core.ActionSelect)
	g.cursor = engine.P(4, 4)
	press(g, core.ActionSelect)
	if g.selected != nil {
		t.Error("picking a non-adjacent tile should clear the selection")
	}
	if g.eng.Stats().Swaps != 0 {
		t.Errorf("Swaps = %d, expected 0", g.eng.Stats().Swaps)
	}
}

func TestAcceptedSwapPlaysBack(t *testing.T) {
	g := newGame(t, 7)
	a, b, ok := findSwap(g.view, true)
	if !ok {
		t.Skip("dealt board has no matching swap")
	}

	requestSwap(g, a, b)
	if !g.State().Busy {
		t.Fatal("expected playback after an accepted swap")
	}

	// Input is ignored while the swap is replayed.
	cursor := g.cursor
	press(g, core.ActionLeft)
	if g.cursor != cursor {
		t.Errorf("cursor moved during playback: %v -> %v", cursor, g.cursor)
	}

	drain(t, g)

	if !g.view.Equal(g.eng.Board()) {
		t.Error("view differs from engine board after playback")
	}
	if g.State().Score == 0 || g.State().Score != g.eng.Score() {
		t.Errorf("Score = %d, engine score %d", g.State().Score, g.eng.Score())
	}
	if n := engine.FindMatches(g.view).Len(); n != 0 {
		t.Errorf("board has %d matched tiles after playback", n)
	}
	if g.eng.Stats().Swaps != 1 {
		t.Errorf("Swaps = %d, expected 1", g.eng.Stats().Swaps)
	}
}

func TestPlaybackReplaysEngineBoard(t *testing.T) {
	g := newGame(t, 11)

	// Play several matching swaps and check the replayed view after each.
	for i := range 5 {
		a, b, ok := findSwap(g.view, true)
		if !ok || g.State().GameOver {
			return
		}
		requestSwap(g, a, b)
		for g.playing() {
			g.Step(core.NewInputFrame())
		}
		if !g.view.Equal(g.eng.Board()) {
			t.Fatalf("swap %d: view differs from engine board", i)
		}
	}
}

func TestRevertedSwapKeepsBoard(t *testing.T) {
	g := newGame(t, 3)
	a, b, ok := findSwap(g.view, false)
	if !ok {
		t.Skip("dealt board has no non-matching swap")
	}
	before := g.view.Clone()
	start := g.State().Score

	requestSwap(g, a, b)
	drain(t, g)

	if !g.view.Equal(before) {
		t.Error("board changed after a reverted swap")
	}
	if g.State().Score != start {
		t.Errorf("Score = %d, expected %d", g.State().Score, start)
	}
	if g.message != "No match" {
		t.Errorf("message = %q, expected %q", g.message, "No match")
	}
	if g.eng.Stats().Reverts != 1 {
		t.Errorf("Reverts = %d, expected 1", g.eng.Stats().Reverts)
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, 1)

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	tick := g.tick
	cursor := g.cursor
	press(g, core.ActionLeft)
	if g.tick != tick || g.cursor != cursor {
		t.Error("paused game should not advance")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("expected game to resume")
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := newGame(t, 1)

	g.Resize(20, 8)
	if got := g.Snapshot().State; got != StatePausedSmall {
		t.Errorf("State = %q, expected %q", got, StatePausedSmall)
	}
	tick := g.tick
	press(g, core.ActionRight)
	if g.tick != tick {
		t.Error("game advanced while window too small")
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected window too small message")
	}

	g.Resize(80, 24)
	if got := g.Snapshot().State; got != StatePlaying {
		t.Errorf("State = %q, expected %q", got, StatePlaying)
	}
}

func TestRunSummary(t *testing.T) {
	g := newGame(t, 7)
	a, b, ok := findSwap(g.view, true)
	if !ok {
		t.Skip("dealt board has no matching swap")
	}
	requestSwap(g, a, b)
	drain(t, g)

	summary := g.RunSummary()
	if summary.Seed != g.seed {
		t.Errorf("Seed = %d, expected %d", summary.Seed, g.seed)
	}
	if summary.Difficulty != "easy" {
		t.Errorf("Difficulty = %q, expected easy", summary.Difficulty)
	}
	if summary.Score != g.eng.Score() || summary.Swaps != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.BestChain < 1 || summary.Cascades < 1 {
		t.Errorf("summary chain stats = %+v", summary)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Match-3", fmt.Sprintf("Score: %d", g.eng.Score()), "Space: Select"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	tile, _ := g.view.Get(g.cursor)
	glyph := string(g.styleOf(tile).glyph)
	if !strings.Contains(out, "["+glyph+"]") {
		t.Errorf("render missing cursor around %q", glyph)
	}

	l := layoutFor(g.view)
	boardX := (80 - l.boardW) / 2
	for _, x := range []int{boardX, boardX + l.boardW - 1} {
		if got := screen.Get(x, hudHeight-1); got != '┈' {
			t.Errorf("HUD separator at (%d, %d) = %q", x, hudHeight-1, got)
		}
	}
}

func TestCatalogTooSmall(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "match3.yaml")
	doc := `
board:
  width: 6
  height: 6
difficulties:
  easy:
    tile_points: 10
    tile_types:
      - {id: 0, name: ruby, glyph: "●", color: red}
      - {id: 1, name: emerald, glyph: "◆", color: green}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New(config.DifficultyEasy)
	g.Reset(testRuntime(1))
	if !errors.Is(g.err, engine.ErrCatalogTooSmall) {
		t.Fatalf("err = %v, expected %v", g.err, engine.ErrCatalogTooSmall)
	}

	// The game stays inert and explains the problem.
	press(g, core.ActionSelect)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start") {
		t.Error("expected configuration error on screen")
	}
}
