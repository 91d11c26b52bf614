package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Width:         5,
		Height:        4,
		Catalog:       Catalog{A, B, C, D, E, F},
		PointsPerTile: 10,
	}
}

// engineWith returns an idle engine whose board is replaced by rows.
func engineWith(t *testing.T, cfg Config, rows ...string) *Engine {
	t.Helper()
	e, err := New(cfg, 1)
	require.NoError(t, err)
	e.board = boardOf(t, rows...)
	e.state = StateIdle
	e.score = 0
	e.stats = Stats{}
	return e
}

// cascadeRows swaps (2,0) with (2,1) into a three run of A on the top row.
var cascadeRows = []string{
	"AABDC",
	"BCAEF",
	"CDEFA",
	"DEFAB",
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"empty catalog", func(c *Config) { c.Catalog = nil }, ErrEmptyCatalog},
		{"two types", func(c *Config) { c.Catalog = Catalog{A, B} }, ErrCatalogTooSmall},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mod(&cfg)
			_, err := New(cfg, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResetIsQuiescentAndDeterministic(t *testing.T) {
	cfg := testConfig()
	for seed := int64(0); seed < 50; seed++ {
		e1, err := New(cfg, seed)
		require.NoError(t, err)
		e2, err := New(cfg, seed)
		require.NoError(t, err)

		assert.Empty(t, FindMatches(e1.Board()), "seed %d", seed)
		assert.True(t, e1.Board().Equal(e2.Board()), "seed %d gave different boards", seed)
		assert.Equal(t, e2.Score(), e1.Score(), "seed %d gave different scores", seed)

		events := e1.Reset(seed)
		require.NotEmpty(t, events)
		reset, ok := events[0].(BoardReset)
		require.True(t, ok, "first event is %T", events[0])
		assert.Equal(t, seed, reset.Seed)
		assert.Equal(t, e2.Score(), reset.Score)
		assert.Equal(t, e2.Score(), e1.Score(), "seed %d score not idempotent", seed)
		assert.True(t, reset.Board.Equal(e2.Board()), "seed %d not idempotent", seed)
	}
}

func TestResetScoresInitialMatches(t *testing.T) {
	cfg := Config{Width: 8, Height: 8, Catalog: Catalog{A, B, C}, PointsPerTile: 10}
	for seed := int64(1); seed <= 3; seed++ {
		raw, err := NewBoard(cfg.Width, cfg.Height)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(seed))
		raw.Fill(func() TileType { return cfg.Catalog.Draw(rng) })
		matched := FindMatches(raw).Len()
		require.NotZero(t, matched, "seed %d raw fill has no runs", seed)

		e, err := New(cfg, seed)
		require.NoError(t, err)

		// the first cascade alone pays matched * points at multiplier 1
		assert.GreaterOrEqual(t, e.Score(), matched*cfg.PointsPerTile, "seed %d", seed)
		assert.GreaterOrEqual(t, e.Stats().TilesCleared, matched)
		assert.Zero(t, e.Stats().Swaps)
	}
}

func TestSwapCascadeScoring(t *testing.T) {
	e := engineWith(t, testConfig(), cascadeRows...)
	// first refill completes a four run of D, the second leaves the board quiet
	e.draw = sequence(t, D, D, D, A, B, C, D)

	out, err := e.Swap(P(2, 0), P(2, 1))
	require.NoError(t, err)

	assert.True(t, out.Accepted)
	assert.Equal(t, 2, out.Cascades)
	assert.Equal(t, 110, out.ScoreDelta)
	assert.Equal(t, 110, e.Score())
	assert.Equal(t, StateIdle, e.State())
	assert.False(t, out.Settled)
	assert.Empty(t, FindMatches(e.Board()))

	var scores []ScoreChanged
	for _, ev := range out.Events {
		if sc, ok := ev.(ScoreChanged); ok {
			scores = append(scores, sc)
		}
	}
	assert.Equal(t, []ScoreChanged{
		{Delta: 30, Multiplier: 1, Total: 30},
		{Delta: 80, Multiplier: 2, Total: 110},
	}, scores)

	stats := e.Stats()
	assert.Equal(t, 1, stats.Swaps)
	assert.Equal(t, 2, stats.Cascades)
	assert.Equal(t, 2, stats.BestChain)
	assert.Equal(t, 7, stats.TilesCleared)
}

func TestSwapEventOrder(t *testing.T) {
	e := engineWith(t, testConfig(), cascadeRows...)
	e.draw = sequence(t, D, D, D, A, B, C, D)

	out, err := e.Swap(P(2, 0), P(2, 1))
	require.NoError(t, err)

	var kinds []string
	for _, ev := range out.Events {
		switch ev.(type) {
		case SwapApplied:
			kinds = append(kinds, "swap")
		case TilesCleared:
			kinds = append(kinds, "clear")
		case ScoreChanged:
			kinds = append(kinds, "score")
		case ColumnsCompacted:
			kinds = append(kinds, "compact")
		default:
			kinds = append(kinds, "other")
		}
	}
	assert.Equal(t, []string{
		"swap",
		"clear", "score", "compact",
		"clear", "score", "compact",
	}, kinds)
}

func TestSwapReverts(t *testing.T) {
	e := engineWith(t, testConfig(), "ABAB", "BABA", "ABAB", "BABA")
	before := e.Board()

	out, err := e.Swap(P(0, 0), P(1, 0))
	require.NoError(t, err)

	assert.False(t, out.Accepted)
	assert.True(t, e.Board().Equal(before), "board not restored:\n%s", e.Board())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, []Event{
		SwapApplied{A: P(0, 0), B: P(1, 0)},
		SwapReverted{A: P(0, 0), B: P(1, 0)},
	}, out.Events)
	assert.Equal(t, 1, e.Stats().Reverts)
}

func TestSwapRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want error
	}{
		{"not adjacent", P(0, 0), P(2, 0), ErrInvalidSwap},
		{"diagonal", P(0, 0), P(1, 1), ErrInvalidSwap},
		{"same cell", P(1, 1), P(1, 1), ErrInvalidSwap},
		{"out of range", P(4, 0), P(5, 0), ErrOutOfRange},
		{"negative", P(0, -1), P(0, 0), ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engineWith(t, testConfig(), cascadeRows...)
			before := e.Board()

			_, err := e.Swap(tt.a, tt.b)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, e.Board().Equal(before))
			assert.Equal(t, StateIdle, e.State())
		})
	}
}

func TestSwapAfterGameOver(t *testing.T) {
	e := engineWith(t, testConfig(), diagonalRows()...)
	e.state = StateGameOver

	_, err := e.Swap(P(0, 0), P(1, 0))
	assert.ErrorIs(t, err, ErrNotIdle)
}

func TestSwapIntoStalemate(t *testing.T) {
	// clearing the top-row run and refilling it leaves the diagonal board
	rows := diagonalRows()
	rows[0] = "EEDEA"
	e := engineWith(t, testConfig(), rows...)
	require.Empty(t, FindMatches(e.board))
	e.draw = sequence(t, A, B, C)

	out, err := e.Swap(P(2, 0), P(3, 0))
	require.NoError(t, err)
	require.True(t, out.Accepted)

	assert.Equal(t, boardOf(t, diagonalRows()...).String(), e.Board().String())
	assert.Equal(t, StateGameOver, e.State())
	assert.Equal(t, StateGameOver, out.State)
	assert.IsType(t, StalemateReached{}, out.Events[len(out.Events)-1])
}

func TestCascadeCapSettles(t *testing.T) {
	cfg := testConfig()
	cfg.MaxCascades = 1
	e := engineWith(t, cfg, cascadeRows...)
	e.draw = sequence(t, D, D, D)

	out, err := e.Swap(P(2, 0), P(2, 1))
	require.NoError(t, err)

	assert.True(t, out.Settled)
	assert.Equal(t, 1, out.Cascades)
	assert.Equal(t, 30, e.Score())
	assert.Empty(t, FindMatches(e.Board()))
	assert.Equal(t, 1, e.Stats().Settles)

	var settled bool
	for _, ev := range out.Events {
		if _, ok := ev.(BoardSettled); ok {
			settled = true
		}
	}
	assert.True(t, settled, "expected a BoardSettled event")
}

func TestQuiescenceHoldsUnderRandomPlay(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.Catalog = Catalog{A, B, C, D}

	for seed := int64(1); seed <= 20; seed++ {
		e, err := New(cfg, seed)
		require.NoError(t, err)
		moves := rand.New(rand.NewSource(seed * 31))

		for i := 0; i < 60 && e.State() == StateIdle; i++ {
			a := P(moves.Intn(cfg.Width), moves.Intn(cfg.Height))
			nbrs := e.board.Neighbors(a)
			b := nbrs[moves.Intn(len(nbrs))]

			out, err := e.Swap(a, b)
			require.NoError(t, err)
			require.Empty(t, FindMatches(e.Board()), "seed %d move %d left a match", seed, i)
			require.Contains(t, []State{StateIdle, StateGameOver}, out.State)
			require.GreaterOrEqual(t, out.ScoreDelta, 0)
		}
	}
}
