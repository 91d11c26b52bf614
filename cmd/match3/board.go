package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var (
	flagBoardDifficulty string
	flagBoardSwaps      []string
	flagBoardPlain      bool
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Deal a board and inspect it without the TUI",
	Long: `Deal a board from a seed, print it with the tiles that have a
matching swap available, and optionally apply swaps, printing every
resolution stage.

Swaps are written as x1,y1:x2,y2 with (0,0) at the top-left corner.

Examples:
  match3 board --seed 42
  match3 board --seed 42 --difficulty hard
  match3 board --seed 42 --swap 2,0:2,1 --swap 4,4:5,4`,
	Run: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagBoardDifficulty, "difficulty", "easy", "Difficulty preset")
	boardCmd.Flags().StringArrayVar(&flagBoardSwaps, "swap", nil, "Swap to apply, as x1,y1:x2,y2 (repeatable)")
	boardCmd.Flags().BoolVar(&flagBoardPlain, "plain", false, "Print tile ids instead of colored glyphs")
}

type glyph struct {
	r rune
	c core.Color
}

func runBoard(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger("match3", false)
	defer closeLog()

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset := config.ParsePreset(flagBoardDifficulty)
	diff, err := cfg.Difficulty(preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	catalog := make(engine.Catalog, 0, len(diff.TileTypes))
	glyphs := make(map[engine.TileType]glyph, len(diff.TileTypes))
	for _, tt := range diff.TileTypes {
		t := engine.TileType(tt.ID)
		catalog = append(catalog, t)
		glyphs[t] = glyph{r: tt.GlyphRune(), c: tt.ColorValue()}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	eng, err := engine.New(engine.Config{
		Width:         cfg.Board.Width,
		Height:        cfg.Board.Height,
		Catalog:       catalog,
		PointsPerTile: diff.TilePoints,
		MaxCascades:   cfg.Cascade.MaxIterations,
	}, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("board dealt", "seed", seed, "difficulty", preset)

	fmt.Printf("Seed %d, %s, %dx%d, %d tile types, initial score %d\n\n",
		seed, preset, cfg.Board.Width, cfg.Board.Height, len(eng.Catalog()), eng.Score())
	printBoard(eng.Board(), glyphs)

	for _, spec := range flagBoardSwaps {
		a, b, err := parseSwap(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nswap %v <-> %v\n", a, b)
		out, err := eng.Swap(a, b)
		if err != nil {
			fmt.Printf("  rejected: %v\n", err)
			continue
		}
		for _, ev := range out.Events {
			fmt.Println("  " + describeEvent(ev))
		}
		fmt.Println()
		printBoard(eng.Board(), glyphs)
	}

	moves := engine.FindPotentialMoves(eng.Board())
	fmt.Println()
	fmt.Printf("Score:     %d\n", eng.Score())
	fmt.Printf("State:     %s\n", eng.State())
	fmt.Printf("Movable:   %d tiles\n", moves.Len())
	fmt.Printf("Stalemate: %t\n", moves.Len() == 0)
}

// printBoard prints the grid with column and row indexes. Tiles that can
// take part in a matching swap are marked with '+'.
func printBoard(b *engine.Board, glyphs map[engine.TileType]glyph) {
	moves := engine.FindPotentialMoves(b)

	var sb strings.Builder
	sb.WriteString("    ")
	for x := range b.Width() {
		fmt.Fprintf(&sb, "%-3d", x)
	}
	sb.WriteString("\n")

	for y, row := range b.Rows() {
		fmt.Fprintf(&sb, "%2d  ", y)
		for x, t := range row {
			p := engine.P(x, y)
			cell := strconv.Itoa(int(t))
			if g, ok := glyphs[t]; ok && !flagBoardPlain {
				cell = tui.Colorize(g.c, string(g.r))
			}
			mark := " "
			if moves.Has(p) {
				mark = "+"
			}
			sb.WriteString(cell + mark + " ")
		}
		sb.WriteString("\n")
	}
	fmt.Print(sb.String())
}

// parseSwap parses "x1,y1:x2,y2".
func parseSwap(spec string) (engine.Position, engine.Position, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return engine.Position{}, engine.Position{}, fmt.Errorf("invalid swap %q, expected x1,y1:x2,y2", spec)
	}
	a, err := parsePosition(parts[0])
	if err != nil {
		return engine.Position{}, engine.Position{}, fmt.Errorf("invalid swap %q: %w", spec, err)
	}
	b, err := parsePosition(parts[1])
	if err != nil {
		return engine.Position{}, engine.Position{}, fmt.Errorf("invalid swap %q: %w", spec, err)
	}
	return a, b, nil
}

func parsePosition(s string) (engine.Position, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return engine.Position{}, fmt.Errorf("position %q is not x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return engine.Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return engine.Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	return engine.P(x, y), nil
}

func describeEvent(ev engine.Event) string {
	switch ev := ev.(type) {
	case engine.SwapApplied:
		return fmt.Sprintf("swapped %v and %v", ev.A, ev.B)
	case engine.SwapReverted:
		return fmt.Sprintf("no match, swapped %v and %v back", ev.A, ev.B)
	case engine.TilesCleared:
		return fmt.Sprintf("cascade %d: cleared %d tiles", ev.Cascade, len(ev.Positions))
	case engine.ScoreChanged:
		return fmt.Sprintf("+%d (x%d), total %d", ev.Delta, ev.Multiplier, ev.Total)
	case engine.ColumnsCompacted:
		return fmt.Sprintf("cascade %d: %d columns refilled", ev.Cascade, len(ev.Columns))
	case engine.BoardSettled:
		return "cascade limit reached, board settled"
	case engine.StalemateReached:
		return "no moves left"
	case engine.BoardReset:
		return fmt.Sprintf("board reset with seed %d, initial score %d", ev.Seed, ev.Score)
	default:
		return fmt.Sprintf("%T", ev)
	}
}
