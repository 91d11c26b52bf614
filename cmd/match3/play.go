package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: match3).

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select a tile, then a neighbour to swap with it
  Esc          - Clear the selection
  P            - Pause
  R            - Deal a new board
  B            - Back (when paused or game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - five tile types
  hard   - seven tile types, more points per tile

Examples:
  match3 play
  match3 play match3_hard
  match3 play --difficulty hard --seed 42
  match3 play --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, hard (overrides the game argument)")
}

// resolveGameID picks the game from the argument and --difficulty flag.
func resolveGameID(args []string, difficulty string) (string, error) {
	gameID := match3.IDEasy
	if len(args) > 0 {
		gameID = args[0]
	}

	if difficulty != "" {
		preset := config.ParsePreset(difficulty)
		if preset != config.DifficultyEasy && preset != config.DifficultyHard {
			return "", fmt.Errorf("%w: %q", config.ErrUnknownDifficulty, difficulty)
		}
		gameID = match3.GameID(preset)
	}

	if !registry.Exists(gameID) {
		return "", fmt.Errorf("unknown game %q", gameID)
	}
	return gameID, nil
}

func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := resolveGameID(args, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := mustLogger("match3", true)
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
