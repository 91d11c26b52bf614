package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresRun   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent runs",
	Long: `Display the high scores and the most recent runs for a game
(default: match3).

Examples:
  match3 scores
  match3 scores match3_hard --limit 20
  match3 scores match3 --clear
  match3 scores --run 3f2c9a1e-5b7d-4c1a-9e0f-2d8b6a4c7e15`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the game")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show the details of one run by its ID")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := match3.IDEasy
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available games.")
		os.Exit(1)
	}
	title := registry.Title(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresRun != "" {
		run, err := store.RunByID(flagScoresRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
			os.Exit(1)
		}
		if run == nil {
			fmt.Fprintf(os.Stderr, "Error: no run with ID %q\n", flagScoresRun)
			os.Exit(1)
		}
		fmt.Print(formatRun(*run))
		return
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}

	runs, err := store.RecentRuns(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent Runs")
	fmt.Println()
	fmt.Printf("  %-36s  %-8s  %-5s  %-5s  %s\n", "Run", "Score", "Swaps", "Chain", "Ended")
	fmt.Printf("  %-36s  %-8s  %-5s  %-5s  %s\n", "---", "-----", "-----", "-----", "-----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-8d  %-5d  x%-4d  %s\n", r.ID, r.Score, r.Swaps, r.BestChain, runEnding(r))
	}
	fmt.Println()
	fmt.Println("Use --run <id> to see a run's seed and statistics.")
}

func runEnding(r storage.RunRecord) string {
	if r.Stalemate {
		return "no moves"
	}
	return "quit"
}

// formatRun renders one run with the command that replays its deal.
func formatRun(r storage.RunRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n\n", r.ID)
	fmt.Fprintf(&sb, "  Game:       %s (%s)\n", r.GameID, r.Difficulty)
	fmt.Fprintf(&sb, "  Played:     %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "  Score:      %d\n", r.Score)
	fmt.Fprintf(&sb, "  Swaps:      %d\n", r.Swaps)
	fmt.Fprintf(&sb, "  Cascades:   %d\n", r.Cascades)
	fmt.Fprintf(&sb, "  Best chain: x%d\n", r.BestChain)
	fmt.Fprintf(&sb, "  Ended:      %s\n", runEnding(r))
	fmt.Fprintf(&sb, "\nReplay the deal: match3 play %s --seed %d\n", r.GameID, r.Seed)
	return sb.String()
}
