package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for the specified mode.

Examples:
  match3 scores match3
  match3 scores match3_endless --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available modes.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	// Get top scores
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	p := message.NewPrinter(language.English)

	// Display scores
	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
		return
	}

	playerW := len("Player")
	for _, e := range scores {
		playerW = max(playerW, runewidth.StringWidth(e.Player))
	}

	// Print header
	fmt.Printf("  %-4s  %10s  %6s  %s  %s\n", "Rank", "Score", "Moves", runewidth.FillRight("Player", playerW), "Date")
	fmt.Printf("  %-4s  %10s  %6s  %s  %s\n", "----", "-----", "-----", runewidth.FillRight("------", playerW), "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		p.Printf("  %-4d  %10d  %6d  %s  %s\n", i+1, entry.Score, entry.Moves, runewidth.FillRight(entry.Player, playerW), dateStr)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		p.Printf("Best: %d  |  Games: %d  |  Average: %.0f  |  Avg moves: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.AvgMoves)
	}
}
