// match3 is a terminal match-3 game with a boss to beat, an endless mode,
// saved boards, an SSH server and a headless simulator.
//
// Usage:
//
//	match3 list              - List available modes
//	match3 play [mode]       - Play a mode (default: match3)
//	match3 menu              - Start menu to pick modes interactively
//	match3 serve             - Start SSH server for remote play
//	match3 scores <mode>     - Show high scores for a mode
//	match3 sim               - Play headless games and print statistics
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.match3/scores.db)
//	--config <path>      - Use a custom match3.yaml
//	--difficulty <name>  - easy, normal, hard or endless
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap gems in your terminal",
	Long: `Match-3 is a terminal puzzle game: swap adjacent gems to line up three or
more of a kind, chain cascades for bonuses, and beat the boss before you run
out of ideas.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Simulate games and report statistics

Examples:
  match3 list
  match3 play --difficulty hard
  match3 play match3_endless
  match3 play --resume
  match3 menu
  match3 serve --ssh :2222 --http :8080
  match3 scores match3
  match3 sim --games 1000 --strategy random`,
	PersistentPreRun: applyGameFlags,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, endless")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// applyGameFlags hands --config and --difficulty to the game package before
// any game is created.
func applyGameFlags(_ *cobra.Command, _ []string) {
	match3.SetConfigPath(flagConfig)

	if flagDifficulty == "" {
		return
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	match3.SetDifficulty(preset)
}

// loadConfig returns the effective game config, warning on stderr when it
// falls back to defaults.
func loadConfig() config.Match3Config {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultMatch3Config()
	}
	return cfg
}
