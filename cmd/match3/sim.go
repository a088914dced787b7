package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagSimGames    int
	flagSimMoves    int
	flagSimWorkers  int
	flagSimStrategy string
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play headless games and report statistics",
	Long: `Play many games without a terminal UI and print score, cascade, bonus and
shuffle statistics for the current configuration.

Strategies:
  hint    - always play the first available match
  random  - swap random neighbours (most swaps are rejected)

With --difficulty easy, normal or hard, a game stops once it reaches that
difficulty's score target and the report shows the win rate.

Examples:
  match3 sim
  match3 sim --games 1000 --moves 300 --workers 8
  match3 sim --strategy random --seed 42
  match3 sim --difficulty hard --config ./my-match3.yaml`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 200, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 200, "Swap attempts per game")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Games played in parallel")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", string(sim.StrategyHint), "Move strategy: hint, random")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger("match3-sim", false)
	defer closeLog()

	strategy, err := sim.ParseStrategy(flagSimStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	target := 0
	if flagDifficulty != "" {
		preset, _ := config.ParseDifficulty(flagDifficulty) // checked in PersistentPreRun
		target = cfg.Difficulty.Target(preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Games:    flagSimGames,
		Moves:    flagSimMoves,
		Workers:  flagSimWorkers,
		Strategy: strategy,
		Seed:     seed,
		Target:   target,
	}
	if !flagSimQuiet {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("simulation started", "games", opts.Games, "moves", opts.Moves, "workers", opts.Workers, "strategy", opts.Strategy, "seed", opts.Seed)
	report, err := sim.Run(ctx, cfg, opts)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("simulation interrupted", "played", len(report.Games))
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if report == nil {
			os.Exit(1)
		}
	}

	if _, err := report.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
