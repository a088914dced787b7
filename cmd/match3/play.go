package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: match3).

Without --difficulty, the campaign asks for one first.

Controls:
  Arrows/WASD      - Move cursor
  Space/Enter      - Select; selecting a neighbour swaps
  Mouse click      - Select the clicked gem
  H/?              - Hint
  Esc/B            - Clear selection (back to menu when paused or over)
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit (the board is saved)
  Ctrl+S           - Screenshot to ~/.match3/screenshots

Difficulty options:
  easy     - Defeat the boss at 1000 points
  normal   - Defeat the boss at 5000 points
  hard     - Defeat the boss at 10000 points
  endless  - No boss; play until the board runs out of moves

Examples:
  match3 play
  match3 play --difficulty hard
  match3 play match3_endless
  match3 play --resume
  match3 play --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved board")
}

// terminalConfig builds the runtime config from the flags and terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, warning and returning nil on failure
// so the game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := match3.IDCampaign
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available modes.")
		os.Exit(1)
	}

	cfg := terminalConfig()

	// The campaign asks for a difficulty unless one was given or a saved
	// board is resumed.
	var preset config.DifficultyPreset
	if gameID == match3.IDCampaign && flagDifficulty == "" && !flagResume {
		selection, err := tui.RunMatch3ModeSelector(cfg, loadConfig().Difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User pressed back or quit
		if selection == nil {
			return
		}
		gameID = selection.GameID
		preset = selection.Difficulty
	}

	logger, closeLog := mustLogger("match3", true)
	defer closeLog()

	store := openStore()
	err := playGame(gameID, preset, store, cfg, flagResume, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playGame creates gameID, applies preset if set, and runs it until the
// player quits or goes back.
func playGame(gameID string, preset config.DifficultyPreset, store *storage.Store, cfg core.RuntimeConfig, resume bool, logger *log.Logger) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if g, ok := game.(*match3.Game); ok && preset != "" {
		g.SetDifficulty(preset)
	}
	if resume && store == nil {
		return errors.New("cannot resume without a scores database")
	}

	_, err = tui.Run(game, store, cfg, tui.Options{
		Owner:  tui.LocalOwner,
		Resume: resume,
		Logger: logger,
	})
	return err
}
