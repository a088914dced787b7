// Package match3 adapts the board engine to the terminal game loop: cursor and
// mouse input, idle hints, cosmetic timers, scoring targets and rendering.
package match3

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registered game IDs.
const (
	IDCampaign = "match3"
	IDEndless  = "match3_endless"
)

// Game implements the match-3 puzzle.
type Game struct {
	mode       Mode
	difficulty config.DifficultyPreset
	cfg        config.Match3Config
	configErr  error

	seed  int64
	tick  uint64
	moves int

	catalog *board.Catalog
	theme   Theme
	ctrl    *board.Controller
	target  int

	cursor board.Coord
	hint   *board.Move

	// Timers, in ticks.
	hintDelay   int
	bannerTicks int
	popTicks    int
	bossTicks   int
	idleTicks   int
	bannerLeft  int
	popLeft     int
	bossLeft    int
	rejectLeft  int
	popCells    []board.Coord
	rejected    board.Move
	bossHits    int
	lastBonus   board.BonusReason
	stepEvents  []string

	screenW int
	screenH int

	gameOver  bool
	won       bool
	exhausted bool
	paused    bool
	tooSmall  bool
}

// Package-level variables for config
var (
	selectedDifficulty = config.DifficultyNormal
	configPath         string
)

// SetDifficulty sets the campaign difficulty of games created afterwards.
func SetDifficulty(p config.DifficultyPreset) {
	selectedDifficulty = p
}

// GetDifficulty returns the currently selected difficulty.
func GetDifficulty() config.DifficultyPreset {
	return selectedDifficulty
}

// SetConfigPath sets a custom config file for the next Reset. Empty means
// the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// LoadConfig loads the config that the next Reset will use.
func LoadConfig() (config.Match3Config, error) {
	return config.LoadMatch3(configPath)
}

// New creates a new campaign game at the selected difficulty.
func New() *Game {
	return &Game{mode: ModeCampaign, difficulty: selectedDifficulty}
}

// NewEndless creates a new endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless, difficulty: config.DifficultyEndless}
}

// SetDifficulty overrides the difficulty of this game from the next Reset.
// Endless games ignore it.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	if g.mode == ModeCampaign {
		g.difficulty = p
	}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Play until the board runs out of moves"
	}
	return "Beat the boss by reaching the target score"
}

// NewController builds a prepared controller: a seeded RNG, a randomly filled
// grid, and a Prepare pass that leaves no match and at least one move on the
// board.
func NewController(cfg config.Match3Config, cat *board.Catalog, seed int64, l board.Listener) (*board.Controller, error) {
	rng := board.NewRand(seed)
	grid, err := board.NewGrid(cfg.Board.Width, cfg.Board.Height, func() board.ItemType {
		return cat.RandomItem(rng)
	})
	if err != nil {
		return nil, fmt.Errorf("match3: grid: %w", err)
	}

	ctrl := board.NewController(grid, cat, rng, Rules(cfg), l)
	if _, err := ctrl.Prepare(); err != nil {
		return ctrl, fmt.Errorf("match3: prepare board: %w", err)
	}
	return ctrl, nil
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.cfg, g.configErr = LoadConfig()
	if g.configErr != nil {
		g.cfg = config.DefaultMatch3Config()
	}

	g.target = 0
	if g.mode == ModeCampaign {
		g.target = g.cfg.Difficulty.Target(g.difficulty)
	}

	g.seed = rt.Seed
	g.tick = 0
	g.moves = 0
	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH

	g.hintDelay = rt.Seconds(g.cfg.Timing.HintDelay)
	g.bannerTicks = rt.Seconds(g.cfg.Timing.NoMovesBanner)
	g.popTicks = rt.Seconds(g.cfg.Timing.PopFlash)
	g.bossTicks = rt.Seconds(g.cfg.Timing.BossFlash)
	g.clearTransient()

	g.gameOver = false
	g.won = false
	g.exhausted = false
	g.paused = false

	g.theme = NewTheme(g.cfg.Items)
	g.cursor = board.C(g.cfg.Board.Width/2, g.cfg.Board.Height/2)

	g.ctrl = nil
	cat, err := NewCatalog(g.cfg)
	if err == nil {
		g.catalog = cat
		g.ctrl, err = NewController(g.cfg, cat, g.seed, g)
	}
	if err != nil {
		g.fail(err)
	}

	g.checkScreenSize()
}

func (g *Game) clearTransient() {
	g.hint = nil
	g.idleTicks = 0
	g.bannerLeft = 0
	g.popLeft = 0
	g.bossLeft = 0
	g.rejectLeft = 0
	g.popCells = nil
	g.bossHits = 0
	g.lastBonus = 0
	g.stepEvents = nil
}

// fail ends the game on an engine error. An exhausted shuffle is the only
// expected one.
func (g *Game) fail(err error) {
	g.gameOver = true
	if errors.Is(err, board.ErrShuffleExhausted) {
		g.exhausted = true
	}
	g.event("error %v", err)
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := g.minScreen()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.stepEvents = nil

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver || g.ctrl == nil {
		return g.result()
	}

	g.countDown()

	if in.Empty() {
		g.idleTicks++
	} else {
		g.idleTicks = 0
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Click != nil {
		if c, ok := g.cellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = c
			g.selectCell(c)
		}
	} else if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.selectCell(g.cursor)
	}

	if in.Has(core.ActionBack) {
		g.ctrl.ClearSelection()
	}

	if !g.gameOver && g.hint == nil &&
		(in.Has(core.ActionHint) || (g.hintDelay > 0 && g.idleTicks >= g.hintDelay)) {
		g.ctrl.Hint()
	}

	return g.result()
}

func (g *Game) countDown() {
	if g.bannerLeft > 0 {
		g.bannerLeft--
	}
	if g.popLeft > 0 {
		g.popLeft--
		if g.popLeft == 0 {
			g.popCells = nil
		}
	}
	if g.bossLeft > 0 {
		g.bossLeft--
	}
	if g.rejectLeft > 0 {
		g.rejectLeft--
	}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursor = board.C(
		core.Wrap(g.cursor.X+dx, g.cfg.Board.Width),
		core.Wrap(g.cursor.Y+dy, g.cfg.Board.Height),
	)
}

// selectCell forwards a selection to the controller and applies the outcome.
func (g *Game) selectCell(c board.Coord) {
	anchor, hadAnchor := g.ctrl.Selected()

	out, err := g.ctrl.Select(c)
	if out.Swapped {
		g.moves++
		g.hint = nil
		g.idleTicks = 0
		g.event("swap %v %v: %d steps, %d cleared, +%d", anchor, c, out.Steps, out.Cleared, out.Points)
	}
	if out.Reverted && hadAnchor {
		g.rejected = board.Move{A: anchor, B: c}
		g.rejectLeft = g.popTicks
	}
	if err != nil {
		g.fail(err)
		return
	}

	if g.target > 0 && g.ctrl.Score() >= g.target {
		g.won = true
		g.gameOver = true
		g.bossLeft = g.bossTicks
		g.event("target %d reached", g.target)
	}
}

func (g *Game) event(format string, args ...any) {
	g.stepEvents = append(g.stepEvents, fmt.Sprintf(format, args...))
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.stepEvents}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.ctrl != nil {
		score = g.ctrl.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Moves returns the number of swaps kept so far.
func (g *Game) Moves() int {
	return g.moves
}

// Target returns the campaign score target, or 0 in endless mode.
func (g *Game) Target() int {
	return g.target
}

// ConfigErr returns the error from loading the config file, if any. The game
// falls back to defaults in that case.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// OnGroupResolved implements board.Listener.
func (g *Game) OnGroupResolved(group board.Group, item board.ItemType) {
	g.popCells = append(g.popCells, group.Cells...)
	g.popLeft = g.popTicks
	g.bossHits++
	g.event("cleared %s x%d", item.ID, group.Size())
}

// OnBonusTriggered implements board.Listener.
func (g *Game) OnBonusTriggered(reason board.BonusReason) {
	g.lastBonus = reason
	g.bossLeft = g.bossTicks
	g.event("bonus %s", reason)
}

// OnNoMoveWaiting implements board.Listener.
func (g *Game) OnNoMoveWaiting(waiting bool) {
	if waiting {
		g.bannerLeft = g.bannerTicks
		g.event("no moves, shuffling")
	}
}

// OnHintAvailable implements board.Listener.
func (g *Game) OnHintAvailable(a, b board.Coord) {
	g.hint = &board.Move{A: a, B: b}
	g.event("hint %v %v", a, b)
}

// OnScoreChanged implements board.Listener.
func (g *Game) OnScoreChanged(total, delta int) {}
