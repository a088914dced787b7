package match3

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StateExhausted   GameStateType = "exhausted"
	StateWin         GameStateType = "win"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests and saved sessions.
// Board holds item IDs, one slice per row.
type Snapshot struct {
	Tick       uint64        `yaml:"tick"`
	Mode       string        `yaml:"mode"`
	Difficulty string        `yaml:"difficulty"`
	Target     int           `yaml:"target"`
	Score      int           `yaml:"score"`
	Moves      int           `yaml:"moves"`
	Seed       int64         `yaml:"seed"`
	Board      [][]string    `yaml:"board"`
	Cursor     board.Coord   `yaml:"cursor"`
	State      GameStateType `yaml:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.exhausted:
		state = StateExhausted
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Difficulty: string(g.difficulty),
		Target:     g.target,
		Score:      g.State().Score,
		Moves:      g.moves,
		Seed:       g.seed,
		Cursor:     g.cursor,
		State:      state,
	}
	if g.ctrl == nil {
		return s
	}

	grid := g.ctrl.Grid()
	s.Board = make([][]string, grid.Height())
	items := grid.Items()
	for y := range s.Board {
		row := make([]string, grid.Width())
		for x := range row {
			row[x] = items[y*grid.Width()+x].ID
		}
		s.Board[y] = row
	}
	return s
}

// Restore resumes a snapshot on top of a Reset game. The board must match the
// configured size and use known item IDs. The engine RNG cannot be captured,
// so refills continue from a fresh stream seeded by seed and move count.
func (g *Game) Restore(s Snapshot) error {
	if g.catalog == nil {
		return fmt.Errorf("match3: restore before reset")
	}
	if s.Mode != string(g.mode) {
		return fmt.Errorf("match3: snapshot is for mode %q, game is %q", s.Mode, g.mode)
	}

	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	if len(s.Board) != h {
		return fmt.Errorf("match3: snapshot has %d rows, board has %d", len(s.Board), h)
	}
	items := make([]board.ItemType, 0, w*h)
	for y, row := range s.Board {
		if len(row) != w {
			return fmt.Errorf("match3: snapshot row %d has %d cells, board has %d", y, len(row), w)
		}
		for _, id := range row {
			it, ok := g.catalog.Lookup(id)
			if !ok {
				return fmt.Errorf("match3: snapshot uses unknown item %q", id)
			}
			items = append(items, it)
		}
	}
	grid, err := board.NewGridFromItems(w, h, items)
	if err != nil {
		return fmt.Errorf("match3: restore board: %w", err)
	}

	if s.Difficulty != "" {
		d, err := config.ParseDifficulty(s.Difficulty)
		if err != nil {
			return fmt.Errorf("match3: restore: %w", err)
		}
		g.difficulty = d
	}

	rng := board.NewRand(s.Seed + int64(s.Moves))
	g.ctrl = board.NewController(grid, g.catalog, rng, Rules(g.cfg), g)
	g.ctrl.SetScore(s.Score)

	g.tick = s.Tick
	g.seed = s.Seed
	g.moves = s.Moves
	g.target = s.Target
	g.cursor = board.C(core.Clamp(s.Cursor.X, 0, w-1), core.Clamp(s.Cursor.Y, 0, h-1))
	g.clearTransient()
	g.gameOver = false
	g.won = false
	g.exhausted = false
	g.paused = false

	// Saved boards are settled like fresh ones.
	if _, err := g.ctrl.Prepare(); err != nil {
		g.fail(err)
	}
	return nil
}

// SaveState implements registry.Saver. Finished games are not saved.
func (g *Game) SaveState() ([]byte, error) {
	if g.gameOver {
		return nil, fmt.Errorf("match3: game is over")
	}
	data, err := yaml.Marshal(g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("match3: encode snapshot: %w", err)
	}
	return data, nil
}

// LoadState implements registry.Saver.
func (g *Game) LoadState(data []byte) error {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("match3: decode snapshot: %w", err)
	}
	return g.Restore(s)
}
