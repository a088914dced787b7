package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// LocalOwner owns saves made from the local terminal.
const LocalOwner = "local"

// Options configures a play session.
type Options struct {
	// Owner keys saved boards and is recorded as the player of scores.
	Owner string

	// Resume loads the owner's saved board instead of starting fresh.
	Resume bool

	// Logger receives game events at debug level. Nil discards them.
	Logger *log.Logger

	// embedded models run inside a SessionModel and must not quit the program
	// when going back to the menu.
	embedded bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	finished   bool // score or board already stored for the current game
	resumeErr  error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Owner == "" {
		opts.Owner = LocalOwner
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger.With("game", game.ID(), "owner", opts.Owner),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// start resets the game and, if asked, resumes the saved board.
func (m *Model) start() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.finished = false

	if !m.opts.Resume {
		return
	}
	m.opts.Resume = false
	if err := m.resume(); err != nil {
		m.resumeErr = err
		m.logger.Warn("resume failed, starting fresh", "error", err)
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()
}

func (m *Model) resume() error {
	saver, ok := m.game.(registry.Saver)
	if !ok {
		return fmt.Errorf("tui: %s cannot be resumed", m.game.ID())
	}
	if m.store == nil {
		return errors.New("tui: no storage")
	}
	data, err := m.store.LoadBoard(m.opts.Owner, m.game.ID())
	if err != nil {
		return err
	}
	if err := saver.LoadState(data); err != nil {
		return err
	}
	m.logger.Info("board resumed", "score", m.game.State().Score)
	return nil
}

// Init initializes the model and starts the tick loop.
func (m *Model) Init() tea.Cmd {
	m.start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from a paused or finished game; otherwise Back clears
	// the selection in-game.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.finish()
		m.backToMenu = true
		if m.opts.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize start over at the new size.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.start()
		m.logger.Debug("restart", "seed", m.config.Seed)
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, ev := range result.Events {
		m.logger.Debug(ev)
	}

	if m.gameState.GameOver && !m.finished {
		m.finish()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finish stores the outcome of the current game once. Unfinished resumable
// games are saved as a board; everything else records a score and drops any
// stale board.
func (m *Model) finish() {
	if m.finished || m.store == nil {
		return
	}
	m.finished = true
	id := m.game.ID()

	if saver, ok := m.game.(registry.Saver); ok && !m.gameState.GameOver {
		if m.gameState.Score == 0 && !m.resumed() {
			return
		}
		data, err := saver.SaveState()
		if err == nil {
			err = m.store.SaveBoard(m.opts.Owner, id, data)
		}
		if err != nil {
			m.logger.Error("save board", "error", err)
			return
		}
		m.logger.Info("board saved", "score", m.gameState.Score)
		return
	}

	if err := m.store.DeleteBoard(m.opts.Owner, id); err != nil {
		m.logger.Warn("delete board", "error", err)
	}
	if m.gameState.Score <= 0 {
		return
	}

	entry := storage.ScoreEntry{GameID: id, Player: m.opts.Owner, Score: m.gameState.Score}
	if mc, ok := m.game.(interface{ Moves() int }); ok {
		entry.Moves = mc.Moves()
	}
	if _, err := m.store.SaveResult(entry); err != nil {
		m.logger.Error("save score", "error", err)
		return
	}
	m.logger.Info("score saved", "score", entry.Score, "moves", entry.Moves)
}

// resumed reports whether a saved board exists for this game, so quitting a
// resumed game at score 0 still overwrites it.
func (m *Model) resumed() bool {
	ok, err := m.store.HasBoard(m.opts.Owner, m.game.ID())
	return err == nil && ok
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".match3", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m *Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m *Model) BackToMenu() bool {
	return m.backToMenu
}

// ResumeErr returns why resuming a saved board failed, if it did.
func (m *Model) ResumeErr() error {
	return m.resumeErr
}

// Run starts the Bubble Tea program for game and reports whether the user
// asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return false, err
	}
	return model.BackToMenu(), nil
}
