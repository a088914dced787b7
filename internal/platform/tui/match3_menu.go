package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

// Match3Selection holds the user's choice from the difficulty picker.
type Match3Selection struct {
	GameID     string
	Difficulty config.DifficultyPreset
}

// Match3ModeModel lets users choose a difficulty before a match-3 game.
// Endless is offered as the last preset.
type Match3ModeModel struct {
	presets   []config.DifficultyPreset
	targets   config.DifficultyConfig
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection Match3Selection
	choosing  bool
	quitting  bool
	back      bool
}

// NewMatch3ModeModel creates a difficulty picker. targets supplies the score
// shown next to each preset.
func NewMatch3ModeModel(width, height int, targets config.DifficultyConfig) Match3ModeModel {
	m := Match3ModeModel{
		presets:   config.Presets(),
		targets:   targets,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, p := range m.presets {
		if p == match3.GetDifficulty() {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m Match3ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Match3ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Match3ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown, MenuActionRight:
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		p := m.presets[m.cursor]
		m.choosing = false
		m.selection = Match3Selection{GameID: match3.IDCampaign, Difficulty: p}
		if config.IsEndless(p) {
			m.selection.GameID = match3.IDEndless
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty list.
func (m Match3ModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("M A T C H - 3", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		detail := "play until no moves remain"
		if t := m.targets.Target(p); t > 0 {
			detail = fmt.Sprintf("defeat the boss at %d points", t)
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, strings.ToUpper(string(p)), detail)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m Match3ModeModel) Selected() *Match3Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m Match3ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m Match3ModeModel) WantsBack() bool {
	return m.back
}

// RunMatch3ModeSelector runs the difficulty picker. A nil selection means the
// user went back or quit.
func RunMatch3ModeSelector(cfg core.RuntimeConfig, targets config.DifficultyConfig) (*Match3Selection, error) {
	model := NewMatch3ModeModel(cfg.ScreenW, cfg.ScreenH, targets)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(Match3ModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
