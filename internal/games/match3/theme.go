package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// Visual is how one item type is drawn.
type Visual struct {
	Glyph string
	Color core.Color
}

// Theme resolves item visuals by item ID.
type Theme map[string]Visual

// NewTheme builds a theme from the configured items. Colors are assumed to
// be valid; config.Validate checks them.
func NewTheme(items []config.ItemConfig) Theme {
	t := make(Theme, len(items))
	for _, it := range items {
		c, _ := core.ParseColor(it.Color)
		t[it.ID] = Visual{Glyph: it.Glyph, Color: c}
	}
	return t
}

// VisualFor returns the glyph and color for an item. Unknown items fall back
// to the item's own visual handle, or its first letter.
func (t Theme) VisualFor(it board.ItemType) Visual {
	if v, ok := t[it.ID]; ok {
		return v
	}
	glyph := it.Visual
	if glyph == "" && it.ID != "" {
		glyph = string([]rune(it.ID)[:1])
	}
	return Visual{Glyph: glyph, Color: core.ColorDefault}
}

// NewCatalog builds the board catalog from the configured items.
func NewCatalog(cfg config.Match3Config) (*board.Catalog, error) {
	items := make([]board.ItemType, 0, len(cfg.Items))
	for _, it := range cfg.Items {
		items = append(items, board.ItemType{
			ID:     it.ID,
			Value:  it.Value,
			Visual: it.Glyph,
			Type:   it.Type,
		})
	}
	return board.NewCatalog(items)
}

// Rules maps the scoring and shuffle sections onto engine rules.
func Rules(cfg config.Match3Config) board.Rules {
	return board.Rules{
		ComboThreshold:  cfg.Scoring.ComboThreshold,
		ChainThreshold:  cfg.Scoring.ChainThreshold,
		BonusPoints:     cfg.Scoring.BonusPoints,
		ShuffleAttempts: cfg.Shuffle.MaxAttempts,
		ReshuffleRounds: cfg.Shuffle.ReshuffleRounds,
		MaxCascadeSteps: cfg.Shuffle.MaxCascadeSteps,
	}
}
