// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-3 game.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Items      []ItemConfig     `yaml:"items"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Shuffle    ShuffleConfig    `yaml:"shuffle"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ItemConfig defines one item type of the catalog.
type ItemConfig struct {
	ID    string `yaml:"id"`
	Value int    `yaml:"value"`          // points per cleared cell
	Glyph string `yaml:"glyph"`          // one or two terminal columns
	Color string `yaml:"color"`          // core color name, e.g. "bright_red"
	Type  int    `yaml:"type,omitempty"` // free-form tag passed through to the board
}

// ScoringConfig defines the bonus rules.
type ScoringConfig struct {
	ComboThreshold int `yaml:"combo_threshold"` // cells cleared by one swap
	ChainThreshold int `yaml:"chain_threshold"` // cascade steps caused by one swap
	BonusPoints    int `yaml:"bonus_points"`
}

// ShuffleConfig bounds the shuffle and cascade loops.
type ShuffleConfig struct {
	MaxAttempts     int `yaml:"max_attempts"`
	ReshuffleRounds int `yaml:"reshuffle_rounds"`
	MaxCascadeSteps int `yaml:"max_cascade_steps"`
}

// TimingConfig holds cosmetic delays in seconds.
type TimingConfig struct {
	HintDelay     float64 `yaml:"hint_delay"`      // idle time before a hint shows
	NoMovesBanner float64 `yaml:"no_moves_banner"` // how long "no moves" stays up
	PopFlash      float64 `yaml:"pop_flash"`       // highlight of cleared cells
	BossFlash     float64 `yaml:"boss_flash"`      // boss strip flash on bonus
}

// DifficultyConfig maps presets to campaign score targets.
type DifficultyConfig struct {
	Easy   int `yaml:"easy"`
	Normal int `yaml:"normal"`
	Hard   int `yaml:"hard"`
}
