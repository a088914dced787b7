package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Items: []ItemConfig{
			{ID: "ruby", Value: 10, Glyph: "♦", Color: "bright_red"},
			{ID: "emerald", Value: 10, Glyph: "♣", Color: "bright_green"},
			{ID: "sapphire", Value: 15, Glyph: "●", Color: "bright_blue"},
			{ID: "topaz", Value: 15, Glyph: "▲", Color: "bright_yellow"},
			{ID: "amethyst", Value: 20, Glyph: "♠", Color: "bright_magenta"},
			{ID: "pearl", Value: 25, Glyph: "■", Color: "bright_white"},
		},
		Scoring: ScoringConfig{
			ComboThreshold: 5,
			ChainThreshold: 3,
			BonusPoints:    100,
		},
		Shuffle: ShuffleConfig{
			MaxAttempts:     1000,
			ReshuffleRounds: 100,
			MaxCascadeSteps: 1000,
		},
		Timing: TimingConfig{
			HintDelay:     10,
			NoMovesBanner: 2.5,
			PopFlash:      0.3,
			BossFlash:     0.5,
		},
		Difficulty: DifficultyConfig{
			Easy:   1000,
			Normal: 5000,
			Hard:   10000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
