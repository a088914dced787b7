package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyEndless DifficultyPreset = "endless"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyEndless}
}

// ParseDifficulty resolves a preset name. An empty name means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyEndless:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or endless)", name)
	}
}

// Target returns the campaign score target for a preset. Zero means the game
// has no target and runs until the board is exhausted.
func (d DifficultyConfig) Target(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return d.Easy
	case DifficultyNormal:
		return d.Normal
	case DifficultyHard:
		return d.Hard
	default:
		return 0
	}
}

// IsEndless returns true if the preset has no score target.
func IsEndless(preset DifficultyPreset) bool {
	return preset == DifficultyEndless
}
