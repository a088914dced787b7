package config

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// MaxBoardSide bounds both board dimensions so the board fits a terminal.
const MaxBoardSide = 16

// Validate checks that the config describes a playable game.
// Checks:
//   - board sides within [3, MaxBoardSide]
//   - at least three items with unique, non-empty IDs
//   - glyphs of one or two columns and known colors
//   - non-negative scoring and timing values
func (c Match3Config) Validate() error {
	if err := c.validateBoard(); err != nil {
		return err
	}
	if err := c.validateItems(); err != nil {
		return err
	}
	return c.validateNumbers()
}

func (c Match3Config) validateBoard() error {
	b := c.Board
	if b.Width < 3 || b.Height < 3 || b.Width > MaxBoardSide || b.Height > MaxBoardSide {
		return ValidationError{
			Code:    "BAD_BOARD",
			Message: fmt.Sprintf("board %dx%d outside 3..%d", b.Width, b.Height, MaxBoardSide),
		}
	}
	return nil
}

func (c Match3Config) validateItems() error {
	// Two item types can never fill a large board without a match.
	if len(c.Items) < 3 {
		return ValidationError{
			Code:    "TOO_FEW_ITEMS",
			Message: fmt.Sprintf("need at least 3 items, have %d", len(c.Items)),
		}
	}

	seen := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if it.ID == "" {
			return ValidationError{Code: "BLANK_ID", Message: fmt.Sprintf("item %d has no id", i)}
		}
		if seen[it.ID] {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("item %q listed twice", it.ID)}
		}
		seen[it.ID] = true

		if it.Value < 0 {
			return ValidationError{Code: "BAD_VALUE", Message: fmt.Sprintf("item %q has negative value", it.ID)}
		}
		if w := runewidth.StringWidth(it.Glyph); w < 1 || w > 2 {
			return ValidationError{
				Code:    "BAD_GLYPH",
				Message: fmt.Sprintf("item %q glyph %q is %d columns wide, want 1 or 2", it.ID, it.Glyph, w),
			}
		}
		if _, err := core.ParseColor(it.Color); err != nil {
			return ValidationError{Code: "BAD_COLOR", Message: fmt.Sprintf("item %q: %v", it.ID, err)}
		}
	}
	return nil
}

func (c Match3Config) validateNumbers() error {
	s := c.Scoring
	if s.ComboThreshold < 1 || s.ChainThreshold < 1 || s.BonusPoints < 0 {
		return ValidationError{Code: "BAD_SCORING", Message: "thresholds must be positive and bonus non-negative"}
	}
	sh := c.Shuffle
	if sh.MaxAttempts < 1 || sh.ReshuffleRounds < 1 || sh.MaxCascadeSteps < 1 {
		return ValidationError{Code: "BAD_SHUFFLE", Message: "shuffle limits must be positive"}
	}
	t := c.Timing
	if t.HintDelay < 0 || t.NoMovesBanner < 0 || t.PopFlash < 0 || t.BossFlash < 0 {
		return ValidationError{Code: "BAD_TIMING", Message: "timings must be non-negative"}
	}
	d := c.Difficulty
	if d.Easy < 0 || d.Normal < 0 || d.Hard < 0 {
		return ValidationError{Code: "BAD_TARGET", Message: "score targets must be non-negative"}
	}
	return nil
}
