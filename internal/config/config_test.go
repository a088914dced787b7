package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	want := DefaultMatch3Config()

	if cfg.Board != want.Board {
		t.Errorf("board = %+v, expected %+v", cfg.Board, want.Board)
	}
	if len(cfg.Items) != len(want.Items) {
		t.Fatalf("items = %d, expected %d", len(cfg.Items), len(want.Items))
	}
	for i := range want.Items {
		if cfg.Items[i] != want.Items[i] {
			t.Errorf("item %d = %+v, expected %+v", i, cfg.Items[i], want.Items[i])
		}
	}
	if cfg.Scoring != want.Scoring || cfg.Shuffle != want.Shuffle ||
		cfg.Timing != want.Timing || cfg.Difficulty != want.Difficulty {
		t.Errorf("embedded config differs from DefaultMatch3Config:\n%+v\n%+v", cfg, want)
	}
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  width: 6\n  height: 9\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 9 {
		t.Errorf("board = %+v, expected 6x9", cfg.Board)
	}
	if len(cfg.Items) != len(DefaultMatch3Config().Items) {
		t.Errorf("items should keep defaults, got %d", len(cfg.Items))
	}
	if cfg.Timing.HintDelay != 10 {
		t.Errorf("hint delay = %v, expected 10", cfg.Timing.HintDelay)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
		code   string
	}{
		{"defaults", func(*Match3Config) {}, ""},
		{"board too small", func(c *Match3Config) { c.Board.Width = 2 }, "BAD_BOARD"},
		{"board too large", func(c *Match3Config) { c.Board.Height = MaxBoardSide + 1 }, "BAD_BOARD"},
		{"two items", func(c *Match3Config) { c.Items = c.Items[:2] }, "TOO_FEW_ITEMS"},
		{"blank id", func(c *Match3Config) { c.Items[1].ID = "" }, "BLANK_ID"},
		{"duplicate id", func(c *Match3Config) { c.Items[2].ID = c.Items[0].ID }, "DUPLICATE_ID"},
		{"negative value", func(c *Match3Config) { c.Items[0].Value = -1 }, "BAD_VALUE"},
		{"empty glyph", func(c *Match3Config) { c.Items[0].Glyph = "" }, "BAD_GLYPH"},
		{"wide glyph", func(c *Match3Config) { c.Items[0].Glyph = "abc" }, "BAD_GLYPH"},
		{"unknown color", func(c *Match3Config) { c.Items[0].Color = "teal" }, "BAD_COLOR"},
		{"zero combo", func(c *Match3Config) { c.Scoring.ComboThreshold = 0 }, "BAD_SCORING"},
		{"zero attempts", func(c *Match3Config) { c.Shuffle.MaxAttempts = 0 }, "BAD_SHUFFLE"},
		{"negative hint", func(c *Match3Config) { c.Timing.HintDelay = -1 }, "BAD_TIMING"},
		{"negative target", func(c *Match3Config) { c.Difficulty.Hard = -5 }, "BAD_TARGET"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tc.mutate(&cfg)
			err := cfg.Validate()

			if tc.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, expected nil", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Code != tc.code {
				t.Errorf("code = %s, expected %s", ve.Code, tc.code)
			}
		})
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  bonus_points: 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3 failed: %v", err)
	}
	if cfg.Scoring.BonusPoints != 250 {
		t.Errorf("bonus = %d, expected 250", cfg.Scoring.BonusPoints)
	}
}

func TestLoadMatch3CustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(bad); err == nil {
		t.Error("malformed custom file should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  width: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var ve ValidationError
	if _, err := LoadMatch3(invalid); !errors.As(err, &ve) {
		t.Errorf("invalid custom file error = %v, expected ValidationError", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"endless", DifficultyEndless, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDifficulty(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestDifficultyTarget(t *testing.T) {
	d := DefaultMatch3Config().Difficulty

	tests := []struct {
		preset DifficultyPreset
		want   int
	}{
		{DifficultyEasy, 1000},
		{DifficultyNormal, 5000},
		{DifficultyHard, 10000},
		{DifficultyEndless, 0},
	}

	for _, tc := range tests {
		if got := d.Target(tc.preset); got != tc.want {
			t.Errorf("Target(%s) = %d, expected %d", tc.preset, got, tc.want)
		}
	}
	if !IsEndless(DifficultyEndless) || IsEndless(DifficultyHard) {
		t.Error("IsEndless misclassifies presets")
	}
	if len(Presets()) != 4 {
		t.Errorf("Presets() = %v", Presets())
	}
}
