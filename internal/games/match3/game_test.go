package match3

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     seed,
	}
}

// useDefaults points the package at a config file holding the embedded
// defaults, so tests never pick up a user's config.
func useDefaults(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, config.DefaultYAML(), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	SetDifficulty(config.DifficultyNormal)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficulty(config.DifficultyNormal)
	})
}

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	useDefaults(t)
	g := New()
	g.Reset(testRuntime(seed))
	if g.ConfigErr() != nil {
		t.Fatalf("config: %v", g.ConfigErr())
	}
	if g.State().GameOver {
		t.Fatalf("fresh game is over: %+v", g.Snapshot())
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// playHint performs the first hinted move through the cursor.
func playHint(t *testing.T, g *Game) board.Move {
	t.Helper()
	m, ok := board.FindHint(g.ctrl.Grid())
	if !ok {
		t.Fatal("no move on a prepared board")
	}
	g.cursor = m.A
	press(g, core.ActionSelect)
	g.cursor = m.B
	press(g, core.ActionSelect)
	return m
}

func TestResetPreparesBoard(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := newGame(t, seed)
		grid := g.ctrl.Grid()
		if board.HasAnyMatch(grid) {
			t.Errorf("seed %d: fresh board has a match:\n%s", seed, grid)
		}
		if !board.HasPossibleMove(grid) {
			t.Errorf("seed %d: fresh board has no move:\n%s", seed, grid)
		}
		if g.State().Score != 0 {
			t.Errorf("seed %d: fresh score = %d", seed, g.State().Score)
		}
	}
}

func TestDeterministicReset(t *testing.T) {
	a := newGame(t, 42)
	b := newGame(t, 42)

	if !a.ctrl.Grid().Equal(b.ctrl.Grid()) {
		t.Fatal("same seed produced different boards")
	}

	ma := playHint(t, a)
	mb := playHint(t, b)
	if ma != mb {
		t.Fatalf("hints differ: %v vs %v", ma, mb)
	}
	if !a.ctrl.Grid().Equal(b.ctrl.Grid()) || a.State().Score != b.State().Score {
		t.Error("same seed and moves diverged")
	}
}

func TestCursorWraps(t *testing.T) {
	g := newGame(t, 1)
	g.cursor = board.C(0, 0)

	press(g, core.ActionLeft)
	if g.cursor != board.C(7, 0) {
		t.Errorf("cursor after Left = %v, want (7,0)", g.cursor)
	}
	press(g, core.ActionUp)
	if g.cursor != board.C(7, 7) {
		t.Errorf("cursor after Up = %v, want (7,7)", g.cursor)
	}
	press(g, core.ActionRight)
	press(g, core.ActionDown)
	if g.cursor != board.C(0, 0) {
		t.Errorf("cursor after Right, Down = %v, want (0,0)", g.cursor)
	}
}

func TestSwapScores(t *testing.T) {
	g := newGame(t, 7)
	res := func() core.StepResult {
		m, _ := board.FindHint(g.ctrl.Grid())
		g.cursor = m.A
		press(g, core.ActionSelect)
		g.cursor = m.B
		return press(g, core.ActionConfirm)
	}()

	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
	if res.State.Score <= 0 {
		t.Errorf("score = %d, want > 0", res.State.Score)
	}
	if len(res.Events) == 0 || !strings.HasPrefix(res.Events[len(res.Events)-1], "swap") {
		t.Errorf("events = %q, want a swap summary last", res.Events)
	}
	if len(g.popCells) == 0 {
		t.Error("cleared cells not flashed")
	}

	grid := g.ctrl.Grid()
	if board.HasAnyMatch(grid) || !board.HasPossibleMove(grid) {
		t.Errorf("board not settled after swap:\n%s", grid)
	}
}

func TestRejectedSwapKeepsBoard(t *testing.T) {
	g := newGame(t, 3)
	before := g.ctrl.Grid()

	var bad board.Move
	found := false
	valid := board.ValidMoves(before)
	for _, c := range before.AllCoords() {
		right := board.C(c.X+1, c.Y)
		if !before.InBounds(right) {
			continue
		}
		m := board.Move{A: c, B: right}
		isValid := false
		for _, v := range valid {
			if v == m {
				isValid = true
				break
			}
		}
		if !isValid {
			bad, found = m, true
			break
		}
	}
	if !found {
		t.Skip("every horizontal swap matches")
	}

	g.cursor = bad.A
	press(g, core.ActionSelect)
	g.cursor = bad.B
	press(g, core.ActionSelect)

	if !g.ctrl.Grid().Equal(before) {
		t.Error("rejected swap changed the board")
	}
	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
	if g.rejectLeft == 0 || g.rejected != bad {
		t.Errorf("rejected swap not flashed: %v left %d", g.rejected, g.rejectLeft)
	}
}

func TestClickSelectsCell(t *testing.T) {
	g := newGame(t, 1)
	bx, by := g.layout()
	want := board.C(3, 5)

	in := core.NewInputFrame()
	in.SetClick(bx+1+want.X*cellWidth+1, by+1+want.Y)
	g.Step(in)

	got, ok := g.ctrl.Selected()
	if !ok || got != want {
		t.Errorf("selected = %v %v, want %v", got, ok, want)
	}
	if g.cursor != want {
		t.Errorf("cursor = %v, want %v", g.cursor, want)
	}

	// Clicks on the frame select nothing.
	if _, ok := g.cellAt(bx, by); ok {
		t.Error("click on the frame mapped to a cell")
	}
}

func TestBackClearsSelection(t *testing.T) {
	g := newGame(t, 1)
	press(g, core.ActionSelect)
	if _, ok := g.ctrl.Selected(); !ok {
		t.Fatal("select did not anchor")
	}
	press(g, core.ActionBack)
	if _, ok := g.ctrl.Selected(); ok {
		t.Error("back did not clear the selection")
	}
}

func TestHintOnRequest(t *testing.T) {
	g := newGame(t, 5)
	press(g, core.ActionHint)

	if g.hint == nil {
		t.Fatal("hint not shown")
	}
	want, _ := board.FindHint(g.ctrl.Grid())
	if *g.hint != want {
		t.Errorf("hint = %v, want %v", *g.hint, want)
	}
}

func TestIdleHint(t *testing.T) {
	g := newGame(t, 5)
	delay := testRuntime(5).Seconds(g.cfg.Timing.HintDelay)

	for range delay - 1 {
		g.Step(core.NewInputFrame())
	}
	if g.hint != nil {
		t.Fatal("hint shown before the idle delay")
	}
	g.Step(core.NewInputFrame())
	if g.hint == nil {
		t.Fatal("hint not shown after the idle delay")
	}

	playHint(t, g)
	if g.hint != nil {
		t.Error("hint kept after a swap")
	}
}

func TestCampaignWin(t *testing.T) {
	g := newGame(t, 9)
	if g.Target() != g.cfg.Difficulty.Normal {
		t.Fatalf("target = %d, want %d", g.Target(), g.cfg.Difficulty.Normal)
	}
	g.target = 1

	playHint(t, g)

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("state = %+v, want won", st)
	}
	if g.Snapshot().State != StateWin {
		t.Errorf("snapshot state = %s, want win", g.Snapshot().State)
	}

	// Finished games ignore input.
	score := st.Score
	press(g, core.ActionHint, core.ActionSelect)
	if g.State().Score != score || g.hint != nil {
		t.Error("input processed after the game ended")
	}
}

func TestDifficultyTarget(t *testing.T) {
	useDefaults(t)
	SetDifficulty(config.DifficultyHard)

	g := New()
	g.Reset(testRuntime(1))
	if g.Target() != g.cfg.Difficulty.Hard {
		t.Errorf("hard target = %d, want %d", g.Target(), g.cfg.Difficulty.Hard)
	}

	e := NewEndless()
	e.Reset(testRuntime(1))
	if e.Target() != 0 {
		t.Errorf("endless target = %d, want 0", e.Target())
	}
	if e.ID() != IDEndless || g.ID() != IDCampaign {
		t.Errorf("ids = %q, %q", g.ID(), e.ID())
	}
}

func TestPauseToggle(t *testing.T) {
	g := newGame(t, 1)
	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("pause not applied")
	}

	before := g.cursor
	press(g, core.ActionRight)
	if g.cursor != before {
		t.Error("cursor moved while paused")
	}

	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("pause not released")
	}
}

func TestTooSmallAndResize(t *testing.T) {
	useDefaults(t)
	g := New()
	rt := testRuntime(1)
	rt.ScreenW, rt.ScreenH = 20, 10
	g.Reset(rt)

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Fatalf("small screen not paused: %+v", g.Snapshot())
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small message not rendered")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("still paused after resize")
	}
}

func TestConfigErrorFallsBack(t *testing.T) {
	useDefaults(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	g := New()
	g.Reset(testRuntime(1))
	if g.ConfigErr() == nil {
		t.Fatal("missing config file not reported")
	}
	if g.State().GameOver || g.ctrl == nil {
		t.Error("game did not fall back to defaults")
	}
}

func TestSaveLoadState(t *testing.T) {
	g := newGame(t, 11)
	playHint(t, g)
	g.cursor = board.C(2, 6)

	data, err := g.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	r := New()
	r.Reset(testRuntime(99))
	if err := r.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	want, got := g.Snapshot(), r.Snapshot()
	if got.Score != want.Score || got.Moves != want.Moves || got.Cursor != want.Cursor {
		t.Errorf("restored %+v, want %+v", got, want)
	}
	if !r.ctrl.Grid().Equal(g.ctrl.Grid()) {
		t.Error("restored board differs")
	}
}

func TestLoadStateRejects(t *testing.T) {
	g := newGame(t, 2)
	snap := g.Snapshot()

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"unknown item", func(s *Snapshot) { s.Board[0][0] = "coal" }},
		{"short row", func(s *Snapshot) { s.Board[1] = s.Board[1][:3] }},
		{"missing rows", func(s *Snapshot) { s.Board = s.Board[:2] }},
		{"wrong mode", func(s *Snapshot) { s.Mode = string(ModeEndless) }},
		{"bad difficulty", func(s *Snapshot) { s.Difficulty = "brutal" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snap
			s.Board = make([][]string, len(snap.Board))
			for i, row := range snap.Board {
				s.Board[i] = append([]string(nil), row...)
			}
			tt.mutate(&s)

			r := New()
			r.Reset(testRuntime(1))
			if err := r.Restore(s); err == nil {
				t.Error("Restore accepted a bad snapshot")
			}
		})
	}

	if err := g.LoadState([]byte("board: [")); err == nil {
		t.Error("LoadState accepted malformed YAML")
	}
}

func TestSaveStateAfterGameOver(t *testing.T) {
	g := newGame(t, 9)
	g.target = 1
	playHint(t, g)

	if _, err := g.SaveState(); err == nil {
		t.Error("SaveState saved a finished game")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 4)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Match-3") {
		t.Errorf("title row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Score: 0") {
		t.Errorf("score row = %q", screen.Row(1))
	}

	bx, by := g.layout()
	if screen.Get(bx, by) != '┌' {
		t.Errorf("board corner = %q, want ┌", screen.Get(bx, by))
	}

	// The cursor brackets the cell under it.
	cx := bx + 1 + g.cursor.X*cellWidth
	cy := by + 1 + g.cursor.Y
	if screen.Get(cx, cy) != '[' || screen.Get(cx+cellWidth-1, cy) != ']' {
		t.Errorf("cursor row = %q", screen.Row(cy))
	}

	cell, _ := g.ctrl.Grid().Get(g.cursor)
	v := g.theme.VisualFor(cell.Item)
	if got := screen.GetCell(cx+1, cy); string(got.Rune) != v.Glyph || got.Color != v.Color {
		t.Errorf("cell under cursor = %+v, want %q in %s", got, v.Glyph, v.Color)
	}

	press(g, core.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDCampaign, IDEndless} {
		info, ok := registry.Info(id)
		if !ok {
			t.Fatalf("%s not registered", id)
		}
		if !info.Resumable || info.Description == "" {
			t.Errorf("%s info = %+v", id, info)
		}
	}
}

func TestThemeFallback(t *testing.T) {
	theme := NewTheme(config.DefaultMatch3Config().Items)

	ruby := theme.VisualFor(board.ItemType{ID: "ruby"})
	if ruby.Glyph != "♦" || ruby.Color != core.ColorBrightRed {
		t.Errorf("ruby = %+v", ruby)
	}

	if v := theme.VisualFor(board.ItemType{ID: "coal", Visual: "c"}); v.Glyph != "c" || v.Color != core.ColorDefault {
		t.Errorf("unknown with visual = %+v", v)
	}
	if v := theme.VisualFor(board.ItemType{ID: "zinc"}); v.Glyph != "z" {
		t.Errorf("unknown without visual = %+v", v)
	}
}
