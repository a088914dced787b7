package board_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

func TestHasPossibleMove(t *testing.T) {
	cat := catalogOf(t, "ABCD", nil)

	tests := []struct {
		name string
		rows []string
		want bool
	}{
		{"two-type checkerboard", []string{"AB", "BA"}, false},
		{"row completes", []string{"AAB", "CDA"}, true},
		{"column completes", []string{"AB", "AC", "BA"}, true},
		{"all distinct", []string{"ABC", "CDA", "ABC"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gridOf(t, cat, tc.rows...)
			if got := board.HasPossibleMove(g); got != tc.want {
				t.Errorf("HasPossibleMove = %v, want %v\n%s", got, tc.want, g)
			}
		})
	}
}

func TestFindHint(t *testing.T) {
	cat := catalogOf(t, "ABCD", nil)
	g := gridOf(t, cat, "AAB", "CDA")

	m, ok := board.FindHint(g)
	if !ok {
		t.Fatal("expected a hint")
	}
	// (1,1)<->(2,1) also matches, but (2,0) is scanned first.
	want := board.Move{A: board.C(2, 0), B: board.C(2, 1)}
	if m != want {
		t.Errorf("FindHint = %+v, want %+v", m, want)
	}

	if err := g.SwapContents(m.A, m.B); err != nil {
		t.Fatalf("SwapContents: %v", err)
	}
	if !board.HasAnyMatch(g) {
		t.Error("hinted swap does not produce a match")
	}
}

func TestFindHintNone(t *testing.T) {
	cat := catalogOf(t, "AB", nil)
	g := gridOf(t, cat, "AB", "BA")
	if m, ok := board.FindHint(g); ok {
		t.Errorf("FindHint = %+v, want none", m)
	}
}

func TestAnalyzerLeavesGridUnchanged(t *testing.T) {
	cat := catalogOf(t, "ABCD", nil)

	for seed := int64(1); seed <= 25; seed++ {
		g := randomGrid(t, cat, 6, 6, seed)
		before := g.Clone()

		board.HasPossibleMove(g)
		board.FindHint(g)
		board.ValidMoves(g)
		board.HasAnyMatch(g)
		board.AllMatchGroups(g)

		if !g.Equal(before) {
			t.Fatalf("seed %d: analysis mutated the grid", seed)
		}
	}
}

func TestValidMoves(t *testing.T) {
	cat := catalogOf(t, "ABCD", nil)
	g := gridOf(t, cat, "AAB", "CDA")

	moves := board.ValidMoves(g)
	want := []board.Move{
		{A: board.C(2, 0), B: board.C(2, 1)},
		{A: board.C(1, 1), B: board.C(2, 1)},
	}
	if len(moves) != len(want) {
		t.Fatalf("ValidMoves = %+v, want %+v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("ValidMoves[%d] = %+v, want %+v", i, moves[i], want[i])
		}
	}

	for seed := int64(1); seed <= 10; seed++ {
		g := randomGrid(t, cat, 5, 5, seed)
		moves := board.ValidMoves(g)
		if (len(moves) > 0) != board.HasPossibleMove(g) {
			t.Fatalf("seed %d: ValidMoves and HasPossibleMove disagree", seed)
		}
		for _, m := range moves {
			if !m.A.Adjacent(m.B) {
				t.Fatalf("seed %d: move %+v is not adjacent", seed, m)
			}
		}
	}
}
