package board_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
)

// item builds a test item whose ID is the given letter.
func item(id string, value int) board.ItemType {
	return board.ItemType{ID: id, Value: value, Visual: id}
}

// catalogOf builds a catalog with one item per ID, all worth 10 points unless
// overridden in values.
func catalogOf(t *testing.T, ids string, values map[string]int) *board.Catalog {
	t.Helper()
	items := make([]board.ItemType, 0, len(ids))
	for _, r := range ids {
		id := string(r)
		v, ok := values[id]
		if !ok {
			v = 10
		}
		items = append(items, item(id, v))
	}
	cat, err := board.NewCatalog(items)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

// gridOf builds a grid from rows of single-letter item IDs, looking values up
// in cat.
func gridOf(t *testing.T, cat *board.Catalog, rows ...string) *board.Grid {
	t.Helper()
	w, h := len(rows[0]), len(rows)
	items := make([]board.ItemType, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			t.Fatalf("ragged row %q", row)
		}
		for _, r := range row {
			it, ok := cat.Lookup(string(r))
			if !ok {
				t.Fatalf("item %q not in catalog", string(r))
			}
			items = append(items, it)
		}
	}
	g, err := board.NewGridFromItems(w, h, items)
	if err != nil {
		t.Fatalf("NewGridFromItems: %v", err)
	}
	return g
}

// indexOf returns the catalog position of id, for scripting RandomItem.
func indexOf(t *testing.T, cat *board.Catalog, id string) int {
	t.Helper()
	for i, it := range cat.Items() {
		if it.ID == id {
			return i
		}
	}
	t.Fatalf("item %q not in catalog", id)
	return -1
}

// scriptRNG replays queued values, then falls back to a seeded source.
type scriptRNG struct {
	vals     []int
	fallback *board.Rand
}

func newScriptRNG(vals ...int) *scriptRNG {
	return &scriptRNG{vals: vals, fallback: board.NewRand(1)}
}

func (s *scriptRNG) RandomInt(min, max int) int {
	if len(s.vals) > 0 {
		v := s.vals[0]
		s.vals = s.vals[1:]
		return v
	}
	return s.fallback.RandomInt(min, max)
}

// randomGrid seeds a w x h grid from cat with a fixed seed.
func randomGrid(t *testing.T, cat *board.Catalog, w, h int, seed int64) *board.Grid {
	t.Helper()
	rng := board.NewRand(seed)
	g, err := board.NewGrid(w, h, func() board.ItemType { return cat.RandomItem(rng) })
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func sameCoords(a, b []board.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[board.Coord]bool, len(a))
	for _, c := range a {
		set[c] = true
	}
	for _, c := range b {
		if !set[c] {
			return false
		}
	}
	return true
}
