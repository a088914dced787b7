package board

// Move is a pair of adjacent cells to swap.
type Move struct {
	A Coord
	B Coord
}

// HasPossibleMove reports whether some adjacent swap would create a match.
// The grid is left exactly as it was.
func HasPossibleMove(g *Grid) bool {
	_, ok := FindHint(g)
	return ok
}

// FindHint returns the first adjacent swap that creates a match.
//
// Cells are visited by increasing y, then increasing x, and from each cell
// swaps are tried to the right, down, left and up. Every trial swap is undone
// before the next one, so the grid is unchanged on return.
func FindHint(g *Grid) (Move, bool) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			a := C(x, y)
			for _, d := range swapOrder {
				b, ok := g.Neighbor(a, d)
				if !ok {
					continue
				}
				if swapMakesMatch(g, a, b) {
					return Move{A: a, B: b}, true
				}
			}
		}
	}
	return Move{}, false
}

// ValidMoves lists every adjacent swap that creates a match, in FindHint
// order. Each unordered pair is reported once.
func ValidMoves(g *Grid) []Move {
	var moves []Move
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			a := C(x, y)
			// Right and down cover each pair exactly once.
			for _, d := range [2]Dir{DirRight, DirDown} {
				b, ok := g.Neighbor(a, d)
				if !ok {
					continue
				}
				if swapMakesMatch(g, a, b) {
					moves = append(moves, Move{A: a, B: b})
				}
			}
		}
	}
	return moves
}

func swapMakesMatch(g *Grid, a, b Coord) bool {
	g.swap(a, b)
	found := HasAnyMatch(g)
	g.swap(a, b)
	return found
}
