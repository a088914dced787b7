package board

import "slices"

// MinMatch is the smallest connected group that counts as a match.
const MinMatch = 3

// Group is a maximal set of same-item cells connected through shared edges.
// Cells are listed in breadth-first order from the seed cell.
type Group struct {
	Item  ItemType
	Cells []Coord
}

// Size returns the number of cells in the group.
func (gr Group) Size() int {
	return len(gr.Cells)
}

// Contains reports whether c belongs to the group.
func (gr Group) Contains(c Coord) bool {
	for _, cell := range gr.Cells {
		if cell == c {
			return true
		}
	}
	return false
}

// ConnectedGroup flood-fills from c over neighbors holding the same item.
// The result always includes c itself.
func ConnectedGroup(g *Grid, c Coord) (Group, error) {
	if err := g.check(c); err != nil {
		return Group{}, err
	}
	visited := make([]bool, len(g.items))
	return g.flood(c, visited, nil), nil
}

// flood runs an iterative breadth-first search from seed, marking cells in
// visited. The queue slice is reused across calls when provided.
func (g *Grid) flood(seed Coord, visited []bool, queue []Coord) Group {
	item := g.at(seed)
	queue = append(queue[:0], seed)
	visited[g.index(seed)] = true

	var cells []Coord
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		cells = append(cells, cur)
		for _, d := range neighborOrder {
			n, ok := g.Neighbor(cur, d)
			if !ok {
				continue
			}
			idx := g.index(n)
			if visited[idx] || !g.items[idx].Same(item) {
				continue
			}
			visited[idx] = true
			queue = append(queue, n)
		}
	}
	return Group{Item: item, Cells: cells}
}

// matchesAt reports whether c belongs to a group of at least MinMatch cells.
// The search stops as soon as MinMatch cells are found, so its cost does not
// depend on the group or board size.
func (g *Grid) matchesAt(c Coord) bool {
	item := g.at(c)
	var buf [MinMatch]Coord
	seen := append(buf[:0], c)
	for head := 0; head < len(seen); head++ {
		for _, d := range neighborOrder {
			n, ok := g.Neighbor(seen[head], d)
			if !ok || !g.at(n).Same(item) || slices.Contains(seen, n) {
				continue
			}
			seen = append(seen, n)
			if len(seen) >= MinMatch {
				return true
			}
		}
	}
	return false
}

// HasAnyMatch reports whether any connected group on the board has at least
// MinMatch cells.
func HasAnyMatch(g *Grid) bool {
	visited := make([]bool, len(g.items))
	queue := make([]Coord, 0, len(g.items))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := C(x, y)
			if visited[g.index(c)] {
				continue
			}
			if g.flood(c, visited, queue).Size() >= MinMatch {
				return true
			}
		}
	}
	return false
}

// AllMatchGroups returns every maximal group of at least MinMatch cells, each
// exactly once. Groups are ordered by the row-major position of their
// first-scanned cell, which is also where their flood fill started.
func AllMatchGroups(g *Grid) []Group {
	visited := make([]bool, len(g.items))
	queue := make([]Coord, 0, len(g.items))

	var groups []Group
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := C(x, y)
			if visited[g.index(c)] {
				continue
			}
			if gr := g.flood(c, visited, queue); gr.Size() >= MinMatch {
				groups = append(groups, gr)
			}
		}
	}
	return groups
}
