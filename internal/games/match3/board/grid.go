package board

import (
	"fmt"
	"strings"
)

// Cell is a grid position together with the item it currently holds.
type Cell struct {
	X    int
	Y    int
	Item ItemType
}

// Coord returns the cell position.
func (c Cell) Coord() Coord {
	return Coord{X: c.X, Y: c.Y}
}

// Grid is a dense board: every coordinate holds exactly one item.
// Items are stored in row-major order: index = y*width + x.
type Grid struct {
	width  int
	height int
	items  []ItemType
}

// NewGrid creates a width x height grid and fills it by calling seed once per
// cell, row by row from the top-left corner.
func NewGrid(width, height int, seed func() ItemType) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("grid size %dx%d must be positive", width, height),
		}
	}

	g := &Grid{
		width:  width,
		height: height,
		items:  make([]ItemType, width*height),
	}
	for i := range g.items {
		g.items[i] = seed()
	}
	return g, nil
}

// NewGridFromItems restores a grid from a row-major item list.
func NewGridFromItems(width, height int, items []ItemType) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("grid size %dx%d must be positive", width, height),
		}
	}
	if len(items) != width*height {
		return nil, ValidationError{
			Code:    "BAD_CELL_COUNT",
			Message: fmt.Sprintf("got %d items for a %dx%d grid", len(items), width, height),
		}
	}

	g := &Grid{
		width:  width,
		height: height,
		items:  make([]ItemType, len(items)),
	}
	copy(g.items, items)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

func (g *Grid) coordOf(i int) Coord {
	return C(i%g.width, i/g.width)
}

func (g *Grid) check(c Coord) error {
	if !g.InBounds(c) {
		return &OutOfRangeError{Coord: c, Width: g.width, Height: g.height}
	}
	return nil
}

// Get returns the cell at c.
func (g *Grid) Get(c Coord) (Cell, error) {
	if err := g.check(c); err != nil {
		return Cell{}, err
	}
	return Cell{X: c.X, Y: c.Y, Item: g.items[g.index(c)]}, nil
}

// Set places item at c.
func (g *Grid) Set(c Coord, item ItemType) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.items[g.index(c)] = item
	return nil
}

// at is the unchecked read used once a coordinate is known to be in bounds.
func (g *Grid) at(c Coord) ItemType {
	return g.items[g.index(c)]
}

// Neighbor returns the coordinate next to c in direction d, if it is on the grid.
func (g *Grid) Neighbor(c Coord, d Dir) (Coord, bool) {
	n := c.Step(d)
	return n, g.InBounds(n)
}

// Neighbors returns the in-bounds orthogonal neighbors of c in the order
// left, top, right, bottom.
func (g *Grid) Neighbors(c Coord) ([]Coord, error) {
	if err := g.check(c); err != nil {
		return nil, err
	}
	out := make([]Coord, 0, 4)
	for _, d := range neighborOrder {
		if n, ok := g.Neighbor(c, d); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// SwapContents exchanges the items at a and b. Both coordinates are checked
// before anything is written.
func (g *Grid) SwapContents(a, b Coord) error {
	if err := g.check(a); err != nil {
		return err
	}
	if err := g.check(b); err != nil {
		return err
	}
	g.swap(a, b)
	return nil
}

func (g *Grid) swap(a, b Coord) {
	ia, ib := g.index(a), g.index(b)
	g.items[ia], g.items[ib] = g.items[ib], g.items[ia]
}

// Items returns a row-major copy of the grid contents.
func (g *Grid) Items() []ItemType {
	out := make([]ItemType, len(g.items))
	copy(out, g.items)
	return out
}

// Counts returns how many cells hold each item ID.
func (g *Grid) Counts() map[string]int {
	counts := make(map[string]int)
	for _, it := range g.items {
		counts[it.ID]++
	}
	return counts
}

// AllCoords lists every coordinate, row by row.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, len(g.items))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	items := make([]ItemType, len(g.items))
	copy(items, g.items)
	return &Grid{width: g.width, height: g.height, items: items}
}

// Equal reports whether both grids have the same size and the same item at
// every position.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, it := range g.items {
		if !it.Same(other.items[i]) {
			return false
		}
	}
	return true
}

// String renders the grid as rows of item IDs, mostly for test failures.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.at(C(x, y)).ID)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
