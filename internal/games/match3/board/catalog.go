// Package board implements the match-3 engine: an item catalog, a dense grid
// of typed cells, flood-fill match detection, move analysis, a count-preserving
// shuffle and the selection controller that ties them together.
//
// The package has no rendering, timing or I/O. Everything random goes through
// a RandomSource so that games and tests can replay a board exactly.
package board

import (
	"fmt"
	"math/rand"
)

// ItemType is one kind of tile. Two items are the same kind when their IDs match.
type ItemType struct {
	ID     string
	Value  int    // points per cell when a group of this item is cleared
	Visual string // opaque handle resolved by the renderer
	Type   int
}

// Same reports whether both items are the same kind.
func (it ItemType) Same(other ItemType) bool {
	return it.ID == other.ID
}

// RandomSource supplies random integers in the half-open range [min, max).
type RandomSource interface {
	RandomInt(min, max int) int
}

// Rand adapts math/rand to RandomSource.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a seeded RandomSource.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// RandomInt returns a value in [min, max). It returns min when the range is empty.
func (r *Rand) RandomInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.Intn(max-min)
}

// Catalog is the immutable set of item types a board is seeded from.
type Catalog struct {
	items []ItemType
	byID  map[string]int
}

// NewCatalog builds a catalog. It fails with ErrEmptyCatalog when items is
// empty and with a ValidationError on blank or duplicate IDs.
func NewCatalog(items []ItemType) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		items: make([]ItemType, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)

	for i, it := range c.items {
		if it.ID == "" {
			return nil, ValidationError{
				Code:    "BLANK_ID",
				Message: fmt.Sprintf("item %d has no id", i),
			}
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("item id %q appears more than once", it.ID),
			}
		}
		c.byID[it.ID] = i
	}
	return c, nil
}

// RandomItem picks an item uniformly.
func (c *Catalog) RandomItem(rng RandomSource) ItemType {
	return c.items[rng.RandomInt(0, len(c.items))]
}

// Items returns a copy of the catalog contents in load order.
func (c *Catalog) Items() []ItemType {
	out := make([]ItemType, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of item types.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup finds an item type by ID.
func (c *Catalog) Lookup(id string) (ItemType, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ItemType{}, false
	}
	return c.items[i], true
}
