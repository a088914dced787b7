package board

import "fmt"

// DefaultShuffleAttempts bounds how many permutations Shuffle tries.
const DefaultShuffleAttempts = 1000

// repairRounds bounds how often one attempt rescans the board for groups.
const repairRounds = 4

// repairTries bounds the swap partners tried for each matched cell.
const repairTries = 4

// Shuffle rearranges the items already on the board so that no group of
// MinMatch or more remains. The count of every item type is unchanged.
//
// Each attempt starts from a uniform Fisher-Yates permutation of the
// row-major item list, then repairs leftover groups: a matched cell is swapped
// with a random cell holding another item, and the swap is kept only if
// neither cell ends up in a group. Repair work per attempt is bounded by
// repairRounds board scans and repairTries partners per matched cell, so the
// result is not a uniform draw over match-free boards.
//
// After maxAttempts failures (DefaultShuffleAttempts when maxAttempts is not
// positive) the grid is restored and ErrShuffleExhausted is returned. A board
// holding a single item type on MinMatch or more cells fails at once.
func Shuffle(g *Grid, rng RandomSource, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultShuffleAttempts
	}
	if len(g.items) >= MinMatch && len(g.Counts()) == 1 {
		return fmt.Errorf("%w: single item type on %d cells", ErrShuffleExhausted, len(g.items))
	}

	original := g.Items()
	for attempt := 0; attempt < maxAttempts; attempt++ {
		permute(g.items, rng)
		if repair(g, rng) {
			return nil
		}
	}

	copy(g.items, original)
	return fmt.Errorf("%w: no match-free arrangement after %d attempts", ErrShuffleExhausted, maxAttempts)
}

func permute(items []ItemType, rng RandomSource) {
	n := len(items)
	for i := 0; i < n-1; i++ {
		j := rng.RandomInt(i, n)
		items[i], items[j] = items[j], items[i]
	}
}

// repair swaps matched cells away until HasAnyMatch is false or the round
// budget runs out. It reports whether the board ended match-free.
//
// A kept swap never grows the set of matched cells: only the two swapped
// cells change, and neither of them is left in a group.
func repair(g *Grid, rng RandomSource) bool {
	n := len(g.items)
	for round := 0; round < repairRounds; round++ {
		groups := AllMatchGroups(g)
		if len(groups) == 0 {
			return true
		}
		kept := 0
		for _, gr := range groups {
			for _, a := range gr.Cells {
				if !g.matchesAt(a) {
					continue // fixed by an earlier swap
				}
				if repairCell(g, a, rng, n) {
					kept++
				}
			}
		}
		if kept == 0 {
			return false
		}
	}
	return !HasAnyMatch(g)
}

// repairCell tries to swap the matched cell a with a random cell of another
// item so that neither ends up in a group. It reports whether a swap was kept.
func repairCell(g *Grid, a Coord, rng RandomSource, n int) bool {
	for try := 0; try < repairTries; try++ {
		b := g.coordOf(rng.RandomInt(0, n))
		if g.at(a).Same(g.at(b)) {
			continue
		}
		g.swap(a, b)
		if !g.matchesAt(a) && !g.matchesAt(b) {
			return true
		}
		g.swap(a, b)
	}
	return false
}
