package board

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is returned when a catalog is built from no item types.
	// A board cannot be seeded without at least one.
	ErrEmptyCatalog = errors.New("board: empty item catalog")

	// ErrShuffleExhausted is returned when no arrangement without a match (or
	// without a playable move) could be found within the attempt budget.
	// The board is degenerate: too few item types for its size.
	ErrShuffleExhausted = errors.New("board: shuffle attempts exhausted")
)

// OutOfRangeError reports a coordinate outside [0,Width)x[0,Height).
type OutOfRangeError struct {
	Coord  Coord
	Width  int
	Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("board: coordinate %s out of range %dx%d", e.Coord, e.Width, e.Height)
}

// ValidationError describes a malformed catalog or board definition.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
