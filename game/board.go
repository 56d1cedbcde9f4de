package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Action is a cell index in [0, size*size).
type Action int

// StateKey is a canonical key for a (board layout, mark to act) pair.
// Two boards with identical stones but a different mark to act hash to
// different keys.
type StateKey uint64

// Board holds the full state of one N-in-a-row game. Board values are
// immutable: Apply returns a new Board and never mutates the receiver.
type Board struct {
	size      int
	runLength int
	p1First   bool
	cells     []Mark
	plies     int
	outcome   Outcome
}

// New constructs an empty size×size board requiring runLength consecutive
// same-mark cells to win. p1First fixes which mark moves on even plies.
func New(size, runLength int, p1First bool) (*Board, error) {
	if size <= 0 || runLength <= 0 {
		return nil, fmt.Errorf("%w: size=%d runLength=%d must be positive", ErrInvalidConfig, size, runLength)
	}
	if runLength > size {
		return nil, fmt.Errorf("%w: runLength=%d exceeds size=%d", ErrInvalidConfig, runLength, size)
	}
	return &Board{
		size:      size,
		runLength: runLength,
		p1First:   p1First,
		cells:     make([]Mark, size*size),
	}, nil
}

func (b *Board) Size() int      { return b.size }
func (b *Board) RunLength() int { return b.runLength }
func (b *Board) Plies() int     { return b.plies }

// Cells returns a copy of the cell layout for rendering. Mutating the
// returned slice does not affect the board.
func (b *Board) Cells() []Mark {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// At returns the mark occupying the given cell, or NoMark when the cell is
// empty or out of range.
func (b *Board) At(a Action) Mark {
	if a < 0 || int(a) >= len(b.cells) {
		return NoMark
	}
	return b.cells[a]
}

// Index maps a (row, col) coordinate to its cell index.
func (b *Board) Index(row, col int) Action {
	return Action(row*b.size + col)
}

// ToMove returns the mark whose turn it is, derived from ply parity and the
// starting-turn flag.
func (b *Board) ToMove() Mark {
	if (b.plies%2 == 0) == b.p1First {
		return P1
	}
	return P2
}

// Terminal reports whether a winner or draw has been established. Once true,
// no further moves may be applied.
func (b *Board) Terminal() bool {
	return b.outcome.Terminal()
}

// Outcome returns the result established by the last applied move.
func (b *Board) Outcome() Outcome {
	return b.outcome
}

// IsLegal reports whether the action is in range and targets an empty cell.
func (b *Board) IsLegal(a Action) bool {
	return a >= 0 && int(a) < len(b.cells) && b.cells[a] == NoMark
}

// LegalMoves returns the indices of all empty cells. The result is empty iff
// the board is full.
func (b *Board) LegalMoves() []Action {
	moves := make([]Action, 0, len(b.cells)-b.plies)
	for i, cell := range b.cells {
		if cell == NoMark {
			moves = append(moves, Action(i))
		}
	}
	return moves
}

// Apply places mark on the given cell and returns the resulting board with
// its outcome recomputed. It fails with ErrIllegalMove if the board is
// terminal or the cell is unavailable; the receiver is never modified.
func (b *Board) Apply(a Action, mark Mark) (*Board, error) {
	if b.outcome.Terminal() {
		return nil, fmt.Errorf("%w: board is terminal", ErrIllegalMove)
	}
	if mark != P1 && mark != P2 {
		return nil, fmt.Errorf("%w: mark %s cannot be placed", ErrIllegalMove, mark)
	}
	if !b.IsLegal(a) {
		return nil, fmt.Errorf("%w: cell %d unavailable", ErrIllegalMove, a)
	}

	next := b.copy()
	next.cells[a] = mark
	next.plies++
	next.outcome = next.Evaluate()
	return next, nil
}

func (b *Board) copy() *Board {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)

	return &Board{
		size:      b.size,
		runLength: b.runLength,
		p1First:   b.p1First,
		cells:     cells,
		plies:     b.plies,
		outcome:   b.outcome,
	}
}

// Key returns the value-table key for this layout with toAct as the mark
// about to move.
func (b *Board) Key(toAct Mark) StateKey {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(toAct))
	for _, cell := range b.cells {
		binary.Write(hasher, binary.LittleEndian, int64(cell))
	}

	return StateKey(hasher.Sum64())
}
