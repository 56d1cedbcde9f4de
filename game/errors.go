package game

import "errors"

var (
	// ErrInvalidConfig is returned when a board cannot be constructed from
	// the given size and run length. The construction is rejected, never
	// silently clamped.
	ErrInvalidConfig = errors.New("invalid board configuration")

	// ErrIllegalMove is returned when a move targets a terminal board, an
	// occupied cell, or an out-of-range index. The board is left unchanged.
	ErrIllegalMove = errors.New("illegal move")
)
