// Package policy defines the move-selection capability shared by all
// opponents: given a board, the mark to act, and the legal moves, pick one.
// The engine and the trainer depend only on this capability, never on a
// concrete variant.
package policy

import (
	"nmoku/game"

	"golang.org/x/exp/rand"
)

// Policy chooses a move for mark on the given board. It reports false iff
// legal is empty.
type Policy interface {
	Choose(b *game.Board, mark game.Mark, legal []game.Action) (game.Action, bool)
}

// Random picks uniformly among the legal moves.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a uniform-random policy seeded for reproducibility.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Choose(_ *game.Board, _ game.Mark, legal []game.Action) (game.Action, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	return legal[r.rng.Intn(len(legal))], true
}
