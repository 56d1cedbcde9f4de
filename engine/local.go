// Package engine drives a full game between two move-selection policies and
// exposes the presentation boundary consumed by an external UI: board
// snapshots, move submission for an externally controlled side, and agent
// stepping for the automated side.
package engine

import (
	"fmt"

	"nmoku/game"
	"nmoku/policy"

	"github.com/rs/zerolog/log"
)

// Engine owns one game's board and the policy for each automated mark. A
// mark with no registered policy is externally controlled and moves through
// Submit.
type Engine struct {
	board    *game.Board
	policies map[game.Mark]policy.Policy
	moves    int
}

// New builds an engine on the given starting board. Either policy may be nil
// to leave that mark externally controlled.
func New(board *game.Board, p1, p2 policy.Policy) *Engine {
	return &Engine{
		board: board,
		policies: map[game.Mark]policy.Policy{
			game.P1: p1,
			game.P2: p2,
		},
	}
}

// Board returns the current board. Boards are immutable, so the caller may
// hold the snapshot across further moves.
func (e *Engine) Board() *game.Board {
	return e.board
}

// Outcome returns the result established by the last move.
func (e *Engine) Outcome() game.Outcome {
	return e.board.Outcome()
}

// Moves returns the number of moves played through this engine.
func (e *Engine) Moves() int {
	return e.moves
}

// Submit applies an externally chosen move for mark. It fails with
// game.ErrIllegalMove when it is not mark's turn or the cell is unavailable;
// the game state is unchanged on failure and the caller simply re-prompts.
func (e *Engine) Submit(a game.Action, mark game.Mark) error {
	if e.board.ToMove() != mark {
		return fmt.Errorf("%w: not %s's turn", game.ErrIllegalMove, mark)
	}
	next, err := e.board.Apply(a, mark)
	if err != nil {
		return err
	}
	e.board = next
	e.moves++
	return nil
}

// Step asks the policy of the side to move for its move and applies it. It
// fails when the game is already over or the side to move has no registered
// policy.
func (e *Engine) Step() (game.Action, error) {
	if e.board.Terminal() {
		return 0, fmt.Errorf("%w: game is over", game.ErrIllegalMove)
	}

	mark := e.board.ToMove()
	chooser := e.policies[mark]
	if chooser == nil {
		return 0, fmt.Errorf("no policy registered for %s", mark)
	}

	action, ok := chooser.Choose(e.board, mark, e.board.LegalMoves())
	if !ok {
		return 0, fmt.Errorf("%w: no legal moves", game.ErrIllegalMove)
	}

	next, err := e.board.Apply(action, mark)
	if err != nil {
		return 0, err
	}
	e.board = next
	e.moves++
	return action, nil
}

// Run plays the game to completion with both sides automated and returns the
// final outcome. The move count is naturally bounded by the cell count.
func (e *Engine) Run() (game.Outcome, error) {
	log.Debug().Msgf("%s is starting", e.board.ToMove())

	for !e.board.Terminal() {
		if _, err := e.Step(); err != nil {
			return e.board.Outcome(), err
		}
	}

	log.Debug().Msgf("game over after %d moves: %s", e.moves, e.board.Outcome())
	return e.board.Outcome(), nil
}
