package engine

import (
	"errors"
	"testing"

	"nmoku/game"
	"nmoku/policy"
)

func newBoard(t *testing.T, size, runLength int, p1First bool) *game.Board {
	t.Helper()
	b, err := game.New(size, runLength, p1First)
	if err != nil {
		t.Fatalf("failed to create board: %v", err)
	}
	return b
}

func TestEngineRun(t *testing.T) {
	e := New(newBoard(t, 3, 3, true), policy.NewRandom(1), policy.NewRandom(2))

	outcome, err := e.Run()
	if err != nil {
		t.Fatalf("expected no error running a full game, got %v", err)
	}

	if !outcome.Terminal() {
		t.Error("expected a terminal outcome after Run")
	}
	if e.Moves() < 5 || e.Moves() > 9 {
		t.Errorf("expected between 5 and 9 moves on a 3x3 board, got %d", e.Moves())
	}
	if outcome.Status == game.Won && outcome.Winner == game.NoMark {
		t.Error("a won game must name a winner")
	}
}

func TestEngineRun_NoPolicy(t *testing.T) {
	e := New(newBoard(t, 3, 3, true), nil, policy.NewRandom(1))

	_, err := e.Run()
	if err == nil {
		t.Error("expected an error when the side to move has no policy")
	}
}

func TestEngineSubmit(t *testing.T) {
	e := New(newBoard(t, 3, 3, true), nil, policy.NewRandom(1))

	// P1 is to move; a P2 submission is out of turn.
	if err := e.Submit(0, game.P2); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove for out-of-turn submission, got %v", err)
	}

	if err := e.Submit(4, game.P1); err != nil {
		t.Errorf("expected no error for a valid submission, got %v", err)
	}
	if e.Board().At(4) != game.P1 {
		t.Error("expected the submitted stone on the board")
	}
	if e.Moves() != 1 {
		t.Errorf("expected 1 move played, got %d", e.Moves())
	}
}

func TestEngineSubmit_IllegalCell(t *testing.T) {
	e := New(newBoard(t, 3, 3, true), nil, nil)

	if err := e.Submit(4, game.P1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	before := e.Board()
	if err := e.Submit(4, game.P2); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove for an occupied cell, got %v", err)
	}
	if e.Board() != before {
		t.Error("expected the board to be unchanged after a rejected submission")
	}
	if e.Moves() != 1 {
		t.Errorf("expected the move count to be unchanged, got %d", e.Moves())
	}
}

func TestEngineStep_GameOver(t *testing.T) {
	e := New(newBoard(t, 3, 3, true), policy.NewRandom(1), policy.NewRandom(2))

	if _, err := e.Run(); err != nil {
		t.Fatalf("expected no error running a full game, got %v", err)
	}

	if _, err := e.Step(); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove stepping a finished game, got %v", err)
	}
}

func TestEngineStep_AlternatesMarks(t *testing.T) {
	e := New(newBoard(t, 3, 3, false), policy.NewRandom(1), policy.NewRandom(2))

	// P2 starts when the starting-turn flag is off.
	if got := e.Board().ToMove(); got != game.P2 {
		t.Fatalf("expected P2 to move first, got %s", got)
	}

	if _, err := e.Step(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := e.Board().ToMove(); got != game.P1 {
		t.Errorf("expected the turn to pass to P1, got %s", got)
	}
}
