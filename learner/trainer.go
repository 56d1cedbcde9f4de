package learner

import (
	"math"

	"nmoku/experiments/metrics"
	"nmoku/game"

	"github.com/rs/zerolog/log"
)

// Hyperparameter defaults for Q-learning.

const DefaultAlpha = 0.3   // Learning rate
const DefaultGamma = 0.9   // Discount on bootstrapped future value
const DefaultEpsilon = 0.3 // Exploration probability during training

// Terminal rewards. A draw rewards both sides 0.
const Win = 1.0
const Loss = -Win

// logInterval controls training progress logging.
const logInterval = 10000

type Option func(t *Trainer)

func WithAlpha(alpha float64) Option {
	return func(t *Trainer) {
		if alpha > 0 && alpha <= 1 {
			t.alpha = alpha
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(t *Trainer) {
		if gamma > 0 && gamma <= 1 {
			t.gamma = gamma
		}
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(t *Trainer) {
		if epsilon >= 0 && epsilon <= 1 {
			t.epsilon = epsilon
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(t *Trainer) {
		t.seed = seed
	}
}

func WithMetrics() Option {
	return func(t *Trainer) {
		t.metrics = metrics.NewCollector()
	}
}

// Trainer runs self-play episodes over a shared value table. Both alternating
// sides learn into the same table: it is keyed by the mark to act, not by
// global turn order, so the starting mark is held constant across episodes.
// A trainer is single-threaded; the table must not be read until Train
// returns.
type Trainer struct {
	table   *Table
	start   *game.Board
	greedy  *Greedy
	alpha   float64
	gamma   float64
	epsilon float64
	seed    uint64
	metrics metrics.Collector
}

// NewTrainer builds a trainer over table. It fails with game.ErrInvalidConfig
// when the table's board configuration cannot produce a playable board.
func NewTrainer(table *Table, options ...Option) (*Trainer, error) {
	t := &Trainer{ // Default values
		table:   table,
		alpha:   DefaultAlpha,
		gamma:   DefaultGamma,
		epsilon: DefaultEpsilon,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}

	start, err := game.New(table.Size(), table.RunLength(), true)
	if err != nil {
		return nil, err
	}
	t.start = start
	t.greedy = NewGreedy(table, t.epsilon, t.seed)
	return t, nil
}

// Policy returns the greedy play-time policy backed by the trained table.
func (t *Trainer) Policy() *Greedy {
	return t.greedy
}

// SelectMove picks the greedy move without exploration, falling back to a
// uniform-random choice when every candidate sits at the table default.
func (t *Trainer) SelectMove(b *game.Board, mark game.Mark, legal []game.Action) (game.Action, bool) {
	return t.greedy.Choose(b, mark, legal)
}

// Train runs the given number of independent self-play episodes sequentially,
// mutating the shared table.
func (t *Trainer) Train(episodes int) metrics.TrainMetric {
	log.Info().Msgf("training %d episodes on %dx%d board (run length %d, alpha=%v gamma=%v epsilon=%v)",
		episodes, t.table.Size(), t.table.Size(), t.table.RunLength(), t.alpha, t.gamma, t.epsilon)

	t.metrics.Start(t.alpha, t.gamma, t.epsilon)
	for i := 0; i < episodes; i++ {
		winner := t.episode()
		t.metrics.AddEpisode(winner)
		if (i+1)%logInterval == 0 {
			log.Debug().Msgf("trained %d of %d episodes (%d table entries)", i+1, episodes, t.table.Len())
		}
	}
	t.metrics.SetTableEntries(t.table.Len())

	metric := t.metrics.Complete()
	log.Info().Msgf("training complete: %d table entries", t.table.Len())
	return metric
}

// pending records a mover's last (state, action) pair for terminal loss
// back-propagation to the side that did not make the final move.
type pending struct {
	state  game.StateKey
	action game.Action
}

// episode plays one full self-play game with epsilon-greedy moves for both
// sides, applying a one-step temporal-difference update after every move.
// It returns the winning mark, or NoMark for a draw.
func (t *Trainer) episode() game.Mark {
	board := t.start
	mover := board.ToMove()
	last := make(map[game.Mark]pending, 2)

	for {
		legal := board.LegalMoves()
		if len(legal) == 0 {
			return game.NoMark
		}

		state := board.Key(mover)
		action, _ := t.greedy.ChooseExploring(board, mover, legal)
		next, err := board.Apply(action, mover)
		if err != nil {
			panic(err) // the policy only proposes legal moves
		}

		outcome := next.Outcome()
		if outcome.Terminal() {
			// Terminal target: the reward itself.
			reward := 0.0
			if outcome.Winner == mover {
				reward = Win
			}
			t.table.update(state, action, reward, t.alpha)

			if p, ok := last[mover.Other()]; ok {
				otherReward := 0.0
				if outcome.Status == game.Won {
					otherReward = Loss
				}
				t.table.update(p.state, p.action, otherReward, t.alpha)
			}
			return outcome.Winner
		}

		// Non-terminal bootstrap target: discounted best value available to
		// the opponent from the resulting position. There is no step reward.
		opponent := mover.Other()
		nextState := next.Key(opponent)
		maxNext := math.Inf(-1)
		for _, a := range next.LegalMoves() {
			if value := t.table.Value(nextState, a); value > maxNext {
				maxNext = value
			}
		}
		t.table.update(state, action, t.gamma*maxNext, t.alpha)

		last[mover] = pending{state: state, action: action}
		mover = opponent
		board = next
	}
}
