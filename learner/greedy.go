package learner

import (
	"math"

	"nmoku/game"

	"golang.org/x/exp/rand"
)

// Greedy selects the legal action with the highest tabulated value for the
// acting mark, breaking ties uniformly at random among the maximizers. Ties
// are the common case for unseen states (every candidate sits at the 0
// default), so the tie-break doubles as the uniform-random fallback.
type Greedy struct {
	table   *Table
	epsilon float64
	rng     *rand.Rand

	// scratch buffer for maximizers, reused across calls
	best []game.Action
}

// NewGreedy returns a greedy policy reading from table. epsilon is the
// exploration probability used only by ChooseExploring.
func NewGreedy(table *Table, epsilon float64, seed uint64) *Greedy {
	return &Greedy{
		table:   table,
		epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Choose picks the greedy action without exploration. It reports false iff
// legal is empty.
func (g *Greedy) Choose(b *game.Board, mark game.Mark, legal []game.Action) (game.Action, bool) {
	return g.choose(b, mark, legal, false)
}

// ChooseExploring applies the epsilon-greedy override: with probability
// epsilon, independently per decision, the action is drawn uniformly from
// the legal moves instead.
func (g *Greedy) ChooseExploring(b *game.Board, mark game.Mark, legal []game.Action) (game.Action, bool) {
	return g.choose(b, mark, legal, true)
}

func (g *Greedy) choose(b *game.Board, mark game.Mark, legal []game.Action, explore bool) (game.Action, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	if explore && g.rng.Float64() < g.epsilon {
		return legal[g.rng.Intn(len(legal))], true
	}

	state := b.Key(mark)
	maxValue := math.Inf(-1)
	g.best = g.best[:0]
	for _, action := range legal {
		value := g.table.Value(state, action)
		switch {
		case value > maxValue:
			maxValue = value
			g.best = append(g.best[:0], action)
		case value == maxValue:
			g.best = append(g.best, action)
		}
	}
	return g.best[g.rng.Intn(len(g.best))], true
}
