package learner

import (
	"testing"

	"nmoku/game"

	"github.com/stretchr/testify/require"
)

func TestGreedyChoose(t *testing.T) {
	t.Run("reports false with no legal moves", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		greedy := NewGreedy(table, 0, 1)

		_, ok := greedy.Choose(b, game.P1, nil)

		require.False(t, ok)
	})

	t.Run("selects the action with the maximum tabulated value", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		state := b.Key(game.P1)
		table.update(state, game.Action(4), 1.0, 1.0)
		table.update(state, game.Action(0), -1.0, 1.0)
		greedy := NewGreedy(table, 0, 1)

		for i := 0; i < 50; i++ {
			action, ok := greedy.Choose(b, game.P1, b.LegalMoves())
			require.True(t, ok)
			require.Equal(t, game.Action(4), action, "The unique maximizer should always be selected")
		}
	})

	t.Run("a negative best value still beats lower values", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		state := b.Key(game.P1)
		legal := []game.Action{0, 1}
		table.update(state, game.Action(0), -0.2, 1.0)
		table.update(state, game.Action(1), -0.9, 1.0)
		greedy := NewGreedy(table, 0, 1)

		action, ok := greedy.Choose(b, game.P1, legal)

		require.True(t, ok)
		require.Equal(t, game.Action(0), action)
	})

	t.Run("lookups are keyed by the acting mark", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		table.update(b.Key(game.P1), game.Action(4), 1.0, 1.0)
		table.update(b.Key(game.P2), game.Action(8), 1.0, 1.0)
		greedy := NewGreedy(table, 0, 1)

		p1Action, _ := greedy.Choose(b, game.P1, b.LegalMoves())
		p2Action, _ := greedy.Choose(b, game.P2, b.LegalMoves())

		require.Equal(t, game.Action(4), p1Action)
		require.Equal(t, game.Action(8), p2Action)
	})

	t.Run("breaks ties uniformly among the maximizers", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		state := b.Key(game.P1)
		legal := []game.Action{0, 4, 8}
		table.update(state, game.Action(0), 1.0, 1.0)
		table.update(state, game.Action(4), 1.0, 1.0)
		table.update(state, game.Action(8), 1.0, 1.0)
		greedy := NewGreedy(table, 0, 1)

		counts := map[game.Action]int{}
		for i := 0; i < 3000; i++ {
			action, ok := greedy.Choose(b, game.P1, legal)
			require.True(t, ok)
			counts[action]++
		}

		require.Len(t, counts, 3, "Every maximizer should be selected")
		for action, count := range counts {
			require.Greater(t, count, 700, "Maximizer %d should carry no fixed bias", action)
		}
	})

	t.Run("unseen states fall back to a uniform choice", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		legal := []game.Action{1, 3, 5}
		greedy := NewGreedy(table, 0, 1)

		counts := map[game.Action]int{}
		for i := 0; i < 3000; i++ {
			action, _ := greedy.Choose(b, game.P1, legal)
			counts[action]++
		}

		require.Len(t, counts, 3,
			"All-default candidates should tie and be chosen at random, never by first index")
	})
}

func TestGreedyChooseExploring(t *testing.T) {
	t.Run("epsilon of 1 always explores", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		state := b.Key(game.P1)
		legal := []game.Action{0, 1}
		table.update(state, game.Action(0), 1.0, 1.0) // action 1 is strictly worse
		greedy := NewGreedy(table, 1.0, 1)

		sawWorse := false
		for i := 0; i < 200; i++ {
			action, ok := greedy.ChooseExploring(b, game.P1, legal)
			require.True(t, ok)
			if action == game.Action(1) {
				sawWorse = true
			}
		}

		require.True(t, sawWorse, "Exploration should sometimes pick a non-greedy action")
	})

	t.Run("epsilon of 0 never explores", func(t *testing.T) {
		table := NewTable(3, 3)
		b, err := game.New(3, 3, true)
		require.NoError(t, err)
		state := b.Key(game.P1)
		legal := []game.Action{0, 1}
		table.update(state, game.Action(0), 1.0, 1.0)
		greedy := NewGreedy(table, 0, 1)

		for i := 0; i < 200; i++ {
			action, ok := greedy.ChooseExploring(b, game.P1, legal)
			require.True(t, ok)
			require.Equal(t, game.Action(0), action)
		}
	})
}
