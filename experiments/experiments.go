// Package experiments evaluates a trained table against a uniform-random
// baseline over held-out games and records the results as CSV.
package experiments

import (
	"fmt"
	"time"

	"nmoku/engine"
	"nmoku/experiments/metrics"
	"nmoku/game"
	"nmoku/policy"

	"github.com/rs/zerolog/log"
)

// Config describes one evaluation run. The trained agent always plays P1;
// the starting side alternates between games via the starting-turn flag,
// beginning with P1First.
type Config struct {
	Size      int
	RunLength int
	Games     int
	P1First   bool
	Seed      uint64
}

// Summary aggregates an evaluation run from the trained agent's perspective.
type Summary struct {
	Games     int
	Wins      int
	Draws     int
	Losses    int
	WinOrDraw float64 // Fraction of games won or drawn
}

// EvaluateAgainstRandom plays cfg.Games games between the trained policy and
// a fresh uniform-random opponent and returns the per-game records with an
// aggregate summary.
func EvaluateAgainstRandom(cfg Config, trained policy.Policy) ([]metrics.GameRecord, Summary, error) {
	random := policy.NewRandom(cfg.Seed)

	records := make([]metrics.GameRecord, 0, cfg.Games)
	summary := Summary{Games: cfg.Games}

	for i := 0; i < cfg.Games; i++ {
		p1First := cfg.P1First == (i%2 == 0)
		board, err := game.New(cfg.Size, cfg.RunLength, p1First)
		if err != nil {
			return nil, Summary{}, err
		}

		start := time.Now()
		e := engine.New(board, trained, random)
		outcome, err := e.Run()
		if err != nil {
			return nil, Summary{}, fmt.Errorf("evaluation game %d failed: %w", i+1, err)
		}
		end := time.Now()

		switch outcome.Winner {
		case game.P1:
			summary.Wins++
		case game.P2:
			summary.Losses++
		default:
			summary.Draws++
		}

		startingMark := game.P2
		if p1First {
			startingMark = game.P1
		}
		winner := ""
		if outcome.Status == game.Won {
			winner = outcome.Winner.String()
		}
		records = append(records, metrics.GameRecord{
			ID:     i + 1,
			Agent1: 1,
			Agent2: 2,
			GameMetric: metrics.GameMetric{
				StartingMark: startingMark.String(),
				Winner:       winner,
				Moves:        e.Moves(),
				StartTime:    start,
				EndTime:      end,
				Duration:     end.Sub(start),
			},
		})
	}

	if cfg.Games > 0 {
		summary.WinOrDraw = float64(summary.Wins+summary.Draws) / float64(cfg.Games)
	}
	return records, summary, nil
}

// Run executes the evaluation, stores the agent configs and game records,
// and logs the aggregate result.
func Run(cfg Config, trained policy.Policy, trainedConfig metrics.AgentConfig) (Summary, error) {
	log.Info().Msgf("starting evaluation: %d games of trained vs random on %dx%d (run length %d)...",
		cfg.Games, cfg.Size, cfg.Size, cfg.RunLength)

	records, summary, err := EvaluateAgainstRandom(cfg, trained)
	if err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed evaluation: %d wins, %d draws, %d losses (win-or-draw rate %.3f)",
		summary.Wins, summary.Draws, summary.Losses, summary.WinOrDraw)

	writer, err := metrics.NewWriter("trained_vs_random")
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := []metrics.AgentConfig{
		trainedConfig,
		{ID: 2, Strategy: "random"},
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(records); err != nil {
		return summary, fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")

	return summary, nil
}
