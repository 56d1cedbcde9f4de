package main

import (
	"flag"
	"os"
	"path/filepath"

	"nmoku/experiments"
	"nmoku/experiments/metrics"
	"nmoku/learner"
	"nmoku/policy"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	size := flag.Int("size", 9, "board size (size x size cells)")
	runLength := flag.Int("run", 4, "consecutive same-mark cells required to win")
	p1First := flag.Bool("first", true, "whether P1 moves first")
	opponent := flag.String("opponent", "tabular", "opponent strategy: random | tabular")
	episodes := flag.Int("episodes", 100000, "self-play training episodes (tabular only)")
	alpha := flag.Float64("alpha", learner.DefaultAlpha, "learning rate (tabular only)")
	gamma := flag.Float64("gamma", learner.DefaultGamma, "discount factor (tabular only)")
	epsilon := flag.Float64("epsilon", learner.DefaultEpsilon, "exploration probability (tabular only)")
	games := flag.Int("games", 500, "evaluation games against the random baseline")
	tableDir := flag.String("tables", ".", "directory for persisted value tables")
	seed := flag.Uint64("seed", 1, "random seed")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var opposing policy.Policy
	trainedConfig := metrics.AgentConfig{ID: 1, Strategy: *opponent}

	switch *opponent {
	case "random":
		opposing = policy.NewRandom(*seed)
	case "tabular":
		table := learner.NewTable(*size, *runLength)
		trainer, err := learner.NewTrainer(table,
			learner.WithAlpha(*alpha),
			learner.WithGamma(*gamma),
			learner.WithEpsilon(*epsilon),
			learner.WithSeed(*seed),
			learner.WithMetrics(),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid board configuration")
		}

		path := filepath.Join(*tableDir, learner.Filename(*size, *runLength, *episodes))
		found, err := table.Load(path)
		if err != nil {
			log.Warn().Err(err).Msgf("could not load table from %s, training from scratch", path)
		}
		if found {
			log.Info().Msgf("loaded table from %s (%d entries)", path, table.Len())
		} else {
			metric := trainer.Train(*episodes)
			log.Info().Msgf("trained %d episodes in %s: %d P1 wins, %d P2 wins, %d draws",
				metric.Episodes, metric.Duration, metric.P1Wins, metric.P2Wins, metric.Draws)
			if err := table.Save(path); err != nil {
				log.Warn().Err(err).Msgf("could not save table to %s", path)
			} else {
				log.Info().Msgf("saved table to %s", path)
			}
		}

		opposing = trainer.Policy()
		trainedConfig.Episodes = *episodes
		trainedConfig.Alpha = *alpha
		trainedConfig.Gamma = *gamma
		trainedConfig.Epsilon = *epsilon
	default:
		log.Fatal().Msgf("unknown opponent strategy %q (want random or tabular)", *opponent)
	}

	cfg := experiments.Config{
		Size:      *size,
		RunLength: *runLength,
		Games:     *games,
		P1First:   *p1First,
		Seed:      *seed + 1, // distinct stream for the baseline
	}
	if _, err := experiments.Run(cfg, opposing, trainedConfig); err != nil {
		log.Error().Err(err).Msg("evaluation failed")
		os.Exit(1)
	}
}
