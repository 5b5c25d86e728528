package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/experiments/metrics"
	"narrowchess/game"
	"narrowchess/searcher"
)

var throughputBudgets = []time.Duration{10 * time.Millisecond, 100 * time.Millisecond, time.Second}

// MeasureThroughput asks a fresh solver for a move in every mode's start position once per
// budget and records which tier answered and how many nodes it searched.
func MeasureThroughput(modes []game.Mode, budgets []time.Duration) ([]metrics.SearchRecord, error) {
	records := []metrics.SearchRecord{}
	for _, mode := range modes {
		p, err := mode.Position()
		if err != nil {
			return nil, err
		}
		for _, budget := range budgets {
			solver := searcher.NewSolver(searcher.WithMetrics())
			rec := solver.RecommendMove(p, mode.Rules, budget)
			records = append(records, metrics.SearchRecord{Mode: mode.Name, SearchMetric: rec.Metric})
			log.Info().
				Str("mode", mode.Name).
				Dur("budget", budget).
				Str("tier", rec.Metric.Tier).
				Int("nodes", rec.Metric.Nodes).
				Dur("duration", rec.Metric.Duration).
				Msg("measured search")
		}
	}
	return records, nil
}

func RunThroughputExperiment(modes []game.Mode, root string) error {
	log.Info().Msg("starting throughput experiment...")
	records, err := MeasureThroughput(modes, throughputBudgets)
	if err != nil {
		return err
	}
	writer, err := metrics.NewWriter(root, "throughput")
	if err != nil {
		return err
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("completed throughput experiment")
	return nil
}
