package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"narrowchess/engine"
	"narrowchess/experiments/metrics"
	"narrowchess/game"
	"narrowchess/meta"
	"narrowchess/searcher"
	"narrowchess/searcher/agent"
)

const (
	NumGames   = 10 // Per match up and mode
	TimeBudget = 200 * time.Millisecond
)

var strategyConfigs = []metrics.AgentConfig{
	{ID: 1, Strategy: game.Optimal.String(), Budget: TimeBudget},
	{ID: 2, Strategy: game.RiskSeeking.String(), Budget: TimeBudget},
	{ID: 3, Strategy: game.Weak.String(), Budget: TimeBudget},
}

// MatchUp pairs two agents. Which one plays White is decided per game.
type MatchUp [2]metrics.AgentConfig

type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// RunStrategyExperiment plays every strategy against every other one in each mode and stores
// the records under root.
func RunStrategyExperiment(ctx context.Context, modes []game.Mode, root string) error {
	matchUps := []MatchUp{}
	for i := range strategyConfigs {
		for j := i + 1; j < len(strategyConfigs); j++ {
			matchUps = append(matchUps, MatchUp{strategyConfigs[i], strategyConfigs[j]})
		}
	}

	result, err := Run(ctx, modes, matchUps, NumGames)
	if err != nil {
		return err
	}
	return store(root, "strategies", strategyConfigs, result)
}

// Run plays games games of each match up in each mode, at most meta.GO_ROUTINES at a time.
func Run(ctx context.Context, modes []game.Mode, matchUps []MatchUp, games int) (Result, error) {
	type job struct {
		mode    game.Mode
		matchUp MatchUp
	}
	jobs := []job{}
	for _, mode := range modes {
		for _, matchUp := range matchUps {
			for i := 0; i < games; i++ {
				jobs = append(jobs, job{mode: mode, matchUp: matchUp})
			}
		}
	}
	log.Info().Int("games", len(jobs)).Msg("starting experiment...")

	records := make([]metrics.GameRecord, len(jobs))
	moves := make([][]metrics.MoveRecord, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(meta.GO_ROUTINES)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			white, black := j.matchUp[0], j.matchUp[1]
			if frand.Intn(2) == 1 {
				white, black = black, white
			}
			id := i + 1

			record, moveRecords, err := runGame(id, j.mode, white, black)
			if err != nil {
				return err
			}
			records[i], moves[i] = record, moveRecords
			log.Info().Msgf("completed game %d of %d in mode %s with winner: %q", id, len(jobs), j.mode.Name, record.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Games: records}
	for _, m := range moves {
		result.Moves = append(result.Moves, m...)
	}
	log.Info().Msg("completed experiment")
	return result, nil
}

// runGame executes a single game between two agents, each with a solver of its own.
func runGame(id int, mode game.Mode, white, black metrics.AgentConfig) (metrics.GameRecord, []metrics.MoveRecord, error) {
	e, err := engine.NewLocalEngine(mode, newPlayer(white), newPlayer(black))
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	_, gameMetric, moveMetrics := e.Run()

	moveRecords := make([]metrics.MoveRecord, 0, len(moveMetrics))
	for _, mm := range moveMetrics {
		moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return metrics.GameRecord{ID: id, White: white.ID, Black: black.ID, GameMetric: gameMetric}, moveRecords, nil
}

func newPlayer(config metrics.AgentConfig) engine.Player {
	strategy, err := game.ParseStrategy(config.Strategy)
	if err != nil {
		panic(fmt.Sprintf("agent %d: %v", config.ID, err))
	}
	solver := searcher.NewSolver(searcher.WithTimeBudget(config.Budget), searcher.WithMetrics())
	return engine.Player{
		Name:  fmt.Sprintf("%d-%s", config.ID, config.Strategy),
		Agent: agent.ForStrategy(strategy, solver, agent.WithTimeBudget(config.Budget)),
	}
}

func store(root, name string, configs []metrics.AgentConfig, result Result) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}
