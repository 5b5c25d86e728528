package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"narrowchess/experiments"
	"narrowchess/game"
	"narrowchess/meta"
	"narrowchess/searcher"
	"narrowchess/searcher/agent"
)

func main() {
	modesPath := flag.String("modes", "modes.yaml", "YAML file with the game modes")
	modeName := flag.String("mode", "", "Mode whose start position and rules to use")
	position := flag.String("position", "", "Encoded position to analyse, overrides the mode's start")
	strategy := flag.String("strategy", "", "Strategy overriding the mode's: optimal, risk-seeking or weak")
	budget := flag.Duration("budget", meta.TIME_BUDGET, "Time budget per move")
	serve := flag.String("serve", "", "Serve the agent API on this address, e.g. :8080")
	experiment := flag.String("experiment", "", "Experiment to run: strategies or throughput")
	out := flag.String("out", "experiments", "Directory for experiment records")
	verbose := flag.Bool("v", false, "Log at debug level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch {
	case *serve != "":
		err = agent.StartAgentServer(*serve, searcher.NewSolver(searcher.WithMetrics()), *budget)
	case *experiment != "":
		err = runExperiment(*experiment, *modesPath, *out)
	default:
		err = recommend(*modesPath, *modeName, *position, *strategy, *budget)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func runExperiment(name, modesPath, out string) error {
	modes, err := game.LoadModesFile(modesPath)
	if err != nil {
		return err
	}
	switch name {
	case "strategies":
		return experiments.RunStrategyExperiment(context.Background(), modes, out)
	case "throughput":
		return experiments.RunThroughputExperiment(modes, out)
	}
	return fmt.Errorf("unknown experiment %q", name)
}

func recommend(modesPath, modeName, position, strategy string, budget time.Duration) error {
	rules := game.DefaultRules()
	if modeName != "" {
		modes, err := game.LoadModesFile(modesPath)
		if err != nil {
			return err
		}
		mode, ok := game.FindMode(modes, modeName)
		if !ok {
			return fmt.Errorf("unknown mode %q", modeName)
		}
		rules = mode.Rules
		if position == "" {
			position = mode.Start
		}
	}
	if position == "" {
		return fmt.Errorf("specify a -position or a -mode")
	}
	if strategy != "" {
		s, err := game.ParseStrategy(strategy)
		if err != nil {
			return err
		}
		rules = rules.WithStrategy(s)
	}

	p, err := game.ParsePosition(position)
	if err != nil {
		return err
	}
	rec := agent.Recommend(searcher.NewSolver(searcher.WithMetrics()), p, rules, budget)
	if !rec.HasMove {
		fmt.Printf("no move: %s\n", game.Terminal(p, rules))
		return nil
	}

	fmt.Printf("move: %s (tier %s)\n", rec.Move.Notation(p.Geometry), rec.Tier)
	if rec.Solve != nil {
		fmt.Printf("outcome: %s in %d plies", rec.Solve.Outcome, rec.Solve.Depth)
		if rec.Solve.Truncated {
			fmt.Print(" (truncated)")
		}
		fmt.Println()
	}
	if rec.Eval != nil {
		fmt.Printf("score: %d\n", rec.Eval.Score)
	}
	log.Debug().Int("nodes", rec.Metric.Nodes).Dur("duration", rec.Metric.Duration).Msg("search finished")
	return nil
}
