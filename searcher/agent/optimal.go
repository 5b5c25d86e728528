package agent

import (
	"time"

	"narrowchess/game"
	"narrowchess/searcher"
)

type optimalAgent struct {
	solver *searcher.Solver
	budget time.Duration
}

// NewOptimalAgent returns an agent that plays the solver's recommendation unchanged.
func NewOptimalAgent(solver *searcher.Solver, options ...Option) Agent {
	c := newConfig(options)
	return optimalAgent{solver: solver, budget: c.budget}
}

func (a optimalAgent) FindMove(p game.Position, rules game.RuleSet) searcher.Recommendation {
	return a.solver.RecommendMove(p, rules, a.budget)
}
