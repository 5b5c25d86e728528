package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"narrowchess/game"
	"narrowchess/searcher"
)

type Agent interface {
	// FindMove recommends a move for the side to move together with how it was found
	FindMove(p game.Position, rules game.RuleSet) searcher.Recommendation
}

type Option func(c *config)

type config struct {
	budget time.Duration
	rng    *rand.Rand
}

func WithTimeBudget(budget time.Duration) Option {
	return func(c *config) {
		if budget > 0 {
			c.budget = budget
		}
	}
}

// WithSeed makes the random choices of the weak strategy reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

func newConfig(options []Option) config {
	c := config{}
	for _, option := range options {
		option(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return c
}

// ForStrategy returns the agent that post-processes solver results the way the strategy asks.
func ForStrategy(strategy game.Strategy, solver *searcher.Solver, options ...Option) Agent {
	if solver == nil {
		panic("Must specify a solver")
	}
	c := newConfig(options)
	switch strategy {
	case game.RiskSeeking:
		return riskAgent{solver: solver, budget: c.budget}
	case game.Weak:
		return &weakAgent{solver: solver, budget: c.budget, rng: c.rng}
	default:
		return NewOptimalAgent(solver, options...)
	}
}

// Recommend is the single entry point for interactive play: it asks the solver for a move and
// applies the strategy named by the rules.
func Recommend(solver *searcher.Solver, p game.Position, rules game.RuleSet, budget time.Duration) searcher.Recommendation {
	return ForStrategy(rules.Strategy, solver, WithTimeBudget(budget)).FindMove(p, rules)
}

// isExact reports whether the recommendation carries a game-theoretic result.
func isExact(rec searcher.Recommendation) bool {
	return rec.Solve != nil && (rec.Tier == searcher.TierExact || rec.Tier == searcher.TierBounded)
}
