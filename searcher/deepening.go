package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/game"
)

// Deepening runs the exact solver with growing depth ceilings, a fresh node budget for each
// iteration and one transposition table shared by all of them.
type Deepening struct {
	table      *TranspositionTable
	maxDepth   int
	nodeBudget int
	timeout    time.Duration
	nodes      int
}

func NewDeepening(table *TranspositionTable, maxDepth, nodeBudget int, timeout time.Duration) *Deepening {
	if table == nil {
		panic("Must specify a transposition table")
	}
	if maxDepth <= 0 || nodeBudget <= 0 {
		panic("Must specify a depth ceiling and a node budget")
	}
	return &Deepening{
		table:      table,
		maxDepth:   maxDepth,
		nodeBudget: nodeBudget,
		timeout:    timeout,
	}
}

// Nodes is the total node count over all iterations of the last Solve call.
func (d *Deepening) Nodes() int {
	return d.nodes
}

// Solve stops at the first final result. It returns ErrExhausted when the clock or a node
// budget runs out first, or when even the last depth target only reaches a truncated Draw.
func (d *Deepening) Solve(p game.Position, rules game.RuleSet) (SolveResult, error) {
	d.nodes = 0
	deadline := deadlineAfter(d.timeout)
	for depth := 1; depth <= d.maxDepth; depth++ {
		s := newExactSearch(d.table, rules, depth, d.nodeBudget, deadline)
		r := s.solveRoot(p)
		d.nodes += s.nodes
		r.Tier = TierBounded
		if r.Outcome == Win || !r.Truncated {
			log.Debug().Int("depth", depth).Int("nodes", d.nodes).Str("outcome", r.Outcome.String()).Msg("deepening finished")
			return r, nil
		}
		if s.nodes > s.maxNodes || s.expired {
			return SolveResult{}, fmt.Errorf("%w after depth %d (%d nodes)", ErrExhausted, depth, d.nodes)
		}
	}
	return SolveResult{}, fmt.Errorf("%w: no final result within depth %d", ErrExhausted, d.maxDepth)
}
