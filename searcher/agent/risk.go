package agent

import (
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/game"
	"narrowchess/meta"
	"narrowchess/searcher"
)

// riskAgent keeps games going: among moves that do not lose it prefers the longest draw, and
// it steers away from moves that end the game in a draw on the spot.
type riskAgent struct {
	solver *searcher.Solver
	budget time.Duration
}

func (a riskAgent) FindMove(p game.Position, rules game.RuleSet) searcher.Recommendation {
	start := time.Now()
	rec := a.solver.RecommendMove(p, rules, a.budget)
	if !rec.HasMove {
		return rec
	}
	if isExact(rec) {
		if rec.Solve.Outcome != searcher.Draw {
			return rec
		}
		return a.longestDraw(p, rules, rec, a.remaining(start))
	}
	return a.avoidImmediateDraw(p, rules, rec)
}

// remaining is what the recommendation left of the move's time budget.
func (a riskAgent) remaining(start time.Time) time.Duration {
	budget := a.budget
	if budget <= 0 {
		budget = meta.TIME_BUDGET
	}
	return budget - time.Since(start)
}

func (a riskAgent) longestDraw(p game.Position, rules game.RuleSet, rec searcher.Recommendation, budget time.Duration) searcher.Recommendation {
	if budget <= 0 {
		return rec
	}
	outcomes, err := a.solver.AnalyzeMoves(p, rules, budget)
	if err != nil {
		log.Warn().Err(err).Msg("risk-seeking analysis failed, keeping the optimal move")
		return rec
	}
	best := pickLongestDraw(*rec.Solve, outcomes)
	best.Tier = rec.Tier
	rec.Move, rec.Solve = best.Move, &best
	return rec
}

// pickLongestDraw returns the proven draw that lasts longest, starting from best. Truncated draws
// are only a budget bail-out and may hide a loss.
func pickLongestDraw(best searcher.SolveResult, outcomes []searcher.MoveOutcome) searcher.SolveResult {
	for _, o := range outcomes {
		if o.Result.Outcome == searcher.Draw && !o.Result.Truncated && o.Result.Depth > best.Depth {
			best = o.Result
		}
	}
	return best
}

func (a riskAgent) avoidImmediateDraw(p game.Position, rules game.RuleSet, rec searcher.Recommendation) searcher.Recommendation {
	if !endsInDraw(p, rec.Move, rules) {
		return rec
	}
	scored, err := a.solver.ScoreMoves(p, rules)
	if err != nil {
		log.Warn().Err(err).Msg("risk-seeking scoring failed, keeping the optimal move")
		return rec
	}
	found := false
	var best searcher.ScoredMove
	for _, s := range scored {
		if endsInDraw(p, s.Move, rules) {
			continue
		}
		if !found || s.Score > best.Score {
			best, found = s, true
		}
	}
	if !found {
		return rec
	}
	rec.Move = best.Move
	rec.Eval = &searcher.EvalResult{Score: best.Score, Move: best.Move, HasMove: true}
	return rec
}

func endsInDraw(p game.Position, m game.Move, rules game.RuleSet) bool {
	return game.Terminal(p.Play(m, rules), rules).Draw()
}
