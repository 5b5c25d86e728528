package agent

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"narrowchess/game"
	"narrowchess/meta"
	"narrowchess/searcher"
)

// weakAgent never throws away a won game but otherwise plays at random: any legal move when
// the solver is exact, any move scoring above the weak threshold when it is heuristic.
type weakAgent struct {
	solver *searcher.Solver
	budget time.Duration
	rng    *rand.Rand
}

func (a *weakAgent) FindMove(p game.Position, rules game.RuleSet) searcher.Recommendation {
	rec := a.solver.RecommendMove(p, rules, a.budget)
	if !rec.HasMove {
		return rec
	}
	if isExact(rec) && rec.Solve.Outcome == searcher.Win {
		return rec
	}

	if rec.Tier == searcher.TierHeuristic {
		scored, err := a.solver.ScoreMoves(p, rules)
		if err != nil {
			log.Warn().Err(err).Msg("weak scoring failed, sampling any legal move")
		}
		var playable []searcher.ScoredMove
		for _, s := range scored {
			if s.Score > meta.WEAK_SCORE_THRESHOLD {
				playable = append(playable, s)
			}
		}
		if len(playable) > 0 {
			pick := playable[a.rng.Intn(len(playable))]
			rec.Move = pick.Move
			rec.Eval = &searcher.EvalResult{Score: pick.Score, Move: pick.Move, HasMove: true}
			return rec
		}
	}

	moves := p.LegalMoves(rules)
	rec.Move = moves[a.rng.Intn(len(moves))]
	rec.Solve, rec.Eval = nil, nil
	return rec
}
