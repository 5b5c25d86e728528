package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/experiments/metrics"
	"narrowchess/game"
	"narrowchess/meta"
)

type Option func(s *Solver)

// Solver owns the transposition table of one session and picks a solver tier per position.
// It is not safe for concurrent use.
type Solver struct {
	timeBudget time.Duration
	nodeBudget int
	maxDepth   int
	tableSize  int
	depth      int
	evaluate   game.Evaluator
	table      *TranspositionTable
	heuristic  *AlphaBeta
	metrics    metrics.Collector
}

type Recommendation struct {
	Tier    Tier
	Move    game.Move
	HasMove bool
	Solve   *SolveResult // set by the exact tiers and for terminal positions
	Eval    *EvalResult  // set by the heuristic tier
	Metric  metrics.SearchMetric
}

func WithTimeBudget(budget time.Duration) Option {
	return func(s *Solver) {
		if budget > 0 {
			s.timeBudget = budget
		}
	}
}

func WithNodeBudget(nodes int) Option {
	return func(s *Solver) {
		if nodes > 0 {
			s.nodeBudget = nodes
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *Solver) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func WithTableSize(entries int) Option {
	return func(s *Solver) {
		if entries > 0 {
			s.tableSize = entries
		}
	}
}

// WithSearchDepth fixes the heuristic search depth instead of deriving it from the piece count.
func WithSearchDepth(depth int) Option {
	return func(s *Solver) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluator) Option {
	return func(s *Solver) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Solver) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSolver(options ...Option) *Solver {
	s := &Solver{ // Default values
		timeBudget: meta.TIME_BUDGET,
		nodeBudget: meta.NODE_BUDGET,
		maxDepth:   meta.MAX_DEPTH,
		tableSize:  meta.TABLE_SIZE,
		evaluate:   game.Evaluate,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	s.table = NewTranspositionTable(s.tableSize)
	s.heuristic = NewAlphaBeta(s.evaluate, s.depth)
	return s
}

func (s *Solver) Table() *TranspositionTable {
	return s.table
}

// Reset forgets everything learnt about earlier positions. Call it on a new game or when an
// unrelated position is loaded.
func (s *Solver) Reset() {
	s.table.Clear()
	s.heuristic.ClearCache()
}

// RecommendMove runs the tiers from the cheapest sufficient one down to the heuristic search
// and always returns a legal move unless the position is terminal. A non-positive time budget
// uses the solver's default.
func (s *Solver) RecommendMove(p game.Position, rules game.RuleSet, timeBudget time.Duration) Recommendation {
	if timeBudget <= 0 {
		timeBudget = s.timeBudget
	}
	complexity := Complexity(p)
	s.metrics.Start(timeBudget, complexity)
	hits := s.table.Hits()

	rec := s.recommend(p, rules, timeBudget, complexity)

	s.metrics.SetTier(rec.Tier.String())
	s.metrics.AddTableHits(s.table.Hits() - hits)
	s.metrics.SetTableEntries(s.table.Len())
	rec.Metric = s.metrics.Complete()
	return rec
}

func (s *Solver) recommend(p game.Position, rules game.RuleSet, budget time.Duration, complexity float64) Recommendation {
	moves := p.LegalMoves(rules)
	if status := game.Classify(p, rules, len(moves) > 0); status.Terminal() {
		r := SolveResult{Outcome: Draw, Tier: TierExact}
		if status.Mate() {
			r.Outcome = Loss
		}
		return Recommendation{Tier: TierExact, Solve: &r}
	}

	start := time.Now()
	tier := SelectTier(complexity, len(moves))
	log.Debug().Float64("complexity", complexity).Int("moves", len(moves)).Str("tier", tier.String()).Msg("selected solver tier")

	if tier == TierExact {
		r, err := s.solveExact(p, rules, budget/2)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("falling through to bounded search")
		case r.Truncated || !r.HasMove:
			log.Debug().Msg("exact search truncated, falling through to bounded search")
		default:
			return Recommendation{Tier: TierExact, Move: r.Move, HasMove: true, Solve: &r}
		}
		tier = SelectTier(meta.BOUNDED_COMPLEXITY, len(moves))
	}

	if tier == TierBounded {
		remaining := max(budget-time.Since(start), time.Millisecond)
		r, err := s.solveBounded(p, rules, remaining)
		if err == nil && r.HasMove {
			return Recommendation{Tier: TierBounded, Move: r.Move, HasMove: true, Solve: &r}
		}
		log.Debug().Err(err).Msg("falling through to heuristic search")
	}

	e, err := s.searchHeuristic(p, rules)
	if err == nil && e.HasMove {
		return Recommendation{Tier: TierHeuristic, Move: e.Move, HasMove: true, Eval: &e}
	}
	log.Warn().Err(err).Str("position", p.Encode(true)).Msg("every solver tier failed, playing the first legal move")
	return Recommendation{Tier: TierFallback, Move: moves[0], HasMove: true}
}

func (s *Solver) solveExact(p game.Position, rules game.RuleSet, timeout time.Duration) (r SolveResult, err error) {
	defer recoverTier(TierExact, &err)
	exact := NewExact(s.table, s.maxDepth, s.nodeBudget, timeout)
	r = exact.Solve(p, rules)
	s.metrics.AddNodes(exact.Nodes())
	return r, nil
}

func (s *Solver) solveBounded(p game.Position, rules game.RuleSet, timeout time.Duration) (r SolveResult, err error) {
	defer recoverTier(TierBounded, &err)
	deepening := NewDeepening(s.table, s.maxDepth, s.nodeBudget, timeout)
	r, err = deepening.Solve(p, rules)
	s.metrics.AddNodes(deepening.Nodes())
	return r, err
}

func (s *Solver) searchHeuristic(p game.Position, rules game.RuleSet) (e EvalResult, err error) {
	defer recoverTier(TierHeuristic, &err)
	e = s.heuristic.Search(p, rules)
	s.metrics.AddNodes(s.heuristic.Nodes())
	return e, nil
}

// AnalyzeMoves solves every legal move exactly within the time budget. Draws cut off by a
// budget are marked truncated.
func (s *Solver) AnalyzeMoves(p game.Position, rules game.RuleSet, timeBudget time.Duration) (outcomes []MoveOutcome, err error) {
	defer recoverTier(TierExact, &err)
	if timeBudget <= 0 {
		timeBudget = s.timeBudget
	}
	exact := NewExact(s.table, s.maxDepth, s.nodeBudget, timeBudget)
	return exact.Analyze(p, rules), nil
}

// ScoreMoves scores every legal move with the heuristic search.
func (s *Solver) ScoreMoves(p game.Position, rules game.RuleSet) (scored []ScoredMove, err error) {
	defer recoverTier(TierHeuristic, &err)
	return s.heuristic.ScoreMoves(p, rules), nil
}

func recoverTier(tier Tier, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrTierUnavailable, tier, r)
	}
}
