package searcher

import (
	"sort"

	"narrowchess/game"
	"narrowchess/meta"
)

const infinity = MateScore + 1

// AlphaBeta is the heuristic tier: a fixed-depth negamax with alpha-beta pruning whose leaves
// are scored by an evaluation function.
type AlphaBeta struct {
	evaluate  game.Evaluator
	depth     int // 0 picks the depth from the piece count
	cache     map[string]int
	cacheSize int
	nodes     int
}

func NewAlphaBeta(evaluate game.Evaluator, depth int) *AlphaBeta {
	if evaluate == nil {
		panic("Must specify an evaluation function")
	}
	return &AlphaBeta{
		evaluate:  evaluate,
		depth:     depth,
		cache:     make(map[string]int),
		cacheSize: meta.EVAL_CACHE_SIZE,
	}
}

// SearchDepth: the fewer pieces remain, the deeper the search.
func SearchDepth(pieces int) int {
	switch {
	case pieces <= 4:
		return 8
	case pieces <= 6:
		return 6
	case pieces <= 10:
		return 5
	default:
		return 4
	}
}

func (a *AlphaBeta) Nodes() int {
	return a.nodes
}

func (a *AlphaBeta) ClearCache() {
	clear(a.cache)
}

func (a *AlphaBeta) depthFor(p game.Position) int {
	if a.depth > 0 {
		return a.depth
	}
	return SearchDepth(p.PieceCount())
}

// Search returns the best move with its score. A position without legal moves returns its
// terminal score and no move.
func (a *AlphaBeta) Search(p game.Position, rules game.RuleSet) EvalResult {
	a.nodes = 0
	moves := p.LegalMoves(rules)
	if len(moves) == 0 {
		return EvalResult{Score: a.negamax(p, rules, 0, 0, -infinity, infinity)}
	}
	depth := a.depthFor(p)
	orderMoves(p, moves)

	best := EvalResult{Score: -infinity}
	alpha := -infinity
	for _, m := range moves {
		score := -a.negamax(p.Play(m, rules), rules, depth-1, 1, -infinity, -alpha)
		if !best.HasMove || score > best.Score {
			best = EvalResult{Score: score, Move: m, HasMove: true}
		}
		if score > alpha {
			alpha = score
		}
	}
	return best
}

// ScoreMoves scores every root move with a full window.
func (a *AlphaBeta) ScoreMoves(p game.Position, rules game.RuleSet) []ScoredMove {
	a.nodes = 0
	moves := p.LegalMoves(rules)
	orderMoves(p, moves)
	depth := a.depthFor(p)
	scored := make([]ScoredMove, 0, len(moves))
	for _, m := range moves {
		score := -a.negamax(p.Play(m, rules), rules, depth-1, 1, -infinity, infinity)
		scored = append(scored, ScoredMove{Move: m, Score: score})
	}
	return scored
}

func (a *AlphaBeta) negamax(p game.Position, rules game.RuleSet, depth, ply, alpha, beta int) int {
	a.nodes++
	moves := p.LegalMoves(rules)
	switch status := game.Classify(p, rules, len(moves) > 0); {
	case status.Mate():
		return -(MateScore - ply)
	case status.Draw():
		return 0
	}
	if depth <= 0 {
		return a.leaf(p, rules)
	}

	orderMoves(p, moves)
	for _, m := range moves {
		score := -a.negamax(p.Play(m, rules), rules, depth-1, ply+1, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (a *AlphaBeta) leaf(p game.Position, rules game.RuleSet) int {
	key := p.Key(rules)
	if score, ok := a.cache[key]; ok {
		return score
	}
	score := a.evaluate(p)
	if len(a.cache) >= a.cacheSize {
		clear(a.cache)
	}
	a.cache[key] = score
	return score
}

// orderMoves puts captures first, most valuable victim then least valuable attacker, and
// promotions by the value of the new piece.
func orderMoves(p game.Position, moves []game.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return mvvLva(p, moves[i]) > mvvLva(p, moves[j])
	})
}

func mvvLva(p game.Position, m game.Move) int {
	score := 0
	if victim := p.PieceAt(m.To); victim != game.NoPiece {
		score += 10*game.PieceValue[victim.Type()] - game.PieceValue[p.PieceAt(m.From).Type()] + game.PieceValue[game.Queen]
	}
	if m.Promotion != game.NoPieceType {
		score += game.PieceValue[m.Promotion]
	}
	return score
}
