package searcher

import (
	"time"

	"narrowchess/game"
)

// Exact is the exact game-theoretic solver: a negamax over {Win, Loss, Draw} with a
// transposition table and cycle detection on the recursion path. Whatever the budgets cut
// off is scored as a truncated Draw, so every Win or Loss it reports is genuine.
//
// A repetition on the path scores as a Draw only for that path, so the search runs in passes.
// Wins and losses go to the table as soon as they are proven. Draws stay in a per-pass cache
// until a whole pass proves nothing new, and only then move to the table.
type Exact struct {
	table    *TranspositionTable
	maxDepth int
	maxNodes int
	timeout  time.Duration
	nodes    int
}

func NewExact(table *TranspositionTable, maxDepth, maxNodes int, timeout time.Duration) *Exact {
	if table == nil {
		panic("Must specify a transposition table")
	}
	if maxDepth <= 0 || maxNodes <= 0 {
		panic("Must specify a depth ceiling and a node budget")
	}
	return &Exact{
		table:    table,
		maxDepth: maxDepth,
		maxNodes: maxNodes,
		timeout:  timeout,
	}
}

// Nodes is the node count of the last Solve or Analyze call.
func (e *Exact) Nodes() int {
	return e.nodes
}

func (e *Exact) Solve(p game.Position, rules game.RuleSet) SolveResult {
	s := newExactSearch(e.table, rules, e.maxDepth, e.maxNodes, deadlineAfter(e.timeout))
	r := s.solveRoot(p)
	e.nodes = s.nodes
	r.Tier = TierExact
	return r
}

// Analyze solves every root move and reports each one's value for the side to move.
func (e *Exact) Analyze(p game.Position, rules game.RuleSet) []MoveOutcome {
	s := newExactSearch(e.table, rules, e.maxDepth, e.maxNodes, deadlineAfter(e.timeout))
	outcomes := s.analyze(p)
	e.nodes = s.nodes
	return outcomes
}

func deadlineAfter(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

type exactSearch struct {
	table    *TranspositionTable
	rules    game.RuleSet
	maxDepth int
	maxNodes int
	deadline time.Time
	nodes    int
	expired  bool

	path      map[string]struct{}
	tentative map[string]SolveResult // draws of the current pass
	proven    int                    // wins and losses added by the current pass
	bailedOut bool                   // the current pass hit a budget or the depth ceiling
}

func newExactSearch(table *TranspositionTable, rules game.RuleSet, maxDepth, maxNodes int, deadline time.Time) *exactSearch {
	return &exactSearch{
		table:    table,
		rules:    rules,
		maxDepth: maxDepth,
		maxNodes: maxNodes,
		deadline: deadline,
		path:     make(map[string]struct{}),
	}
}

// exhausted reports whether the node or time budget ran out. Expiry is sticky.
func (s *exactSearch) exhausted() bool {
	if s.nodes > s.maxNodes {
		return true
	}
	if !s.expired && !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.expired = true
	}
	return s.expired
}

// settle repeats pass until it is decided or a pass proves nothing new, and reports whether
// the draws it left behind are final.
func (s *exactSearch) settle(pass func() (decided bool)) bool {
	for {
		s.tentative = make(map[string]SolveResult)
		s.proven, s.bailedOut = 0, false
		if pass() {
			return true
		}
		if s.exhausted() {
			return false
		}
		if s.proven > 0 {
			continue
		}
		if s.bailedOut {
			return false
		}
		for key, r := range s.tentative {
			if !r.history {
				s.table.Put(key, r)
			}
		}
		return true
	}
}

func (s *exactSearch) solveRoot(p game.Position) SolveResult {
	var r SolveResult
	settled := s.settle(func() bool {
		r = s.solve(p, 0)
		return r.Outcome != Draw
	})
	if !settled {
		r.Truncated = true
	}
	r.history = false
	return r
}

// analyze also keeps the root's own value, which moves repeating the root depend on.
func (s *exactSearch) analyze(p game.Position) []MoveOutcome {
	var outcomes []MoveOutcome
	settled := s.settle(func() bool {
		outcomes = outcomes[:0]
		moves := p.LegalMoves(s.rules)
		if len(moves) == 0 {
			return true
		}
		s.expand(p, p.Key(s.rules), moves, 0, func(r SolveResult) {
			outcomes = append(outcomes, MoveOutcome{Move: r.Move, Result: r})
		})
		return false
	})
	for i := range outcomes {
		r := &outcomes[i].Result
		r.Tier, r.history = TierExact, false
		if r.Outcome == Draw && !settled {
			r.Truncated = true
		}
	}
	return outcomes
}

func (s *exactSearch) solve(p game.Position, ply int) SolveResult {
	s.nodes++
	if s.exhausted() || ply > s.maxDepth {
		s.bailedOut = true
		return SolveResult{Outcome: Draw, Truncated: true}
	}
	key := p.Key(s.rules)
	if r, ok := s.table.Get(key); ok {
		return r
	}
	if r, ok := s.tentative[key]; ok {
		return r
	}
	if _, ok := s.path[key]; ok {
		return SolveResult{Outcome: Draw}
	}

	moves := p.LegalMoves(s.rules)
	switch status := game.Classify(p, s.rules, len(moves) > 0); {
	case status.Mate():
		return s.prove(key, SolveResult{Outcome: Loss})
	case status == game.DrawThreefold:
		// depends on the repetition history, which the key does not carry
		return SolveResult{Outcome: Draw, history: true}
	case status.Draw():
		s.table.Put(key, SolveResult{Outcome: Draw})
		return SolveResult{Outcome: Draw}
	}
	if s.table.Full() {
		s.bailedOut = true
		return SolveResult{Outcome: Draw, Truncated: true}
	}
	return s.expand(p, key, moves, ply, nil)
}

// expand solves the children of p and stops at the first winning move, unless each wants to
// see every move.
func (s *exactSearch) expand(p game.Position, key string, moves []game.Move, ply int, each func(SolveResult)) SolveResult {
	s.path[key] = struct{}{}
	defer delete(s.path, key)

	var win, draw, loss SolveResult
	haveWin, haveDraw, haveLoss := false, false, false
	truncated, history := false, false
	for _, m := range moves {
		r := fromChild(s.solve(p.Play(m, s.rules), ply+1), m)
		if each != nil {
			each(r)
		}
		switch r.Outcome {
		case Win:
			if !haveWin || r.Depth < win.Depth {
				win, haveWin = r, true
			}
			if each == nil {
				return s.prove(key, win)
			}
		case Draw:
			truncated = truncated || r.Truncated
			history = history || r.history
			if !haveDraw || r.Depth < draw.Depth {
				draw, haveDraw = r, true
			}
		case Loss:
			if !haveLoss || r.Depth > loss.Depth {
				loss, haveLoss = r, true
			}
		}
	}
	switch {
	case haveWin:
		return s.prove(key, win)
	case haveDraw:
		draw.Truncated, draw.history = truncated, history
		s.tentative[key] = draw
		return draw
	}
	return s.prove(key, loss)
}

// prove stores a win or a loss. Only keys new to the table count as progress of the pass.
func (s *exactSearch) prove(key string, r SolveResult) SolveResult {
	if _, known := s.table.entries[key]; !known && s.table.Put(key, r) {
		s.proven++
	}
	return r
}

// fromChild turns a child's result into the value of the move leading to it.
func fromChild(child SolveResult, m game.Move) SolveResult {
	r := SolveResult{
		Outcome: child.Outcome.Negate(),
		Depth:   child.Depth + 1,
		Move:    m,
		HasMove: true,
	}
	if r.Outcome == Draw {
		r.Truncated, r.history = child.Truncated, child.history
	}
	return r
}
