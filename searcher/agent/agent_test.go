package agent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"narrowchess/game"
	"narrowchess/meta"
	"narrowchess/searcher"
)

const (
	mateInOne   = "bk,bn,x,x,wn,x,x,wk:w"
	knightDraw  = "bk,x,x,x,x,wn,x,wk:w"
	microStart  = "br,bn,bk/bp,bp,bp/x,x,x/x,x,x/x,x,x/x,x,x/wp,wp,wp/wr,wn,wk:w"
	testTimeout = time.Second
)

func mustParse(t *testing.T, s string) game.Position {
	t.Helper()
	p, err := game.ParsePosition(s)
	require.NoError(t, err)
	return p
}

func TestOptimalAgent(t *testing.T) {
	p := mustParse(t, mateInOne)

	rec := ForStrategy(game.Optimal, searcher.NewSolver(), WithTimeBudget(testTimeout)).FindMove(p, game.DefaultRules())

	require.Equal(t, game.Move{From: 4, To: 2}, rec.Move)
	require.Equal(t, searcher.Win, rec.Solve.Outcome)
}

func TestRiskAgent(t *testing.T) {
	rules := game.DefaultRules()

	t.Run("prefers the longest draw", func(t *testing.T) {
		p := mustParse(t, knightDraw)

		optimal := ForStrategy(game.Optimal, searcher.NewSolver()).FindMove(p, rules)
		risky := ForStrategy(game.RiskSeeking, searcher.NewSolver()).FindMove(p, rules)

		require.Equal(t, searcher.Draw, optimal.Solve.Outcome)
		require.Equal(t, searcher.Draw, risky.Solve.Outcome, "Risk seeking should never pick a losing move")
		require.GreaterOrEqual(t, risky.Solve.Depth, optimal.Solve.Depth)
		require.Contains(t, p.LegalMoves(rules), risky.Move)
	})

	t.Run("ignores truncated draws", func(t *testing.T) {
		proven := searcher.SolveResult{Outcome: searcher.Draw, Depth: 2, Move: game.Move{From: 7, To: 6}, HasMove: true}
		cutOff := searcher.SolveResult{Outcome: searcher.Draw, Depth: 40, Move: game.Move{From: 5, To: 3}, HasMove: true, Truncated: true}
		longer := searcher.SolveResult{Outcome: searcher.Draw, Depth: 6, Move: game.Move{From: 5, To: 7}, HasMove: true}

		best := pickLongestDraw(proven, []searcher.MoveOutcome{
			{Move: cutOff.Move, Result: cutOff},
			{Move: longer.Move, Result: longer},
		})

		require.Equal(t, longer, best)
		require.Equal(t, proven, pickLongestDraw(proven, []searcher.MoveOutcome{{Move: cutOff.Move, Result: cutOff}}))
	})

	t.Run("skips the analysis once the budget is spent", func(t *testing.T) {
		p := mustParse(t, knightDraw)
		rules := game.DefaultRules()
		a := riskAgent{solver: searcher.NewSolver(), budget: testTimeout}
		solve := searcher.SolveResult{Outcome: searcher.Draw, Move: game.Move{From: 7, To: 6}, HasMove: true}
		rec := searcher.Recommendation{Tier: searcher.TierExact, Move: solve.Move, HasMove: true, Solve: &solve}

		require.Equal(t, rec, a.longestDraw(p, rules, rec, 0))
		require.Positive(t, a.remaining(time.Now()))
		require.LessOrEqual(t, a.remaining(time.Now()), testTimeout)
	})

	t.Run("keeps a win", func(t *testing.T) {
		rec := ForStrategy(game.RiskSeeking, searcher.NewSolver()).FindMove(mustParse(t, mateInOne), rules)

		require.Equal(t, game.Move{From: 4, To: 2}, rec.Move)
	})

	t.Run("steers away from a stalemating move", func(t *testing.T) {
		p := mustParse(t, "bk,x,x,wk,x,x:w")
		stalemate := game.Move{From: 3, To: 2}
		require.True(t, endsInDraw(p, stalemate, rules))

		a := riskAgent{solver: searcher.NewSolver()}
		rec := a.avoidImmediateDraw(p, rules, searcher.Recommendation{Tier: searcher.TierHeuristic, Move: stalemate, HasMove: true})

		require.Equal(t, game.Move{From: 3, To: 4}, rec.Move)
		require.NotNil(t, rec.Eval)
	})
}

func TestWeakAgent(t *testing.T) {
	rules := game.DefaultRules()

	t.Run("never throws away a win", func(t *testing.T) {
		rec := ForStrategy(game.Weak, searcher.NewSolver(), WithSeed(1)).FindMove(mustParse(t, mateInOne), rules)

		require.Equal(t, game.Move{From: 4, To: 2}, rec.Move)
	})

	t.Run("plays legal moves otherwise", func(t *testing.T) {
		p := mustParse(t, knightDraw)
		weak := ForStrategy(game.Weak, searcher.NewSolver(), WithSeed(3))

		for i := 0; i < 5; i++ {
			require.Contains(t, p.LegalMoves(rules), weak.FindMove(p, rules).Move)
		}
	})

	t.Run("heuristic picks stay above the threshold", func(t *testing.T) {
		p := mustParse(t, microStart)

		rec := ForStrategy(game.Weak, searcher.NewSolver(), WithSeed(5)).FindMove(p, rules)

		require.Contains(t, p.LegalMoves(rules), rec.Move)
		if rec.Eval != nil {
			require.Greater(t, rec.Eval.Score, meta.WEAK_SCORE_THRESHOLD)
		}
	})
}

func TestRecommendUsesRuleStrategy(t *testing.T) {
	p := mustParse(t, mateInOne)
	rules := game.DefaultRules().WithStrategy(game.Weak)

	rec := Recommend(searcher.NewSolver(), p, rules, testTimeout)

	require.Equal(t, game.Move{From: 4, To: 2}, rec.Move)
}

func TestAgentServer(t *testing.T) {
	server := httptest.NewServer(NewServer(searcher.NewSolver(), testTimeout).Routes())
	defer server.Close()

	t.Run("finds a move", func(t *testing.T) {
		body, err := json.Marshal(FindMoveRequest{Position: mateInOne, Rules: game.DefaultRules(), TimeBudgetMs: 500})
		require.NoError(t, err)

		resp, err := http.Post(server.URL+"/findmove", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got FindMoveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Equal(t, FindMoveResponse{Move: "a4a6", HasMove: true, Tier: "exact", Outcome: "win", Depth: 1, Nodes: got.Nodes}, got)
	})

	t.Run("rejects a malformed position", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/findmove", "application/json", bytes.NewReader([]byte(`{"position":"bk,x:w"}`)))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("clears the table", func(t *testing.T) {
		status := func() cacheStatusResponse {
			resp, err := http.Get(server.URL + "/cache/tt")
			require.NoError(t, err)
			defer resp.Body.Close()
			var s cacheStatusResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
			return s
		}
		require.Positive(t, status().Entries)

		req, err := http.NewRequest(http.MethodDelete, server.URL+"/cache/tt", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Zero(t, status().Entries)
	})
}
