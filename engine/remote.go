package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/game"
	"narrowchess/searcher"
	"narrowchess/searcher/agent"
)

// RemoteAgent asks an agent server for its moves over HTTP.
type RemoteAgent struct {
	url    string
	budget time.Duration
	client *http.Client
}

func NewRemoteAgent(url string, budget time.Duration) *RemoteAgent {
	if url == "" {
		panic("Must specify an agent URL")
	}
	return &RemoteAgent{
		url:    url,
		budget: budget,
		client: &http.Client{Timeout: budget + 10*time.Second},
	}
}

// FindMove returns an empty recommendation when the server cannot be reached or answers with
// something unusable.
func (a *RemoteAgent) FindMove(p game.Position, rules game.RuleSet) searcher.Recommendation {
	rec, err := a.requestMove(p, rules)
	if err != nil {
		log.Error().Err(err).Str("url", a.url).Msg("remote agent failed")
		return searcher.Recommendation{}
	}
	return rec
}

func (a *RemoteAgent) requestMove(p game.Position, rules game.RuleSet) (searcher.Recommendation, error) {
	body, err := json.Marshal(agent.FindMoveRequest{
		Position:     p.Encode(true),
		Rules:        rules,
		TimeBudgetMs: int(a.budget.Milliseconds()),
	})
	if err != nil {
		return searcher.Recommendation{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return searcher.Recommendation{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return searcher.Recommendation{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var payload agent.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return searcher.Recommendation{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return toRecommendation(p.Geometry, payload)
}

func toRecommendation(g game.Geometry, payload agent.FindMoveResponse) (searcher.Recommendation, error) {
	tier, err := searcher.ParseTier(payload.Tier)
	if err != nil {
		return searcher.Recommendation{}, err
	}
	rec := searcher.Recommendation{Tier: tier, HasMove: payload.HasMove}
	rec.Metric.Tier = payload.Tier
	rec.Metric.Nodes = payload.Nodes
	if payload.HasMove {
		if rec.Move, err = game.ParseMove(payload.Move, g); err != nil {
			return searcher.Recommendation{}, err
		}
	}
	if payload.Outcome != "" {
		outcome, err := searcher.ParseOutcome(payload.Outcome)
		if err != nil {
			return searcher.Recommendation{}, err
		}
		rec.Solve = &searcher.SolveResult{
			Outcome:   outcome,
			Depth:     payload.Depth,
			Move:      rec.Move,
			HasMove:   rec.HasMove,
			Tier:      tier,
			Truncated: payload.Truncated,
		}
	}
	if payload.Score != nil {
		rec.Eval = &searcher.EvalResult{Score: *payload.Score, Move: rec.Move, HasMove: rec.HasMove}
	}
	return rec, nil
}
