package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"narrowchess/game"
	"narrowchess/searcher"
)

type FindMoveRequest struct {
	Position     string       `json:"position"`
	Rules        game.RuleSet `json:"rules"`
	TimeBudgetMs int          `json:"time_budget_ms"`
}

type FindMoveResponse struct {
	Move      string `json:"move,omitempty"`
	HasMove   bool   `json:"has_move"`
	Tier      string `json:"tier"`
	Outcome   string `json:"outcome,omitempty"`
	Depth     int    `json:"depth"`
	Truncated bool   `json:"truncated"`
	Score     *int   `json:"score,omitempty"`
	Nodes     int    `json:"nodes"`
}

type cacheStatusResponse struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

// Server exposes one solver session over HTTP. Requests are served one at a time because the
// solver and its transposition table are single-threaded.
type Server struct {
	mu     sync.Mutex
	solver *searcher.Solver
	budget time.Duration
}

func NewServer(solver *searcher.Solver, budget time.Duration) *Server {
	if solver == nil {
		panic("Must specify a solver")
	}
	return &Server{solver: solver, budget: budget}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/findmove", s.handleFindMove)
	r.Get("/cache/tt", s.handleCacheStatus)
	r.Delete("/cache/tt", s.handleCacheClear)
	return r
}

// StartAgentServer serves the agent API on addr until the listener fails.
func StartAgentServer(addr string, solver *searcher.Solver, budget time.Duration) error {
	log.Info().Str("addr", addr).Msg("starting agent server")
	server := &http.Server{
		Addr:              addr,
		Handler:           NewServer(solver, budget).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request: " + err.Error()})
		return
	}
	p, err := game.ParsePosition(payload.Position)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	budget := s.budget
	if payload.TimeBudgetMs > 0 {
		budget = time.Duration(payload.TimeBudgetMs) * time.Millisecond
	}

	s.mu.Lock()
	rec := Recommend(s.solver, p, payload.Rules, budget)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, newFindMoveResponse(p.Geometry, rec))
}

func newFindMoveResponse(g game.Geometry, rec searcher.Recommendation) FindMoveResponse {
	resp := FindMoveResponse{
		HasMove: rec.HasMove,
		Tier:    rec.Tier.String(),
		Nodes:   rec.Metric.Nodes,
	}
	if rec.HasMove {
		resp.Move = rec.Move.Notation(g)
	}
	if rec.Solve != nil {
		resp.Outcome = rec.Solve.Outcome.String()
		resp.Depth = rec.Solve.Depth
		resp.Truncated = rec.Solve.Truncated
	}
	if rec.Eval != nil {
		score := rec.Eval.Score
		resp.Score = &score
	}
	return resp
}

func (s *Server) handleCacheStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	table := s.solver.Table()
	status := cacheStatusResponse{Entries: table.Len(), Hits: table.Hits(), Misses: table.Misses()}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.solver.Reset()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("agent request")
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
