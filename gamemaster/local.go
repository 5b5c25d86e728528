package gamemaster

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/game"
	"narrowchess/searcher"
	"narrowchess/searcher/agent"
)

var (
	ErrNoGame   = errors.New("no game in progress")
	ErrGameOver = errors.New("game is over - no moves allowed")
)

// Update is one applied move together with the position it produced.
type Update struct {
	Move     game.Move
	Position game.Position
	Status   game.Status
}

// UpdateGetter returns the next unread update, if any, without blocking. Once the game is over
// and every update has been read it keeps returning false.
type UpdateGetter func() (Update, bool)

type Session interface {
	NewGame(mode game.Mode) (game.Position, UpdateGetter, error)
	Load(encoded string, rules game.RuleSet) (game.Position, UpdateGetter, error)
	Play(m game.Move) error
	Recommend(budget time.Duration) (searcher.Recommendation, error)
}

// localSession is one interactive game against the solver. The solver's transposition table
// lives as long as the game: it is cleared whenever a new position is set up.
type localSession struct {
	mu       sync.Mutex
	solver   *searcher.Solver
	rules    game.RuleSet
	position game.Position
	status   game.Status
	started  bool
	updateCh chan Update
}

var _ Session = (*localSession)(nil)

func NewLocalSession(solver *searcher.Solver) *localSession {
	if solver == nil {
		panic("Must specify a solver")
	}
	return &localSession{solver: solver}
}

func (s *localSession) NewGame(mode game.Mode) (game.Position, UpdateGetter, error) {
	p, err := mode.Position()
	if err != nil {
		return game.Position{}, nil, err
	}
	log.Info().Str("mode", mode.Name).Msg("new game")
	return s.setUp(p, mode.Rules)
}

func (s *localSession) Load(encoded string, rules game.RuleSet) (game.Position, UpdateGetter, error) {
	p, err := game.ParsePosition(encoded)
	if err != nil {
		return game.Position{}, nil, err
	}
	log.Info().Str("position", encoded).Msg("position loaded")
	return s.setUp(p, rules)
}

func (s *localSession) setUp(p game.Position, rules game.RuleSet) (game.Position, UpdateGetter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.solver.Reset()
	s.rules = rules
	s.position = p
	s.status = game.Terminal(p, rules)
	s.started = true
	// Readers polling less than once per move only see the latest update.
	updateCh := make(chan Update, 1)
	s.updateCh = updateCh
	if s.status.Terminal() {
		log.Info().Str("result", s.status.String()).Msg("loaded a finished game")
		close(updateCh)
	}

	return p, func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}, nil
}

// Play validates m against the legal moves of the live position and applies it.
func (s *localSession) Play(m game.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNoGame
	}
	if s.status.Terminal() {
		return ErrGameOver
	}
	next, err := game.ApplyMove(s.position, m, s.rules)
	if err != nil {
		return fmt.Errorf("move %s: %w", m.Notation(s.position.Geometry), err)
	}
	s.position = next
	s.status = game.Terminal(next, s.rules)

	u := Update{Move: m, Position: next, Status: s.status}
	select {
	case <-s.updateCh: // drop the unread update, the newest one supersedes it
	default:
	}
	s.updateCh <- u
	if s.status.Terminal() {
		log.Info().Str("result", s.status.String()).Msg("game over")
		close(s.updateCh)
	}
	return nil
}

// Recommend asks the solver for a move in the live position under the session's rules.
func (s *localSession) Recommend(budget time.Duration) (searcher.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return searcher.Recommendation{}, ErrNoGame
	}
	return agent.Recommend(s.solver, s.position, s.rules, budget), nil
}

func (s *localSession) Position() game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *localSession) Status() game.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
