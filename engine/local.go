package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"narrowchess/experiments/metrics"
	"narrowchess/game"
	"narrowchess/meta"
	"narrowchess/searcher/agent"
)

// Player is a named agent seated at one side of the board.
type Player struct {
	Name  string
	Agent agent.Agent
}

type LocalEngine struct {
	Mode     game.Mode
	Position game.Position
	Status   game.Status
	Players  [2]Player // White, Black
	maxPlies int
}

func NewLocalEngine(mode game.Mode, white, black Player) (*LocalEngine, error) {
	if white.Agent == nil || black.Agent == nil {
		panic("Must specify an agent for both players")
	}
	p, err := mode.Position()
	if err != nil {
		return nil, err
	}
	return &LocalEngine{
		Mode:     mode,
		Position: p,
		Players:  [2]Player{white, black},
		maxPlies: meta.MAX_PLIES,
	}, nil
}

func (e *LocalEngine) player(c game.Color) Player {
	if c == game.White {
		return e.Players[0]
	}
	return e.Players[1]
}

// Run executes the game loop. Moves an agent gets wrong are replaced by the first legal move.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	rules := e.Mode.Rules
	startTime := time.Now()
	log.Info().Str("mode", e.Mode.Name).Str("white", e.Players[0].Name).Str("black", e.Players[1].Name).Msg("game started")

	var moveMetrics []metrics.MoveMetric
	e.Status = game.Terminal(e.Position, rules)
	ply := 0
	for !e.Status.Terminal() && ply < e.maxPlies {
		p := e.Position
		current := e.player(p.Turn)
		rec := current.Agent.FindMove(p, rules)

		next, err := game.ApplyMove(p, rec.Move, rules)
		move := rec.Move
		if !rec.HasMove || err != nil {
			move = p.LegalMoves(rules)[0]
			next = p.Play(move, rules)
			log.Warn().Str("player", current.Name).Str("fallback", move.Notation(p.Geometry)).Msg("agent returned no legal move")
		}

		ply++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         ply,
			Player:       p.Turn.String(),
			Move:         move.Notation(p.Geometry),
			SearchMetric: rec.Metric,
		})
		log.Debug().Int("ply", ply).Str("player", current.Name).Str("move", move.Notation(p.Geometry)).Str("tier", rec.Tier.String()).Msg("move played")

		e.Position = next
		e.Status = game.Terminal(next, rules)
	}

	winner := e.winner()
	result := e.Status.String()
	if !e.Status.Terminal() {
		result = fmt.Sprintf("ply-limit-%d", e.maxPlies)
	}
	endTime := time.Now()
	log.Info().Str("mode", e.Mode.Name).Str("result", result).Str("winner", winner).Int("plies", ply).Msg("game over")

	return winner, metrics.GameMetric{
		Mode:           e.Mode.Name,
		StartingPlayer: e.Players[0].Name,
		Winner:         winner,
		Result:         result,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     ply,
	}, moveMetrics
}

func (e *LocalEngine) winner() string {
	switch e.Status {
	case game.WhiteMated:
		return e.Players[1].Name
	case game.BlackMated:
		return e.Players[0].Name
	}
	return ""
}
