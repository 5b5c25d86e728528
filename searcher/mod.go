package searcher

import (
	"errors"
	"fmt"

	"narrowchess/game"
)

var (
	// ErrExhausted means bounded deepening ran out of time or nodes without a final result.
	ErrExhausted = errors.New("search budget exhausted")
	// ErrTierUnavailable wraps an internal failure inside a solver tier.
	ErrTierUnavailable = errors.New("solver tier unavailable")
)

// Outcome is a game-theoretic value from the side to move's point of view.
type Outcome int8

const (
	Loss Outcome = -1
	Draw Outcome = 0
	Win  Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "win":
		return Win, nil
	case "loss":
		return Loss, nil
	case "draw":
		return Draw, nil
	}
	return Draw, fmt.Errorf("unknown outcome %q", s)
}

// Negate flips the outcome to the opponent's point of view.
func (o Outcome) Negate() Outcome {
	return -o
}

type Tier uint8

const (
	TierNone Tier = iota
	TierExact
	TierBounded
	TierHeuristic
	TierFallback // first legal move after every tier failed
)

var tierNames = [...]string{"none", "exact", "bounded", "heuristic", "fallback"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("tier(%d)", t)
}

func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return TierNone, fmt.Errorf("unknown tier %q", s)
}

type SolveResult struct {
	Outcome   Outcome
	Depth     int // plies until the outcome is reached
	Move      game.Move
	HasMove   bool
	Tier      Tier
	Truncated bool // a Draw reached only through a budget or depth bail-out
	history   bool // a Draw that relied on the game's repetition history
}

type EvalResult struct {
	Score   int // centipawns, or a mate score, for the side to move
	Move    game.Move
	HasMove bool
}

// MoveOutcome is the exact value of one root move for the side playing it.
type MoveOutcome struct {
	Move   game.Move
	Result SolveResult
}

// ScoredMove is the heuristic value of one root move for the side playing it.
type ScoredMove struct {
	Move  game.Move
	Score int
}

// MateScore minus the ply count scores a mate, so nearer mates score higher.
const MateScore = 100_000

func IsMateScore(score int) bool {
	return score > MateScore-1000 || score < -MateScore+1000
}
