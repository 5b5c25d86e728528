package game

import "errors"

var (
	ErrMalformed   = errors.New("malformed position")
	ErrIllegalMove = errors.New("illegal move")
)

type StateHash uint64

// Evaluator scores a position in centipawns from the side to move's perspective.
type Evaluator func(Position) int
