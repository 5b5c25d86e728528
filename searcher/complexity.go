package searcher

import (
	"math"

	"narrowchess/game"
	"narrowchess/meta"
)

// Complexity grows with the piece count, scaled by the board area relative to a 12-square
// file.
func Complexity(p game.Position) float64 {
	return float64(p.PieceCount()) * math.Sqrt(float64(p.Geometry.Squares())/12)
}

// SelectTier picks the first tier to try for a position with the given complexity and number
// of legal moves.
func SelectTier(complexity float64, moves int) Tier {
	switch {
	case complexity <= meta.EXACT_COMPLEXITY:
		return TierExact
	case complexity <= meta.BOUNDED_COMPLEXITY && moves <= meta.BOUNDED_MAX_MOVES:
		return TierBounded
	default:
		return TierHeuristic
	}
}
