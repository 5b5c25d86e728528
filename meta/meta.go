// meta/meta.go
package meta

import "time"

// EXACT_COMPLEXITY is the highest position complexity handed to the exact solver.
const EXACT_COMPLEXITY = 8.0

// BOUNDED_COMPLEXITY is the highest complexity for bounded iterative deepening.
const BOUNDED_COMPLEXITY = 16.0

// BOUNDED_MAX_MOVES caps the root branching factor for bounded iterative deepening.
const BOUNDED_MAX_MOVES = 20

// MAX_DEPTH is the depth ceiling of the exact solver and the last deepening target.
const MAX_DEPTH = 64

// NODE_BUDGET is the node budget per exact solve or deepening iteration.
const NODE_BUDGET = 200_000

// TIME_BUDGET is the default wall-clock budget of one recommendation.
const TIME_BUDGET = 2 * time.Second

// TABLE_SIZE is the transposition table size ceiling.
const TABLE_SIZE = 1 << 20

const EVAL_CACHE_SIZE = 1 << 16

// WEAK_SCORE_THRESHOLD is the lowest heuristic score a weak player still considers playable.
const WEAK_SCORE_THRESHOLD = -300

// MAX_PLIES ends a self-play game that has not reached a terminal position.
const MAX_PLIES = 300

// GO_ROUTINES defines the number of games played concurrently in experiments.
const GO_ROUTINES = 8
