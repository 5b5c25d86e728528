package engine

import "narrowchess/experiments/metrics"

type Engine interface {
	// Run plays a game until it is decided or the ply limit is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
