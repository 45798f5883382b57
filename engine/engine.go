package engine

import "carcassonne/experiments/metrics"

// Result is the record of one finished game.
type Result struct {
	Game      metrics.GameMetric
	Decisions []metrics.DecisionMetric
}

type Engine interface {
	// Run plays the game until every tile is placed or no remaining tile fits.
	Run() (Result, error)
}
