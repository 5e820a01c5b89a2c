package engine

import (
	"context"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/searcher"
)

type Engine interface {
	// Run plays a game till pacman wins, loses or the turn limit is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Agent controls one agent index of a game.
type Agent interface {
	FindMove(state game.State, agent int) searcher.Decision
}
