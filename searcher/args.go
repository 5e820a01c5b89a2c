package searcher

import (
	"fmt"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/meta"
)

type Option func(c *config)

// config is shared by every searcher. Each constructor applies its own defaults before the options.
type config struct {
	depth           int
	evaluate        game.Evaluate
	evaluator       string
	reflex          game.EvaluateAction
	ordering        bool
	boundaryPenalty float64
	stopAtRoot      bool
	seed            uint64
	metrics         metrics.Collector
}

func newConfig(defaults ...Option) config {
	c := config{
		depth:     meta.DefaultDepth,
		evaluate:  game.EvaluatorBetter.Func(),
		evaluator: game.EvaluatorBetter.String(),
		reflex:    game.EvaluateReflex,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range defaults {
		option(&c)
	}
	return c
}

func (c *config) apply(options []Option) {
	for _, option := range options {
		option(c)
	}
	if c.depth < 0 {
		panic(fmt.Sprintf("search depth must not be negative, got %d", c.depth))
	}
}

// WithDepth sets the number of full rounds (pacman and every ghost) searched. Zero scores pacman's
// direct successors without looking further.
func WithDepth(depth int) Option {
	return func(c *config) {
		c.depth = depth
	}
}

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(c *config) {
		c.evaluate = evaluator.Func()
		c.evaluator = evaluator.String()
	}
}

// WithEvaluationFn plugs in a custom leaf evaluation.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *config) {
		if evaluate != nil {
			c.evaluate = evaluate
			c.evaluator = "custom"
		}
	}
}

// WithReflexFn replaces the state/action evaluation used by the reflex searcher.
func WithReflexFn(evaluate game.EvaluateAction) Option {
	return func(c *config) {
		if evaluate != nil {
			c.reflex = evaluate
		}
	}
}

// WithMoveOrdering sorts pacman's moves by a one-ply evaluation before alpha-beta explores them.
func WithMoveOrdering(enabled bool) Option {
	return func(c *config) {
		c.ordering = enabled
	}
}

// WithBoundaryPenalty subtracts penalty from root moves that end next to the outer wall. Zero
// disables the adjustment.
func WithBoundaryPenalty(penalty float64) Option {
	return func(c *config) {
		c.boundaryPenalty = penalty
	}
}

// WithStopAtRoot controls whether Stop competes with the other root moves. When disabled, Stop is
// only played if it is pacman's sole legal action.
func WithStopAtRoot(enabled bool) Option {
	return func(c *config) {
		c.stopAtRoot = enabled
	}
}

// WithoutRootAdjustments makes the root a plain maximizer: Stop allowed, no boundary penalty.
func WithoutRootAdjustments() Option {
	return func(c *config) {
		c.stopAtRoot = true
		c.boundaryPenalty = 0
	}
}

// WithSeed seeds the reflex searcher's tie-breaking.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}
