package experiments

import (
	"pacman/game"
	"pacman/searcher"
)

// Comparison is the cost of one decision under both algorithms.
type Comparison struct {
	Depth          int
	MinimaxNodes   int
	AlphaBetaNodes int
	MinimaxValue   float64
	AlphaBetaValue float64
	Cutoffs        int
}

// Compare searches state with minimax and alpha-beta at the same depth and evaluation, with the
// alpha-beta root adjustments switched off so both report the same value.
func Compare(state game.State, depth int, evaluator game.Evaluator) Comparison {
	options := []searcher.Option{
		searcher.WithDepth(depth),
		searcher.WithEvaluator(evaluator),
		searcher.WithMetrics(),
		searcher.WithoutRootAdjustments(),
	}
	mm := searcher.NewMinimax(options...).Search(state)
	ab := searcher.NewAlphaBeta(options...).Search(state)

	return Comparison{
		Depth:          depth,
		MinimaxNodes:   mm.Metric.Nodes,
		AlphaBetaNodes: ab.Metric.Nodes,
		MinimaxValue:   mm.Value,
		AlphaBetaValue: ab.Value,
		Cutoffs:        ab.Metric.Cutoffs,
	}
}
