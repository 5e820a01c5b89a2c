package searcher

import (
	"cmp"
	"math"
	"slices"

	"pacman/game"
	"pacman/meta"

	"github.com/rs/zerolog/log"
)

// AlphaBeta computes the same value as Minimax while skipping branches that cannot change it.
type AlphaBeta struct {
	config
}

// NewAlphaBeta returns an alpha-beta searcher with move ordering on, Stop excluded at the root and
// a small penalty for root moves that hug the outer wall.
func NewAlphaBeta(options ...Option) *AlphaBeta {
	a := &AlphaBeta{config: newConfig(
		WithMoveOrdering(true),
		WithBoundaryPenalty(meta.DefaultBoundaryPenalty),
		WithStopAtRoot(false),
	)}
	a.apply(options)
	return a
}

func (a *AlphaBeta) Search(state game.State) Decision {
	a.metrics.Start(AlgorithmAlphaBeta.String(), a.evaluator, a.depth)

	agents := state.AgentCount()
	next, depth := nextTurn(game.Pacman, 0, agents)
	// Alpha carries the best root value across siblings; it only speeds up the search since every
	// root move is still compared by its own value.
	decision := a.root(state, func(child game.State, best float64) float64 {
		return a.alphabeta(child, next, depth, best, math.Inf(1))
	})
	decision.Metric = a.metrics.Complete()

	log.Debug().Msgf("alphabeta chose %s with value %.2f after %d nodes and %d cutoffs",
		decision.Action, decision.Value, decision.Metric.Nodes, decision.Metric.Cutoffs)
	return decision
}

func (a *AlphaBeta) alphabeta(state game.State, agent, depth int, alpha, beta float64) float64 {
	if v, ok := a.leaf(state, depth); ok {
		return v
	}

	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		a.metrics.AddLeaf()
		return a.evaluate(state)
	}
	a.metrics.AddNode()

	next, nextDepth := nextTurn(agent, depth, state.AgentCount())
	if agent == game.Pacman {
		children := a.successors(state, actions)
		value := math.Inf(-1)
		for i, child := range children {
			value = max(value, a.alphabeta(child, next, nextDepth, alpha, beta))
			alpha = max(alpha, value)
			if value >= beta {
				if i < len(children)-1 {
					a.metrics.AddCutoff()
				}
				return value
			}
		}
		return value
	}

	value := math.Inf(1)
	for i, action := range actions {
		value = min(value, a.alphabeta(state.Successor(agent, action), next, nextDepth, alpha, beta))
		beta = min(beta, value)
		if value <= alpha {
			if i < len(actions)-1 {
				a.metrics.AddCutoff()
			}
			return value
		}
	}
	return value
}

// successors expands pacman's moves, best one-ply evaluation first when ordering is enabled.
func (a *AlphaBeta) successors(state game.State, actions []game.Action) []game.State {
	children := make([]game.State, len(actions))
	for i, action := range actions {
		children[i] = state.Successor(game.Pacman, action)
	}
	if !a.ordering {
		return children
	}

	type scored struct {
		state game.State
		score float64
	}
	ranked := make([]scored, len(children))
	for i, child := range children {
		ranked[i] = scored{state: child, score: a.evaluate(child)}
	}
	slices.SortStableFunc(ranked, func(x, y scored) int {
		return cmp.Compare(y.score, x.score)
	})
	for i := range ranked {
		children[i] = ranked[i].state
	}
	return children
}
