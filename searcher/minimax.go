package searcher

import (
	"math"

	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Minimax searches every move of every agent to a fixed depth. Pacman maximizes, each ghost
// minimizes, and ties keep the first move seen.
type Minimax struct {
	config
}

// NewMinimax returns a plain minimax searcher. It applies no root adjustments unless asked to.
func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{config: newConfig(WithoutRootAdjustments())}
	m.apply(options)
	return m
}

func (m *Minimax) Search(state game.State) Decision {
	m.metrics.Start(AlgorithmMinimax.String(), m.evaluator, m.depth)

	agents := state.AgentCount()
	next, depth := nextTurn(game.Pacman, 0, agents)
	decision := m.root(state, func(child game.State, _ float64) float64 {
		return m.minimax(child, next, depth)
	})
	decision.Metric = m.metrics.Complete()

	log.Debug().Msgf("minimax chose %s with value %.2f after %d nodes", decision.Action, decision.Value, decision.Metric.Nodes)
	return decision
}

// minimax returns the value of state with agent to move after depth completed rounds.
func (m *Minimax) minimax(state game.State, agent, depth int) float64 {
	if v, ok := m.leaf(state, depth); ok {
		return v
	}

	actions := state.LegalActions(agent)
	if len(actions) == 0 { // Stuck agent, nothing to choose from
		m.metrics.AddLeaf()
		return m.evaluate(state)
	}
	m.metrics.AddNode()

	next, nextDepth := nextTurn(agent, depth, state.AgentCount())
	if agent == game.Pacman {
		best := math.Inf(-1)
		for _, action := range actions {
			if v := m.minimax(state.Successor(agent, action), next, nextDepth); v > best {
				best = v
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, action := range actions {
		if v := m.minimax(state.Successor(agent, action), next, nextDepth); v < best {
			best = v
		}
	}
	return best
}
