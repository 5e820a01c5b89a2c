package searcher

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"pacman/experiments/metrics"
	"pacman/game"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Searcher picks pacman's next move.
type Searcher interface {
	Search(state game.State) Decision
}

// Decision is the outcome of one search. Found is false when pacman had no legal action, in which
// case Action is Stop and Value is the evaluation of the state itself.
type Decision struct {
	Action game.Action
	Value  float64
	Found  bool
	Metric metrics.SearchMetric
}

// ChooseAction returns the searcher's move, falling back to Stop when nothing was found.
func ChooseAction(s Searcher, state game.State) game.Action {
	d := s.Search(state)
	if !d.Found {
		return game.Stop
	}
	return d.Action
}

type Algorithm int

const (
	AlgorithmAlphaBeta Algorithm = iota
	AlgorithmMinimax
	AlgorithmReflex
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAlphaBeta:
		return "alphabeta"
	case AlgorithmMinimax:
		return "minimax"
	case AlgorithmReflex:
		return "reflex"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "alphabeta", "alpha-beta":
		return AlgorithmAlphaBeta, nil
	case "minimax":
		return AlgorithmMinimax, nil
	case "reflex":
		return AlgorithmReflex, nil
	}
	return AlgorithmAlphaBeta, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// New builds a searcher for the given algorithm.
func New(algorithm Algorithm, options ...Option) Searcher {
	switch algorithm {
	case AlgorithmMinimax:
		return NewMinimax(options...)
	case AlgorithmReflex:
		return NewReflex(options...)
	default:
		return NewAlphaBeta(options...)
	}
}

// nextTurn returns the agent moving after agent, and the ply counter once it has moved. The ply
// counter only advances when play wraps back around to pacman.
func nextTurn(agent, depth, agents int) (int, int) {
	next := (agent + 1) % agents
	if next == game.Pacman {
		depth++
	}
	return next, depth
}

// root runs the shared top level loop: expand pacman's root actions, score each successor with
// value, subtract the boundary penalty and keep the first strictly best action. best is handed to
// value so that alpha-beta can prune against it.
func (c *config) root(state game.State, value func(child game.State, best float64) float64) Decision {
	actions := c.rootActions(state)
	if len(actions) == 0 {
		c.metrics.AddLeaf()
		return Decision{Action: game.Stop, Value: c.evaluate(state)}
	}
	c.metrics.AddNode()

	decision := Decision{Action: game.Stop, Value: math.Inf(-1)}
	for _, action := range actions {
		child := state.Successor(game.Pacman, action)
		v := value(child, decision.Value) - c.boundaryCost(child)
		if !decision.Found || v > decision.Value {
			decision = Decision{Action: action, Value: v, Found: true}
		}
	}
	return decision
}

func (c *config) rootActions(state game.State) []game.Action {
	if state.IsWin() || state.IsLose() {
		return nil
	}
	actions := state.LegalActions(game.Pacman)
	if c.stopAtRoot || len(actions) <= 1 {
		return actions
	}
	moves := make([]game.Action, 0, len(actions))
	for _, a := range actions {
		if a != game.Stop {
			moves = append(moves, a)
		}
	}
	return moves
}

// boundaryCost penalizes successors one step inside the outer wall on either axis.
func (c *config) boundaryCost(child game.State) float64 {
	if c.boundaryPenalty == 0 {
		return 0
	}
	p := child.PacmanPosition()
	w := child.Walls()
	if p.X == 1 || p.Y == 1 || p.X == w.Width-2 || p.Y == w.Height-2 {
		return c.boundaryPenalty
	}
	return 0
}

// leaf reports whether the search stops at state, evaluating it if so.
func (c *config) leaf(state game.State, depth int) (float64, bool) {
	if state.IsWin() || state.IsLose() || depth >= c.depth {
		c.metrics.AddLeaf()
		return c.evaluate(state), true
	}
	return 0, false
}
