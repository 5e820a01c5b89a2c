package searcher

import (
	"math"

	"pacman/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Reflex looks one move ahead: it scores each legal action with a state/action evaluation and picks
// uniformly among the best.
type Reflex struct {
	config
	rng *rand.Rand
}

func NewReflex(options ...Option) *Reflex {
	r := &Reflex{config: newConfig(WithStopAtRoot(true))}
	r.apply(options)
	r.rng = rand.New(rand.NewSource(r.seed))
	return r
}

// Evaluate scores the successor reached by action.
func (r *Reflex) Evaluate(state game.State, action game.Action) float64 {
	return r.reflex(state, action)
}

func (r *Reflex) Search(state game.State) Decision {
	r.metrics.Start(AlgorithmReflex.String(), "reflex", 0)

	actions := r.rootActions(state)
	if len(actions) == 0 {
		r.metrics.AddLeaf()
		return Decision{Action: game.Stop, Value: r.evaluate(state), Metric: r.metrics.Complete()}
	}
	r.metrics.AddNode()

	bestValue := math.Inf(-1)
	best := []game.Action{}
	for _, action := range actions {
		r.metrics.AddLeaf()
		v := r.reflex(state, action)
		switch {
		case v > bestValue:
			bestValue = v
			best = append(best[:0], action)
		case v == bestValue:
			best = append(best, action)
		}
	}
	if len(best) == 0 { // Every action scored NaN
		best = actions
	}

	decision := Decision{
		Action: best[r.rng.Intn(len(best))],
		Value:  bestValue,
		Found:  true,
		Metric: r.metrics.Complete(),
	}
	log.Debug().Msgf("reflex chose %s with value %.2f among %d tied actions", decision.Action, decision.Value, len(best))
	return decision
}
