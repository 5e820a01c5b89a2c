package engine

import (
	"errors"
	"fmt"

	"pacman/game"
	"pacman/searcher"

	"golang.org/x/exp/rand"
)

var ErrUnknownGhost = errors.New("unknown ghost kind")

// NewGhosts creates count ghost agents of the given kind ("random" or "directional"). Ghost i is
// seeded with seed+i so games are reproducible.
func NewGhosts(kind string, count int, seed uint64) ([]Agent, error) {
	ghosts := make([]Agent, count)
	for i := range ghosts {
		rng := rand.New(rand.NewSource(seed + uint64(i)))
		switch kind {
		case "random":
			ghosts[i] = &RandomGhost{rng: rng}
		case "", "directional":
			ghosts[i] = NewDirectionalGhost(rng, 0.8)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownGhost, kind)
		}
	}
	return ghosts, nil
}

// RandomGhost picks a legal move uniformly.
type RandomGhost struct {
	rng *rand.Rand
}

func (g *RandomGhost) FindMove(state game.State, agent int) searcher.Decision {
	legal := state.LegalActions(agent)
	if len(legal) == 0 {
		return searcher.Decision{Action: game.Stop}
	}
	return searcher.Decision{Action: legal[g.rng.Intn(len(legal))], Found: true}
}

// DirectionalGhost closes in on pacman while hostile and runs away while scared, taking the best
// move with probability prob and a random one otherwise.
type DirectionalGhost struct {
	rng  *rand.Rand
	prob float64
}

func NewDirectionalGhost(rng *rand.Rand, prob float64) *DirectionalGhost {
	return &DirectionalGhost{rng: rng, prob: prob}
}

func (g *DirectionalGhost) FindMove(state game.State, agent int) searcher.Decision {
	legal := state.LegalActions(agent)
	if len(legal) == 0 {
		return searcher.Decision{Action: game.Stop}
	}

	ghost := state.Ghosts()[agent-1]
	pacman := state.PacmanPosition()

	best := legal[0]
	bestDist := ghostDistance(ghost, best, pacman)
	for _, action := range legal[1:] {
		d := ghostDistance(ghost, action, pacman)
		if (ghost.Scared() && d > bestDist) || (!ghost.Scared() && d < bestDist) {
			best, bestDist = action, d
		}
	}

	if g.rng.Float64() >= g.prob {
		best = legal[g.rng.Intn(len(legal))]
	}
	return searcher.Decision{Action: best, Found: true}
}

func ghostDistance(ghost game.GhostState, action game.Action, pacman game.Position) int {
	return game.ManhattanDistance(ghost.Position.Next(action), pacman)
}
