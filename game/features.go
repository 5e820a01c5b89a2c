package game

import "math"

// Weights are the hand-tuned magnitudes of each evaluation feature. Retuning is fine as long as
// the collision penalty dominates every other term.
type Weights struct {
	Food          float64 // Attraction to the closest food, divided by distance+1
	FoodCount     float64 // Penalty per remaining food
	Capsule       float64 // Attraction to the closest capsule, divided by distance+1
	CapsuleCount  float64 // Penalty per remaining capsule
	ScaredGhost   float64 // Reward for nearing a scared ghost, divided by distance+1
	HostileGhost  float64 // Penalty for nearing a hostile ghost, divided by distance+1
	Collision     float64 // Penalty for sharing a cell with a hostile ghost
	DeadEnd       float64 // Penalty for standing in a cell with DeadEndWalls or more walls around it
	DeadEndWalls  int
	Idle          float64 // Constant penalty that discourages stalling
	Trapped       float64 // Penalty when the safe region is smaller than SafeMinimum
	UnsafeRadius  int     // Cells this close to a hostile ghost are unsafe
	SafeBudget    int     // Maximum number of cells the safe region search visits
	SafeMinimum   int
}

func DefaultWeights() Weights {
	return Weights{
		Food:         15,
		FoodCount:    4,
		Capsule:      40,
		CapsuleCount: 20,
		ScaredGhost:  100,
		HostileGhost: 40,
		Collision:    999999,
		DeadEnd:      200,
		DeadEndWalls: 3,
		Idle:         20,
		Trapped:      300,
		UnsafeRadius: 1,
		SafeBudget:   50,
		SafeMinimum:  3,
	}
}

// Heuristics is the per-feature breakdown of an evaluation. Penalties are stored as negative
// values so that Total is a plain sum.
type Heuristics struct {
	Score     float64 `json:"score"`
	Food      float64 `json:"food"`
	FoodCount float64 `json:"foodCount"`
	Capsule   float64 `json:"capsule"`
	Ghost     float64 `json:"ghost"`
	Wall      float64 `json:"wall"`
	Movement  float64 `json:"movement"`
	Trapped   float64 `json:"trapped"`
}

func (h Heuristics) Total() float64 {
	return h.Score + h.Food + h.FoodCount + h.Capsule + h.Ghost + h.Wall + h.Movement + h.Trapped
}

// Features computes the breakdown used by the default evaluation. The safe region term is only
// filled in when safety is set.
func Features(s State, w Weights, safety bool) Heuristics {
	pos := s.PacmanPosition()
	h := Heuristics{Score: s.Score()}

	food := s.Food()
	if d, ok := closest(pos, food); ok {
		h.Food = w.Food / float64(d+1)
	}
	h.FoodCount = -w.FoodCount * float64(len(food))

	capsules := s.Capsules()
	if d, ok := closest(pos, capsules); ok {
		h.Capsule = w.Capsule/float64(d+1) - w.CapsuleCount*float64(len(capsules))
	}

	h.Ghost = ghostTerm(pos, s.Ghosts(), w)

	if s.Walls().BlockedNeighbors(pos) >= w.DeadEndWalls {
		h.Wall = -w.DeadEnd
	}

	h.Movement = -w.Idle

	if safety && SafeRegionSize(s, w.UnsafeRadius, w.SafeBudget) < w.SafeMinimum {
		h.Trapped = -w.Trapped
	}

	return h
}

func ghostTerm(pos Position, ghosts []GhostState, w Weights) float64 {
	term := 0.0
	for _, g := range ghosts {
		d := ManhattanDistance(pos, g.Position)
		switch {
		case g.Scared():
			term += w.ScaredGhost / float64(d+1)
		case d == 0:
			term -= w.Collision
		default:
			term -= w.HostileGhost / float64(d+1)
		}
	}
	return term
}

// closest returns the distance from pos to the nearest target, or false if there are none.
func closest(pos Position, targets []Position) (int, bool) {
	if len(targets) == 0 {
		return 0, false
	}
	best := math.MaxInt
	for _, t := range targets {
		if d := ManhattanDistance(pos, t); d < best {
			best = d
		}
	}
	return best, true
}
