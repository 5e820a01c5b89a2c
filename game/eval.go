package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator selects one of the built-in state evaluations. The zero value is the default.
type Evaluator int

const (
	EvaluatorBetter   Evaluator = iota // Weighted features on top of the game score
	EvaluatorEnhanced                  // EvaluatorBetter plus the safe region check
	EvaluatorScore                     // Game score only
)

func (e Evaluator) String() string {
	switch e {
	case EvaluatorBetter:
		return "better"
	case EvaluatorEnhanced:
		return "enhanced"
	case EvaluatorScore:
		return "score"
	}
	return fmt.Sprintf("Evaluator(%d)", int(e))
}

// ParseEvaluator maps a flag or config value to an Evaluator. An empty name is the default.
func ParseEvaluator(name string) (Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "better", "default":
		return EvaluatorBetter, nil
	case "enhanced":
		return EvaluatorEnhanced, nil
	case "score":
		return EvaluatorScore, nil
	}
	return EvaluatorBetter, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}

// Func resolves the evaluator to its evaluation function.
func (e Evaluator) Func() Evaluate {
	switch e {
	case EvaluatorEnhanced:
		return EvaluateEnhanced
	case EvaluatorScore:
		return EvaluateScore
	default:
		return EvaluateBetter
	}
}

// EvaluateScore is the game score as is.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluateBetter adds food, capsule, ghost, dead end and idle terms to the game score using the
// default weights.
func EvaluateBetter(s State) float64 {
	return Features(s, DefaultWeights(), false).Total()
}

// EvaluateEnhanced is EvaluateBetter plus a penalty when pacman has almost no safe room to move.
func EvaluateEnhanced(s State) float64 {
	return Features(s, DefaultWeights(), true).Total()
}

// NewEvaluation builds an evaluation with custom weights.
func NewEvaluation(w Weights, safety bool) Evaluate {
	return func(s State) float64 {
		return Features(s, w, safety).Total()
	}
}

// ReflexWeights are the magnitudes of the one-step reflex evaluation.
type ReflexWeights struct {
	Food         float64
	Capsule      float64
	ScaredGhost  float64
	ChaseRange   int // Scared ghosts further than this are ignored
	DangerRange  int // Hostile ghosts closer than this cost Danger
	Danger       float64
	HostileGhost float64
	WestBias     float64 // Per-column penalty, biases pacman towards the west side
}

func DefaultReflexWeights() ReflexWeights {
	return ReflexWeights{
		Food:         10,
		Capsule:      6,
		ScaredGhost:  2000,
		ChaseRange:   5,
		DangerRange:  2,
		Danger:       200,
		HostileGhost: 2,
		WestBias:     0.5,
	}
}

// EvaluateReflex scores the successor pacman reaches by playing action.
func EvaluateReflex(s State, action Action) float64 {
	return NewReflexEvaluation(DefaultReflexWeights())(s, action)
}

func NewReflexEvaluation(w ReflexWeights) EvaluateAction {
	return func(s State, action Action) float64 {
		next := s.Successor(Pacman, action)
		pos := next.PacmanPosition()
		score := next.Score()

		if d, ok := closest(pos, next.Food()); ok {
			score += w.Food / float64(d+1)
		}
		// Capsules are read from the current state so that eating one does not remove its pull.
		if d, ok := closest(pos, s.Capsules()); ok {
			score += w.Capsule / float64(d+1)
		}

		for _, g := range next.Ghosts() {
			d := ManhattanDistance(pos, g.Position)
			if g.Scared() {
				if d <= w.ChaseRange {
					score += w.ScaredGhost / float64(d+1)
				}
			} else if d < w.DangerRange {
				score -= w.Danger
			} else {
				score -= w.HostileGhost / float64(d+1)
			}
		}

		score -= float64(pos.X) * w.WestBias
		return score
	}
}
