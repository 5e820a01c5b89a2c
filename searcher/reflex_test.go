package searcher

import (
	"testing"

	"pacman/game"

	"github.com/stretchr/testify/require"
)

func fourWay() *mockState {
	return withAgents(branch(leaf(0), leaf(0), leaf(0), leaf(0)), 2)
}

func TestReflex(t *testing.T) {
	t.Run("picks the best scoring action", func(t *testing.T) {
		r := NewReflex(WithReflexFn(func(s game.State, a game.Action) float64 {
			if a == game.East {
				return 1
			}
			return 0
		}), WithMetrics())

		decision := r.Search(fourWay())

		require.True(t, decision.Found)
		require.Equal(t, game.East, decision.Action)
		require.Equal(t, 1.0, decision.Value)
		require.Equal(t, 4, decision.Metric.Leaves, "Every action should be scored once")
	})

	t.Run("breaks ties reproducibly", func(t *testing.T) {
		tied := WithReflexFn(func(game.State, game.Action) float64 { return 0 })

		seen := map[game.Action]bool{}
		for seed := uint64(0); seed < 100; seed++ {
			first := NewReflex(tied, WithSeed(seed)).Search(fourWay())
			second := NewReflex(tied, WithSeed(seed)).Search(fourWay())
			require.Equal(t, first.Action, second.Action, "Same seed should make the same choice")
			seen[first.Action] = true
		}
		require.Greater(t, len(seen), 1, "Ties should not always go to the same action")
	})

	t.Run("considers Stop", func(t *testing.T) {
		root := withAgents(&mockState{
			moves:    []game.Action{game.North, game.Stop},
			children: []*mockState{leaf(0), leaf(0)},
		}, 2)
		r := NewReflex(WithReflexFn(func(s game.State, a game.Action) float64 {
			if a == game.Stop {
				return 1
			}
			return 0
		}))

		require.Equal(t, game.Stop, r.Search(root).Action)
	})

	t.Run("reports nothing without moves", func(t *testing.T) {
		decision := NewReflex(WithEvaluationFn(mockValue)).Search(withAgents(leaf(6), 2))

		require.False(t, decision.Found)
		require.Equal(t, game.Stop, decision.Action)
		require.Equal(t, 6.0, decision.Value)
	})

	t.Run("avoids a hostile ghost on a real layout", func(t *testing.T) {
		state, err := game.ParseLayout(`
%%%%%
%P G%
%%%%%
`, game.NewStandardRules())
		require.NoError(t, err)

		require.Equal(t, game.Stop, NewReflex().Search(state).Action)
	})
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"":           AlgorithmAlphaBeta,
		"alphabeta":  AlgorithmAlphaBeta,
		"Alpha-Beta": AlgorithmAlphaBeta,
		"minimax":    AlgorithmMinimax,
		" reflex ":   AlgorithmReflex,
	}
	for name, want := range cases {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseAlgorithm("expectimax")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	require.IsType(t, &Minimax{}, New(AlgorithmMinimax))
	require.IsType(t, &AlphaBeta{}, New(AlgorithmAlphaBeta))
	require.IsType(t, &Reflex{}, New(AlgorithmReflex))
}
