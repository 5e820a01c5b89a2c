package searcher

import (
	"fmt"
	"testing"

	"pacman/game"

	"github.com/stretchr/testify/require"
)

var mockWalls = game.NewGrid(10, 10)

// mockState is an explicit game tree. Every agent plays moves[i] to reach children[i], and the
// evaluation of a node is its value.
type mockState struct {
	agents   int
	moves    []game.Action
	children []*mockState
	value    float64
	win      bool
	lose     bool
	pos      *game.Position
	plies    int // Moves played since the root
	expand   func(m *mockState) ([]game.Action, []*mockState)
}

func (m *mockState) LegalActions(agent int) []game.Action {
	if m.expand != nil && m.moves == nil {
		m.moves, m.children = m.expand(m)
	}
	return m.moves
}

func (m *mockState) Successor(agent int, action game.Action) game.State {
	for i, a := range m.LegalActions(agent) {
		if a == action {
			return m.children[i]
		}
	}
	panic(fmt.Sprintf("illegal action %s", action))
}

func (m *mockState) AgentCount() int               { return m.agents }
func (m *mockState) IsWin() bool                   { return m.win }
func (m *mockState) IsLose() bool                  { return m.lose }
func (m *mockState) Food() []game.Position         { return nil }
func (m *mockState) Capsules() []game.Position     { return nil }
func (m *mockState) Ghosts() []game.GhostState     { return nil }
func (m *mockState) Score() float64                { return m.value }
func (m *mockState) Walls() *game.Grid             { return mockWalls }
func (m *mockState) PacmanPosition() game.Position {
	if m.pos != nil {
		return *m.pos
	}
	return game.Position{X: 5, Y: 5}
}

func leaf(value float64) *mockState {
	return &mockState{value: value}
}

// branch gives children the compass moves in order.
func branch(children ...*mockState) *mockState {
	return &mockState{moves: game.Directions[:len(children)], children: children}
}

// withAgents sets the agent count on every node of the tree.
func withAgents(m *mockState, agents int) *mockState {
	m.agents = agents
	for _, child := range m.children {
		withAgents(child, agents)
	}
	return m
}

func mockValue(s game.State) float64 {
	return s.(*mockState).value
}

// textbookTree is the classic two-agent example with minimax value 3.
func textbookTree() *mockState {
	return withAgents(branch(
		branch(leaf(3), leaf(12), leaf(8)),
		branch(leaf(2), leaf(4), leaf(6)),
		branch(leaf(14), leaf(5), leaf(2)),
	), 2)
}

// chain is an endless tree where every agent has two moves. The value of a node is the number of
// moves played to reach it.
func chain(agents int) *mockState {
	var expand func(m *mockState) ([]game.Action, []*mockState)
	expand = func(m *mockState) ([]game.Action, []*mockState) {
		children := make([]*mockState, 2)
		for i := range children {
			children[i] = &mockState{agents: agents, plies: m.plies + 1, value: float64(m.plies + 1), expand: expand}
		}
		return []game.Action{game.North, game.South}, children
	}
	return &mockState{agents: agents, expand: expand}
}

func TestMinimax(t *testing.T) {
	t.Run("maximizing over minimizing ghost", func(t *testing.T) {
		m := NewMinimax(WithDepth(1), WithEvaluationFn(mockValue), WithMetrics())

		decision := m.Search(textbookTree())

		require.True(t, decision.Found)
		require.Equal(t, game.North, decision.Action, "First branch has the highest minimum")
		require.Equal(t, 3.0, decision.Value)
		require.Equal(t, 4, decision.Metric.Nodes, "Root and the three ghost nodes should be expanded")
		require.Equal(t, 9, decision.Metric.Leaves, "Minimax should evaluate every leaf")
		require.Equal(t, 0, decision.Metric.Cutoffs)
	})

	t.Run("ties keep the first move", func(t *testing.T) {
		root := withAgents(branch(leaf(5), leaf(5), leaf(5)), 1)
		m := NewMinimax(WithDepth(1), WithEvaluationFn(mockValue))

		decision := m.Search(root)

		require.Equal(t, game.North, decision.Action)
		require.Equal(t, 5.0, decision.Value)
	})

	t.Run("terminal children are evaluated without expanding", func(t *testing.T) {
		lost := &mockState{value: -500, lose: true, moves: []game.Action{game.North}, children: []*mockState{leaf(1000)}}
		won := &mockState{value: 500, win: true}
		root := withAgents(&mockState{
			moves:    []game.Action{game.North, game.South},
			children: []*mockState{lost, won},
		}, 2)
		m := NewMinimax(WithDepth(3), WithEvaluationFn(mockValue))

		decision := m.Search(root)

		require.Equal(t, game.South, decision.Action)
		require.Equal(t, 500.0, decision.Value)
	})

	t.Run("stuck ghost is evaluated in place", func(t *testing.T) {
		stuck := leaf(7)
		root := withAgents(branch(stuck, branch(leaf(1))), 2)
		m := NewMinimax(WithDepth(2), WithEvaluationFn(mockValue))

		decision := m.Search(root)

		require.Equal(t, game.North, decision.Action)
		require.Equal(t, 7.0, decision.Value)
	})
}

func TestSearchDepth(t *testing.T) {
	for _, depth := range []int{0, 1, 2} {
		for _, algorithm := range []Algorithm{AlgorithmMinimax, AlgorithmAlphaBeta} {
			t.Run(fmt.Sprintf("%s at depth %d with 3 agents", algorithm, depth), func(t *testing.T) {
				seen := map[int]bool{}
				evaluate := func(s game.State) float64 {
					seen[s.(*mockState).plies] = true
					return mockValue(s)
				}
				s := New(algorithm, WithDepth(depth), WithEvaluationFn(evaluate), WithMoveOrdering(false))

				decision := s.Search(chain(3))

				want := 3 * depth
				if depth == 0 {
					want = 1
				}
				require.True(t, decision.Found)
				require.Equal(t, map[int]bool{want: true}, seen, "Every leaf should be reached after the same number of moves")
				require.Equal(t, float64(want), decision.Value)
			})
		}
	}

	t.Run("single agent rounds are single moves", func(t *testing.T) {
		seen := map[int]bool{}
		evaluate := func(s game.State) float64 {
			seen[s.(*mockState).plies] = true
			return 0
		}

		NewMinimax(WithDepth(3), WithEvaluationFn(evaluate)).Search(chain(1))

		require.Equal(t, map[int]bool{3: true}, seen)
	})

	t.Run("negative depth panics", func(t *testing.T) {
		require.Panics(t, func() { NewMinimax(WithDepth(-1)) })
		require.Panics(t, func() { NewAlphaBeta(WithDepth(-1)) })
	})
}

func TestSearchWithoutMoves(t *testing.T) {
	cases := map[string]*mockState{
		"no legal actions": withAgents(leaf(42), 2),
		"won":              withAgents(&mockState{value: 42, win: true, moves: []game.Action{game.North}, children: []*mockState{leaf(0)}}, 2),
		"lost":             withAgents(&mockState{value: 42, lose: true, moves: []game.Action{game.North}, children: []*mockState{leaf(0)}}, 2),
	}

	for name, root := range cases {
		for _, algorithm := range []Algorithm{AlgorithmMinimax, AlgorithmAlphaBeta} {
			t.Run(fmt.Sprintf("%s with %s", algorithm, name), func(t *testing.T) {
				s := New(algorithm, WithEvaluationFn(mockValue))

				decision := s.Search(root)

				require.False(t, decision.Found, "There should be no move to report")
				require.Equal(t, game.Stop, decision.Action)
				require.Equal(t, 42.0, decision.Value, "Value should be the evaluation of the state itself")
				require.Equal(t, game.Stop, ChooseAction(s, root))
			})
		}
	}
}
