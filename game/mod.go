package game

// Pacman is always agent 0; ghosts occupy agent indices 1..AgentCount()-1.
const Pacman = 0

// State should be immutable - operations on State always return a new copy
type State interface {
	LegalActions(agent int) []Action
	Successor(agent int, action Action) State
	AgentCount() int
	IsWin() bool
	IsLose() bool
	PacmanPosition() Position
	Food() []Position
	Capsules() []Position
	Ghosts() []GhostState
	Score() float64
	Walls() *Grid
}

// Evaluate scores a state from pacman's perspective; higher is better.
type Evaluate func(State) float64

// EvaluateAction scores the successor reached when pacman plays action.
type EvaluateAction func(State, Action) float64

// GhostState is a ghost's position and the number of moves it stays scared.
// A zero timer means the ghost is hostile.
type GhostState struct {
	Position    Position `json:"position"`
	ScaredTimer int      `json:"scaredTimer"`
}

func (g GhostState) Scared() bool {
	return g.ScaredTimer > 0
}
