package game

import (
	"fmt"
	"slices"
	"strings"

	"pacman/utils"
)

// GameState is the reference maze engine. The wall grid is shared between copies, everything
// else is copied when a successor is generated.
type GameState struct {
	walls    *Grid
	rules    Rules
	pacman   Position
	food     []Position
	capsules []Position
	ghosts   []GhostState
	starts   []Position // Ghost spawn cells, indexed like ghosts
	score    float64
	won      bool
	lost     bool
}

// NewGameState initializes and returns a new GameState.
func NewGameState(walls *Grid, rules Rules, pacman Position, food, capsules []Position, ghosts []Position) *GameState {
	gs := &GameState{
		walls:    walls,
		rules:    rules,
		pacman:   pacman,
		food:     slices.Clone(food),
		capsules: slices.Clone(capsules),
		ghosts:   make([]GhostState, len(ghosts)),
		starts:   slices.Clone(ghosts),
	}
	for i, p := range ghosts {
		gs.ghosts[i] = GhostState{Position: p}
	}
	return gs
}

func (gs GameState) Copy() *GameState {
	return &GameState{
		walls:    gs.walls, // Walls never change during a game
		rules:    gs.rules,
		pacman:   gs.pacman,
		food:     slices.Clone(gs.food),
		capsules: slices.Clone(gs.capsules),
		ghosts:   slices.Clone(gs.ghosts),
		starts:   gs.starts, // Spawn cells never change either
		score:    gs.score,
		won:      gs.won,
		lost:     gs.lost,
	}
}

// Progress is the part of a game in progress that layout notation cannot express: the score, the
// ghosts in agent order with their timers, and food or capsules hidden under a ghost.
type Progress struct {
	Score        float64      `json:"score"`
	Ghosts       []GhostState `json:"ghosts,omitempty"`       // Replaces the layout's ghosts when set
	ScaredTimers []int        `json:"scaredTimers,omitempty"` // Applied to the layout's ghosts in reading order
	Food         []Position   `json:"food,omitempty"`         // Replaces the layout's food when set
	Capsules     []Position   `json:"capsules,omitempty"`
}

// Progress captures the state's score, ghosts and items.
func (gs *GameState) Progress() Progress {
	return Progress{Score: gs.score, Ghosts: gs.Ghosts(), Food: gs.Food(), Capsules: gs.Capsules()}
}

// Resume returns a copy of a freshly parsed state with p applied. Posted ghosts keep the parsed
// spawn cells when the counts agree and spawn where they stand otherwise.
func (gs *GameState) Resume(p Progress) (*GameState, error) {
	if p.Ghosts != nil && p.ScaredTimers != nil {
		return nil, fmt.Errorf("ghosts and scared timers are mutually exclusive")
	}
	if len(p.ScaredTimers) != 0 && len(p.ScaredTimers) != len(gs.ghosts) {
		return nil, fmt.Errorf("got %d scared timers for %d ghosts", len(p.ScaredTimers), len(gs.ghosts))
	}
	for _, item := range append(slices.Clone(p.Food), p.Capsules...) {
		if gs.walls.Blocked(item.X, item.Y) {
			return nil, fmt.Errorf("item at (%d, %d) is inside a wall", item.X, item.Y)
		}
	}
	for i, g := range p.Ghosts {
		if gs.walls.Blocked(g.Position.X, g.Position.Y) {
			return nil, fmt.Errorf("ghost %d at (%d, %d) is inside a wall", i+1, g.Position.X, g.Position.Y)
		}
		if g.ScaredTimer < 0 {
			return nil, fmt.Errorf("scared timer of ghost %d is negative", i+1)
		}
	}

	next := gs.Copy()
	next.score = p.Score
	for i, timer := range p.ScaredTimers {
		if timer < 0 {
			return nil, fmt.Errorf("scared timer of ghost %d is negative", i+1)
		}
		next.ghosts[i].ScaredTimer = timer
	}
	if p.Ghosts != nil {
		next.ghosts = slices.Clone(p.Ghosts)
		if len(p.Ghosts) != len(gs.starts) {
			next.starts = make([]Position, len(p.Ghosts))
			for i, g := range p.Ghosts {
				next.starts[i] = g.Position
			}
		}
	}
	if p.Food != nil {
		next.food = slices.Clone(p.Food)
	}
	if p.Capsules != nil {
		next.capsules = slices.Clone(p.Capsules)
	}
	return next, nil
}

func (gs *GameState) AgentCount() int {
	return len(gs.ghosts) + 1
}

func (gs *GameState) IsWin() bool  { return gs.won }
func (gs *GameState) IsLose() bool { return gs.lost }

// IsTerminal reports whether the game is over.
func (gs *GameState) IsTerminal() bool {
	return gs.won || gs.lost
}

func (gs *GameState) PacmanPosition() Position { return gs.pacman }
func (gs *GameState) Food() []Position         { return slices.Clone(gs.food) }
func (gs *GameState) Capsules() []Position     { return slices.Clone(gs.capsules) }
func (gs *GameState) Ghosts() []GhostState     { return slices.Clone(gs.ghosts) }
func (gs *GameState) Score() float64           { return gs.score }
func (gs *GameState) Walls() *Grid             { return gs.walls }
func (gs *GameState) Rules() Rules             { return gs.rules }

// LegalActions returns the moves available to an agent. Pacman may always Stop, ghosts may not.
// Terminal states and unknown agents have no legal actions.
func (gs *GameState) LegalActions(agent int) []Action {
	if gs.IsTerminal() || agent < 0 || agent >= gs.AgentCount() {
		return nil
	}

	from := gs.agentPosition(agent)
	actions := make([]Action, 0, len(Directions)+1)
	for _, d := range Directions {
		next := from.Next(d)
		if !gs.walls.Blocked(next.X, next.Y) {
			actions = append(actions, d)
		}
	}
	if agent == Pacman {
		actions = append(actions, Stop)
	}
	return actions
}

// Successor returns the state after agent plays action. The successor of a terminal state is the
// state itself. Playing an action that is not legal is a programming error and panics.
func (gs *GameState) Successor(agent int, action Action) State {
	if gs.IsTerminal() {
		return gs
	}
	if !slices.Contains(gs.LegalActions(agent), action) {
		panic(fmt.Sprintf("illegal action %s for agent %d", action, agent))
	}

	next := gs.Copy()
	if agent == Pacman {
		next.movePacman(action)
	} else {
		next.moveGhost(agent-1, action)
	}
	return next
}

func (gs *GameState) agentPosition(agent int) Position {
	if agent == Pacman {
		return gs.pacman
	}
	return gs.ghosts[agent-1].Position
}

func (gs *GameState) movePacman(action Action) {
	gs.pacman = gs.pacman.Next(action)
	gs.score -= gs.rules.TimePenalty

	if i := utils.FindIndex(gs.food, gs.pacman); i >= 0 {
		gs.food = slices.Delete(gs.food, i, i+1)
		gs.score += gs.rules.FoodReward
		if len(gs.food) == 0 {
			gs.won = true
			gs.score += gs.rules.WinReward
			return
		}
	}

	if i := utils.FindIndex(gs.capsules, gs.pacman); i >= 0 {
		gs.capsules = slices.Delete(gs.capsules, i, i+1)
		for g := range gs.ghosts {
			gs.ghosts[g].ScaredTimer = gs.rules.ScaredTime
		}
	}

	gs.resolveContacts()
}

func (gs *GameState) moveGhost(ghost int, action Action) {
	g := &gs.ghosts[ghost]
	g.Position = g.Position.Next(action)
	if g.ScaredTimer > 0 {
		g.ScaredTimer--
	}
	gs.resolveContacts()
}

// resolveContacts eats scared ghosts sharing pacman's cell; a hostile one ends the game.
func (gs *GameState) resolveContacts() {
	for i := range gs.ghosts {
		g := &gs.ghosts[i]
		if g.Position != gs.pacman {
			continue
		}
		if g.Scared() {
			gs.score += gs.rules.GhostReward
			g.Position = gs.starts[i]
			g.ScaredTimer = 0
			continue
		}
		gs.lost = true
		gs.score -= gs.rules.LosePenalty
		return
	}
}

// String renders the state in layout notation.
func (gs *GameState) String() string {
	rows := make([][]byte, gs.walls.Height)
	for y := range rows {
		rows[y] = make([]byte, gs.walls.Width)
		for x := range rows[y] {
			if gs.walls.Blocked(x, y) {
				rows[y][x] = WallCell
			} else {
				rows[y][x] = EmptyCell
			}
		}
	}
	for _, p := range gs.food {
		rows[p.Y][p.X] = FoodCell
	}
	for _, p := range gs.capsules {
		rows[p.Y][p.X] = CapsuleCell
	}
	for _, g := range gs.ghosts {
		rows[g.Position.Y][g.Position.X] = GhostCell
	}
	rows[gs.pacman.Y][gs.pacman.X] = PacmanCell

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
