package engine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/meta"
	"pacman/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	WinnerPacman = "pacman"
	WinnerGhosts = "ghosts"
)

type Option func(e *LocalEngine)

// WithMaxTurns bounds the game to a number of pacman moves.
func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithTurnDelay paces the game so that pacman moves at most once per delay.
func WithTurnDelay(delay time.Duration) Option {
	return func(e *LocalEngine) {
		if delay > 0 {
			e.limiter = rate.NewLimiter(rate.Every(delay), 1)
		}
	}
}

// WithLayoutName labels the game metric.
func WithLayoutName(name string) Option {
	return func(e *LocalEngine) {
		e.layout = name
	}
}

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	State    game.State
	Agents   []Agent // Index 0 is pacman
	maxTurns int
	limiter  *rate.Limiter
	layout   string
}

func NewLocalEngine(state game.State, pacman Agent, ghosts []Agent, options ...Option) *LocalEngine {
	if len(ghosts) != state.AgentCount()-1 {
		panic(fmt.Sprintf("layout has %d ghosts but %d ghost agents were given", state.AgentCount()-1, len(ghosts)))
	}

	e := &LocalEngine{
		State:    state,
		Agents:   append([]Agent{pacman}, ghosts...),
		maxTurns: meta.MAX_TURNS,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		layout:   meta.DEFAULT_LAYOUT,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until pacman wins or loses, or the turn limit is reached.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Layout: e.layout, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("starting game on %s with %d ghosts", e.layout, len(e.Agents)-1)

	turn := 1
	for ; turn <= e.maxTurns && !terminal(e.State); turn++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("game interrupted at turn %d: %w", turn, err)
		}

		for agent := range e.Agents {
			if terminal(e.State) {
				break
			}
			legal := e.State.LegalActions(agent)
			if len(legal) == 0 { // Boxed-in ghost skips its move
				continue
			}

			decision := e.Agents[agent].FindMove(e.State, agent)
			action := decision.Action
			if !slices.Contains(legal, action) {
				log.Warn().Msgf("agent %d chose illegal action %s, playing %s instead", agent, action, legal[0])
				action = legal[0]
			}

			if agent == game.Pacman {
				moveMetrics = append(moveMetrics, metrics.MoveMetric{
					Step:         turn,
					Agent:        agent,
					Action:       action.String(),
					Value:        decision.Value,
					SearchMetric: decision.Metric,
				})
				log.Debug().Msgf("turn %d: pacman plays %s (value %.2f)", turn, action, decision.Value)
			}

			e.State = e.State.Successor(agent, action)
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Score = e.State.Score()
	switch {
	case e.State.IsWin():
		gameMetric.Winner = WinnerPacman
	case e.State.IsLose():
		gameMetric.Winner = WinnerGhosts
	}

	if gameMetric.Winner == "" {
		log.Info().Msgf("stopped after %d turns with score %.0f", e.maxTurns, gameMetric.Score)
	} else {
		log.Info().Msgf("game over after %d moves: %s won with score %.0f", gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Score)
	}
	return gameMetric, moveMetrics, nil
}

func terminal(s game.State) bool {
	return s.IsWin() || s.IsLose()
}

// SearchAdapter lets a searcher play pacman. A search that finds nothing plays Stop.
type SearchAdapter struct {
	Searcher searcher.Searcher
}

func (sa SearchAdapter) FindMove(state game.State, agent int) searcher.Decision {
	if agent != game.Pacman {
		panic("searchers only play pacman")
	}
	decision := sa.Searcher.Search(state)
	if !decision.Found {
		decision.Action = game.Stop
	}
	return decision
}
