package experiments

import (
	"context"
	"fmt"

	"pacman/engine"
	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Summary aggregates the games each agent played.
type Summary struct {
	Agent     metrics.AgentConfig
	Games     int
	Wins      int
	MeanScore float64
	MeanNodes float64 // Per pacman move
}

// Run plays config.Games games for every agent and stores the records under config.Output.
func Run(ctx context.Context, config Config) ([]Summary, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := make([]Summary, 0, len(config.Agents))

	log.Info().Msgf("starting %s experiment...", config.Name)

	for ai, agent := range config.Agents {
		log.Info().Msgf("starting agent %d of %d: %+v", ai+1, len(config.Agents), agent)
		summary := Summary{Agent: agent}
		moves := 0

		for i := 0; i < config.Games; i++ {
			gameMetric, moveMetrics, err := playGame(ctx, config, agent, config.Seed+uint64(i))
			if err != nil {
				return nil, fmt.Errorf("agent %d game %d: %w", agent.ID, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent:      agent.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
				summary.MeanNodes += float64(mm.Nodes)
			}
			moves += len(moveMetrics)

			summary.Games++
			summary.MeanScore += gameMetric.Score
			if gameMetric.Winner == engine.WinnerPacman {
				summary.Wins++
			}
			log.Info().Msgf("agent %d game %d of %d: winner=%q score=%.0f", agent.ID, i+1, config.Games, gameMetric.Winner, gameMetric.Score)
		}

		summary.MeanScore /= float64(summary.Games)
		if moves > 0 {
			summary.MeanNodes /= float64(moves)
		}
		summaries = append(summaries, summary)
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	if err := store(config, gameRecords, moveRecords); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func playGame(ctx context.Context, config Config, agent metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := game.NamedLayout(config.Layout, game.NewStandardRules())
	if err != nil {
		state, err = game.LoadLayout(config.Layout, game.NewStandardRules())
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
	}

	pacman, err := NewSearcher(agent)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	ghosts, err := engine.NewGhosts(config.Ghosts, state.AgentCount()-1, seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocalEngine(state, engine.SearchAdapter{Searcher: pacman}, ghosts,
		engine.WithMaxTurns(config.MaxTurns),
		engine.WithLayoutName(config.Layout),
	)
	return e.Run(ctx)
}

func store(config Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	if config.Output == "" {
		return nil
	}

	writer, err := metrics.NewWriter(config.Output, config.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteMoveParquet(moveRecords); err != nil {
		return fmt.Errorf("failed to write move parquet: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
