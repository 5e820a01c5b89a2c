package experiments

import (
	"fmt"
	"os"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/meta"
	"pacman/searcher"

	"gopkg.in/yaml.v3"
)

// Config describes an experiment: which agents play, where, and how often.
type Config struct {
	Name     string                `yaml:"name"`
	Layout   string                `yaml:"layout"`
	Ghosts   string                `yaml:"ghosts"`
	Games    int                   `yaml:"games"`
	MaxTurns int                   `yaml:"max_turns"`
	Seed     uint64                `yaml:"seed"`
	Output   string                `yaml:"output"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
}

// DefaultConfig pits alpha-beta with each evaluator against the minimax baseline.
func DefaultConfig() Config {
	return Config{
		Name:     "evaluators",
		Layout:   meta.DEFAULT_LAYOUT,
		Ghosts:   "directional",
		Games:    meta.GAMES,
		MaxTurns: meta.MAX_TURNS,
		Output:   "experiments",
		Agents: []metrics.AgentConfig{
			{ID: 1, Algorithm: "minimax", Evaluator: "better", Depth: meta.DefaultDepth},
			{ID: 2, Algorithm: "alphabeta", Evaluator: "better", Depth: meta.DefaultDepth},
			{ID: 3, Algorithm: "alphabeta", Evaluator: "enhanced", Depth: meta.DefaultDepth},
			{ID: 4, Algorithm: "reflex"},
		},
	}
}

// LoadConfig reads a YAML experiment file. Fields left out keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks every agent resolves to a searcher.
func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("config %q lists no agents", c.Name)
	}
	for _, agent := range c.Agents {
		if _, err := NewSearcher(agent); err != nil {
			return fmt.Errorf("agent %d: %w", agent.ID, err)
		}
	}
	return nil
}

// NewSearcher turns an agent config into a searcher that collects metrics.
func NewSearcher(config metrics.AgentConfig) (searcher.Searcher, error) {
	algorithm, err := searcher.ParseAlgorithm(config.Algorithm)
	if err != nil {
		return nil, err
	}
	evaluator, err := game.ParseEvaluator(config.Evaluator)
	if err != nil {
		return nil, err
	}
	if config.Depth < 0 {
		return nil, fmt.Errorf("depth must not be negative, got %d", config.Depth)
	}

	options := []searcher.Option{
		searcher.WithEvaluator(evaluator),
		searcher.WithMetrics(),
	}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.DisableOrdering {
		options = append(options, searcher.WithMoveOrdering(false))
	}
	return searcher.New(algorithm, options...), nil
}
