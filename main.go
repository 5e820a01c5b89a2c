package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"pacman/agent"
	"pacman/engine"
	"pacman/experiments"
	"pacman/game"
	"pacman/meta"
	"pacman/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode      string
	layout    string
	algorithm string
	evaluator string
	depth     int
	ghosts    string
	games     int
	maxTurns  int
	seed      uint64
	delay     time.Duration
	addr      string
	remote    string
	config    string
	debug     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "play", "play, serve, experiment or compare")
	flag.StringVar(&opts.layout, "layout", meta.DEFAULT_LAYOUT, "built-in layout name or layout file")
	flag.StringVar(&opts.algorithm, "agent", "alphabeta", "alphabeta, minimax or reflex")
	flag.StringVar(&opts.evaluator, "eval", "better", "better, enhanced or score")
	flag.IntVar(&opts.depth, "depth", meta.DefaultDepth, "search depth in full rounds")
	flag.StringVar(&opts.ghosts, "ghosts", "directional", "random or directional")
	flag.IntVar(&opts.games, "games", 1, "number of games to play")
	flag.IntVar(&opts.maxTurns, "max-turns", meta.MAX_TURNS, "turn limit per game")
	flag.Uint64Var(&opts.seed, "seed", 1, "seed for ghosts and tie-breaking")
	flag.DurationVar(&opts.delay, "delay", 0, "minimum time between pacman moves")
	flag.StringVar(&opts.addr, "addr", ":8080", "listen address in serve mode")
	flag.StringVar(&opts.remote, "remote", "", "agent server URL to ask for pacman's moves in play mode")
	flag.StringVar(&opts.config, "config", "", "experiment YAML file")
	flag.BoolVar(&opts.debug, "debug", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatal().Err(err).Msg("pacman failed")
	}
}

func run(ctx context.Context, opts options) error {
	switch opts.mode {
	case "play":
		return play(ctx, opts)
	case "serve":
		return agent.StartAgentServer(opts.addr)
	case "experiment":
		return experiment(ctx, opts)
	case "compare":
		return compare(opts)
	}
	return fmt.Errorf("unknown mode %q", opts.mode)
}

func loadState(layout string) (*game.GameState, error) {
	state, err := game.NamedLayout(layout, game.NewStandardRules())
	if err == nil {
		return state, nil
	}
	return game.LoadLayout(layout, game.NewStandardRules())
}

func checkDepth(depth int) error {
	if depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", depth)
	}
	return nil
}

func newSearcher(opts options) (searcher.Searcher, error) {
	algorithm, err := searcher.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return nil, err
	}
	evaluator, err := game.ParseEvaluator(opts.evaluator)
	if err != nil {
		return nil, err
	}
	if err := checkDepth(opts.depth); err != nil {
		return nil, err
	}
	return searcher.New(algorithm,
		searcher.WithDepth(opts.depth),
		searcher.WithEvaluator(evaluator),
		searcher.WithSeed(opts.seed),
		searcher.WithMetrics(),
	), nil
}

func newPacman(opts options) (engine.Agent, error) {
	s, err := newSearcher(opts)
	if err != nil {
		return nil, err
	}
	if opts.remote == "" {
		return engine.SearchAdapter{Searcher: s}, nil
	}
	depth := opts.depth
	return agent.NewClient(opts.remote, agent.FindMoveRequest{
		Algorithm: opts.algorithm,
		Evaluator: opts.evaluator,
		Depth:     &depth,
		Seed:      opts.seed,
	}), nil
}

func play(ctx context.Context, opts options) error {
	pacman, err := newPacman(opts)
	if err != nil {
		return err
	}

	wins := 0
	for i := 0; i < opts.games; i++ {
		state, err := loadState(opts.layout)
		if err != nil {
			return err
		}
		ghosts, err := engine.NewGhosts(opts.ghosts, state.AgentCount()-1, opts.seed+uint64(i))
		if err != nil {
			return err
		}

		e := engine.NewLocalEngine(state, pacman, ghosts,
			engine.WithMaxTurns(opts.maxTurns),
			engine.WithTurnDelay(opts.delay),
			engine.WithLayoutName(opts.layout),
		)
		gameMetric, _, err := e.Run(ctx)
		if err != nil {
			return err
		}
		if gameMetric.Winner == engine.WinnerPacman {
			wins++
		}
		fmt.Printf("Game %d over! Winner: %q Score: %.0f\n", i+1, gameMetric.Winner, gameMetric.Score)
		if opts.debug {
			fmt.Print(e.State)
		}
	}
	fmt.Printf("Pacman won %d of %d games\n", wins, opts.games)
	return nil
}

func experiment(ctx context.Context, opts options) error {
	config := experiments.DefaultConfig()
	if opts.config != "" {
		var err error
		if config, err = experiments.LoadConfig(opts.config); err != nil {
			return err
		}
	}

	summaries, err := experiments.Run(ctx, config)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("agent %d (%s/%s depth %d): won %d of %d, mean score %.1f, mean nodes %.1f\n",
			s.Agent.ID, s.Agent.Algorithm, s.Agent.Evaluator, s.Agent.Depth, s.Wins, s.Games, s.MeanScore, s.MeanNodes)
	}
	return nil
}

func compare(opts options) error {
	if err := checkDepth(opts.depth); err != nil {
		return err
	}
	state, err := loadState(opts.layout)
	if err != nil {
		return err
	}
	evaluator, err := game.ParseEvaluator(opts.evaluator)
	if err != nil {
		return err
	}

	c := experiments.Compare(state, opts.depth, evaluator)
	fmt.Printf("depth %d: minimax %d nodes (value %.2f), alphabeta %d nodes (value %.2f, %d cutoffs)\n",
		c.Depth, c.MinimaxNodes, c.MinimaxValue, c.AlphaBetaNodes, c.AlphaBetaValue, c.Cutoffs)
	return nil
}
