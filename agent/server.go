package agent

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pacman/game"
	"pacman/meta"
	"pacman/searcher"

	"github.com/rs/zerolog/log"
)

// FindMoveRequest carries a position in layout notation and the searcher to run on it. The
// embedded progress restores what the layout cannot express.
type FindMoveRequest struct {
	Layout string `json:"layout"`
	game.Progress
	Algorithm string `json:"algorithm"`
	Evaluator string `json:"evaluator"`
	Depth     *int   `json:"depth,omitempty"`
	Seed      uint64 `json:"seed"`
}

type FindMoveResponse struct {
	Action     game.Action     `json:"action"`
	Found      bool            `json:"found"`
	Value      float64         `json:"value"`
	Nodes      int             `json:"nodes"`
	Cutoffs    int             `json:"cutoffs"`
	Heuristics game.Heuristics `json:"heuristics"` // Breakdown of the requested position
}

// NewHandler serves POST /findmove. Each request builds its own searcher, so the handler keeps no
// state between requests.
func NewHandler() http.Handler {
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", handleFindMove)
	return mux
}

// StartAgentServer starts an agent HTTP server on the given address.
func StartAgentServer(addr string) error {
	log.Info().Msgf("starting agent server on %s ...", addr)
	return http.ListenAndServe(addr, NewHandler())
}

func handleFindMove(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, meta.MAX_REQUEST_BYTES)
	var req FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	state, evaluator, s, err := prepare(req)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	decision := s.Search(state)
	resp := FindMoveResponse{
		Action:     decision.Action,
		Found:      decision.Found,
		Value:      decision.Value,
		Nodes:      decision.Metric.Nodes,
		Cutoffs:    decision.Metric.Cutoffs,
		Heuristics: game.Features(state, game.DefaultWeights(), evaluator == game.EvaluatorEnhanced),
	}
	log.Debug().Msgf("findmove: %s chose %s (value %.2f)", req.Algorithm, resp.Action, resp.Value)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}

func prepare(req FindMoveRequest) (*game.GameState, game.Evaluator, searcher.Searcher, error) {
	state, err := game.ParseLayout(req.Layout, game.NewStandardRules())
	if err != nil {
		return nil, 0, nil, err
	}
	if state, err = state.Resume(req.Progress); err != nil {
		return nil, 0, nil, err
	}
	algorithm, err := searcher.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, 0, nil, err
	}
	evaluator, err := game.ParseEvaluator(req.Evaluator)
	if err != nil {
		return nil, 0, nil, err
	}

	options := []searcher.Option{
		searcher.WithEvaluator(evaluator),
		searcher.WithSeed(req.Seed),
		searcher.WithMetrics(),
	}
	if req.Depth != nil {
		if *req.Depth < 0 || *req.Depth > meta.MaxDepth {
			return nil, 0, nil, fmt.Errorf("depth must be between 0 and %d, got %d", meta.MaxDepth, *req.Depth)
		}
		options = append(options, searcher.WithDepth(*req.Depth))
	}
	return state, evaluator, searcher.New(algorithm, options...), nil
}
