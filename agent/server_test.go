package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pacman/engine"
	"pacman/game"
	"pacman/meta"

	"github.com/stretchr/testify/require"
)

func post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/findmove", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, req)
	return rec
}

func TestFindMove(t *testing.T) {
	t.Run("searches the posted layout", func(t *testing.T) {
		body, err := json.Marshal(FindMoveRequest{
			Layout:    "%%%%%%%\n%. PG.%\n%%%%%%%",
			Algorithm: "alphabeta",
			Evaluator: "enhanced",
		})
		require.NoError(t, err)

		rec := post(t, string(body))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var resp FindMoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.Found)
		require.Equal(t, game.West, resp.Action)
		require.Positive(t, resp.Nodes)
		require.Equal(t, -20.0, resp.Heuristics.Ghost, "Breakdown should describe the posted position")
	})

	t.Run("action is sent by name", func(t *testing.T) {
		depth := 0
		body, err := json.Marshal(FindMoveRequest{Layout: "%%%%\n%P.%\n%%%%", Algorithm: "minimax", Depth: &depth})
		require.NoError(t, err)

		rec := post(t, string(body))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"action":"East"`)
	})

	t.Run("bad requests", func(t *testing.T) {
		cases := map[string]string{
			"not json":          "{",
			"bad layout":        `{"layout": "%%%\n%.%\n%%%"}`,
			"unknown algorithm": `{"layout": "%%%\n%P%\n%%%", "algorithm": "mcts"}`,
			"unknown evaluator": `{"layout": "%%%\n%P%\n%%%", "evaluator": "learned"}`,
			"negative depth":    `{"layout": "%%%\n%P%\n%%%", "depth": -1}`,
			"too deep":          `{"layout": "%%%\n%P%\n%%%", "depth": 5}`,
			"oversized body":    `{"layout": "` + strings.Repeat("%", meta.MAX_REQUEST_BYTES) + `"}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				require.Equal(t, http.StatusBadRequest, post(t, body).Code)
			})
		}
	})

	t.Run("breakdown follows the evaluator", func(t *testing.T) {
		for evaluator, trapped := range map[string]float64{"better": 0, "score": 0, "enhanced": -game.DefaultWeights().Trapped} {
			body, err := json.Marshal(FindMoveRequest{Layout: "%%%%%%\n%P G.%\n%%%%%%", Evaluator: evaluator})
			require.NoError(t, err)

			rec := post(t, string(body))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp FindMoveResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, trapped, resp.Heuristics.Trapped, evaluator)
		}
	})

	t.Run("only POST is served", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/findmove", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestClient(t *testing.T) {
	server := httptest.NewServer(NewHandler())
	defer server.Close()

	t.Run("carries progress the layout cannot show", func(t *testing.T) {
		state, err := game.ParseLayout("%%%%%%\n%P.G.%\n%%%%%%", game.NewStandardRules())
		require.NoError(t, err)
		state, err = state.Resume(game.Progress{Score: 40, ScaredTimers: []int{5}, Food: []game.Position{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}})
		require.NoError(t, err)
		depth := 1
		client := NewClient(server.URL, FindMoveRequest{Algorithm: "minimax", Evaluator: "score", Depth: &depth})

		resp, err := client.Request(state)

		require.NoError(t, err)
		require.True(t, resp.Found)
		require.Equal(t, game.East, resp.Action, "Food under the scared ghost should still count")
		require.Equal(t, 40.0, resp.Heuristics.Score)
		require.Equal(t, -12.0, resp.Heuristics.FoodCount)
	})

	t.Run("stacked ghosts reach the server", func(t *testing.T) {
		state, err := game.ParseLayout("%%%%%%%\n%P. GG%\n%%%%%%%", game.NewStandardRules())
		require.NoError(t, err)
		stacked := state.Successor(2, game.West)
		client := NewClient(server.URL, FindMoveRequest{Algorithm: "alphabeta"})

		resp, err := client.Request(stacked)

		require.NoError(t, err)
		require.True(t, resp.Found)
		require.Equal(t, game.East, resp.Action, "Eating the last food wins")
	})

	t.Run("drives a local game", func(t *testing.T) {
		state, err := game.NamedLayout("corridor", game.NewStandardRules())
		require.NoError(t, err)
		client := NewClient(server.URL, FindMoveRequest{Algorithm: "alphabeta"})
		ghosts, err := engine.NewGhosts("random", 1, 2)
		require.NoError(t, err)

		gameMetric, moves, err := engine.NewLocalEngine(state, client, ghosts, engine.WithMaxTurns(5)).Run(context.Background())

		require.NoError(t, err)
		require.NotEmpty(t, moves)
		require.Equal(t, "East", moves[0].Action)
		require.LessOrEqual(t, gameMetric.TotalMoves, 5)
	})

	t.Run("unreachable server plays Stop", func(t *testing.T) {
		state, err := game.NamedLayout("small", game.NewStandardRules())
		require.NoError(t, err)
		client := NewClient("http://127.0.0.1:1", FindMoveRequest{})

		decision := client.FindMove(state, game.Pacman)

		require.False(t, decision.Found)
		require.Equal(t, game.Stop, decision.Action)
		require.Panics(t, func() { client.FindMove(state, 1) })
	})

	t.Run("rejected requests are errors", func(t *testing.T) {
		state, err := game.NamedLayout("small", game.NewStandardRules())
		require.NoError(t, err)
		client := NewClient(server.URL, FindMoveRequest{Algorithm: "mcts"})

		_, err = client.Request(state)
		require.ErrorContains(t, err, "400")
	})
}

func TestResumeRejectsBadProgress(t *testing.T) {
	state, err := game.NamedLayout("small", game.NewStandardRules())
	require.NoError(t, err)

	_, err = state.Resume(game.Progress{ScaredTimers: []int{1, 2}})
	require.Error(t, err)
	_, err = state.Resume(game.Progress{ScaredTimers: []int{-1}})
	require.Error(t, err)
	_, err = state.Resume(game.Progress{Food: []game.Position{{X: 0, Y: 0}}})
	require.Error(t, err)
}
