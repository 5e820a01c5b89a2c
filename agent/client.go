package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pacman/game"
	"pacman/searcher"

	"github.com/rs/zerolog/log"
)

// Client plays pacman by asking a remote agent server for every move.
type Client struct {
	serverURL string
	request   FindMoveRequest // Searcher settings sent with every position
	http      *http.Client
}

// NewClient initializes and returns a new Client. The request's layout and progress are filled in
// per move.
func NewClient(serverURL string, request FindMoveRequest) *Client {
	return &Client{
		serverURL: serverURL,
		request:   request,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// FindMove implements engine.Agent. Failed requests are logged and answered with Stop, which pacman
// can always play.
func (c *Client) FindMove(state game.State, agent int) searcher.Decision {
	if agent != game.Pacman {
		panic("remote agents only play pacman")
	}
	resp, err := c.Request(state)
	if err != nil {
		log.Warn().Err(err).Msg("remote agent failed, playing Stop")
		return searcher.Decision{Action: game.Stop}
	}
	return searcher.Decision{
		Action: resp.Action,
		Value:  resp.Value,
		Found:  resp.Found,
	}
}

// Request posts state to the server's /findmove endpoint.
func (c *Client) Request(state game.State) (FindMoveResponse, error) {
	gs, ok := state.(*game.GameState)
	if !ok {
		return FindMoveResponse{}, fmt.Errorf("state %T cannot be rendered as a layout", state)
	}

	req := c.request
	req.Layout = gs.String()
	req.Progress = gs.Progress()

	data, err := json.Marshal(req)
	if err != nil {
		return FindMoveResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}
	httpResp, err := c.http.Post(c.serverURL+"/findmove", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return FindMoveResponse{}, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return FindMoveResponse{}, fmt.Errorf("agent server answered %s", httpResp.Status)
	}

	var resp FindMoveResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return FindMoveResponse{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return resp, nil
}
