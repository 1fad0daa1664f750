package client

import (
	"bytes"
	"context"
	"draughts/communication"
	"draughts/experiments/metrics"
	"draughts/game"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrServer = errors.New("analysis server error")

const defaultTimeout = time.Minute

// RemoteAgent plays the turns computed by an analysis server.
type RemoteAgent struct {
	serverURL string
	client    *http.Client
	request   communication.BestTurnRequest
}

type Option func(a *RemoteAgent)

func WithHTTPClient(client *http.Client) Option {
	return func(a *RemoteAgent) {
		if client != nil {
			a.client = client
		}
	}
}

func WithScoring(mode game.ScoringMode) Option {
	return func(a *RemoteAgent) {
		a.request.Scoring = mode
	}
}

func WithoutPruning() Option {
	return func(a *RemoteAgent) {
		a.request.Pruning = false
	}
}

func WithSeed(seed uint64) Option {
	return func(a *RemoteAgent) {
		a.request.Seed = seed
	}
}

func NewRemoteAgent(serverURL string, depth int, options ...Option) *RemoteAgent {
	a := &RemoteAgent{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client:    &http.Client{Timeout: defaultTimeout},
		request: communication.BestTurnRequest{
			Depth:   depth,
			Pruning: true,
		},
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *RemoteAgent) FindTurn(ctx context.Context, pos game.Position, side game.Side) (game.Turn, metrics.SearchMetric, error) {
	req := a.request
	req.Position = pos
	req.Side = side

	var resp communication.BestTurnResponse
	if err := a.post(ctx, communication.BestTurnPath, req, &resp); err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return resp.Turn, resp.Metric, nil
}

// LegalMoves asks the server for the legal moves of side, or of the piece on
// from when it is not nil.
func (a *RemoteAgent) LegalMoves(ctx context.Context, pos game.Position, side game.Side, from *game.Square) ([]game.Move, bool, error) {
	req := communication.LegalMovesRequest{Position: pos, Side: side, From: from}
	var resp communication.LegalMovesResponse
	if err := a.post(ctx, communication.LegalMovesPath, req, &resp); err != nil {
		return nil, false, err
	}
	return resp.Moves, resp.Capture, nil
}

func (a *RemoteAgent) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.serverURL+communication.PingPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return a.do(httpReq, &map[string]bool{})
}

func (a *RemoteAgent) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.serverURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return a.do(httpReq, out)
}

func (a *RemoteAgent) do(httpReq *http.Request, out any) error {
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", httpReq.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: %s: %d %s", ErrServer, httpReq.URL.Path, resp.StatusCode, e.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
