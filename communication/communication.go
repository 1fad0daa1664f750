// Package communication holds the JSON messages of the analysis API shared
// by its server and client.
package communication

import (
	"draughts/experiments/metrics"
	"draughts/game"
)

const (
	PingPath       = "/api/ping"
	LegalMovesPath = "/api/legal-moves"
	BestTurnPath   = "/api/best-turn"
)

type LegalMovesRequest struct {
	Position game.Position `json:"position"`
	Side     game.Side     `json:"side"`
	From     *game.Square  `json:"from,omitempty"` // only the moves of this piece
}

type LegalMovesResponse struct {
	Moves   []game.Move `json:"moves"`
	Capture bool        `json:"capture"`
}

type BestTurnRequest struct {
	Position game.Position    `json:"position"`
	Side     game.Side        `json:"side"`
	Depth    int              `json:"depth"`
	Scoring  game.ScoringMode `json:"scoring"`
	Pruning  bool             `json:"pruning"`
	NoRandom bool             `json:"no_random,omitempty"`
	Seed     uint64           `json:"seed,omitempty"`
}

type BestTurnResponse struct {
	Turn   game.Turn            `json:"turn"`
	Score  float64              `json:"score"`
	Metric metrics.SearchMetric `json:"metric"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
