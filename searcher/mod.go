package searcher

import (
	"draughts/experiments/metrics"
	"draughts/game"
)

const (
	// MaxDepth bounds the configurable search depth in plies.
	MaxDepth = 10
	// DefaultDepth is used for a side whose depth was never set.
	DefaultDepth = 4
)

// Result is the outcome of one search.
type Result struct {
	Turn   game.Turn            `json:"turn"`
	Score  float64              `json:"score"`
	Metric metrics.SearchMetric `json:"metric"`
}

// TurnFinder picks a turn for side without reporting search statistics.
type TurnFinder interface {
	FindBestTurn(pos game.Position, side game.Side) game.Turn
}

var _ TurnFinder = (*Searcher)(nil)

// isMaximizing reports whether the bot is to move at a ply. Ply 0 belongs to
// the opponent, who answers the root turn.
func isMaximizing(depth int) bool {
	return depth%2 == 1
}
