package agent

import (
	"context"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/searcher"
)

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent that plays the searcher's best turn.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindTurn(ctx context.Context, pos game.Position, side game.Side) (game.Turn, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	result := a.searcher.Search(pos, side)
	return result.Turn, result.Metric, nil
}
