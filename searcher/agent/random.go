package agent

import (
	"context"
	"draughts/experiments/metrics"
	"draughts/game"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal turns,
// used as a baseline in experiments. A zero seed is replaced by the clock.
func NewRandomAgent(seed uint64) Agent {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindTurn(ctx context.Context, pos game.Position, side game.Side) (game.Turn, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	var turn game.Turn
	moves, capture := pos.LegalMoves(side)
	for len(moves) > 0 {
		move := a.sample(moves)
		turn = append(turn, move)
		if !capture {
			break
		}
		// A capture is followed by every further capture of the same piece.
		pos = pos.Apply(move)
		moves, capture = pos.LegalMovesFrom(move.To)
		if !capture {
			break
		}
	}
	return turn, metrics.SearchMetric{}, nil
}

func (a *randomAgent) sample(moves []game.Move) game.Move {
	return moves[a.rng.Intn(len(moves))]
}
