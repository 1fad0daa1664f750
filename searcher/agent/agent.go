package agent

import (
	"context"
	"draughts/experiments/metrics"
	"draughts/game"
	"errors"
)

var (
	// ErrUndo asks the game loop to take back the last turn.
	ErrUndo = errors.New("undo requested")
	// ErrQuit abandons the game.
	ErrQuit = errors.New("quit requested")
)

type Agent interface {
	// FindTurn returns the full turn side plays from pos and performance
	// metrics (if collected) from the search.
	FindTurn(ctx context.Context, pos game.Position, side game.Side) (game.Turn, metrics.SearchMetric, error)
}

// Interactive is implemented by agents that are driven by a person.
type Interactive interface {
	Interactive() bool
}

func IsInteractive(a Agent) bool {
	i, ok := a.(Interactive)
	return ok && i.Interactive()
}
