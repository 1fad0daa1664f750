package agent

import (
	"context"
	"draughts/game"
	"draughts/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

var chain = game.MustParse(`
	........
	........
	........
	...b....
	........
	...b....
	..w.....
	........
`)

func TestSearchAgent(t *testing.T) {
	t.Run("plays the searcher's turn", func(t *testing.T) {
		a := NewSearchAgent(searcher.New(searcher.WithDepth(game.White, 2), searcher.WithMetrics()))

		turn, metric, err := a.FindTurn(context.Background(), chain, game.White)

		require.NoError(t, err)
		require.Len(t, turn, 2)
		require.Equal(t, 2, metric.Depth)
		require.Positive(t, metric.Nodes)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewSearchAgent(searcher.New()).FindTurn(ctx, chain, game.White)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("not interactive", func(t *testing.T) {
		require.False(t, IsInteractive(NewSearchAgent(searcher.New())))
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("completes capture chains", func(t *testing.T) {
		a := NewRandomAgent(1)

		turn, _, err := a.FindTurn(context.Background(), chain, game.White)

		require.NoError(t, err)
		require.Equal(t, game.Turn{
			game.NewCapture(game.Square{Row: 6, Col: 2}, game.Square{Row: 4, Col: 4}, game.Square{Row: 5, Col: 3}),
			game.NewCapture(game.Square{Row: 4, Col: 4}, game.Square{Row: 2, Col: 2}, game.Square{Row: 3, Col: 3}),
		}, turn)
	})

	t.Run("plays a legal opening", func(t *testing.T) {
		a := NewRandomAgent(42)
		pos := game.StartPosition()
		legal, _ := pos.LegalMoves(game.Black)

		for i := 0; i < 20; i++ {
			turn, _, err := a.FindTurn(context.Background(), pos, game.Black)
			require.NoError(t, err)
			require.Len(t, turn, 1)
			require.Contains(t, legal, turn[0])
		}
	})

	t.Run("no moves gives an empty turn", func(t *testing.T) {
		turn, _, err := NewRandomAgent(1).FindTurn(context.Background(), game.Position{}, game.White)

		require.NoError(t, err)
		require.Empty(t, turn)
	})
}
