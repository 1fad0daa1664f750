package utils

import (
	"draughts/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	moves := []game.Move{
		game.NewMove(game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: 1}),
		game.NewCapture(game.Square{Row: 5, Col: 2}, game.Square{Row: 3, Col: 4}, game.Square{Row: 4, Col: 3}),
	}

	require.Equal(t, 0, FindIndex(moves, game.NewMove(game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: 1})))
	require.Equal(t, 1, FindIndex(moves, game.NewMove(game.Square{Row: 5, Col: 2}, game.Square{Row: 3, Col: 4})))
	require.Equal(t, -1, FindIndex(moves, game.NewMove(game.Square{Row: 5, Col: 2}, game.Square{Row: 4, Col: 1})))
	require.Equal(t, -1, FindIndex(nil, moves[0]))
}
