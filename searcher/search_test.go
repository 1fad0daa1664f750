package searcher

import (
	"draughts/game"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var positions = map[string]game.Position{
	"start": game.StartPosition(),
	"middlegame": game.MustParse(`
		.b.b...b
		..b.....
		...b.b.b
		..w.....
		.....w..
		w.w...w.
		...w....
		w.......
	`),
	"kings": game.MustParse(`
		.....b..
		........
		...w....
		..B.....
		........
		.b...W..
		w.......
		...w....
	`),
	"chains": game.MustParse(`
		........
		..b.b...
		........
		..b.b...
		........
		..b.....
		.w.w....
		........
	`),
}

func TestPruningEquivalence(t *testing.T) {
	for name, pos := range positions {
		for depth := 0; depth <= 4; depth++ {
			for _, side := range []game.Side{game.White, game.Black} {
				t.Run(fmt.Sprintf("%s depth %d %v", name, depth, side), func(t *testing.T) {
					full := New(WithDepth(side, depth), WithPruning(false), WithoutShuffle(), WithMetrics())
					pruned := New(WithDepth(side, depth), WithPruning(true), WithoutShuffle(), WithMetrics())

					want := full.Search(pos, side)
					got := pruned.Search(pos, side)

					require.Equal(t, want.Score, got.Score)
					require.True(t, want.Turn.Equal(got.Turn), "want %v, got %v", want.Turn, got.Turn)
					require.LessOrEqual(t, got.Metric.Nodes, want.Metric.Nodes)
					require.Zero(t, want.Metric.Cutoffs)
				})
			}
		}
	}
}

// randomPosition scatters up to maxPieces men and kings over the dark
// squares. Men never stand on their own promotion row.
func randomPosition(rng *rand.Rand, maxPieces int) game.Position {
	var pos game.Position
	cells := []game.Cell{game.WhiteMan, game.BlackMan, game.WhiteKing, game.BlackKing, game.WhiteMan, game.BlackMan}
	pieces := 2 + rng.Intn(maxPieces-1)
	for i := 0; i < pieces; i++ {
		sq := game.Square{Row: rng.Intn(game.Size), Col: rng.Intn(game.Size)}
		if (sq.Row+sq.Col)%2 == 0 || !pos.At(sq).IsEmpty() {
			continue
		}
		c := cells[rng.Intn(len(cells))]
		if !c.IsKing() && sq.Row == game.PromotionRow(c.Side()) {
			c = c.Crowned()
		}
		pos.Set(sq, c)
	}
	return pos
}

func TestPruningEquivalenceOnRandomPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(20241015))
	modes := []game.ScoringMode{game.Material, game.MaterialAndPotential}

	for i := 0; i < 80; i++ {
		pos := randomPosition(rng, 12)
		for depth := 0; depth <= 4; depth++ {
			for _, side := range []game.Side{game.White, game.Black} {
				for _, mode := range modes {
					full := New(WithDepth(side, depth), WithScoring(mode), WithPruning(false), WithoutShuffle())
					pruned := New(WithDepth(side, depth), WithScoring(mode), WithPruning(true), WithoutShuffle())

					want := full.Search(pos, side)
					got := pruned.Search(pos, side)

					require.Equal(t, want.Score, got.Score, "%v depth %d %v\n%v", side, depth, mode, pos)
					require.True(t, want.Turn.Equal(got.Turn), "%v depth %d %v: want %v, got %v\n%v",
						side, depth, mode, want.Turn, got.Turn, pos)
				}
			}
		}
	}
}

func TestPruningCutsTheStartPosition(t *testing.T) {
	s := New(WithDepth(game.White, 4), WithoutShuffle(), WithMetrics())

	result := s.Search(game.StartPosition(), game.White)

	require.Positive(t, result.Metric.Cutoffs)
	require.True(t, result.Metric.Pruning)
	require.Equal(t, 4, result.Metric.Depth)
}

func TestFindBestTurn(t *testing.T) {
	t.Run("no moves gives an empty turn", func(t *testing.T) {
		pos := game.MustParse(`
			........
			........
			........
			........
			........
			........
			b.......
			.b......
		`)

		result := New().Search(pos, game.White)

		require.Empty(t, result.Turn)
		require.Zero(t, result.Score)
		require.Empty(t, New().FindBestTurn(pos, game.Black))
	})

	t.Run("forced capture is played", func(t *testing.T) {
		pos := game.MustParse(`
			........
			........
			........
			........
			...b....
			..w.....
			.......w
			........
		`)

		turn := New(WithDepth(game.White, 3)).FindBestTurn(pos, game.White)

		require.Equal(t, game.Turn{game.NewCapture(game.Square{Row: 5, Col: 2}, game.Square{Row: 3, Col: 4}, game.Square{Row: 4, Col: 3})}, turn)
	})

	t.Run("capture chain is returned whole", func(t *testing.T) {
		pos := game.MustParse(`
			........
			........
			........
			...b....
			........
			...b....
			..w.....
			........
		`)

		result := New(WithDepth(game.White, 1)).Search(pos, game.White)

		require.Equal(t, game.Turn{
			game.NewCapture(game.Square{Row: 6, Col: 2}, game.Square{Row: 4, Col: 4}, game.Square{Row: 5, Col: 3}),
			game.NewCapture(game.Square{Row: 4, Col: 4}, game.Square{Row: 2, Col: 2}, game.Square{Row: 3, Col: 3}),
		}, result.Turn)
		require.Equal(t, result.Turn[0].To, result.Turn[1].From)
		require.Equal(t, game.Inf, result.Score)
	})

	t.Run("a man crowned mid chain captures on as a king", func(t *testing.T) {
		pos := game.MustParse(`
			........
			..b.....
			.w......
			......b.
			........
			........
			........
			........
		`)

		result := New(WithDepth(game.White, 1)).Search(pos, game.White)

		require.Equal(t, game.Turn{
			game.NewCapture(game.Square{Row: 2, Col: 1}, game.Square{Row: 0, Col: 3}, game.Square{Row: 1, Col: 2}),
			game.NewCapture(game.Square{Row: 0, Col: 3}, game.Square{Row: 4, Col: 7}, game.Square{Row: 3, Col: 6}),
		}, result.Turn)
		next := pos.ApplyTurn(result.Turn)
		require.Equal(t, game.WhiteKing, next.At(game.Square{Row: 4, Col: 7}))
		require.Equal(t, game.Inf, result.Score)
	})

	t.Run("does not walk into a capture", func(t *testing.T) {
		pos := game.MustParse(`
			........
			........
			........
			..b.....
			........
			....w...
			........
			........
		`)

		for depth := 1; depth <= 2; depth++ {
			result := New(WithDepth(game.White, depth)).Search(pos, game.White)

			require.Equal(t, game.Turn{game.NewMove(game.Square{Row: 5, Col: 4}, game.Square{Row: 4, Col: 5})}, result.Turn, "depth %d", depth)
			require.Equal(t, 1.0, result.Score)
		}
	})

	t.Run("scores are from the searching side", func(t *testing.T) {
		pos := game.MustParse(`
			........
			........
			........
			........
			........
			.b...b..
			w.......
			........
		`)

		result := New(WithDepth(game.Black, 0)).Search(pos, game.Black)

		require.Len(t, result.Turn, 1)
		require.Equal(t, 2.0, result.Score)
	})
}

func TestSeededShuffleIsReproducible(t *testing.T) {
	a := New(WithSeed(7), WithDepth(game.White, 2))
	b := New(WithSeed(7), WithDepth(game.White, 2))

	for i := 0; i < 3; i++ {
		require.Equal(t, a.FindBestTurn(game.StartPosition(), game.White), b.FindBestTurn(game.StartPosition(), game.White))
	}
}

func TestDepth(t *testing.T) {
	s := New(WithDepth(game.Black, 6))

	require.Equal(t, DefaultDepth, s.Depth(game.White))
	require.Equal(t, 6, s.Depth(game.Black))

	s.SetDepth(game.White, 2)
	require.Equal(t, 2, s.Depth(game.White))

	t.Run("out of range depths panic", func(t *testing.T) {
		require.Panics(t, func() { s.SetDepth(game.White, -1) })
		require.Panics(t, func() { New(WithDepth(game.White, MaxDepth+1)) })
		require.Panics(t, func() { New(WithDepth(game.Black, -1)) })
		require.NotPanics(t, func() { New(WithDepth(game.White, 0), WithDepth(game.Black, MaxDepth)) })
	})
}

func TestIsMaximizing(t *testing.T) {
	require.False(t, isMaximizing(0))
	require.True(t, isMaximizing(1))
	require.False(t, isMaximizing(2))
}
