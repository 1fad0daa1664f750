package searcher

import (
	"draughts/experiments/metrics"
	"draughts/game"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
)

type Option func(s *Searcher)

// Searcher picks full turns with a depth limited minimax over capture
// chains. Searches may run concurrently; configuration may not change while
// one is running.
type Searcher struct {
	depth   [2]int
	scoring game.ScoringMode
	pruning bool
	shuffle bool
	seed    uint64
	calls   atomic.Uint64
	metrics bool
}

// WithDepth sets the depth used when searching for side. It panics on
// depths outside [0, MaxDepth], like SetDepth.
func WithDepth(side game.Side, depth int) Option {
	return func(s *Searcher) {
		s.SetDepth(side, depth)
	}
}

func WithScoring(mode game.ScoringMode) Option {
	return func(s *Searcher) {
		s.scoring = mode
	}
}

func WithPruning(enabled bool) Option {
	return func(s *Searcher) {
		s.pruning = enabled
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.seed = seed
	}
}

// WithoutShuffle keeps moves in generation order, making searches
// deterministic.
func WithoutShuffle() Option {
	return func(s *Searcher) {
		s.shuffle = false
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = true
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		depth:   [2]int{DefaultDepth, DefaultDepth},
		scoring: game.Material,
		pruning: true,
		shuffle: true,
		seed:    uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// SetDepth changes the depth used for side. It must not be called while a
// search is running.
func (s *Searcher) SetDepth(side game.Side, depth int) {
	if depth < 0 || depth > MaxDepth {
		panic(fmt.Sprintf("search depth %d out of range [0, %d]", depth, MaxDepth))
	}
	s.depth[side] = depth
}

func (s *Searcher) Depth(side game.Side) int {
	return s.depth[side]
}

func (s *Searcher) Scoring() game.ScoringMode {
	return s.scoring
}

func (s *Searcher) Pruning() bool {
	return s.pruning
}

// FindBestTurn returns the best full turn for side, empty if side cannot move.
func (s *Searcher) FindBestTurn(pos game.Position, side game.Side) game.Turn {
	return s.Search(pos, side).Turn
}

// Search is FindBestTurn that also reports the score of the turn and the
// search statistics.
func (s *Searcher) Search(pos game.Position, side game.Side) Result {
	sr := &search{
		bot:      side,
		maxDepth: s.depth[side],
		evaluate: s.scoring.Evaluator(),
		pruning:  s.pruning,
		metrics:  metrics.NewDummyCollector(),
	}
	if s.shuffle {
		sr.rng = rand.New(rand.NewSource(s.seed + s.calls.Add(1)))
	}
	if s.metrics {
		sr.metrics = metrics.NewCollector()
	}

	sr.metrics.Start(sr.maxDepth, s.scoring, s.pruning)
	score, turn := sr.firstBestTurn(pos, side, game.NoSquare, -1)
	metric := sr.metrics.Complete()
	if len(turn) == 0 {
		score = 0
	}

	return Result{Turn: turn, Score: score, Metric: metric}
}

// search holds the state of a single call.
type search struct {
	bot      game.Side
	maxDepth int
	evaluate game.Evaluate
	pruning  bool
	rng      *rand.Rand // nil when shuffling is disabled
	metrics  metrics.Collector
}

func (sr *search) legalMoves(pos *game.Position, side game.Side) ([]game.Move, bool) {
	moves, capture := pos.LegalMoves(side)
	if sr.rng != nil {
		sr.rng.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}
	return moves, capture
}

// firstBestTurn searches the bot's own turn. A capture keeps the turn with
// the same piece, so chains recurse here at the same depth until the piece
// has nothing left to capture; then the opponent answers at ply 0. The chain
// is rebuilt from the returned moves.
func (sr *search) firstBestTurn(pos game.Position, side game.Side, piece game.Square, alpha float64) (float64, game.Turn) {
	var moves []game.Move
	var capture bool
	if piece == game.NoSquare {
		moves, capture = sr.legalMoves(&pos, side)
	} else {
		moves, capture = pos.LegalMovesFrom(piece)
		if !capture {
			return sr.bestScore(pos, side.Opponent(), 0, alpha, game.Inf+1, game.NoSquare), nil
		}
	}

	best := -1.0
	var bestTurn game.Turn
	for _, move := range moves {
		child := pos.Apply(move)
		var score float64
		var rest game.Turn
		if capture {
			score, rest = sr.firstBestTurn(child, side, move.To, best)
		} else {
			score = sr.bestScore(child, side.Opponent(), 0, best, game.Inf+1, game.NoSquare)
		}
		if score > best {
			best = score
			bestTurn = append(game.Turn{move}, rest...)
		}
	}
	return best, bestTurn
}

// bestScore is minimax with alpha-beta over plies. depth only grows when the
// turn passes to the other side; capture chains recurse at the same depth
// with the capturing piece as piece.
func (sr *search) bestScore(pos game.Position, side game.Side, depth int, alpha, beta float64, piece game.Square) float64 {
	sr.metrics.AddNode()
	if depth == sr.maxDepth {
		sr.metrics.AddLeaf()
		return sr.evaluate(pos, sr.bot)
	}

	var moves []game.Move
	var capture bool
	if piece != game.NoSquare {
		moves, capture = pos.LegalMovesFrom(piece)
		if !capture {
			return sr.bestScore(pos, side.Opponent(), depth+1, alpha, beta, game.NoSquare)
		}
	} else {
		moves, capture = sr.legalMoves(&pos, side)
	}

	// The side to move has lost.
	if len(moves) == 0 {
		if isMaximizing(depth) {
			return 0
		}
		return game.Inf
	}

	minScore, maxScore := game.Inf+1, -1.0
	for _, move := range moves {
		child := pos.Apply(move)
		var score float64
		if capture {
			score = sr.bestScore(child, side, depth, alpha, beta, move.To)
		} else {
			score = sr.bestScore(child, side.Opponent(), depth+1, alpha, beta, game.NoSquare)
		}
		minScore = min(minScore, score)
		maxScore = max(maxScore, score)

		if isMaximizing(depth) {
			alpha = max(alpha, maxScore)
		} else {
			beta = min(beta, minScore)
		}
		if sr.pruning && alpha >= beta {
			sr.metrics.AddCutoff()
			if isMaximizing(depth) {
				return maxScore + 1
			}
			return minScore - 1
		}
	}

	if isMaximizing(depth) {
		return maxScore
	}
	return minScore
}
