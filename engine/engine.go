package engine

import (
	"context"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/gamemaster"
	"draughts/searcher/agent"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const DefaultMaxTurns = 120

type Outcome int

const (
	Draw Outcome = iota
	WhiteWins
	BlackWins
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white"
	case BlackWins:
		return "black"
	case Aborted:
		return "aborted"
	}
	return "draw"
}

func winner(side game.Side) Outcome {
	if side == game.White {
		return WhiteWins
	}
	return BlackWins
}

// Update is sent to the observer after every played turn.
type Update struct {
	Step     int
	Side     game.Side
	Turn     game.Turn
	Position game.Position
}

type Option func(e *Engine)

// Engine runs one game between two agents on a board.
type Engine struct {
	agents     [2]agent.Agent // indexed by game.Side
	board      *gamemaster.Board
	maxTurns   int
	thinkDelay time.Duration
	moveDelay  time.Duration
	observer   func(Update)
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithThinkDelay makes computer agents take at least delay per turn.
func WithThinkDelay(delay time.Duration) Option {
	return func(e *Engine) {
		e.thinkDelay = delay
	}
}

// WithMoveDelay pauses between the moves of a computer agent's capture chain.
func WithMoveDelay(delay time.Duration) Option {
	return func(e *Engine) {
		e.moveDelay = delay
	}
}

func WithBoard(board *gamemaster.Board) Option {
	return func(e *Engine) {
		if board != nil {
			e.board = board
		}
	}
}

// WithObserver registers a function called after every turn and undo.
func WithObserver(observer func(Update)) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// New returns an engine where agents[game.White] plays White.
func New(agents [2]agent.Agent, options ...Option) *Engine {
	if agents[game.White] == nil || agents[game.Black] == nil {
		panic("need an agent for each side")
	}
	e := &Engine{ // Default values
		agents:   agents,
		board:    gamemaster.NewBoard(),
		maxTurns: DefaultMaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Board() *gamemaster.Board {
	return e.board
}

// sideToMove returns the side playing turn n. White plays the even turns.
func sideToMove(n int) game.Side {
	if n%2 == 0 {
		return game.White
	}
	return game.Black
}

// Run plays the game until a side cannot move, the turn limit is reached or
// an agent quits.
func (e *Engine) Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	turn := e.board.Turns()
	gameMetric := metrics.GameMetric{
		ID:           uuid.NewString(),
		StartingSide: sideToMove(turn),
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	finish := func(outcome Outcome) metrics.GameMetric {
		gameMetric.Outcome = outcome.String()
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalTurns = turn
		log.Info().Dur("elapsed", gameMetric.Duration).Msgf("game %s over after %d turns: %v", gameMetric.ID, turn, outcome)
		return gameMetric
	}

	log.Info().Msgf("game %s: %v is starting", gameMetric.ID, gameMetric.StartingSide)

	outcome := Draw
	for turn < e.maxTurns {
		side := sideToMove(turn)
		pos := e.board.Position()
		if moves, _ := pos.LegalMoves(side); len(moves) == 0 {
			outcome = winner(side.Opponent())
			break
		}

		a := e.agents[side]
		start := time.Now()
		played, searchMetric, err := a.FindTurn(ctx, pos, side)
		switch {
		case errors.Is(err, agent.ErrQuit):
			log.Info().Msgf("%v quit", side)
			return Aborted, finish(Aborted), moveMetrics, nil
		case errors.Is(err, agent.ErrUndo):
			turn -= e.undo(side, turn)
			continue
		case err != nil:
			return Aborted, finish(Aborted), moveMetrics, fmt.Errorf("%v failed to find a turn: %w", side, err)
		}

		resolved, err := pos.ResolveTurn(side, played)
		if err != nil {
			if agent.IsInteractive(a) {
				log.Warn().Err(err).Msgf("%v played an illegal turn", side)
				continue
			}
			return Aborted, finish(Aborted), moveMetrics, fmt.Errorf("%v played %v: %w", side, played, err)
		}

		if err := e.play(ctx, a, resolved, start); err != nil {
			return Aborted, finish(Aborted), moveMetrics, err
		}

		log.Info().
			Dur("elapsed", time.Since(start)).
			Int("nodes", searchMetric.Nodes).
			Int("cutoffs", searchMetric.Cutoffs).
			Msgf("turn %d: %v played %v", turn, side, resolved)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Side:         side,
			Moves:        len(resolved),
			SearchMetric: searchMetric,
		})
		e.notify(turn, side, resolved)
		turn++
	}

	return outcome, finish(outcome), moveMetrics, nil
}

// play applies a legal turn to the board. Computer agents are paced by the
// think and move delays.
func (e *Engine) play(ctx context.Context, a agent.Agent, turn game.Turn, start time.Time) error {
	paced := !agent.IsInteractive(a)
	if paced {
		if err := sleep(ctx, e.thinkDelay-time.Since(start)); err != nil {
			return err
		}
	}

	series := 0
	for i, move := range turn {
		if paced && i > 0 {
			if err := sleep(ctx, e.moveDelay); err != nil {
				return err
			}
		}
		if move.IsCapture() {
			series++
		}
		if err := e.board.Play(move, series); err != nil {
			return fmt.Errorf("failed to play %v: %w", move, err)
		}
	}
	return nil
}

// undo takes back turns for side and returns how many. Against a computer
// opponent the reply is taken back too, so side is to move again.
func (e *Engine) undo(side game.Side, turn int) int {
	count := 1
	if !agent.IsInteractive(e.agents[side.Opponent()]) && turn >= 2 {
		count = 2
	}

	undone := 0
	for ; undone < count; undone++ {
		if err := e.board.Rollback(); err != nil {
			log.Warn().Err(err).Msgf("%v can't undo", side)
			break
		}
	}
	if undone > 0 {
		log.Info().Msgf("%v took back %d turn(s)", side, undone)
		e.notify(turn-undone, sideToMove(turn-undone), nil)
	}
	return undone
}

func (e *Engine) notify(step int, side game.Side, turn game.Turn) {
	if e.observer != nil {
		e.observer(Update{Step: step, Side: side, Turn: turn, Position: e.board.Position()})
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
