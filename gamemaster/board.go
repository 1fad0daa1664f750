package gamemaster

import (
	"draughts/game"
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds         = errors.New("square out of bounds")
	ErrInvalidOrigin       = errors.New("origin square is empty, can't move")
	ErrOccupiedDestination = errors.New("destination square is not empty, can't move")
	ErrInvalidPromotion    = errors.New("can't promote the piece on this square")
	ErrNothingToUndo       = errors.New("nothing to undo")
)

// Snapshot is the position after one atomic move. Series is the index of
// the move inside a capture chain, 0 for a quiet move.
type Snapshot struct {
	Position game.Position
	Series   int
}

// Board owns the live position of a game and the history needed for undo.
// It is not safe for concurrent use.
type Board struct {
	position game.Position
	history  []Snapshot
}

// NewBoard returns a board set up with the start position.
func NewBoard() *Board {
	return NewBoardFrom(game.StartPosition())
}

// NewBoardFrom returns a board set up with pos.
func NewBoardFrom(pos game.Position) *Board {
	b := &Board{}
	b.reset(pos)
	return b
}

func (b *Board) reset(pos game.Position) {
	b.position = pos
	b.history = []Snapshot{{Position: pos}}
}

// Reset restores the start position and clears the history.
func (b *Board) Reset() {
	b.reset(game.StartPosition())
}

// Position returns a copy of the live position.
func (b *Board) Position() game.Position {
	return b.position
}

// History returns a copy of every snapshot, the initial one first.
func (b *Board) History() []Snapshot {
	return append([]Snapshot(nil), b.history...)
}

// Turns counts the turns played since the initial snapshot.
func (b *Board) Turns() int {
	n := 0
	for _, s := range b.history[1:] {
		if s.Series <= 1 {
			n++
		}
	}
	return n
}

// Play moves a piece, removing the captured piece and crowning a man that
// reaches its far row, and records the result in the history. Only the
// squares are validated, not the rules.
func (b *Board) Play(move game.Move, series int) error {
	if !move.From.OnBoard() || !move.To.OnBoard() || (move.IsCapture() && !move.Captured.OnBoard()) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, move)
	}
	if b.position.At(move.To) != game.Empty {
		return fmt.Errorf("%w: %v", ErrOccupiedDestination, move.To)
	}
	if b.position.At(move.From) == game.Empty {
		return fmt.Errorf("%w: %v", ErrInvalidOrigin, move.From)
	}

	b.position = b.position.Apply(move)
	b.history = append(b.history, Snapshot{Position: b.position, Series: series})
	return nil
}

// PlayTurn plays every move of turn, numbering captures 1, 2, ... in the
// history. The board is left unchanged if any move fails.
func (b *Board) PlayTurn(turn game.Turn) error {
	position, size := b.position, len(b.history)
	series := 0
	for _, move := range turn {
		if move.IsCapture() {
			series++
		}
		if err := b.Play(move, series); err != nil {
			b.position, b.history = position, b.history[:size]
			return fmt.Errorf("failed to play %v: %w", turn, err)
		}
	}
	return nil
}

// Promote turns the man on sq into a king without recording history.
func (b *Board) Promote(sq game.Square) error {
	if !sq.OnBoard() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, sq)
	}
	piece := b.position.At(sq)
	if piece == game.Empty || piece.IsKing() {
		return fmt.Errorf("%w: %v", ErrInvalidPromotion, sq)
	}
	b.position.Set(sq, piece.Crowned())
	return nil
}

// Rollback takes back the last turn, a whole capture chain included. The
// initial snapshot is never removed.
func (b *Board) Rollback() error {
	if len(b.history) <= 1 {
		return ErrNothingToUndo
	}
	series := max(1, b.history[len(b.history)-1].Series)
	for ; series > 0 && len(b.history) > 1; series-- {
		b.history = b.history[:len(b.history)-1]
	}
	b.position = b.history[len(b.history)-1].Position
	return nil
}
