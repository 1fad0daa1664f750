package gamemaster

import (
	"draughts/game"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
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

var chainTurn = game.Turn{
	game.NewCapture(game.Square{Row: 6, Col: 2}, game.Square{Row: 4, Col: 4}, game.Square{Row: 5, Col: 3}),
	game.NewCapture(game.Square{Row: 4, Col: 4}, game.Square{Row: 2, Col: 2}, game.Square{Row: 3, Col: 3}),
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	if diff := cmp.Diff(game.StartPosition(), b.Position()); diff != "" {
		t.Errorf("unexpected start position (-want +got):\n%s", diff)
	}
	if len(b.History()) != 1 {
		t.Errorf("expected one snapshot, got %d", len(b.History()))
	}
	if b.Turns() != 0 {
		t.Errorf("expected no turns, got %d", b.Turns())
	}
}

func TestBoardPlay(t *testing.T) {
	t.Run("quiet move", func(t *testing.T) {
		b := NewBoard()
		move := game.NewMove(game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: 1})

		if err := b.Play(move, 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := game.StartPosition().Apply(move)
		if diff := cmp.Diff(want, b.Position()); diff != "" {
			t.Errorf("unexpected position (-want +got):\n%s", diff)
		}
		if got := b.History(); len(got) != 2 || got[1].Series != 0 {
			t.Errorf("unexpected history %+v", got)
		}
	})

	t.Run("invalid moves are rejected", func(t *testing.T) {
		b := NewBoard()
		tests := []struct {
			name string
			move game.Move
			want error
		}{
			{"empty origin", game.NewMove(game.Square{Row: 4, Col: 1}, game.Square{Row: 3, Col: 2}), ErrInvalidOrigin},
			{"occupied destination", game.NewMove(game.Square{Row: 6, Col: 1}, game.Square{Row: 5, Col: 0}), ErrOccupiedDestination},
			{"off the board", game.NewMove(game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: -1}), ErrOutOfBounds},
		}
		for _, tt := range tests {
			if err := b.Play(tt.move, 0); !errors.Is(err, tt.want) {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
			}
		}
		if len(b.History()) != 1 {
			t.Errorf("rejected moves must not be recorded")
		}
	})

	t.Run("men are crowned", func(t *testing.T) {
		b := NewBoardFrom(game.MustParse(`
			........
			..w.....
			........
			........
			........
			........
			........
			........
		`))

		if err := b.Play(game.NewMove(game.Square{Row: 1, Col: 2}, game.Square{Row: 0, Col: 3}), 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		pos := b.Position()
		if got := pos.At(game.Square{Row: 0, Col: 3}); got != game.WhiteKing {
			t.Errorf("expected a white king, got %v", got)
		}
	})
}

func TestBoardPlayTurn(t *testing.T) {
	t.Run("chain is recorded as one turn", func(t *testing.T) {
		b := NewBoardFrom(chain)

		if err := b.PlayTurn(chainTurn); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		series := []int{}
		for _, s := range b.History()[1:] {
			series = append(series, s.Series)
		}
		if diff := cmp.Diff([]int{1, 2}, series); diff != "" {
			t.Errorf("unexpected series (-want +got):\n%s", diff)
		}
		if b.Turns() != 1 {
			t.Errorf("expected one turn, got %d", b.Turns())
		}
	})

	t.Run("failed turn leaves the board unchanged", func(t *testing.T) {
		b := NewBoardFrom(chain)
		bad := game.Turn{chainTurn[0], game.NewMove(game.Square{Row: 4, Col: 4}, game.Square{Row: 3, Col: 3})}

		if err := b.PlayTurn(bad); !errors.Is(err, ErrOccupiedDestination) {
			t.Fatalf("expected ErrOccupiedDestination, got %v", err)
		}
		if diff := cmp.Diff(chain, b.Position()); diff != "" {
			t.Errorf("unexpected position (-want +got):\n%s", diff)
		}
		if len(b.History()) != 1 {
			t.Errorf("expected history to be restored, got %d snapshots", len(b.History()))
		}
	})
}

func TestBoardRollback(t *testing.T) {
	t.Run("removes a whole chain", func(t *testing.T) {
		b := NewBoardFrom(chain)
		if err := b.PlayTurn(game.Turn{game.NewMove(game.Square{Row: 3, Col: 3}, game.Square{Row: 4, Col: 2})}); err != nil {
			t.Fatal(err)
		}
		afterQuiet := b.Position()
		// Black's man left, so White's chain is now a single capture.
		if err := b.PlayTurn(game.Turn{chainTurn[0]}); err != nil {
			t.Fatal(err)
		}

		if err := b.Rollback(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if diff := cmp.Diff(afterQuiet, b.Position()); diff != "" {
			t.Errorf("unexpected position (-want +got):\n%s", diff)
		}
		if err := b.Rollback(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if diff := cmp.Diff(chain, b.Position()); diff != "" {
			t.Errorf("unexpected position (-want +got):\n%s", diff)
		}
	})

	t.Run("two move chain", func(t *testing.T) {
		b := NewBoardFrom(chain)
		if err := b.PlayTurn(chainTurn); err != nil {
			t.Fatal(err)
		}

		if err := b.Rollback(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if diff := cmp.Diff(chain, b.Position()); diff != "" {
			t.Errorf("unexpected position (-want +got):\n%s", diff)
		}
	})

	t.Run("initial snapshot is kept", func(t *testing.T) {
		b := NewBoard()

		if err := b.Rollback(); !errors.Is(err, ErrNothingToUndo) {
			t.Errorf("expected ErrNothingToUndo, got %v", err)
		}
		if len(b.History()) != 1 {
			t.Errorf("expected the initial snapshot to remain")
		}
	})
}

func TestBoardPromote(t *testing.T) {
	b := NewBoard()

	if err := b.Promote(game.Square{Row: 5, Col: 0}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	pos := b.Position()
	if got := pos.At(game.Square{Row: 5, Col: 0}); got != game.WhiteKing {
		t.Errorf("expected a white king, got %v", got)
	}
	if err := b.Promote(game.Square{Row: 5, Col: 0}); !errors.Is(err, ErrInvalidPromotion) {
		t.Errorf("expected ErrInvalidPromotion for a king, got %v", err)
	}
	if err := b.Promote(game.Square{Row: 4, Col: 0}); !errors.Is(err, ErrInvalidPromotion) {
		t.Errorf("expected ErrInvalidPromotion for an empty square, got %v", err)
	}
	if err := b.Promote(game.Square{Row: 8, Col: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}

	b.Reset()
	if diff := cmp.Diff(game.StartPosition(), b.Position()); diff != "" {
		t.Errorf("unexpected position after reset (-want +got):\n%s", diff)
	}
}
