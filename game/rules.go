package game

import (
	"errors"
	"fmt"
)

// ErrIllegalTurn is returned by ResolveTurn.
var ErrIllegalTurn = errors.New("illegal turn")

// The four diagonal directions as (row, col) steps.
var diagonals = [4]Square{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// forward is the row step of a man of side.
func forward(side Side) int {
	if side == White {
		return -1
	}
	return 1
}

// LegalMoves returns the legal moves of every piece of side in row-major
// scan order. Captures are mandatory: if any piece can capture, only
// captures are returned and capture is true.
func (p *Position) LegalMoves(side Side) (moves []Move, capture bool) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if !p[row][col].BelongsTo(side) {
				continue
			}
			pieceMoves, pieceCaptures := p.LegalMovesFrom(Square{row, col})
			if pieceCaptures && !capture {
				capture = true
				moves = moves[:0]
			}
			if pieceCaptures || !capture {
				moves = append(moves, pieceMoves...)
			}
		}
	}
	return moves, capture
}

// LegalMovesFrom returns the legal moves of the piece on from. If the piece
// can capture, only its captures are returned and capture is true. An empty
// or off-board square has no moves.
func (p *Position) LegalMovesFrom(from Square) (moves []Move, capture bool) {
	if !from.OnBoard() {
		return nil, false
	}
	piece := p.At(from)
	if piece == Empty {
		return nil, false
	}

	if piece.IsKing() {
		genKingCaptures(p, from, piece, &moves)
	} else {
		genManCaptures(p, from, piece, &moves)
	}
	if len(moves) > 0 {
		return moves, true
	}

	if piece.IsKing() {
		genKingSteps(p, from, &moves)
	} else {
		genManSteps(p, from, piece, &moves)
	}
	return moves, false
}

// A man captures by jumping over an adjacent opponent onto the empty square
// right behind it, backwards included.
func genManCaptures(p *Position, from Square, piece Cell, moves *[]Move) {
	for _, d := range diagonals {
		over := Square{from.Row + d.Row, from.Col + d.Col}
		to := Square{from.Row + 2*d.Row, from.Col + 2*d.Col}
		if !to.OnBoard() || p.At(to) != Empty {
			continue
		}
		victim := p.At(over)
		if victim == Empty || victim.Side() == piece.Side() {
			continue
		}
		*moves = append(*moves, NewCapture(from, to, over))
	}
}

func genManSteps(p *Position, from Square, piece Cell, moves *[]Move) {
	row := from.Row + forward(piece.Side())
	for _, col := range [2]int{from.Col - 1, from.Col + 1} {
		to := Square{row, col}
		if !to.OnBoard() || p.At(to) != Empty {
			continue
		}
		*moves = append(*moves, NewMove(from, to))
	}
}

// A king flies: the first piece met on a ray must be an opponent, and every
// empty square behind it up to the next piece or the edge is a landing square.
func genKingCaptures(p *Position, from Square, piece Cell, moves *[]Move) {
	for _, d := range diagonals {
		victim := NoSquare
		for sq := (Square{from.Row + d.Row, from.Col + d.Col}); sq.OnBoard(); sq = (Square{sq.Row + d.Row, sq.Col + d.Col}) {
			c := p.At(sq)
			if c != Empty {
				if c.Side() == piece.Side() || victim != NoSquare {
					break
				}
				victim = sq
				continue
			}
			if victim != NoSquare {
				*moves = append(*moves, NewCapture(from, sq, victim))
			}
		}
	}
}

func genKingSteps(p *Position, from Square, moves *[]Move) {
	for _, d := range diagonals {
		for sq := (Square{from.Row + d.Row, from.Col + d.Col}); sq.OnBoard(); sq = (Square{sq.Row + d.Row, sq.Col + d.Col}) {
			if p.At(sq) != Empty {
				break
			}
			*moves = append(*moves, NewMove(from, sq))
		}
	}
}

// ResolveTurn checks that turn is a complete legal turn for side, matching
// moves by their endpoints, and returns it made of generated moves so that
// capture squares are filled in. A capture chain must go on while the piece
// can capture.
func (p Position) ResolveTurn(side Side, turn Turn) (Turn, error) {
	if len(turn) == 0 {
		return nil, fmt.Errorf("%w: no moves", ErrIllegalTurn)
	}

	resolved := make(Turn, 0, len(turn))
	moves, capture := p.LegalMoves(side)
	for i, entered := range turn {
		if i > 0 {
			if !capture {
				return nil, fmt.Errorf("%w: %v follows a quiet move", ErrIllegalTurn, entered)
			}
			moves, capture = p.LegalMovesFrom(resolved[i-1].To)
			if !capture {
				return nil, fmt.Errorf("%w: %v follows a finished chain", ErrIllegalTurn, entered)
			}
		}
		found := false
		for _, m := range moves {
			if m.Equal(entered) {
				resolved = append(resolved, m)
				p = p.Apply(m)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %v", ErrIllegalTurn, entered)
		}
	}

	if capture {
		if _, more := p.LegalMovesFrom(resolved[len(resolved)-1].To); more {
			return nil, fmt.Errorf("%w: capture chain not finished", ErrIllegalTurn)
		}
	}
	return resolved, nil
}
