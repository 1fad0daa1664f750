package game

import "fmt"

// Square addresses a board cell by row and column.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoSquare marks the absence of a square, e.g. a move that captures nothing.
var NoSquare = Square{Row: -1, Col: -1}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Move is one atomic step of a piece.
type Move struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Captured Square `json:"captured"` // NoSquare unless the move captures
}

// NewMove returns a quiet move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Captured: NoSquare}
}

// NewCapture returns a move that removes the piece on captured.
func NewCapture(from, to, captured Square) Move {
	return Move{From: from, To: to, Captured: captured}
}

func (m Move) IsCapture() bool {
	return m.Captured != NoSquare
}

// Equal compares endpoints only. Capture metadata is ignored so that moves
// entered by a player can be matched against generated ones.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

func (m Move) String() string {
	if m.IsCapture() {
		return fmt.Sprintf("%v x%v -> %v", m.From, m.Captured, m.To)
	}
	return fmt.Sprintf("%v -> %v", m.From, m.To)
}

// Turn is everything one side plays in one go: a single move, or a chain of
// captures made by the same piece.
type Turn []Move

// Captures counts the capturing moves of the turn.
func (t Turn) Captures() int {
	n := 0
	for _, m := range t {
		if m.IsCapture() {
			n++
		}
	}
	return n
}

// Equal compares two turns move by move using Move.Equal.
func (t Turn) Equal(other Turn) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if !t[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
