package game

import "fmt"

// Board dimensions. Only 8x8 diagonal draughts is supported.
const Size = 8

// Side is one of the two players. White always moves first.
type Side int

const (
	White Side = iota
	Black
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// ParseSide accepts "white"/"w" and "black"/"b".
func ParseSide(s string) (Side, bool) {
	switch s {
	case "white", "w", "White":
		return White, true
	case "black", "b", "Black":
		return Black, true
	}
	return White, false
}

// Cell is the content of one board square. Odd values belong to White, even
// non-zero values to Black, and values >= 3 are kings.
type Cell int8

const (
	Empty Cell = iota
	WhiteMan
	BlackMan
	WhiteKing
	BlackKing
)

func (c Cell) IsEmpty() bool {
	return c == Empty
}

func (c Cell) IsKing() bool {
	return c >= WhiteKing
}

// Side reports the owner of a non-empty cell. The result is meaningless for
// Empty.
func (c Cell) Side() Side {
	if c%2 == 1 {
		return White
	}
	return Black
}

// BelongsTo reports whether the cell holds a piece of side.
func (c Cell) BelongsTo(side Side) bool {
	return c != Empty && c.Side() == side
}

// Crowned returns the king for a man and the cell itself otherwise.
func (c Cell) Crowned() Cell {
	if c == WhiteMan || c == BlackMan {
		return c + 2
	}
	return c
}

// Man returns the man of the given side.
func Man(side Side) Cell {
	return WhiteMan + Cell(side)
}

// King returns the king of the given side.
func King(side Side) Cell {
	return WhiteKing + Cell(side)
}

// Evaluate scores a position for side, higher is better for side.
type Evaluate func(pos Position, side Side) float64

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, ok := ParseSide(string(text))
	if !ok {
		return fmt.Errorf("unknown side %q", text)
	}
	*s = side
	return nil
}
