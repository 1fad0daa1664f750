package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPosition is returned when a textual position cannot be parsed.
var ErrInvalidPosition = errors.New("invalid position")

// Position is the 8x8 grid indexed [row][col]. It is a value: assigning or
// passing it copies the whole board.
type Position [Size][Size]Cell

func (p *Position) At(sq Square) Cell {
	return p[sq.Row][sq.Col]
}

func (p *Position) Set(sq Square, c Cell) {
	p[sq.Row][sq.Col] = c
}

// PromotionRow is the row on which a man of side becomes a king.
func PromotionRow(side Side) int {
	if side == White {
		return 0
	}
	return Size - 1
}

// Apply returns the position after m, removing the captured piece and
// crowning a man that lands on its promotion row. The receiver is unchanged.
// m is assumed to be legal.
func (p Position) Apply(m Move) Position {
	if m.IsCapture() {
		p.Set(m.Captured, Empty)
	}
	piece := p.At(m.From)
	if !piece.IsKing() && m.To.Row == PromotionRow(piece.Side()) {
		piece = piece.Crowned()
	}
	p.Set(m.To, piece)
	p.Set(m.From, Empty)
	return p
}

// ApplyTurn applies every move of t in order.
func (p Position) ApplyTurn(t Turn) Position {
	for _, m := range t {
		p = p.Apply(m)
	}
	return p
}

// Count returns the number of men and kings of side.
func (p *Position) Count(side Side) (men, kings int) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c := p[row][col]
			if !c.BelongsTo(side) {
				continue
			}
			if c.IsKing() {
				kings++
			} else {
				men++
			}
		}
	}
	return men, kings
}

var cellToChar = map[Cell]byte{
	Empty:     '.',
	WhiteMan:  'w',
	BlackMan:  'b',
	WhiteKing: 'W',
	BlackKing: 'B',
}

var charToCell = map[byte]Cell{
	'.': Empty,
	'w': WhiteMan,
	'b': BlackMan,
	'W': WhiteKing,
	'B': BlackKing,
}

// Rows renders the position as 8 strings, row 0 first.
func (p Position) Rows() []string {
	rows := make([]string, Size)
	for row := 0; row < Size; row++ {
		var sb strings.Builder
		for col := 0; col < Size; col++ {
			sb.WriteByte(cellToChar[p[row][col]])
		}
		rows[row] = sb.String()
	}
	return rows
}

func (p Position) String() string {
	return strings.Join(p.Rows(), "\n")
}

// ParseRows is the inverse of Rows.
func ParseRows(rows []string) (Position, error) {
	var p Position
	if len(rows) != Size {
		return p, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidPosition, Size, len(rows))
	}
	for row, line := range rows {
		if len(line) != Size {
			return p, fmt.Errorf("%w: row %d has %d cells", ErrInvalidPosition, row, len(line))
		}
		for col := 0; col < Size; col++ {
			c, ok := charToCell[line[col]]
			if !ok {
				return p, fmt.Errorf("%w: unknown cell %q at %v", ErrInvalidPosition, line[col], Square{row, col})
			}
			p[row][col] = c
		}
	}
	return p, nil
}

// Parse reads a position written one row per line, blank lines and
// surrounding spaces ignored.
func Parse(s string) (Position, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	return ParseRows(rows)
}

// MustParse is Parse for positions known to be valid, e.g. in tests.
func MustParse(s string) Position {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Rows())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	parsed, err := ParseRows(rows)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
