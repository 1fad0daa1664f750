package game

import (
	"errors"
	"fmt"
)

// Inf scores a position where the opponent has nothing left. It stays finite
// so that the search can add and subtract one from it.
const Inf = 1e9

// ErrUnknownScoringMode is returned by ParseScoringMode.
var ErrUnknownScoringMode = errors.New("unknown scoring mode")

// ScoringMode selects the evaluation function.
type ScoringMode int

const (
	// Material counts pieces, a king worth four men.
	Material ScoringMode = iota
	// MaterialAndPotential also rewards men for advancing, a king worth five men.
	MaterialAndPotential
)

func (m ScoringMode) String() string {
	if m == MaterialAndPotential {
		return "material_and_potential"
	}
	return "material"
}

// ParseScoringMode accepts the mode names and the legacy settings names
// "Number" and "NumberAndPotential".
func ParseScoringMode(s string) (ScoringMode, error) {
	switch s {
	case "material", "Number", "":
		return Material, nil
	case "material_and_potential", "NumberAndPotential":
		return MaterialAndPotential, nil
	}
	return Material, fmt.Errorf("%w: %q", ErrUnknownScoringMode, s)
}

func (m ScoringMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ScoringMode) UnmarshalText(text []byte) error {
	mode, err := ParseScoringMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Evaluator returns the evaluation function of the mode.
func (m ScoringMode) Evaluator() Evaluate {
	if m == MaterialAndPotential {
		return EvaluateMaterialAndPotential
	}
	return EvaluateMaterial
}

// EvaluateMaterial returns side's material divided by the opponent's, kings
// counting four. The opponent having no pieces scores Inf; side having no
// pieces scores 0.
func EvaluateMaterial(pos Position, side Side) float64 {
	return evaluate(&pos, side, false)
}

// EvaluateMaterialAndPotential is EvaluateMaterial with kings counting five
// and every man adding 0.05 per row advanced toward promotion.
func EvaluateMaterialAndPotential(pos Position, side Side) float64 {
	return evaluate(&pos, side, true)
}

func evaluate(p *Position, side Side, potential bool) float64 {
	var pieces [2]int
	var men, kings [2]float64
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c := p[row][col]
			if c == Empty {
				continue
			}
			s := c.Side()
			pieces[s]++
			if c.IsKing() {
				kings[s]++
				continue
			}
			men[s]++
			if potential {
				men[s] += 0.05 * float64(advance(s, row))
			}
		}
	}

	// Zero checks use raw counts so the potential bonus can never mask them.
	own, opp := side, side.Opponent()
	if pieces[opp] == 0 {
		return Inf
	}
	if pieces[own] == 0 {
		return 0
	}

	kingValue := 4.0
	if potential {
		kingValue = 5.0
	}
	return (men[own] + kings[own]*kingValue) / (men[opp] + kings[opp]*kingValue)
}

// advance is how many rows a man of side on row has moved from its back rank.
func advance(side Side, row int) int {
	if side == White {
		return Size - 1 - row
	}
	return row
}
