package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateMaterial(t *testing.T) {
	t.Run("balanced start", func(t *testing.T) {
		require.Equal(t, 1.0, EvaluateMaterial(StartPosition(), White))
		require.InDelta(t, 1.0, EvaluateMaterialAndPotential(StartPosition(), Black), 1e-9)
	})

	t.Run("kings count four", func(t *testing.T) {
		pos := MustParse(`
			........
			........
			...b....
			........
			.....b..
			........
			.W......
			w.......
		`)

		require.Equal(t, 2.5, EvaluateMaterial(pos, White))
		require.Equal(t, 0.4, EvaluateMaterial(pos, Black))
	})

	t.Run("sentinels", func(t *testing.T) {
		pos := MustParse(`
			........
			........
			........
			........
			........
			........
			.W......
			........
		`)

		require.Equal(t, Inf, EvaluateMaterial(pos, White))
		require.Equal(t, 0.0, EvaluateMaterial(pos, Black))
		require.Equal(t, Inf, EvaluateMaterialAndPotential(pos, White))
		require.Equal(t, 0.0, EvaluateMaterialAndPotential(pos, Black))
	})
}

func TestEvaluateMaterialAndPotential(t *testing.T) {
	pos := MustParse(`
		........
		w.......
		........
		........
		........
		....B...
		........
		........
	`)

	// a white man six rows up against a black king worth five
	require.InDelta(t, 1.3/5, EvaluateMaterialAndPotential(pos, White), 1e-9)
	require.InDelta(t, 5/1.3, EvaluateMaterialAndPotential(pos, Black), 1e-9)
	require.InDelta(t, 0.25, EvaluateMaterial(pos, White), 1e-9)
}

func TestScoringMode(t *testing.T) {
	for _, name := range []string{"material", "Number"} {
		mode, err := ParseScoringMode(name)
		require.NoError(t, err)
		require.Equal(t, Material, mode)
	}
	for _, name := range []string{"material_and_potential", "NumberAndPotential"} {
		mode, err := ParseScoringMode(name)
		require.NoError(t, err)
		require.Equal(t, MaterialAndPotential, mode)
	}

	_, err := ParseScoringMode("mobility")
	require.ErrorIs(t, err, ErrUnknownScoringMode)

	var mode ScoringMode
	require.NoError(t, mode.UnmarshalText([]byte("material_and_potential")))
	require.Equal(t, MaterialAndPotential, mode)
	require.Equal(t, "material_and_potential", mode.String())
}
