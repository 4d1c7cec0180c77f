package sudoku

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hskq/persat/solver"
)

func TestVarIndex(t *testing.T) {
	assert.Equal(t, 1, VarIndex(0, 0, 1))
	assert.Equal(t, 9, VarIndex(0, 0, 9))
	assert.Equal(t, 10, VarIndex(0, 1, 1))
	assert.Equal(t, 729, VarIndex(8, 8, 9))
}

func TestToCNFVariableCount(t *testing.T) {
	pb := ToCNF(Grid{})
	assert.Equal(t, 729, pb.NbVars)
	assert.NotEqual(t, solver.Unsat, pb.Status)
}

func TestSolveEmptyGrid(t *testing.T) {
	solved, ok, err := Solve(Grid{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, Valid(solved))
}

func TestSolveRespectsClues(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	var full Grid
	require.True(t, Fill(&full, rng))

	puzzle := full
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if (i+j)%3 == 0 {
				puzzle[i][j] = 0
			}
		}
	}
	solved, ok, err := Solve(puzzle)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, Valid(solved))
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if puzzle[i][j] != 0 {
				assert.Equal(t, puzzle[i][j], solved[i][j])
			}
		}
	}
}

func TestSolveContradictoryClues(t *testing.T) {
	var puzzle Grid
	puzzle[0][0] = 5
	puzzle[0][1] = 5
	_, ok, err := Solve(puzzle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveParallelOnPuzzle(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var full Grid
	require.True(t, Fill(&full, rng))
	puzzle := full
	for i := 0; i < N; i++ {
		puzzle[i][(i*2)%N] = 0
		puzzle[i][(i*2+1)%N] = 0
	}

	s := solver.New(ToCNF(puzzle))
	require.Equal(t, solver.Sat, s.SolveParallel())
	solved, err := Decode(s.Model())
	require.NoError(t, err)
	assert.True(t, Valid(solved))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(make([]bool, 10))
	assert.Error(t, err)

	model := make([]bool, 729)
	_, err = Decode(model) // no digit anywhere
	assert.Error(t, err)

	model[VarIndex(0, 0, 1)-1] = true
	model[VarIndex(0, 0, 2)-1] = true
	_, err = Decode(model) // two digits in one cell
	assert.Error(t, err)
}

func TestCountSolutions(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	var full Grid
	require.True(t, Fill(&full, rng))
	assert.Equal(t, 1, CountSolutions(full, 2), "a full grid has exactly one model")
	assert.Equal(t, 2, CountSolutions(Grid{}, 2), "the empty grid has more than one completion")
}

func TestDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	var full Grid
	require.True(t, Fill(&full, rng))
	model := make([]bool, 729)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			model[VarIndex(i, j, full[i][j])-1] = true
		}
	}
	g, err := Decode(model)
	require.NoError(t, err)
	assert.Equal(t, full, g)
}
