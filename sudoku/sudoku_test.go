package sudoku

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillProducesValidGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var g Grid
	require.True(t, Fill(&g, rng))
	assert.True(t, Valid(g))
	assert.Equal(t, N*N, Clues(g))
}

func TestFillKeepsExistingDigits(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var g Grid
	require.True(t, Fill(&g, rng))
	partial := g
	for i := 0; i < N; i += 2 {
		for j := 0; j < N; j += 2 {
			partial[i][j] = 0
		}
	}
	clue := partial[0][1]
	require.True(t, Fill(&partial, rng))
	assert.True(t, Valid(partial))
	assert.Equal(t, clue, partial[0][1])
}

func TestValidRejectsClashes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var g Grid
	require.True(t, Fill(&g, rng))

	bad := g
	bad[0][0], bad[0][1] = bad[0][1], bad[0][0] // break column constraints
	assert.False(t, Valid(bad))

	incomplete := g
	incomplete[4][4] = 0
	assert.False(t, Valid(incomplete))
}

func TestWindowConstraint(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	var g Grid
	require.True(t, Fill(&g, rng))
	// All nine digits must appear in each window.
	for _, w := range [2][9][2]int{upperWindow, lowerWindow} {
		seen := map[int]bool{}
		for _, cell := range w {
			seen[g[cell[0]][cell[1]]] = true
		}
		assert.Len(t, seen, 9)
	}
}

func TestDiagonalConstraint(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	var g Grid
	require.True(t, Fill(&g, rng))
	seen := map[int]bool{}
	for i := 0; i < N; i++ {
		seen[g[i][i]] = true
	}
	assert.Len(t, seen, 9)
}

func TestGenerateKeepsUniqueSolution(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	full, puzzle, err := Generate(rng, 77)
	require.NoError(t, err)
	require.True(t, Valid(full))
	assert.Equal(t, 77, Clues(puzzle))
	assert.Equal(t, 1, CountSolutions(puzzle, 2))

	solved, ok, err := Solve(puzzle)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, full, solved, "a unique-solution puzzle must solve back to its source grid")
}

func TestGenerateRejectsBadClueCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	_, _, err := Generate(rng, -1)
	assert.Error(t, err)
	_, _, err = Generate(rng, 100)
	assert.Error(t, err)
}

func TestGenerateScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("puzzle digging is slow")
	}
	rng := rand.New(rand.NewSource(8))
	full, puzzle, err := Generate(rng, 35)
	require.NoError(t, err)
	require.True(t, Valid(full))
	assert.GreaterOrEqual(t, Clues(puzzle), 35)
	assert.Equal(t, 1, CountSolutions(puzzle, 2))

	solved, ok, err := Solve(puzzle)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, Valid(solved))
}

func TestGridString(t *testing.T) {
	var g Grid
	g[0][0] = 5
	out := g.String()
	assert.Contains(t, out, "5 ")
	assert.Contains(t, out, "?")
	assert.Contains(t, out, "------+-------+------")
}
