// Package sudoku generates and solves percent sudoku puzzles through
// their SAT encoding.
//
// A percent sudoku is a classical 9x9 sudoku with three extra regions:
// the main diagonal and two 3x3 windows (rows/columns 2-4 and 6-8)
// must each hold distinct digits, the three regions drawing a percent
// sign across the grid.
package sudoku

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// N is the grid dimension.
const N = 9

// A Grid is a 9x9 sudoku grid. 0 marks an empty cell.
type Grid [N][N]int

// The two extra windows of the percent variant, as 0-based coordinates.
var (
	upperWindow = [9][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}
	lowerWindow = [9][2]int{{5, 5}, {5, 6}, {5, 7}, {6, 5}, {6, 6}, {6, 7}, {7, 5}, {7, 6}, {7, 7}}
)

func inWindow(w [9][2]int, row, col int) bool {
	for _, cell := range w {
		if cell[0] == row && cell[1] == col {
			return true
		}
	}
	return false
}

// safe reports whether num can be placed at (row, col) without
// clashing with the row, column, box, main diagonal or window regions.
func (g *Grid) safe(row, col, num int) bool {
	for i := 0; i < N; i++ {
		if g[row][i] == num || g[i][col] == num {
			return false
		}
	}
	startRow, startCol := row-row%3, col-col%3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if g[startRow+i][startCol+j] == num {
				return false
			}
		}
	}
	if row == col {
		for i := 0; i < N; i++ {
			if g[i][i] == num {
				return false
			}
		}
	}
	for _, w := range [2][9][2]int{upperWindow, lowerWindow} {
		if !inWindow(w, row, col) {
			continue
		}
		for _, cell := range w {
			if g[cell[0]][cell[1]] == num {
				return false
			}
		}
	}
	return true
}

// fill completes the grid from (row, col) onwards by randomized
// backtracking.
func fill(g *Grid, row, col int, rng *rand.Rand) bool {
	if row == N {
		return true
	}
	if col == N {
		return fill(g, row+1, 0, rng)
	}
	if g[row][col] != 0 {
		return fill(g, row, col+1, rng)
	}
	nums := [N]int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng.Shuffle(N, func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	for _, num := range nums {
		if g.safe(row, col, num) {
			g[row][col] = num
			if fill(g, row, col+1, rng) {
				return true
			}
			g[row][col] = 0
		}
	}
	return false
}

// Fill completes g in place, keeping any digits already present.
// Returns false if the partial grid admits no completion.
func Fill(g *Grid, rng *rand.Rand) bool {
	return fill(g, 0, 0, rng)
}

// Generate builds a random full percent-sudoku grid and digs it down
// to the requested number of clues while keeping the solution unique.
// Digging stops early when no further cell can be removed without
// losing uniqueness, so the puzzle may end up with more clues than
// asked for.
func Generate(rng *rand.Rand, clues int) (full, puzzle Grid, err error) {
	if clues < 0 || clues > N*N {
		return full, puzzle, errors.Errorf("invalid clue count %d", clues)
	}
	if !Fill(&full, rng) {
		return full, puzzle, errors.New("could not generate a full grid")
	}
	puzzle = dig(full, clues, rng)
	return full, puzzle, nil
}

// dig removes cells from a copy of full in random order, rolling back
// any removal that leaves the puzzle without a unique solution.
func dig(full Grid, clues int, rng *rand.Rand) Grid {
	puzzle := full
	toRemove := N*N - clues
	positions := make([][2]int, 0, N*N)
	for i := 0; i < N*N; i++ {
		positions = append(positions, [2]int{i / N, i % N})
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	removed := 0
	for _, p := range positions {
		if removed >= toRemove {
			break
		}
		r, c := p[0], p[1]
		backup := puzzle[r][c]
		puzzle[r][c] = 0
		if CountSolutions(puzzle, 2) != 1 {
			puzzle[r][c] = backup
			continue
		}
		removed++
	}
	return puzzle
}

// Clues returns the number of filled cells.
func Clues(g Grid) int {
	n := 0
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if g[i][j] != 0 {
				n++
			}
		}
	}
	return n
}

// Valid reports whether g is a complete grid satisfying every
// percent-sudoku constraint.
func Valid(g Grid) bool {
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			num := g[i][j]
			if num < 1 || num > N {
				return false
			}
			g2 := g
			g2[i][j] = 0
			if !g2.safe(i, j, num) {
				return false
			}
		}
	}
	return true
}

// String renders the grid with box separators, marking empty cells
// with a question mark.
func (g Grid) String() string {
	var sb strings.Builder
	for i := 0; i < N; i++ {
		if i%3 == 0 && i != 0 {
			sb.WriteString("------+-------+------\n")
		}
		for j := 0; j < N; j++ {
			if j%3 == 0 && j != 0 {
				sb.WriteString("| ")
			}
			if g[i][j] == 0 {
				sb.WriteString("? ")
			} else {
				sb.WriteString(strconv.Itoa(g[i][j]) + " ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
