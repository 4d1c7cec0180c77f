package sudoku

import (
	"github.com/pkg/errors"

	"github.com/hskq/persat/solver"
)

// SAT encoding of percent sudoku: variable VarIndex(r, c, num) is true
// iff cell (r, c) holds num.

// VarIndex maps a 0-based cell and a digit in [1,9] to a CNF variable
// in [1, 729].
func VarIndex(row, col, num int) int {
	return row*81 + col*9 + num
}

// clauses builds the CNF clause list for a puzzle: at-least-one and
// pairwise at-most-one per cell, row, column and box, pairwise
// at-most-one along the main diagonal and inside each window, and one
// unit clause per clue.
func clauses(puzzle Grid) [][]int {
	var cnf [][]int

	atMostOnePairs := func(cells [][2]int) {
		for num := 1; num <= N; num++ {
			for i := 0; i < len(cells)-1; i++ {
				for j := i + 1; j < len(cells); j++ {
					cnf = append(cnf, []int{
						-VarIndex(cells[i][0], cells[i][1], num),
						-VarIndex(cells[j][0], cells[j][1], num),
					})
				}
			}
		}
	}
	atLeastOne := func(cells [][2]int) {
		for num := 1; num <= N; num++ {
			clause := make([]int, 0, N)
			for _, cell := range cells {
				clause = append(clause, VarIndex(cell[0], cell[1], num))
			}
			cnf = append(cnf, clause)
		}
	}

	// Each cell holds at least one digit, and no two.
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			clause := make([]int, 0, N)
			for num := 1; num <= N; num++ {
				clause = append(clause, VarIndex(i, j, num))
			}
			cnf = append(cnf, clause)
			for n1 := 1; n1 < N; n1++ {
				for n2 := n1 + 1; n2 <= N; n2++ {
					cnf = append(cnf, []int{-VarIndex(i, j, n1), -VarIndex(i, j, n2)})
				}
			}
		}
	}

	// Rows and columns.
	for i := 0; i < N; i++ {
		row := make([][2]int, 0, N)
		col := make([][2]int, 0, N)
		for j := 0; j < N; j++ {
			row = append(row, [2]int{i, j})
			col = append(col, [2]int{j, i})
		}
		atLeastOne(row)
		atMostOnePairs(row)
		atLeastOne(col)
		atMostOnePairs(col)
	}

	// Boxes.
	for boxRow := 0; boxRow < 3; boxRow++ {
		for boxCol := 0; boxCol < 3; boxCol++ {
			box := make([][2]int, 0, N)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					box = append(box, [2]int{boxRow*3 + i, boxCol*3 + j})
				}
			}
			atLeastOne(box)
			atMostOnePairs(box)
		}
	}

	// Main diagonal and the two windows: distinctness only.
	diag := make([][2]int, 0, N)
	for i := 0; i < N; i++ {
		diag = append(diag, [2]int{i, i})
	}
	atMostOnePairs(diag)
	atMostOnePairs(upperWindow[:])
	atMostOnePairs(lowerWindow[:])

	// Clues.
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if puzzle[i][j] != 0 {
				cnf = append(cnf, []int{VarIndex(i, j, puzzle[i][j])})
			}
		}
	}
	return cnf
}

// ToCNF encodes the puzzle as a SAT problem over 729 variables.
func ToCNF(puzzle Grid) *solver.Problem {
	return solver.ParseSlice(clauses(puzzle))
}

// Decode rebuilds a grid from a model of the encoding.
func Decode(model []bool) (Grid, error) {
	var g Grid
	if len(model) < N*N*N {
		return g, errors.Errorf("model has %d variables, expected at least %d", len(model), N*N*N)
	}
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			for num := 1; num <= N; num++ {
				if model[VarIndex(i, j, num)-1] {
					if g[i][j] != 0 {
						return g, errors.Errorf("cell (%d,%d) holds both %d and %d", i, j, g[i][j], num)
					}
					g[i][j] = num
				}
			}
			if g[i][j] == 0 {
				return g, errors.Errorf("cell (%d,%d) holds no digit", i, j)
			}
		}
	}
	return g, nil
}

// Solve encodes the puzzle, runs the solver and decodes the model.
// The second return value is false when the puzzle has no solution.
func Solve(puzzle Grid) (Grid, bool, error) {
	s := solver.New(ToCNF(puzzle))
	if s.Solve() != solver.Sat {
		return Grid{}, false, nil
	}
	g, err := Decode(s.Model())
	if err != nil {
		return Grid{}, false, err
	}
	return g, true, nil
}

// CountSolutions counts the models of the puzzle's encoding, stopping
// at max. After each model, a clause negating the digits placed in the
// originally empty cells is added and the solver runs again.
func CountSolutions(puzzle Grid, max int) int {
	base := clauses(puzzle)
	var negations [][]int
	count := 0
	for count < max {
		cnf := make([][]int, 0, len(base)+len(negations))
		cnf = append(cnf, base...)
		cnf = append(cnf, negations...)
		s := solver.New(solver.ParseSlice(cnf))
		if s.Solve() != solver.Sat {
			return count
		}
		count++
		model := s.Model()
		var negation []int
		for i := 0; i < N; i++ {
			for j := 0; j < N; j++ {
				if puzzle[i][j] != 0 {
					continue
				}
				for num := 1; num <= N; num++ {
					if model[VarIndex(i, j, num)-1] {
						negation = append(negation, -VarIndex(i, j, num))
						break
					}
				}
			}
		}
		if len(negation) == 0 {
			return count // No empty cell: the solution is unique by construction
		}
		negations = append(negations, negation)
	}
	return count
}
