// Package solver gives access to a DPLL-based SAT solver.
//
// The solver takes a formula in conjunctive normal form, either parsed
// from a DIMACS CNF file (see ParseCNF) or built in memory (see
// ParseSlice), and decides whether it is satisfiable.
//
// Typical use:
//
//	pb, err := solver.ParseCNF(f)
//	if err != nil {
//	    // Deal with the parsing error
//	}
//	s := solver.New(pb)
//	status := s.Solve()
//	if status == solver.Sat {
//	    model := s.Model()
//	    // model[v-1] is the binding of variable v
//	}
//
// The engine is a classical DPLL procedure: unit propagation through
// two watched literals per clause, pure-literal elimination at the top
// level, and a branching heuristic that starts with MOM scores and
// switches to VSIDS activities once enough decisions were made. There
// is no clause learning and no restart policy: the solver targets
// problems up to a few tens of thousands of variables and clauses,
// such as sudoku reductions and small DIMACS benchmarks.
//
// SolveParallel races two workers on the two polarities of a single
// split variable. Each worker owns a full copy of the search state, so
// the workers never share mutable data; the first one to find a model
// wins.
package solver
