package solver

import (
	"fmt"
	"strings"
)

// A Problem is a list of clauses & a nb of vars.
type Problem struct {
	NbVars  int       // Total nb of vars
	Clauses []*Clause // All clauses, including unit ones
	Status  Status    // Unsat if the problem contains an empty clause, Indet otherwise
}

// ParseSlice builds a Problem from a slice of slices of CNF literals.
// The argument is supposed to be a well-formed CNF: a zero literal is a
// programming error and makes the function panic. An empty inner slice
// is the empty clause, making the problem trivially unsatisfiable.
// Duplicate literals within a clause are removed.
func ParseSlice(cnf [][]int) *Problem {
	pb := &Problem{}
	for _, line := range cnf {
		if len(line) == 0 {
			pb.Status = Unsat
			pb.Clauses = nil
			return pb
		}
		lits := make([]Lit, 0, len(line))
		for _, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lit := IntToLit(val)
			if containsLit(lits, lit) {
				continue
			}
			lits = append(lits, lit)
			if v := int(lit.Var()); v > pb.NbVars {
				pb.NbVars = v
			}
		}
		pb.Clauses = append(pb.Clauses, NewClause(lits))
	}
	return pb
}

func containsLit(lits []Lit, l Lit) bool {
	for _, l2 := range lits {
		if l2 == l {
			return true
		}
	}
	return false
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", pb.NbVars, len(pb.Clauses))
	for _, clause := range pb.Clauses {
		fmt.Fprintf(&sb, "%s\n", clause.CNF())
	}
	return sb.String()
}

// Evaluate returns true iff the given total assignment satisfies every
// clause of the problem. model[v-1] is the binding of variable v.
func (pb *Problem) Evaluate(model []bool) bool {
	if pb.Status == Unsat {
		return false
	}
	if len(model) < pb.NbVars {
		return false
	}
	for _, c := range pb.Clauses {
		sat := false
		for i := 0; i < c.Len(); i++ {
			lit := c.Get(i)
			if model[lit.Var()-1] == lit.IsPositive() {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}
