package solver

import (
	"fmt"
	"strings"
)

// A Clause is an immutable disjunction of literals. Its identifier is
// its index in the problem's clause slice. Duplicate literals are
// forbidden; a tautological clause (containing both l and -l) is legal
// and trivially satisfied.
type Clause struct {
	lits []Lit
}

// NewClause returns a clause whose lits are given as an argument.
// The slice is owned by the clause afterwards and must not be modified.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// Len returns the nb of lits in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first lit from the clause.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second lit from the clause.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal from the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// CNF returns a DIMACS CNF representation of the clause.
func (c *Clause) CNF() string {
	var sb strings.Builder
	for _, lit := range c.lits {
		fmt.Fprintf(&sb, "%d ", lit.Int())
	}
	sb.WriteByte('0')
	return sb.String()
}
