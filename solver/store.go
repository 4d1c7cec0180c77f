package solver

import "fmt"

// A trailEntry records one variable binding so that it can be undone in
// O(1) on backtrack.
type trailEntry struct {
	v     Var
	level int
	kind  assignKind
}

// A store holds the clause database and all the mutable search state:
// the assignment, the trail, the per-clause satisfaction flags, the
// watch lists and the activity vector. The clause database itself is
// immutable once the store is built; everything else is restored by
// backtrackTo. Cloning a store gives a fully independent search state
// that only shares the (read-only) clauses.
type store struct {
	nbVars    int
	clauses   []*Clause
	assign    []value      // Binding of each var; 1-indexed, entry 0 unused
	satisfied []bool       // For each clause, whether it is known satisfied at the current level
	watches   [][]int      // For each literal slot in [1, 2n], ids of the clauses watching it
	watched   [][2]Lit     // For each clause, its two watched lits; second slot is 0 for unit clauses
	trail     []trailEntry // Binding log, in assignment order
	level     int          // Current decision level; 0 means only top-level facts
	pending   []Lit        // FIFO of literals just made false, waiting for propagation
	activity  []float64    // VSIDS activity of each var; 1-indexed
	varInc    float64      // By how much activities are bumped
	undoBuf   []Var        // Reusable buffer for backtrackTo results
}

func newStore(pb *Problem) *store {
	st := &store{
		nbVars:    pb.NbVars,
		clauses:   pb.Clauses,
		assign:    make([]value, pb.NbVars+1),
		satisfied: make([]bool, len(pb.Clauses)),
		watches:   make([][]int, 2*pb.NbVars+1),
		watched:   make([][2]Lit, len(pb.Clauses)),
		activity:  make([]float64, pb.NbVars+1),
		varInc:    1.0,
	}
	for ci := range st.clauses {
		st.watchClause(ci)
	}
	return st
}

// value returns the binding of v.
func (st *store) value(v Var) value {
	return st.assign[v]
}

// litValue returns True iff l is made true by the current assignment,
// False iff it is made false, and Unassigned otherwise.
func (st *store) litValue(l Lit) value {
	assign := st.assign[l.Var()]
	if assign == Unassigned {
		return Unassigned
	}
	if (assign == True) == l.IsPositive() {
		return True
	}
	return False
}

// nbAssigned returns how many variables are currently bound. It always
// equals the trail length.
func (st *store) nbAssigned() int {
	return len(st.trail)
}

// doAssign binds v. The variable must be unassigned: binding a bound
// variable is an invariant break and panics. A Decision opens a new
// decision level; a Propagated binding inherits the current one. The
// literal made false by the binding is queued for propagation.
func (st *store) doAssign(v Var, val value, kind assignKind) {
	if val == Unassigned {
		panic(fmt.Sprintf("cannot assign variable %d to Unassigned", v))
	}
	if st.assign[v] != Unassigned {
		panic(fmt.Sprintf("variable %d is already assigned", v))
	}
	if kind == Decision {
		st.level++
	}
	st.assign[v] = val
	st.trail = append(st.trail, trailEntry{v: v, level: st.level, kind: kind})
	falsified := Lit(v)
	if val == True {
		falsified = falsified.Negation()
	}
	st.pending = append(st.pending, falsified)
}

// backtrackTo undoes every binding made at a level deeper than 'level'
// and discards the pending propagation queue. Satisfaction flags may
// refer to bindings that no longer exist, so they are all dropped and
// re-derived from the remaining assignment. The unbound variables are
// returned so the caller can reinsert them into its ordering; the
// returned slice is only valid until the next call.
func (st *store) backtrackTo(level int) []Var {
	st.undoBuf = st.undoBuf[:0]
	i := len(st.trail)
	for i > 0 && st.trail[i-1].level > level {
		e := st.trail[i-1]
		st.assign[e.v] = Unassigned
		st.undoBuf = append(st.undoBuf, e.v)
		i--
	}
	st.trail = st.trail[:i]
	st.level = level
	st.pending = st.pending[:0]
	st.refreshSatisfied()
	return st.undoBuf
}

// refreshSatisfied recomputes every satisfaction flag from the current
// assignment.
func (st *store) refreshSatisfied() {
	for ci, c := range st.clauses {
		st.satisfied[ci] = st.hasTrueLit(c)
	}
}

func (st *store) hasTrueLit(c *Clause) bool {
	for _, lit := range c.lits {
		if st.litValue(lit) == True {
			return true
		}
	}
	return false
}

// allSatisfied reports whether every clause is satisfied by the current
// assignment, updating the lazily-maintained flags along the way.
func (st *store) allSatisfied() bool {
	all := true
	for ci, c := range st.clauses {
		if st.satisfied[ci] {
			continue
		}
		if st.hasTrueLit(c) {
			st.satisfied[ci] = true
		} else {
			all = false
		}
	}
	return all
}

// clone returns an independent copy of the store. The clause database
// is shared, since it is never mutated; all search state is copied.
func (st *store) clone() *store {
	st2 := &store{
		nbVars:    st.nbVars,
		clauses:   st.clauses,
		assign:    make([]value, len(st.assign)),
		satisfied: make([]bool, len(st.satisfied)),
		watches:   make([][]int, len(st.watches)),
		watched:   make([][2]Lit, len(st.watched)),
		trail:     make([]trailEntry, len(st.trail)),
		level:     st.level,
		pending:   make([]Lit, len(st.pending)),
		activity:  make([]float64, len(st.activity)),
		varInc:    st.varInc,
	}
	copy(st2.assign, st.assign)
	copy(st2.satisfied, st.satisfied)
	copy(st2.watched, st.watched)
	copy(st2.trail, st.trail)
	copy(st2.pending, st.pending)
	copy(st2.activity, st.activity)
	for i, lst := range st.watches {
		if len(lst) > 0 {
			st2.watches[i] = append([]int(nil), lst...)
		}
	}
	return st2
}
