package solver

// Two-watched-literal unit propagation and pure-literal elimination.

// watchClause registers the initial watches of a clause: its first two
// literals, or its sole literal for a unit clause.
func (st *store) watchClause(ci int) {
	c := st.clauses[ci]
	if c.Len() == 1 {
		first := c.First()
		st.watched[ci] = [2]Lit{first, 0}
		idx := first.watchIndex(st.nbVars)
		st.watches[idx] = append(st.watches[idx], ci)
		return
	}
	first, second := c.First(), c.Second()
	st.watched[ci] = [2]Lit{first, second}
	i1 := first.watchIndex(st.nbVars)
	i2 := second.watchIndex(st.nbVars)
	st.watches[i1] = append(st.watches[i1], ci)
	st.watches[i2] = append(st.watches[i2], ci)
}

// replacement looks for a new watchable literal in clause ci: one that
// is not the other watch and not currently false. Returns 0 if none
// exists. The outgoing watch needs no special casing since it is false.
func (st *store) replacement(ci int, other Lit) Lit {
	for _, lit := range st.clauses[ci].lits {
		if lit != other && st.litValue(lit) != False {
			return lit
		}
	}
	return 0
}

// propagate drains the pending queue, revisiting the watch list of
// every literal that became false. For each watching clause it either
// finds the clause satisfied, migrates the watch, derives a unit
// binding, or detects a conflict. It returns the id of the conflicting
// clause, or -1 if the queue drained without conflict.
func (st *store) propagate() int {
	for qi := 0; qi < len(st.pending); qi++ {
		falsified := st.pending[qi]
		wi := falsified.watchIndex(st.nbVars)
		i := 0
		for i < len(st.watches[wi]) {
			ci := st.watches[wi][i]
			if st.satisfied[ci] {
				i++
				continue
			}
			other := st.watched[ci][0]
			if other == falsified {
				other = st.watched[ci][1]
			}
			if other != 0 && st.litValue(other) == True {
				st.satisfied[ci] = true
				i++
				continue
			}
			if repl := st.replacement(ci, other); repl != 0 {
				// Migrate the watch from the falsified literal to repl.
				if st.watched[ci][0] == falsified {
					st.watched[ci][0] = repl
				} else {
					st.watched[ci][1] = repl
				}
				lst := st.watches[wi]
				lst[i] = lst[len(lst)-1]
				st.watches[wi] = lst[:len(lst)-1]
				ri := repl.watchIndex(st.nbVars)
				st.watches[ri] = append(st.watches[ri], ci)
				continue // A new clause now sits at index i
			}
			if other == 0 || st.litValue(other) == False {
				// Every literal of the clause is false.
				st.pending = st.pending[:0]
				return ci
			}
			// other is the last unassigned literal: unit.
			val := False
			if other.IsPositive() {
				val = True
			}
			st.doAssign(other.Var(), val, Propagated)
			i++
		}
	}
	st.pending = st.pending[:0]
	return -1
}

// literalCounts counts, for each unassigned variable, its positive and
// negative occurrences in clauses not yet known satisfied.
func (st *store) literalCounts() (pos, neg []int) {
	pos = make([]int, st.nbVars+1)
	neg = make([]int, st.nbVars+1)
	for ci, c := range st.clauses {
		if st.satisfied[ci] {
			continue
		}
		for _, lit := range c.lits {
			v := lit.Var()
			if st.assign[v] != Unassigned {
				continue
			}
			if lit.IsPositive() {
				pos[v]++
			} else {
				neg[v]++
			}
		}
	}
	return pos, neg
}

// eliminatePureLiterals assigns, at the top level, every variable that
// occurs with a single polarity in the remaining unsatisfied clauses,
// and propagates each such binding. A pure literal cannot falsify any
// clause, so these bindings preserve satisfiability. The pass repeats
// until a fixed point. Returns the id of a conflicting clause if the
// induced propagation fails, -1 otherwise. Must only run at level 0.
func (st *store) eliminatePureLiterals() int {
	if st.level != 0 {
		panic("pure-literal elimination outside of decision level 0")
	}
	for {
		st.refreshSatisfied()
		pos, neg := st.literalCounts()
		assignedAny := false
		for v := Var(1); v <= Var(st.nbVars); v++ {
			if st.assign[v] != Unassigned {
				continue
			}
			switch {
			case pos[v] > 0 && neg[v] == 0:
				st.doAssign(v, True, Propagated)
			case neg[v] > 0 && pos[v] == 0:
				st.doAssign(v, False, Propagated)
			default:
				continue
			}
			assignedAny = true
			if conflict := st.propagate(); conflict >= 0 {
				return conflict
			}
		}
		if !assignedAny {
			return -1
		}
	}
}
