package solver

// Branching-variable selection: MOM scores for the early decisions,
// VSIDS activities afterwards.

const (
	rescaleLimit  = 1e100
	rescaleFactor = 1e-100
)

type heuristic struct {
	st          *store
	order       *varHeap
	decay       float64 // In (0,1); the activity increment is divided by it on each conflict
	nbDecisions int
	momBudget   int // How many of the first decisions use MOM
}

func newHeuristic(st *store, opts Options) *heuristic {
	return &heuristic{
		st:        st,
		order:     newVarHeap(st.activity, st.nbVars),
		decay:     opts.VarDecay,
		momBudget: int(opts.MOMFraction * float64(st.nbVars)),
	}
}

// selectVariable returns the next branching variable, or 0 iff every
// variable is already assigned. The chosen polarity is always True
// first; the search tries False on backtrack.
func (h *heuristic) selectVariable() Var {
	var v Var
	if h.nbDecisions < h.momBudget {
		v = h.selectMOM()
	} else {
		v = h.selectVSIDS()
		if v == 0 {
			v = h.selectMOM()
		}
	}
	if v != 0 {
		h.nbDecisions++
	}
	return v
}

// selectMOM picks the unassigned variable maximizing
// pos*neg + pos + neg over the remaining unsatisfied clauses, favoring
// variables frequent in both polarities. Ties break on lowest id.
func (h *heuristic) selectMOM() Var {
	pos, neg := h.st.literalCounts()
	best := Var(0)
	bestScore := -1
	for v := Var(1); v <= Var(h.st.nbVars); v++ {
		if h.st.assign[v] != Unassigned {
			continue
		}
		score := pos[v]*neg[v] + pos[v] + neg[v]
		if score > bestScore {
			bestScore = score
			best = v
		}
	}
	return best
}

// selectVSIDS pops the heap until an unassigned variable shows up.
// Variables popped while assigned are dropped; backtracking reinserts
// them.
func (h *heuristic) selectVSIDS() Var {
	for !h.order.empty() {
		if v := h.order.removeMin(); h.st.assign[v] == Unassigned {
			return v
		}
	}
	return 0
}

// reinsert puts a variable unbound by backtracking back into the
// ordering.
func (h *heuristic) reinsert(v Var) {
	if !h.order.contains(v) {
		h.order.insert(v)
	}
}

// onConflict bumps the activity of every variable in the conflict
// clause and decays the increment, rescaling everything when values
// approach overflow.
func (h *heuristic) onConflict(c *Clause) {
	st := h.st
	for _, lit := range c.lits {
		v := lit.Var()
		st.activity[v] += st.varInc
		if st.activity[v] > rescaleLimit {
			h.rescale()
		}
		if h.order.contains(v) {
			h.order.decrease(v)
		}
	}
	st.varInc /= h.decay
	if st.varInc > rescaleLimit {
		h.rescale()
	}
}

func (h *heuristic) rescale() {
	for v := 1; v <= h.st.nbVars; v++ {
		h.st.activity[v] *= rescaleFactor
	}
	h.st.varInc *= rescaleFactor
}
