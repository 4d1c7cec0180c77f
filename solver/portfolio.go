package solver

import (
	"sync"
	"sync/atomic"
)

// Two-worker parallel portfolio: after top-level propagation, the
// search space is split on one variable and two workers race on the
// complementary polarities. Since v OR -v is tautological, the two
// subproblems cover the whole space and either worker's model is valid
// for the original formula.

// SolveParallel races two DPLL workers on the two polarities of a
// balance-biased split variable and returns Sat or Unsat. Each worker
// owns a private copy of the search state; the only shared state is the
// first-solution-wins flag and a mutex-guarded model snapshot, which
// the caller reads only after joining both workers.
func (s *Solver) SolveParallel() Status {
	if s.status == Unsat {
		return Unsat
	}
	s.status = Indet
	if !s.applyUnits() {
		return s.setUnsat()
	}
	if conflict := s.st.propagate(); conflict >= 0 {
		return s.setUnsat()
	}
	if conflict := s.st.eliminatePureLiterals(); conflict >= 0 {
		return s.setUnsat()
	}
	if s.st.allSatisfied() {
		return s.setSat()
	}
	v := s.splitVariable()
	if v == 0 {
		if s.st.allSatisfied() {
			return s.setSat()
		}
		return s.setUnsat()
	}
	if s.Verbose {
		s.logger().WithField("split_var", v).Info("forking portfolio workers")
	}

	var (
		solutionFound atomic.Bool
		resultReady   atomic.Bool
		mu            sync.Mutex
		winner        []bool
		wg            sync.WaitGroup
	)
	cancel := func() bool { return solutionFound.Load() }
	for _, polarity := range []value{True, False} {
		w := s.fork(cancel)
		polarity := polarity
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.st.doAssign(v, polarity, Decision)
			if !w.propagate() {
				return // This half of the space is empty
			}
			if !w.dpll() {
				return // Unsat in this half, or cancelled by the other worker
			}
			if !solutionFound.CompareAndSwap(false, true) {
				return // The other worker won; discard our model
			}
			w.setSat()
			mu.Lock()
			winner = w.Model()
			mu.Unlock()
			resultReady.Store(true)
		}()
	}
	wg.Wait()
	if solutionFound.Load() && resultReady.Load() {
		s.model = winner
		s.status = Sat
		if s.Verbose {
			s.logger().Info("portfolio worker found a model")
		}
		return Sat
	}
	return s.setUnsat()
}

// fork clones the search state into a worker solver sharing only the
// immutable clause database with its parent.
func (s *Solver) fork(cancel func() bool) *Solver {
	w := &Solver{
		Verbose: s.Verbose,
		Logger:  s.Logger,
		opts:    s.opts,
		status:  Indet,
		cancel:  cancel,
	}
	w.st = s.st.clone()
	w.heur = newHeuristic(w.st, s.opts)
	return w
}

// splitVariable picks the unassigned variable maximizing
// total * (1 - |pos-neg|/total) over the remaining clauses: a balanced
// variable yields two subproblems of comparable depth, which lowers the
// expected wall clock of the slower branch. Ties break on lowest id;
// 0 means every variable is assigned.
func (s *Solver) splitVariable() Var {
	pos, neg := s.st.literalCounts()
	best := Var(0)
	bestScore := -1.0
	for v := Var(1); v <= Var(s.st.nbVars); v++ {
		if s.st.assign[v] != Unassigned {
			continue
		}
		total := pos[v] + neg[v]
		score := 0.0
		if total > 0 {
			diff := pos[v] - neg[v]
			if diff < 0 {
				diff = -diff
			}
			score = float64(total) * (1.0 - float64(diff)/float64(total))
		}
		if score > bestScore {
			bestScore = score
			best = v
		}
	}
	return best
}
