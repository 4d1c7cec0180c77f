package solver

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbDecisions    int
	NbConflicts    int
	NbPureLiterals int // Not updated by Solve or SolveParallel; always 0
}

// A Solver solves a given problem. It is the main data structure.
type Solver struct {
	Verbose bool               // Indicates whether the solver should log information during solving. False by default.
	Logger  logrus.FieldLogger // Where diagnostics go when Verbose is set. Nil means discard.
	Stats   Stats              // Statistics about the solving process.

	st     *store
	heur   *heuristic
	opts   Options
	status Status
	model  []bool
	cancel func() bool // Cooperative cancellation hook; nil for sequential solving
}

// New makes a solver for the given problem, with default options.
func New(pb *Problem) *Solver {
	return NewWithOptions(pb, DefaultOptions())
}

// NewWithOptions makes a solver for the given problem. Invalid options
// panic: they indicate a programming error, not a solving outcome.
func NewWithOptions(pb *Problem, opts Options) *Solver {
	if err := opts.validate(); err != nil {
		panic(err.Error())
	}
	s := &Solver{
		Verbose: opts.Verbose,
		opts:    opts,
		status:  pb.Status,
	}
	if s.status == Unsat {
		return s
	}
	s.st = newStore(pb)
	s.heur = newHeuristic(s.st, opts)
	return s
}

func (s *Solver) logger() logrus.FieldLogger {
	if s.Logger != nil {
		return s.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	s.Logger = l
	return l
}

// Solve runs the sequential DPLL search and returns Sat or Unsat.
// On Sat, Model returns a satisfying total assignment.
func (s *Solver) Solve() Status {
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
	if s.dpll() {
		return s.setSat()
	}
	if s.cancelled() {
		return Indet
	}
	return s.setUnsat()
}

// applyUnits binds the literal of every unit clause at level 0.
// Returns false on two contradictory unit clauses.
func (s *Solver) applyUnits() bool {
	for _, c := range s.st.clauses {
		if c.Len() != 1 {
			continue
		}
		lit := c.First()
		switch s.st.litValue(lit) {
		case False:
			return false
		case Unassigned:
			val := False
			if lit.IsPositive() {
				val = True
			}
			s.st.doAssign(lit.Var(), val, Propagated)
		}
	}
	return true
}

// dpll is the recursive decide/propagate/backtrack driver. A conflict
// inside a decision subtree is a local failure: the caller backtracks
// and tries the opposite polarity. Both polarities failing propagates
// the failure upwards; at the root this means Unsat.
func (s *Solver) dpll() bool {
	if s.cancelled() {
		return false
	}
	if s.st.allSatisfied() {
		return true
	}
	v := s.heur.selectVariable()
	if v == 0 {
		return s.st.allSatisfied()
	}
	s.Stats.NbDecisions++
	saved := s.st.level
	s.st.doAssign(v, True, Decision)
	if s.propagate() && s.dpll() {
		return true
	}
	if s.cancelled() {
		return false
	}
	s.undoTo(saved)
	s.st.doAssign(v, False, Decision)
	if !s.propagate() {
		return false
	}
	return s.dpll()
}

// propagate runs unit propagation, feeding the conflict clause to the
// branching heuristic when one arises.
func (s *Solver) propagate() bool {
	conflict := s.st.propagate()
	if conflict < 0 {
		return true
	}
	s.Stats.NbConflicts++
	s.heur.onConflict(s.st.clauses[conflict])
	return false
}

func (s *Solver) undoTo(level int) {
	for _, v := range s.st.backtrackTo(level) {
		s.heur.reinsert(v)
	}
}

func (s *Solver) cancelled() bool {
	return s.cancel != nil && s.cancel()
}

func (s *Solver) setUnsat() Status {
	s.status = Unsat
	if s.Verbose {
		s.logger().WithFields(logrus.Fields{
			"decisions": s.Stats.NbDecisions,
			"conflicts": s.Stats.NbConflicts,
		}).Info("problem is unsatisfiable")
	}
	return Unsat
}

// setSat snapshots the current assignment as the model. Variables left
// unassigned when every clause was already satisfied default to true.
func (s *Solver) setSat() Status {
	s.status = Sat
	s.model = make([]bool, s.st.nbVars)
	for v := 1; v <= s.st.nbVars; v++ {
		s.model[v-1] = s.st.assign[v] != False
	}
	if s.Verbose {
		s.logger().WithFields(logrus.Fields{
			"decisions": s.Stats.NbDecisions,
			"conflicts": s.Stats.NbConflicts,
		}).Info("model found")
	}
	return Sat
}

// Status returns the current status of the solver.
func (s *Solver) Status() Status {
	return s.status
}

// Model returns a slice that associates, to each variable, its binding:
// the binding of variable v is Model()[v-1]. The method panics if the
// solver did not prove satisfiability.
func (s *Solver) Model() []bool {
	if s.status != Sat {
		panic("cannot call Model() on a non-Sat solver")
	}
	model := make([]bool, len(s.model))
	copy(model, s.model)
	return model
}
