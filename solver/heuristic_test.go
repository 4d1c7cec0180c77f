package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeuristic(cnf [][]int) (*Solver, *heuristic) {
	s := New(ParseSlice(cnf))
	return s, s.heur
}

func TestSelectMOM(t *testing.T) {
	// pos*neg + pos + neg: var 3 scores 2*2+4=8, vars 1 and 2 score
	// 2*1+3=5.
	_, h := newTestHeuristic([][]int{{1, 3}, {1, -3}, {-1, 2}, {-2, 3}, {-3, 2}})
	assert.Equal(t, Var(3), h.selectMOM())
}

func TestSelectMOMTieBreaksOnLowestId(t *testing.T) {
	_, h := newTestHeuristic([][]int{{1, 2}, {-1, -2}})
	assert.Equal(t, Var(1), h.selectMOM())
}

func TestSelectMOMExhausted(t *testing.T) {
	s, h := newTestHeuristic([][]int{{1, 2}})
	s.st.doAssign(1, True, Decision)
	s.st.doAssign(2, True, Propagated)
	assert.Equal(t, Var(0), h.selectMOM())
}

func TestSelectVSIDSFollowsActivity(t *testing.T) {
	s, h := newTestHeuristic([][]int{{1, 2, 3}, {-1, -2, -3}})
	h.momBudget = 0
	h.onConflict(s.st.clauses[1]) // Bumps 1, 2 and 3
	h.onConflict(NewClause([]Lit{-2}))
	assert.Equal(t, Var(2), h.selectVariable())
}

func TestSelectVSIDSTieBreaksOnLowestId(t *testing.T) {
	_, h := newTestHeuristic([][]int{{1, 2, 3}})
	h.momBudget = 0
	assert.Equal(t, Var(1), h.selectVariable())
}

func TestSelectSkipsAssignedVars(t *testing.T) {
	s, h := newTestHeuristic([][]int{{1, 2, 3}})
	h.momBudget = 0
	s.st.doAssign(1, True, Decision)
	assert.Equal(t, Var(2), h.selectVariable())
}

func TestOnConflictDecaysIncrement(t *testing.T) {
	s, h := newTestHeuristic([][]int{{1, 2}})
	before := s.st.varInc
	h.onConflict(s.st.clauses[0])
	assert.Greater(t, s.st.varInc, before, "increment must grow, which is how decay scales old bumps down")
	assert.Equal(t, before, s.st.activity[1])
	assert.Equal(t, before, s.st.activity[2])
}

func TestActivityRescale(t *testing.T) {
	s, h := newTestHeuristic([][]int{{1, 2}})
	s.st.activity[1] = rescaleLimit * 2
	s.st.activity[2] = rescaleLimit
	h.onConflict(s.st.clauses[0])
	require.Less(t, s.st.activity[1], rescaleLimit)
	require.Less(t, s.st.activity[2], rescaleLimit)
	assert.Less(t, s.st.varInc, 1.0)
	// Relative order survives the rescale.
	assert.Greater(t, s.st.activity[1], s.st.activity[2])
}

func TestReinsertAfterBacktrack(t *testing.T) {
	s, h := newTestHeuristic([][]int{{1, 2, 3}, {-1, -2}})
	h.momBudget = 0
	v := h.selectVariable()
	require.Equal(t, Var(1), v)
	require.False(t, h.order.contains(v))
	s.st.doAssign(v, True, Decision)

	s.undoTo(0)
	assert.True(t, h.order.contains(v))
	assert.Equal(t, Var(1), h.selectVariable())
}
