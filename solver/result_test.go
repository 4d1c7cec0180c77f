package solver

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultSat(t *testing.T) {
	var buf bytes.Buffer
	res := Result{
		Status:  Sat,
		Model:   []bool{true, false, true},
		Elapsed: 1500 * time.Microsecond,
	}
	require.NoError(t, WriteResult(&buf, res))
	assert.Equal(t, "s 1\nv 1 -2 3\nt 1.500000\n", buf.String())
}

func TestWriteResultUnsat(t *testing.T) {
	var buf bytes.Buffer
	res := Result{Status: Unsat, Elapsed: 2 * time.Millisecond}
	require.NoError(t, WriteResult(&buf, res))
	assert.Equal(t, "s 0\nv\nt 2.000000\n", buf.String())
}

func TestParseResultSat(t *testing.T) {
	res, err := ParseResult(strings.NewReader("s 1\nv 1 -2 3\nt 1.500000\n"))
	require.NoError(t, err)
	assert.Equal(t, Sat, res.Status)
	assert.Equal(t, []bool{true, false, true}, res.Model)
	assert.Equal(t, 1500*time.Microsecond, res.Elapsed)
}

func TestParseResultUnsat(t *testing.T) {
	res, err := ParseResult(strings.NewReader("s 0\nv\nt 0.250000\n"))
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Status)
	assert.Nil(t, res.Model)
}

func TestParseResultErrors(t *testing.T) {
	for name, in := range map[string]string{
		"no status":      "v 1 2\nt 1.0\n",
		"bad status":     "s yes\nv\nt 1.0\n",
		"no assignment":  "s 1\nt 1.0\n",
		"bad literal":    "s 1\nv 1 x\nt 1.0\n",
		"zero literal":   "s 1\nv 0\nt 1.0\n",
		"unparsable t":   "s 1\nv 1\nt soon\n",
	} {
		_, err := ParseResult(strings.NewReader(in))
		assert.Error(t, err, "input %q (%s) should not parse", in, name)
	}
}

func TestSolveSequentialAPI(t *testing.T) {
	pb := ParseSlice([][]int{{1, -2}, {2, 3}})
	res := SolveSequential(pb)
	require.Equal(t, Sat, res.Status)
	assert.True(t, pb.Evaluate(res.Model))

	res = SolveSequential(ParseSlice([][]int{{1}, {-1}}))
	assert.Equal(t, Unsat, res.Status)
	assert.Nil(t, res.Model)
}

func TestSolveParallelAPI(t *testing.T) {
	pb := ParseSlice([][]int{{1, -2}, {2, 3}})
	res := SolveParallel(pb)
	require.Equal(t, Sat, res.Status)
	assert.True(t, pb.Evaluate(res.Model))
}

func TestResultRoundTrip(t *testing.T) {
	pb := ParseSlice([][]int{{1, -2}, {2, 3}})
	s := New(pb)
	require.Equal(t, Sat, s.Solve())

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, Result{Status: Sat, Model: s.Model(), Elapsed: time.Millisecond}))
	res, err := ParseResult(&buf)
	require.NoError(t, err)
	assert.True(t, pb.Evaluate(res.Model))
}
