package solver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// A Result is the outcome of a solve: its status, the model when the
// status is Sat, and the elapsed wall-clock time.
type Result struct {
	Status  Status
	Model   []bool // Binding of variable v at index v-1; nil unless Status is Sat
	Elapsed time.Duration
}

// SolveSequential solves pb with the sequential DPLL engine and
// reports the outcome together with the elapsed wall-clock time.
func SolveSequential(pb *Problem) Result {
	return timedSolve(pb, false)
}

// SolveParallel solves pb with the two-worker portfolio and reports the
// outcome together with the elapsed wall-clock time.
func SolveParallel(pb *Problem) Result {
	return timedSolve(pb, true)
}

func timedSolve(pb *Problem, parallel bool) Result {
	s := New(pb)
	start := time.Now()
	var status Status
	if parallel {
		status = s.SolveParallel()
	} else {
		status = s.Solve()
	}
	res := Result{Status: status, Elapsed: time.Since(start)}
	if status == Sat {
		res.Model = s.Model()
	}
	return res
}

// WriteResult writes res in the .res format:
//
//	s <1|0>
//	v <lit1> <lit2> ... <litn>
//	t <milliseconds>
//
// where "s 1" means satisfiable, followed by a full assignment as
// signed literals (positive = true), and "s 0" means unsatisfiable,
// with an empty but still present "v" line. Time is wall clock in
// milliseconds.
func WriteResult(w io.Writer, res Result) error {
	code := 0
	if res.Status == Sat {
		code = 1
	}
	if _, err := fmt.Fprintf(w, "s %d\nv", code); err != nil {
		return errors.Wrap(err, "could not write result")
	}
	if res.Status == Sat {
		for i, val := range res.Model {
			lit := i + 1
			if !val {
				lit = -lit
			}
			if _, err := fmt.Fprintf(w, " %d", lit); err != nil {
				return errors.Wrap(err, "could not write model")
			}
		}
	}
	if _, err := fmt.Fprintf(w, "\nt %f\n", float64(res.Elapsed)/float64(time.Millisecond)); err != nil {
		return errors.Wrap(err, "could not write elapsed time")
	}
	return nil
}

// ParseResult reads a .res stream written by WriteResult.
func ParseResult(r io.Reader) (Result, error) {
	var res Result
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return res, errors.Wrap(err, "could not read result")
	}

	sLine, ok := lo.Find(lines, func(l string) bool { return strings.HasPrefix(l, "s ") })
	if !ok {
		return res, errors.New("no status line in result")
	}
	switch strings.TrimSpace(sLine[2:]) {
	case "1":
		res.Status = Sat
	case "0":
		res.Status = Unsat
	default:
		return res, errors.Errorf("invalid status line %q", sLine)
	}

	if res.Status == Sat {
		vLine, ok := lo.Find(lines, func(l string) bool { return l == "v" || strings.HasPrefix(l, "v ") })
		if !ok {
			return res, errors.New("no assignment line in satisfiable result")
		}
		bindings := map[int]bool{}
		nbVars := 0
		for _, field := range strings.Fields(vLine)[1:] {
			val, err := strconv.Atoi(field)
			if err != nil || val == 0 {
				return res, errors.Errorf("invalid literal %q in assignment line", field)
			}
			v := val
			if v < 0 {
				v = -v
			}
			bindings[v] = val > 0
			if v > nbVars {
				nbVars = v
			}
		}
		res.Model = make([]bool, nbVars)
		for v, val := range bindings {
			res.Model[v-1] = val
		}
	}

	if tLine, ok := lo.Find(lines, func(l string) bool { return strings.HasPrefix(l, "t ") }); ok {
		ms, err := strconv.ParseFloat(strings.TrimSpace(tLine[2:]), 64)
		if err != nil {
			return res, errors.Errorf("invalid time line %q", tLine)
		}
		res.Elapsed = time.Duration(ms * float64(time.Millisecond))
	}
	return res, nil
}
