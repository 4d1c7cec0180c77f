package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hskq/persat/solver"
	"github.com/hskq/persat/sudoku"
)

var (
	log     = logrus.New()
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "persat",
		Short:         "A DPLL SAT solver with a two-worker parallel portfolio and percent-sudoku tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solving details")
	root.AddCommand(solveCmd(), psolveCmd(), sudokuCmd(), verifyCmd())
	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func addSolverFlags(fs *pflag.FlagSet, optionsPath *string, noRes *bool) {
	fs.StringVarP(optionsPath, "options", "o", "", "path to a JSON solver options file")
	fs.BoolVar(noRes, "no-res", false, "do not write a .res file next to the input")
}

func solveCmd() *cobra.Command {
	var optionsPath string
	var noRes bool
	cmd := &cobra.Command{
		Use:   "solve <file.cnf>",
		Short: "Solve a DIMACS CNF file with the sequential DPLL engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], optionsPath, noRes, false)
		},
	}
	addSolverFlags(cmd.Flags(), &optionsPath, &noRes)
	return cmd
}

func psolveCmd() *cobra.Command {
	var optionsPath string
	var noRes bool
	cmd := &cobra.Command{
		Use:   "psolve <file.cnf>",
		Short: "Solve a DIMACS CNF file with the two-worker parallel portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], optionsPath, noRes, true)
		},
	}
	addSolverFlags(cmd.Flags(), &optionsPath, &noRes)
	return cmd
}

func runSolve(path, optionsPath string, noRes, parallel bool) error {
	opts, err := loadOptions(optionsPath)
	if err != nil {
		return err
	}
	pb, err := parseFile(path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"vars":    pb.NbVars,
		"clauses": len(pb.Clauses),
	}).Debug("problem parsed")

	s := solver.NewWithOptions(pb, opts)
	s.Logger = log
	s.Verbose = verbose
	start := time.Now()
	var status solver.Status
	if parallel {
		status = s.SolveParallel()
	} else {
		status = s.Solve()
	}
	res := solver.Result{Status: status, Elapsed: time.Since(start)}
	if status == solver.Sat {
		res.Model = s.Model()
	}
	if err := solver.WriteResult(os.Stdout, res); err != nil {
		return err
	}
	if noRes {
		return nil
	}
	return writeResFile(path, res)
}

func writeResFile(cnfPath string, res solver.Result) error {
	resPath := strings.TrimSuffix(cnfPath, ".cnf") + ".res"
	f, err := os.Create(resPath)
	if err != nil {
		return errors.Wrapf(err, "could not create %q", resPath)
	}
	defer f.Close()
	if err := solver.WriteResult(f, res); err != nil {
		return err
	}
	log.WithField("path", resPath).Debug("result written")
	return nil
}

func parseFile(path string) (*solver.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %q", path)
	}
	defer f.Close()
	pb, err := solver.ParseCNF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse DIMACS file %q", path)
	}
	return pb, nil
}

func loadOptions(path string) (solver.Options, error) {
	if path == "" {
		return solver.DefaultOptions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return solver.Options{}, errors.Wrapf(err, "could not read options file %q", path)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return solver.Options{}, errors.Wrapf(err, "could not parse options file %q", path)
	}
	opts, err := solver.DecodeOptions(raw)
	if err != nil {
		return solver.Options{}, errors.Wrapf(err, "bad options in %q", path)
	}
	return opts, nil
}

func sudokuCmd() *cobra.Command {
	var clues int
	var seed int64
	var parallel bool
	cmd := &cobra.Command{
		Use:   "sudoku",
		Short: "Generate a percent sudoku, then solve it through its SAT encoding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			log.WithFields(logrus.Fields{"clues": clues, "seed": seed}).Debug("generating puzzle")
			_, puzzle, err := sudoku.Generate(rng, clues)
			if err != nil {
				return err
			}
			fmt.Printf("puzzle (%d clues):\n%s\n", sudoku.Clues(puzzle), puzzle)

			pb := sudoku.ToCNF(puzzle)
			s := solver.New(pb)
			s.Logger = log
			s.Verbose = verbose
			start := time.Now()
			var status solver.Status
			if parallel {
				status = s.SolveParallel()
			} else {
				status = s.Solve()
			}
			elapsed := time.Since(start)
			if status != solver.Sat {
				return errors.New("generated puzzle is unsatisfiable; this is a bug")
			}
			solution, err := sudoku.Decode(s.Model())
			if err != nil {
				return err
			}
			fmt.Printf("solution (%.2fms):\n%s", float64(elapsed)/float64(time.Millisecond), solution)
			if !sudoku.Valid(solution) {
				return errors.New("decoded solution violates the grid constraints; this is a bug")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&clues, "clues", "c", 35, "number of clues to keep in the puzzle")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed; 0 means time-based")
	cmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "solve with the parallel portfolio")
	return cmd
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file.cnf> <file.res>",
		Short: "Check a .res result against its CNF file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := parseFile(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return errors.Wrapf(err, "could not open %q", args[1])
			}
			defer f.Close()
			res, err := solver.ParseResult(f)
			if err != nil {
				return errors.Wrapf(err, "could not parse result file %q", args[1])
			}
			if res.Status != solver.Sat {
				fmt.Println("result claims UNSAT; nothing to verify")
				return nil
			}
			if len(res.Model) < pb.NbVars {
				return errors.Errorf("assignment covers %d vars, formula has %d", len(res.Model), pb.NbVars)
			}
			if !pb.Evaluate(res.Model) {
				return errors.New("assignment does NOT satisfy the formula")
			}
			fmt.Println("assignment satisfies every clause")
			return nil
		},
	}
}
