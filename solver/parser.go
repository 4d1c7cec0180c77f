package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// The int can be negated. All spaces before the int value are ignored.
// Returns io.EOF iff the stream ended before any digit or minus sign
// (a lone '-' at EOF yields a wrapped error); a value whose last digit
// touches EOF is still returned whole.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, errors.Wrap(err, "could not read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if err == nil && isSpace(*b) {
			break
		}
	}
	if err == io.EOF {
		// The value is complete; report EOF on the next call instead.
		*b = ' '
		err = nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "cannot read int")
	}
	res *= neg
	return res, nil
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, errors.Wrap(err, "cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cnf" {
		return 0, 0, errors.Errorf("invalid syntax %q in header", "p "+strings.TrimSpace(line))
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Errorf("nbvars not an int: %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.Errorf("nbclauses not an int: %q", fields[2])
	}
	if nbVars < 0 || nbClauses < 0 {
		return 0, 0, errors.Errorf("negative count in header %q", strings.TrimSpace(line))
	}
	return nbVars, nbClauses, nil
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding
// Problem. Comment lines start with 'c'; the "p cnf <vars> <clauses>"
// header must precede the clauses; each clause is a sequence of nonzero
// literals terminated by 0, possibly spanning several lines. A literal
// whose variable exceeds the declared count makes the input malformed.
// An empty clause ("0" on its own) makes the problem trivially
// unsatisfiable.
func ParseCNF(f io.Reader) (*Problem, error) {
	r := bufio.NewReader(f)
	var pb Problem
	headerRead := false
	b, err := r.ReadByte()
	for err == nil {
		switch {
		case b == 'c': // Ignore comment
			b, err = r.ReadByte()
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		case b == 'p': // Parse header
			if headerRead {
				return nil, errors.New("duplicate problem header")
			}
			var nbClauses int
			pb.NbVars, nbClauses, err = parseHeader(r)
			if err != nil {
				return nil, errors.Wrap(err, "cannot parse CNF header")
			}
			pb.Clauses = make([]*Clause, 0, nbClauses)
			headerRead = true
		case isSpace(b): // Stray whitespace between clauses
		default:
			if !headerRead {
				return nil, errors.New("clause found before problem header")
			}
			if err2 := parseClause(&b, r, &pb); err2 != nil {
				return nil, err2
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, err
	}
	if !headerRead {
		return nil, errors.New("no problem header found")
	}
	return &pb, nil
}

// parseClause reads one 0-terminated clause and appends it to pb.
// Duplicate literals are dropped. An empty clause marks pb Unsat and
// is not stored.
func parseClause(b *byte, r *bufio.Reader, pb *Problem) error {
	lits := make([]Lit, 0, 3) // Make room for a few lits to avoid resizing in the common case
	for {
		val, err := readInt(b, r)
		if err == io.EOF {
			return errors.New("unfinished clause while EOF found")
		}
		if err != nil {
			return errors.Wrap(err, "cannot parse clause")
		}
		if val == 0 {
			if len(lits) == 0 {
				pb.Status = Unsat
				return nil
			}
			pb.Clauses = append(pb.Clauses, NewClause(lits))
			return nil
		}
		if val > pb.NbVars || -val > pb.NbVars {
			return errors.Errorf("invalid literal %d for problem with %d vars only", val, pb.NbVars)
		}
		if lit := IntToLit(val); !containsLit(lits, lit) {
			lits = append(lits, lit)
		}
	}
}
