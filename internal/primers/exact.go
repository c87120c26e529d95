package primers

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InfeasibleError is returned when no selection satisfies the
// cardinality and used-pair constraints simultaneously.
type InfeasibleError struct {
	NumForward int
	NumReverse int
	UsedPairs  int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf(
		"no feasible selection of %d forward and %d reverse primers under %d used-pair constraints",
		e.NumForward, e.NumReverse, e.UsedPairs,
	)
}

// SolveCmd runs the exact selector from the command line.
func SolveCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)

	out, err := Run(flags, conf, true)
	if err != nil {
		stderr.Fatalln(err)
	}

	report(cmd.OutOrStdout(), out)
}

// Solve finds the selection with the minimum diversity score as a
// binary integer program:
//
//   - one binary inclusion variable per primer
//   - one non-negative deviation variable per (position, base),
//     bounded below by both ideal-count and count-ideal so it
//     linearizes the absolute deviation
//   - equality constraints pinning the forward and reverse counts
//   - for every used (forward, reverse) pair present in the pools,
//     forwardVar + reverseVar <= 1
//
// The used-pair constraint forbids reselecting both members of a pair
// together; either member may still be selected alongside a new
// partner, which keeps previously used primers in the reusable
// inventory. The program is solved exactly by branch-and-bound over
// LP relaxations (see milp.go); tol is the simplex tolerance. An
// unsatisfiable program is an InfeasibleError.
func Solve(pools *Pools, numForward, numReverse int, used [][2]string, tol float64) (*Selection, error) {
	if err := pools.checkCounts(numForward, numReverse); err != nil {
		return nil, err
	}

	m := newModel(pools, numForward, numReverse, used)
	sel, err := m.branchAndBound(tol)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// model is the binary program over one pair of pools. Variables are
// laid out as [forward binaries, reverse binaries, deviation vars],
// with the deviation var for (position p, base b) at
// nBin + p*4 + b — a static layout, so the exact set of
// (position, base) pairs is enumerable up front.
type model struct {
	pools *Pools

	// fwd and rev are the sorted names behind the binary variables
	fwd []string
	rev []string

	// counts of binary and total variables
	nBin int
	nVar int

	// usedPairs is how many used-pair rows were added
	usedPairs int

	// requested cardinalities
	numForward int
	numReverse int

	// obj is the objective vector: 0 for binaries, 1 for deviations
	obj []float64

	// g*x <= h inequality rows
	g [][]float64
	h []float64

	// a*x = b equality rows (the two cardinality constraints)
	a [][]float64
	b []float64
}

// newModel assembles the full constraint system for the pools and
// requested cardinalities.
func newModel(pools *Pools, numForward, numReverse int, used [][2]string) *model {
	fwd := pools.Names(Forward)
	rev := pools.Names(Reverse)

	nBin := len(fwd) + len(rev)
	nDev := 4 * pools.length
	m := &model{
		pools:      pools,
		fwd:        fwd,
		rev:        rev,
		nBin:       nBin,
		nVar:       nBin + nDev,
		numForward: numForward,
		numReverse: numReverse,
	}

	m.obj = make([]float64, m.nVar)
	for d := nBin; d < m.nVar; d++ {
		m.obj[d] = 1
	}

	ideal := IdealCount(numForward + numReverse)

	// two rows per (position, base) linearize the absolute deviation:
	// dev >= ideal - count and dev >= count - ideal
	for p := 0; p < pools.length; p++ {
		for b := 0; b < 4; b++ {
			dev := nBin + p*4 + b

			under := make([]float64, m.nVar)
			over := make([]float64, m.nVar)
			for i, name := range fwd {
				if pools.forward[name][p] == Bases[b] {
					under[i], over[i] = -1, 1
				}
			}
			for i, name := range rev {
				if pools.reverse[name][p] == Bases[b] {
					under[len(fwd)+i], over[len(fwd)+i] = -1, 1
				}
			}
			under[dev], over[dev] = -1, -1

			m.addRow(under, -ideal)
			m.addRow(over, ideal)
		}
	}

	// relaxation bounds: binaries in [0,1], deviations >= 0
	for i := 0; i < nBin; i++ {
		upper := make([]float64, m.nVar)
		upper[i] = 1
		m.addRow(upper, 1)

		lower := make([]float64, m.nVar)
		lower[i] = -1
		m.addRow(lower, 0)
	}
	for d := nBin; d < m.nVar; d++ {
		lower := make([]float64, m.nVar)
		lower[d] = -1
		m.addRow(lower, 0)
	}

	// used pairs: both members of a pair cannot be selected together.
	// Pairs naming primers outside the pools constrain nothing.
	fwdIdx := make(map[string]int, len(fwd))
	for i, name := range fwd {
		fwdIdx[name] = i
	}
	revIdx := make(map[string]int, len(rev))
	for i, name := range rev {
		revIdx[name] = i
	}
	for _, pair := range used {
		fi, fok := fwdIdx[pair[0]]
		ri, rok := revIdx[pair[1]]
		if !fok || !rok {
			continue
		}
		row := make([]float64, m.nVar)
		row[fi] = 1
		row[len(fwd)+ri] = 1
		m.addRow(row, 1)
		m.usedPairs++
	}

	// cardinality equalities
	cardF := make([]float64, m.nVar)
	for i := range fwd {
		cardF[i] = 1
	}
	cardR := make([]float64, m.nVar)
	for i := range rev {
		cardR[len(fwd)+i] = 1
	}
	m.a = append(m.a, cardF, cardR)
	m.b = append(m.b, float64(numForward), float64(numReverse))

	return m
}

func (m *model) addRow(row []float64, rhs float64) {
	m.g = append(m.g, row)
	m.h = append(m.h, rhs)
}

// chosen splits an integral assignment back into name lists.
func (m *model) chosen(x []float64) (forward, reverse []string) {
	for i, name := range m.fwd {
		if x[i] > 0.5 {
			forward = append(forward, name)
		}
	}
	for i, name := range m.rev {
		if x[len(m.fwd)+i] > 0.5 {
			reverse = append(reverse, name)
		}
	}
	return forward, reverse
}
