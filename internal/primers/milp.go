package primers

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// integerTol is how far a relaxed binary may sit from 0 or 1 and
// still count as integral.
const integerTol = 1e-6

// boundTol guards incumbent pruning against simplex round-off.
const boundTol = 1e-9

// branchAndBound solves the binary program exactly: depth-first
// search over LP relaxations, branching on the most fractional
// binary, pruning any node whose relaxation bound cannot beat the
// incumbent. Integral leaves are re-scored through the frequency
// model so the returned Selection carries an exact objective rather
// than simplex floating point.
func (m *model) branchAndBound(tol float64) (*Selection, error) {
	root := make([]int8, m.nBin)
	for i := range root {
		root[i] = unfixed
	}
	stack := [][]int8{root}

	var best *Selection
	bound := math.Inf(1)

	for len(stack) > 0 {
		fixed := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, x, err := m.relax(fixed, tol)
		if errors.Is(err, lp.ErrInfeasible) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("solving relaxation: %v", err)
		}
		if best != nil && obj >= bound-boundTol {
			continue
		}

		branch := mostFractional(x[:m.nBin])
		if branch < 0 {
			fwd, rev := m.chosen(x)
			cand := newSelection(m.pools, fwd, rev)
			if best == nil || cand.Score < bound {
				best, bound = cand, cand.Score
			}
			continue
		}

		// the 1-branch sits on top of the stack so subsets that
		// include the fractional primer are explored first
		zero := append([]int8(nil), fixed...)
		zero[branch] = 0
		one := append([]int8(nil), fixed...)
		one[branch] = 1
		stack = append(stack, zero, one)
	}

	if best == nil {
		return nil, &InfeasibleError{
			NumForward: m.numForward,
			NumReverse: m.numReverse,
			UsedPairs:  m.usedPairs,
		}
	}
	return best, nil
}

const unfixed = int8(-1)

// relax solves the node's LP relaxation: the base model plus an
// equality row per fixed binary. The general-form program is
// converted to standard form and handed to gonum's simplex.
func (m *model) relax(fixed []int8, tol float64) (obj float64, x []float64, err error) {
	a := append(make([][]float64, 0, len(m.a)+len(fixed)), m.a...)
	b := append(make([]float64, 0, len(m.b)+len(fixed)), m.b...)
	for i, v := range fixed {
		if v == unfixed {
			continue
		}
		row := make([]float64, m.nVar)
		row[i] = 1
		a = append(a, row)
		b = append(b, float64(v))
	}

	cNew, aNew, bNew := lp.Convert(m.obj, denseOf(m.g, m.nVar), m.h, denseOf(a, m.nVar), b)
	obj, xs, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	if err != nil {
		return 0, nil, err
	}

	// Convert splits each free variable v into v = plus - minus
	x = make([]float64, m.nVar)
	for i := range x {
		x[i] = xs[i] - xs[i+m.nVar]
	}
	return obj, x, nil
}

// denseOf flattens constraint rows into a matrix.
func denseOf(rows [][]float64, cols int) *mat.Dense {
	flat := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return mat.NewDense(len(rows), cols, flat)
}

// mostFractional picks the binary variable farthest from integrality,
// breaking ties toward the lowest index; -1 when every binary is
// within integerTol of 0 or 1.
func mostFractional(bins []float64) int {
	branch, worst := -1, integerTol
	for i, v := range bins {
		dist := math.Min(math.Abs(v), math.Abs(1-v))
		if dist > worst {
			branch, worst = i, dist
		}
	}
	return branch
}
