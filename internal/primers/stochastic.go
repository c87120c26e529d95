package primers

import (
	"math"
	"math/rand"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Selection is one chosen subset of each pool. It is immutable once
// produced: the name slices are sorted copies and the score and
// frequency table are recomputed from them, never carried over from
// intermediate trial state.
type Selection struct {
	// Forward holds the chosen forward primer names, sorted
	Forward []string `json:"forward"`

	// Reverse holds the chosen reverse primer names, sorted
	Reverse []string `json:"reverse"`

	// Score is the selection's diversity score. For the exact
	// selector this is also the solved objective value.
	Score float64 `json:"score"`

	// Freq is the combined per-position base count table
	Freq [][4]int `json:"freq"`
}

// newSelection builds a Selection from chosen names, recomputing the
// frequency table and score from the pools.
func newSelection(pools *Pools, forward, reverse []string) *Selection {
	fwd := append([]string(nil), forward...)
	rev := append([]string(nil), reverse...)
	sort.Strings(fwd)
	sort.Strings(rev)

	freq := make([][4]int, pools.length)
	for _, seq := range pools.seqsOf(fwd, rev) {
		countInto(freq, seq)
	}

	return &Selection{
		Forward: fwd,
		Reverse: rev,
		Score:   DiversityScore(freq, len(fwd)+len(rev)),
		Freq:    freq,
	}
}

// SearchCmd runs the randomized selector from the command line.
func SearchCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)

	out, err := Run(flags, conf, false)
	if err != nil {
		stderr.Fatalln(err)
	}

	report(cmd.OutOrStdout(), out)
}

// Search draws trials-many random subsets of the requested sizes and
// keeps the one with the lowest diversity score. It is a heuristic:
// the best subset seen within the budget, with no optimality
// guarantee. A fixed (seed, trials, workers) triple makes the result
// reproducible. Unlike Solve, Search enforces no used-pair
// constraints; any draw is feasible by construction.
func Search(pools *Pools, numForward, numReverse, trials int, seed int64, workers int) (*Selection, error) {
	if err := pools.checkCounts(numForward, numReverse); err != nil {
		return nil, err
	}

	fwdNames := pools.Names(Forward)
	revNames := pools.Names(Reverse)

	// every draw yields the same subset once both counts equal the
	// pool sizes, so skip the trial loop entirely
	if numForward == len(fwdNames) && numReverse == len(revNames) {
		return newSelection(pools, fwdNames, revNames), nil
	}

	if trials < 1 {
		trials = 1
	}
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	// each worker owns a seeded source and a slice of the budget;
	// the fold over worker results happens after the join
	results := make([]trialResult, workers)
	var g errgroup.Group
	share, extra := trials/workers, trials%workers
	first := 0
	for w := 0; w < workers; w++ {
		count := share
		if w < extra {
			count++
		}
		w, first, count := w, first, count
		g.Go(func() error {
			results[w] = runTrials(
				pools, fwdNames, revNames,
				numForward, numReverse,
				seed+int64(w), first, count,
			)
			return nil
		})
		first += count
	}
	_ = g.Wait() // workers never return an error

	// lowest score wins; ties go to the earliest trial so a later
	// equal score never overwrites the first one found
	best := results[0]
	for _, r := range results[1:] {
		if r.score < best.score || (r.score == best.score && r.trial < best.trial) {
			best = r
		}
	}

	return newSelection(pools, best.forward, best.reverse), nil
}

// trialResult is one worker's best draw and the global index of the
// trial that produced it.
type trialResult struct {
	score   float64
	trial   int
	forward []string
	reverse []string
}

// runTrials executes count trials starting at global index first,
// returning the best draw seen.
func runTrials(
	pools *Pools,
	fwdNames, revNames []string,
	numForward, numReverse int,
	seed int64,
	first, count int,
) trialResult {
	r := rand.New(rand.NewSource(seed))
	best := trialResult{score: math.Inf(1)}

	fwdIdx := indexes(len(fwdNames))
	revIdx := indexes(len(revNames))
	freq := make([][4]int, pools.length)

	for t := 0; t < count; t++ {
		sample(r, fwdIdx, numForward)
		sample(r, revIdx, numReverse)

		for i := range freq {
			freq[i] = [4]int{}
		}
		for i := 0; i < numForward; i++ {
			countInto(freq, pools.forward[fwdNames[fwdIdx[i]]])
		}
		for i := 0; i < numReverse; i++ {
			countInto(freq, pools.reverse[revNames[revIdx[i]]])
		}

		score := DiversityScore(freq, numForward+numReverse)
		if score < best.score {
			best.score = score
			best.trial = first + t
			best.forward = pick(fwdNames, fwdIdx, numForward)
			best.reverse = pick(revNames, revIdx, numReverse)
		}
	}

	return best
}

// indexes returns [0, n).
func indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// sample moves k distinct uniform random indexes to the front of idx,
// a partial Fisher-Yates shuffle (sampling without replacement).
func sample(r *rand.Rand, idx []int, k int) {
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
}

// pick copies the first k sampled names.
func pick(names []string, idx []int, k int) []string {
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = names[idx[i]]
	}
	return out
}
