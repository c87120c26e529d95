package primers

import "math"

// PrimerCounts returns the number of forward and reverse primers whose
// product is exactly n, preferring the factor pair closest to square
// so neither pool is drawn from more than necessary. The smaller
// factor is returned first. n of 12 gives (3, 4); a prime n falls
// through to (1, n).
func PrimerCounts(n int) (int, int) {
	root := int(math.Sqrt(float64(n)))
	for i := root; i > 1; i-- {
		if n%i == 0 {
			return i, n / i
		}
	}
	return 1, n
}

// FitCounts sizes a selection that must cover n unique pairs within
// the pool capacities: it returns (numForward, numReverse) with
// numForward*numReverse >= n, preferring exact close-to-square factor
// pairs and falling back to the feasible cover (i, ceil(n/i)) with the
// smallest larger side. Both orientations of each candidate are tried,
// assigning the larger count to whichever pool can hold it. Whenever n
// is within the pools' pair capacity a sizing exists; past it an
// InsufficientPoolError reports how many primers the tighter pool
// would need.
func FitCounts(n, maxForward, maxReverse int) (int, int, error) {
	root := int(math.Sqrt(float64(n)))

	// exact factor pairs, closest to square first
	for i := root; i >= 1; i-- {
		if n%i != 0 {
			continue
		}
		if f, r, ok := orient(i, n/i, maxForward, maxReverse); ok {
			return f, r, nil
		}
	}

	// nearest feasible cover when no exact factorization fits: pair
	// every candidate side count with the fewest partners covering n
	// and keep the most square fit
	bestF, bestR := 0, 0
	for i := 1; i <= max(maxForward, maxReverse); i++ {
		j := (n + i - 1) / i
		f, r, ok := orient(i, j, maxForward, maxReverse)
		if !ok {
			continue
		}
		if bestF == 0 || max(f, r) < max(bestF, bestR) {
			bestF, bestR = f, r
		}
	}
	if bestF > 0 {
		return bestF, bestR, nil
	}

	// covering n pairs takes at least ceil(n/larger) primers from the
	// tighter pool
	if maxForward < maxReverse {
		return 0, 0, &InsufficientPoolError{Forward, (n + maxReverse - 1) / maxReverse, maxForward}
	}
	return 0, 0, &InsufficientPoolError{Reverse, (n + maxForward - 1) / maxForward, maxReverse}
}

// orient fits the factor pair (small, large) to the pool capacities,
// preferring the orientation that keeps the counts balanced against
// pool sizes: small forward/large reverse first.
func orient(small, large, maxForward, maxReverse int) (int, int, bool) {
	if small <= maxForward && large <= maxReverse {
		return small, large, true
	}
	if large <= maxForward && small <= maxReverse {
		return large, small, true
	}
	return 0, 0, false
}
