package primers

import "math"

// Bases is the fixed base order of every frequency table: the column
// index of a count row is the index into this string.
const Bases = "ATCG"

// baseIndex maps a base character to its index in Bases, or -1.
func baseIndex(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'T':
		return 1
	case 'C':
		return 2
	case 'G':
		return 3
	}
	return -1
}

// PositionFrequencies counts base occurrences at each position across
// the sequences. Row i of the result holds the A/T/C/G counts at
// position i. Sequences are validated against length and the uppercase
// A/T/C/G alphabet; a violation is an InvalidSequenceError.
func PositionFrequencies(seqs []string, length int) ([][4]int, error) {
	freq := make([][4]int, length)
	for _, seq := range seqs {
		if err := checkAlphabet("", seq); err != nil {
			return nil, err
		}
		if len(seq) != length {
			return nil, &InvalidSequenceError{
				Seq:    seq,
				Reason: "length does not match the pool's primer length",
			}
		}
		countInto(freq, seq)
	}
	return freq, nil
}

// countInto adds one sequence's bases to the counts. The sequence must
// already be validated.
func countInto(freq [][4]int, seq string) {
	for i := 0; i < len(seq); i++ {
		freq[i][baseIndex(seq[i])]++
	}
}

// IdealCount is the per-base count at one position under a perfectly
// uniform base composition: total/4. The total rarely divides evenly,
// so the ideal is fractional.
func IdealCount(total int) float64 {
	return float64(total) / 4
}

// DiversityScore is the L1 deviation of the observed counts from the
// uniform ideal, summed over every (position, base). Zero means every
// position is perfectly balanced; lower is better. L1, not L2, so the
// same objective stays linear in the exact selector.
func DiversityScore(freq [][4]int, total int) float64 {
	ideal := IdealCount(total)
	score := 0.0
	for _, counts := range freq {
		for _, count := range counts {
			score += math.Abs(ideal - float64(count))
		}
	}
	return score
}
