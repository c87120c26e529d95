// Package primers selects subsets of fixed-length index primers whose
// combined per-position base composition is as uniform as possible
// over {A,T,C,G}.
package primers

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation distinguishes the two disjoint primer pools.
type Orientation int

const (
	// Forward primers anneal to the template strand
	Forward Orientation = iota

	// Reverse primers anneal to the complementary strand
	Reverse
)

// String returns the lowercase orientation name used in input tables.
func (o Orientation) String() string {
	if o == Forward {
		return "forward"
	}
	return "reverse"
}

// Primer is a named index sequence from one of the two pools.
type Primer struct {
	// Name is the primer's unique name within its orientation
	Name string `json:"name" csv:"indexname"`

	// Seq is the primer's index sequence (uppercase A/T/C/G)
	Seq string `json:"seq" csv:"sequence"`
}

// Pools holds the forward and reverse candidate primers. The two name
// spaces are independent: the same name in both pools does not imply
// the same primer. Pools are read-only after construction.
type Pools struct {
	// length is the shared sequence length of every primer
	length int

	// forward maps forward primer names to their sequences
	forward map[string]string

	// reverse maps reverse primer names to their sequences
	reverse map[string]string
}

// InvalidSequenceError is returned for a primer whose sequence has the
// wrong length or a character outside A/T/C/G.
type InvalidSequenceError struct {
	Name   string
	Seq    string
	Reason string
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("invalid sequence %q (%s): %s", e.Seq, e.Name, e.Reason)
}

// PoolMismatchError is returned when primer sequences within the pools
// do not share a single length.
type PoolMismatchError struct {
	Name string
	Got  int
	Want int
}

func (e *PoolMismatchError) Error() string {
	return fmt.Sprintf("primer %s is %dbp, pool is %dbp", e.Name, e.Got, e.Want)
}

// EmptyPoolError is returned when a pool has no primers, either as
// loaded or after exclusions are applied.
type EmptyPoolError struct {
	Orientation Orientation
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("no %s primers in pool", e.Orientation)
}

// InsufficientPoolError is returned when a requested selection size
// exceeds what a pool can provide.
type InsufficientPoolError struct {
	Orientation Orientation
	Requested   int
	Available   int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf(
		"%d %s primers requested but only %d are available",
		e.Requested, e.Orientation, e.Available,
	)
}

// NewPools validates the two name->sequence maps and returns Pools over
// them. Sequences are uppercased before validation. length is the
// expected primer length; pass 0 to infer it from the primers.
func NewPools(forward, reverse map[string]string, length int) (*Pools, error) {
	if len(forward) == 0 {
		return nil, &EmptyPoolError{Forward}
	}
	if len(reverse) == 0 {
		return nil, &EmptyPoolError{Reverse}
	}

	p := &Pools{
		length:  length,
		forward: make(map[string]string, len(forward)),
		reverse: make(map[string]string, len(reverse)),
	}

	for _, pool := range []struct {
		src map[string]string
		dst map[string]string
	}{
		{forward, p.forward},
		{reverse, p.reverse},
	} {
		for name, seq := range pool.src {
			seq = strings.ToUpper(seq)
			if err := checkAlphabet(name, seq); err != nil {
				return nil, err
			}
			if p.length == 0 {
				p.length = len(seq)
			}
			if len(seq) != p.length {
				return nil, &PoolMismatchError{Name: name, Got: len(seq), Want: p.length}
			}
			pool.dst[name] = seq
		}
	}

	return p, nil
}

// checkAlphabet confirms that every character of seq is one of A/T/C/G.
func checkAlphabet(name, seq string) error {
	if seq == "" {
		return &InvalidSequenceError{Name: name, Seq: seq, Reason: "empty sequence"}
	}
	for i := 0; i < len(seq); i++ {
		if baseIndex(seq[i]) < 0 {
			return &InvalidSequenceError{
				Name:   name,
				Seq:    seq,
				Reason: fmt.Sprintf("base %q at position %d is not one of A/T/C/G", seq[i], i+1),
			}
		}
	}
	return nil
}

// Length returns the shared primer sequence length.
func (p *Pools) Length() int {
	return p.length
}

// Size returns the number of primers in the pool with the orientation.
func (p *Pools) Size(o Orientation) int {
	if o == Forward {
		return len(p.forward)
	}
	return len(p.reverse)
}

// Seq returns the sequence of the named primer, or "" if absent.
func (p *Pools) Seq(o Orientation, name string) string {
	if o == Forward {
		return p.forward[name]
	}
	return p.reverse[name]
}

// Has returns whether the named primer exists in the oriented pool.
func (p *Pools) Has(o Orientation, name string) bool {
	_, ok := p.pool(o)[name]
	return ok
}

// Names returns the pool's primer names in sorted order. Iterating the
// sorted slice, rather than the map, keeps every selection and pair
// assignment deterministic.
func (p *Pools) Names(o Orientation) []string {
	pool := p.pool(o)
	names := make([]string, 0, len(pool))
	for name := range pool {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Pools) pool(o Orientation) map[string]string {
	if o == Forward {
		return p.forward
	}
	return p.reverse
}

// ApplyExclusions returns a copy of the pools without the named
// primers. This is a prefilter on the candidate pools, distinct from
// the used-pair constraints the exact selector enforces during
// optimization. An orientation filtered down to nothing is an
// EmptyPoolError.
func (p *Pools) ApplyExclusions(names map[string]bool) (*Pools, error) {
	if len(names) == 0 {
		return p, nil
	}

	filtered := &Pools{
		length:  p.length,
		forward: make(map[string]string, len(p.forward)),
		reverse: make(map[string]string, len(p.reverse)),
	}
	for name, seq := range p.forward {
		if !names[name] {
			filtered.forward[name] = seq
		}
	}
	for name, seq := range p.reverse {
		if !names[name] {
			filtered.reverse[name] = seq
		}
	}

	if len(filtered.forward) == 0 {
		return nil, &EmptyPoolError{Forward}
	}
	if len(filtered.reverse) == 0 {
		return nil, &EmptyPoolError{Reverse}
	}

	return filtered, nil
}

// checkCounts validates requested selection sizes against the pools.
func (p *Pools) checkCounts(numForward, numReverse int) error {
	if numForward < 1 || numReverse < 1 {
		return fmt.Errorf("selection sizes must be at least 1, got %d forward and %d reverse", numForward, numReverse)
	}
	if numForward > len(p.forward) {
		return &InsufficientPoolError{Forward, numForward, len(p.forward)}
	}
	if numReverse > len(p.reverse) {
		return &InsufficientPoolError{Reverse, numReverse, len(p.reverse)}
	}
	return nil
}

// seqsOf maps selected names back to their sequences, forward first.
func (p *Pools) seqsOf(forward, reverse []string) []string {
	seqs := make([]string, 0, len(forward)+len(reverse))
	for _, name := range forward {
		seqs = append(seqs, p.forward[name])
	}
	for _, name := range reverse {
		seqs = append(seqs, p.reverse[name])
	}
	return seqs
}
