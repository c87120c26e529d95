package primers

// Pair assigns one forward/reverse primer combination to a sample.
type Pair struct {
	// Sample is the 1-based sample number
	Sample int `json:"sample" csv:"Sample"`

	// Forward is the forward primer's name
	Forward string `json:"forward" csv:"Forward"`

	// ForwardSeq is the forward primer's sequence
	ForwardSeq string `json:"forwardSeq" csv:"Forward Sequence"`

	// Reverse is the reverse primer's name
	Reverse string `json:"reverse" csv:"Reverse"`

	// ReverseSeq is the reverse primer's sequence
	ReverseSeq string `json:"reverseSeq" csv:"Reverse Sequence"`
}

// Assignment is the list of unique primer pairs drawn from a
// selection, with the requested count it was drawn against.
type Assignment struct {
	// Pairs are the assigned primer pairs, in sample order
	Pairs []Pair

	// Requested is the number of pairs asked for
	Requested int
}

// Shortfall is how many requested pairs could not be formed because
// the selection's cross product ran out. A shortfall is a capacity
// limit to warn about, not an error.
func (a *Assignment) Shortfall() int {
	if missing := a.Requested - len(a.Pairs); missing > 0 {
		return missing
	}
	return 0
}

// AssignPairs walks the cross product of the selection's forward and
// reverse primers in their sorted order and keeps the first requested
// pairs. Every emitted pair is unique since the name lists are
// duplicate-free sets.
func AssignPairs(pools *Pools, sel *Selection, requested int) *Assignment {
	assignment := &Assignment{Requested: requested}

	for _, fwd := range sel.Forward {
		for _, rev := range sel.Reverse {
			if len(assignment.Pairs) == requested {
				return assignment
			}
			assignment.Pairs = append(assignment.Pairs, Pair{
				Sample:     len(assignment.Pairs) + 1,
				Forward:    fwd,
				ForwardSeq: pools.Seq(Forward, fwd),
				Reverse:    rev,
				ReverseSeq: pools.Seq(Reverse, rev),
			})
		}
	}

	return assignment
}
