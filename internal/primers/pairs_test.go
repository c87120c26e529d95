package primers

import (
	"reflect"
	"testing"
)

func Test_AssignPairs(t *testing.T) {
	pools := testPools(t,
		map[string]string{"F1": "AAAA", "F2": "TTTT"},
		map[string]string{"R1": "CCCC", "R2": "GGGG", "R3": "ATAT"},
	)
	sel := newSelection(pools, []string{"F1", "F2"}, []string{"R1", "R2", "R3"})

	t.Run("deterministic order and truncation", func(t *testing.T) {
		a := AssignPairs(pools, sel, 4)

		want := []Pair{
			{1, "F1", "AAAA", "R1", "CCCC"},
			{2, "F1", "AAAA", "R2", "GGGG"},
			{3, "F1", "AAAA", "R3", "ATAT"},
			{4, "F2", "TTTT", "R1", "CCCC"},
		}
		if !reflect.DeepEqual(a.Pairs, want) {
			t.Errorf("AssignPairs() = %v, want %v", a.Pairs, want)
		}
		if a.Shortfall() != 0 {
			t.Errorf("Shortfall() = %d, want 0", a.Shortfall())
		}
	})

	t.Run("shortfall when the cross product runs out", func(t *testing.T) {
		a := AssignPairs(pools, sel, 10)

		if len(a.Pairs) != 6 {
			t.Errorf("AssignPairs() produced %d pairs, want all 6", len(a.Pairs))
		}
		if a.Shortfall() != 4 {
			t.Errorf("Shortfall() = %d, want 4", a.Shortfall())
		}
	})

	t.Run("no duplicate pairs", func(t *testing.T) {
		a := AssignPairs(pools, sel, 6)

		seen := map[[2]string]bool{}
		for _, p := range a.Pairs {
			key := [2]string{p.Forward, p.Reverse}
			if seen[key] {
				t.Errorf("duplicate pair %v", key)
			}
			seen[key] = true
		}
	})
}
