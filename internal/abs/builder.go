package abs

import (
	"errors"
	"fmt"
)

// ErrNotDyadic reports that a rank structure violates the diamond
// property of abstract polytopes. In the faceting search this is an
// internal-consistency failure: a closed combination of facet orbits
// must always assemble into a dyadic structure.
var ErrNotDyadic = errors.New("rank structure is not dyadic")

// Abstract is a validated rank structure with superelement indices
// filled in. It can only be obtained through Build, which enforces the
// dyadic property, so holding an Abstract is proof of validity.
type Abstract struct {
	ranks Ranks
	sups  [][][]int // per rank, per element, superelement indices
}

// Build validates a rank structure and computes its superelement
// lists. It returns ErrNotDyadic (wrapped with the offending location)
// when any element-to-sub-subelement diamond has a count other than
// two.
func Build(r Ranks) (*Abstract, error) {
	sups := make([][][]int, len(r))
	for rank := range r {
		sups[rank] = make([][]int, len(r[rank]))
	}
	for rank := 1; rank < len(r); rank++ {
		for i, e := range r[rank] {
			for _, s := range e.Subs {
				if s < 0 || s >= len(r[rank-1]) {
					return nil, fmt.Errorf("rank %d element %d: subelement %d out of range", rank, i, s)
				}
				sups[rank-1][s] = append(sups[rank-1][s], i)
			}
		}
	}

	// Diamond check between every rank r element and each element two
	// ranks below that it reaches.
	for rank := 2; rank < len(r); rank++ {
		for i, e := range r[rank] {
			counts := make(map[int]int)
			for _, s := range e.Subs {
				for _, ss := range r[rank-1][s].Subs {
					counts[ss]++
				}
			}
			for ss, c := range counts {
				if c != 2 {
					return nil, fmt.Errorf("rank %d element %d covers rank %d element %d via %d elements: %w",
						rank, i, rank-2, ss, c, ErrNotDyadic)
				}
			}
		}
	}

	return &Abstract{ranks: r, sups: sups}, nil
}

// Ranks returns the underlying rank structure. Callers must treat it
// as read-only.
func (a *Abstract) Ranks() Ranks {
	return a.ranks
}

// Rank returns the polytope's rank (length minus one).
func (a *Abstract) Rank() int {
	return len(a.ranks) - 1
}

// Counts returns the element count of each rank.
func (a *Abstract) Counts() []int {
	out := make([]int, len(a.ranks))
	for i, l := range a.ranks {
		out[i] = len(l)
	}
	return out
}

// Sups returns the superelement indices of an element.
func (a *Abstract) Sups(rank, idx int) []int {
	return a.sups[rank][idx]
}

// Subtree extracts the closed substructure under a single element as a
// standalone rank structure with dense indices, together with the
// original vertex indices it retains. Used to cut one facet out of a
// finished polytope.
func (a *Abstract) Subtree(rank, idx int) (Ranks, []int) {
	keep := make([]map[int]int, rank+1) // old index -> new index per rank
	order := make([][]int, rank+1)      // new index -> old index per rank
	for r := range keep {
		keep[r] = make(map[int]int)
	}
	keep[rank][idx] = 0
	order[rank] = []int{idx}

	for r := rank; r > 0; r-- {
		for _, old := range order[r] {
			for _, s := range a.ranks[r][old].Subs {
				if _, ok := keep[r-1][s]; !ok {
					keep[r-1][s] = len(order[r-1])
					order[r-1] = append(order[r-1], s)
				}
			}
		}
	}

	out := make(Ranks, rank+1)
	for r := 0; r <= rank; r++ {
		out[r] = make(ElementList, len(order[r]))
		for newIdx, old := range order[r] {
			e := Element{}
			for _, s := range a.ranks[r][old].Subs {
				e.Subs = append(e.Subs, keep[r-1][s])
			}
			out[r][newIdx] = e
		}
	}
	return out, order[1]
}
