package faceting

// combination classification.
const (
	comboValid      = iota // every ridge orbit covered exactly twice
	comboExotic            // some ridge orbit covered more than twice
	comboIncomplete        // some ridge orbit covered exactly once
)

// combiner runs the backtracking search over facet-orbit combinations.
// All tables are read-only during the search; the work stack is the
// only mutable state.
type combiner struct {
	ridgeRefs [][][]FacetRef // per hyperplane, per facet: its ridge refs
	orbitOf   [][][]int      // ridge-orbit id per ridge ref
	muls      [][][]int      // per hyperplane, per facet: orbit multiplicities
	ones      [][]FacetRef   // per ridge orbit: facets contributing one copy
	nOrbits   int
	obs       Observer
}

type workItem struct {
	facets []FacetRef
	minHP  int
	muls   []int
}

// run performs the depth-first search. Each popped combination has the
// last facet's ridge multiplicities folded in, is classified, and
// either reported through onValid, extended, or dropped.
//
// extendValid controls whether accepted combinations keep growing
// (producing compounds); nobleCap, when positive, stops extending once
// a combination holds that many facet orbits. onValid returning false
// aborts the whole search.
func (c *combiner) run(extendValid bool, nobleCap int, onValid func(facets []FacetRef, muls []int) bool) {
	var stack []workItem
	for hp, list := range c.ridgeRefs {
		for f := range list {
			stack = append(stack, workItem{
				facets: []FacetRef{{HP: hp, F: f}},
				minHP:  hp,
				muls:   make([]int, c.nOrbits),
			})
		}
	}

	examined := 0
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		examined++
		c.obs.Progress("combinations", examined)

		muls := append([]int(nil), item.muls...)
		last := item.facets[len(item.facets)-1]
		for _, ref := range c.ridgeRefs[last.HP][last.F] {
			ro := c.orbitOf[last.HP][ref.HP][ref.F]
			muls[ro] += c.muls[last.HP][last.F][ro]
			if muls[ro] > 2 {
				break
			}
		}

		state := comboValid
		for _, m := range muls {
			if m > 2 {
				state = comboExotic
				break
			}
			if m == 1 {
				state = comboIncomplete
			}
		}

		switch state {
		case comboValid:
			if !onValid(item.facets, muls) {
				return
			}
			if nobleCap > 0 && len(item.facets) == nobleCap {
				continue
			}
			if !extendValid {
				continue
			}
			used := usedHyperplanes(item.facets)
			for hp := item.minHP + 1; hp < len(c.ridgeRefs); hp++ {
				if used[hp] {
					continue
				}
				for f := range c.ridgeRefs[hp] {
					stack = append(stack, workItem{
						facets: appendRef(item.facets, FacetRef{HP: hp, F: f}),
						minHP:  hp,
						muls:   append([]int(nil), muls...),
					})
				}
			}

		case comboIncomplete:
			if nobleCap > 0 && len(item.facets) == nobleCap {
				continue
			}
			used := usedHyperplanes(item.facets)
			for ro, m := range muls {
				if m != 1 {
					continue
				}
				// Only facets contributing this orbit exactly once can
				// close it without overshooting; restrict to
				// hyperplanes past the minimum to avoid revisiting
				// permutations of the same set.
				for _, cand := range c.ones[ro][searchOnesFrom(c.ones[ro], item.minHP):] {
					if used[cand.HP] {
						continue
					}
					stack = append(stack, workItem{
						facets: appendRef(item.facets, cand),
						minHP:  item.minHP,
						muls:   append([]int(nil), muls...),
					})
				}
				break
			}
		}
	}
}

// usedHyperplanes marks the hyperplanes already carrying a facet,
// excluding the seed facet's own hyperplane.
func usedHyperplanes(facets []FacetRef) map[int]bool {
	used := make(map[int]bool)
	for _, f := range facets[1:] {
		used[f.HP] = true
	}
	return used
}

func appendRef(facets []FacetRef, ref FacetRef) []FacetRef {
	out := make([]FacetRef, len(facets)+1)
	copy(out, facets)
	out[len(facets)] = ref
	return out
}

// splitComponents replaces every compound facet in the list by its
// components, recursively, using the per-hyperplane compound maps.
func splitComponents(facets []FacetRef, compounds []map[int][2]int) []FacetRef {
	var out []FacetRef
	for _, ref := range facets {
		queue := []int{ref.F}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if parts, ok := compounds[ref.HP][next]; ok {
				queue = append(queue, parts[0], parts[1])
			} else {
				out = append(out, FacetRef{HP: ref.HP, F: next})
			}
		}
	}
	return out
}
