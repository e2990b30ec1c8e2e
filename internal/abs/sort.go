package abs

import "sort"

// SortStrong canonicalizes the structure in place. Edges get their
// vertex lists sorted; then each rank from the edges up is reordered
// so its subelement lists are in lexicographic order, and the induced
// permutation is propagated into the rank above. Applying SortStrong
// to an already-canonical structure leaves it unchanged.
//
// The top rank's own element order is not normalized (a full polytope
// has a single body there; partial structures are compared after their
// top rank was rebuilt by the caller).
func (r Ranks) SortStrong() {
	for i := range r[2] {
		sort.Ints(r[2][i].Subs)
	}

	for rank := 2; rank < len(r)-1; rank++ {
		perm, sorted := sortRank(r[rank])
		for i := range r[rank] {
			r[rank][i].Subs = sorted[i]
		}
		next := make(ElementList, len(r[rank+1]))
		for i, e := range r[rank+1] {
			subs := make([]int, len(e.Subs))
			for j, s := range e.Subs {
				subs[j] = perm[s]
			}
			sort.Ints(subs)
			next[i] = Element{Subs: subs}
		}
		r[rank+1] = next
	}
}

// SortStrongWithLocal canonicalizes a structure whose edge rank has
// been renumbered into a larger vertex space, while its higher ranks
// still reference positions of the untouched local original. The
// local structure supplies, per element position, the subelement index
// each renumbered reference corresponds to.
func (r Ranks) SortStrongWithLocal(local Ranks) {
	for i := range r[2] {
		sort.Ints(r[2][i].Subs)
	}

	for rank := 2; rank < len(r)-1; rank++ {
		perm, sorted := sortRank(r[rank])
		for i := range r[rank] {
			r[rank][i].Subs = sorted[i]
		}

		toLocal := make(map[int]int)
		for i, e := range r[rank+1] {
			for j, s := range e.Subs {
				toLocal[s] = local[rank+1][i].Subs[j]
			}
		}

		next := make(ElementList, len(r[rank+1]))
		for i, e := range r[rank+1] {
			subs := make([]int, len(e.Subs))
			for j, s := range e.Subs {
				subs[j] = perm[toLocal[s]]
			}
			sort.Ints(subs)
			next[i] = Element{Subs: subs}
		}
		r[rank+1] = next
	}
}

// sortRank computes the canonical reordering of one rank. It returns
// the permutation from old index to new index and the sorted
// subelement lists by new index.
func sortRank(l ElementList) (perm []int, sorted [][]int) {
	all := make([][]int, len(l))
	sorted = make([][]int, len(l))
	for i, e := range l {
		all[i] = append([]int(nil), e.Subs...)
		sorted[i] = all[i]
	}
	sorted = append([][]int(nil), sorted...)
	sortSubsLists(sorted)

	perm = make([]int, len(all))
	for i, subs := range all {
		for j, s := range sorted {
			if compareSubs(s, subs) == 0 {
				perm[i] = j
				break
			}
		}
	}
	return perm, sorted
}

