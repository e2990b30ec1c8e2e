package faceting

import (
	"sort"

	"github.com/apeirotope/facet/internal/abs"
)

// assembled is the outcome of merging a list of expanded facet
// structures into one rank structure.
type assembled struct {
	ranks abs.Ranks

	// toOld maps the dense vertex indices back to the indices the
	// facets referenced. Nil when no reindexing was requested.
	toOld []int

	// facetIdx maps each input facet's position to the index of its
	// element in the facets rank, after duplicate facets collapsed.
	facetIdx []int
}

// assemble merges canonicalized facet structures into a single rank
// structure of the given rank, deduplicating elements level by level.
// Each facet's elements reference shared element indices once merged,
// so the result is the union of the facets' face lattices plus a body.
//
// With reindex set, only vertices actually referenced by some edge
// survive, densely renumbered in first-use order; otherwise the vertex
// rank holds vertexCount placeholders and edge subs pass through
// untouched.
func assemble(facets []abs.Ranks, rank, vertexCount int, reindex bool) assembled {
	work := make([]abs.Ranks, len(facets))
	for i, f := range facets {
		work[i] = f.Clone()
	}

	ranks := abs.Ranks{abs.ElementList{abs.NewElement()}}

	var toOld []int
	if reindex {
		toNew := make(map[int]int)
		for i := range work {
			for j := range work[i][2] {
				subs := work[i][2][j].Subs
				for k, s := range subs {
					n, ok := toNew[s]
					if !ok {
						n = len(toOld)
						toNew[s] = n
						toOld = append(toOld, s)
					}
					subs[k] = n
				}
			}
		}
		vertexCount = len(toOld)
	}
	verts := make(abs.ElementList, vertexCount)
	for i := range verts {
		verts[i] = abs.NewElement(0)
	}
	ranks = append(ranks, verts)

	// Merge each level: collect the distinct elements by subelement
	// list, then rewrite the level above to reference the merged
	// indices.
	for r := 2; r < rank-1; r++ {
		subsToIdx := make(map[string]int)
		var idxToSubs [][]int

		for _, facet := range work {
			for _, e := range facet[r] {
				key := intsKey(e.Subs)
				if _, ok := subsToIdx[key]; !ok {
					subsToIdx[key] = len(idxToSubs)
					idxToSubs = append(idxToSubs, append([]int(nil), e.Subs...))
				}
			}
		}
		for i := range work {
			for j := range work[i][r+1] {
				e := &work[i][r+1][j]
				subs := make([]int, len(e.Subs))
				for k, s := range e.Subs {
					subs[k] = subsToIdx[intsKey(work[i][r][s].Subs)]
				}
				e.Subs = subs
			}
		}

		level := make(abs.ElementList, len(idxToSubs))
		for i, subs := range idxToSubs {
			level[i] = abs.Element{Subs: subs}
		}
		ranks = append(ranks, level)
	}

	// Facets, deduplicated by their sorted subelement sets.
	seen := make(map[string]int)
	var facetRank abs.ElementList
	facetIdx := make([]int, len(work))

	for i := range work {
		top := &work[i][rank-1][0]
		sort.Ints(top.Subs)
		key := intsKey(top.Subs)
		idx, ok := seen[key]
		if !ok {
			idx = len(facetRank)
			seen[key] = idx
			facetRank = append(facetRank, abs.Element{Subs: append([]int(nil), top.Subs...)})
		}
		facetIdx[i] = idx
	}
	ranks = append(ranks, facetRank)

	body := abs.NewElement()
	for i := range facetRank {
		body.Subs = append(body.Subs, i)
	}
	ranks = append(ranks, abs.ElementList{body})

	return assembled{ranks: ranks, toOld: toOld, facetIdx: facetIdx}
}
