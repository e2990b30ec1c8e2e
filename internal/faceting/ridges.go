package faceting

import (
	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/orbit"
)

// ridgeIndex canonicalizes and orbit-indexes every candidate ridge of
// every hyperplane orbit. orbitOf[hp][subHP][i] is the ridge-orbit id
// of ridge i; counts[orbit] is the total number of distinct ridge
// instances in the orbit under the group.
type ridgeIndex struct {
	orbitOf [][][]int
	counts  []int
}

// indexRidges globalizes each ridge's edge rank through its
// hyperplane's vertex list, canonicalizes it, and registers its whole
// orbit on first sight. Registering every image makes later lookups a
// single map hit.
func indexRidges(ridges [][][]abs.Ranks, hyperplaneVerts [][]int, vm orbit.VertexMap, obs Observer) ridgeIndex {
	idx := ridgeIndex{}
	orbits := make(map[string]int)

	for hp, perSubHP := range ridges {
		verts := hyperplaneVerts[hp]
		row := make([][]int, len(perSubHP))

		for subHP, list := range perSubHP {
			row[subHP] = make([]int, len(list))

			for i, ridge := range list {
				global := renumberEdges(ridge, verts)
				global.SortStrong()

				id, ok := orbits[global.Key()]
				if !ok {
					id = len(idx.counts)
					count := 0
					for _, g := range vm {
						img := renumberEdges(global, g)
						img.SortStrong()
						key := img.Key()
						if _, seen := orbits[key]; !seen {
							orbits[key] = id
							count++
						}
					}
					idx.counts = append(idx.counts, count)
					obs.Progress("ridge orbits", len(idx.counts))
				}
				row[subHP][i] = id
			}
		}
		idx.orbitOf = append(idx.orbitOf, row)
	}
	return idx
}

// renumberEdges copies a rank structure, mapping every edge's vertex
// references through the given index map. Higher ranks are copied
// untouched; [1] keeps its placeholder count.
func renumberEdges(r abs.Ranks, m []int) abs.Ranks {
	out := r.Clone()
	edges := make(abs.ElementList, len(r[2]))
	for i, e := range r[2] {
		subs := make([]int, len(e.Subs))
		for j, s := range e.Subs {
			subs[j] = m[s]
		}
		edges[i] = abs.Element{Subs: subs}
	}
	out[2] = edges
	return out
}

// ridgeMultiplicities precomputes, per candidate facet, how many
// copies of each ridge orbit the facet's full orbit contributes, and
// collects the "ones" table: for each ridge orbit, the facets that
// contribute exactly one copy, in (hyperplane, facet) order. A
// multiplicity that does not divide evenly is an internal error.
func ridgeMultiplicities(possible [][]possibleFacet, idx ridgeIndex, hpSizes []int, ffCounts [][]int) (muls [][][]int, ones [][]FacetRef, err error) {
	muls = make([][][]int, len(possible))
	ones = make([][]FacetRef, len(idx.counts))

	for hp, list := range possible {
		muls[hp] = make([][]int, len(list))
		for f, pf := range list {
			perOrbit := make([]int, len(idx.counts))
			for _, ref := range pf.ridges {
				ridgeOrbit := idx.orbitOf[hp][ref.HP][ref.F]
				num := hpSizes[hp] * ffCounts[hp][ref.HP]
				den := idx.counts[ridgeOrbit]
				if num%den != 0 {
					return nil, nil, internalErrorf(ErrCodeNonIntegralMultiplicity,
						"hyperplane %d facet %d ridge orbit %d: %d/%d", hp, f, ridgeOrbit, num, den)
				}
				mul := num / den
				if mul == 1 {
					ones[ridgeOrbit] = append(ones[ridgeOrbit], FacetRef{HP: hp, F: f})
				}
				perOrbit[ridgeOrbit] = mul
			}
			muls[hp][f] = perOrbit
		}
	}
	return muls, ones, nil
}

// searchOnesFrom finds the first entry of a ones table whose
// hyperplane index is strictly greater than min, by binary search.
func searchOnesFrom(refs []FacetRef, min int) int {
	lo, hi := -1, len(refs)
	for hi-lo > 1 {
		c := (lo + hi) / 2
		if refs[c].HP > min {
			hi = c
		} else {
			lo = c
		}
	}
	return hi
}
