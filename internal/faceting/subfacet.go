package faceting

import (
	"sort"

	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/orbit"
	"github.com/apeirotope/facet/internal/polytope"
)

// noblePackage carries the top-level context needed to prefilter ridge
// hyperplanes during a noble (single facet orbit) search: a ridge
// plane whose full-group orbit cannot be covered twice can never close
// a faceting, so its hyperplane is dropped before recursing.
type noblePackage struct {
	fullVM      orbit.VertexMap
	globalVerts []int
	count       int // orbit size of the hyperplane being faceted
}

// facetSubdim enumerates the closed facetings of one hyperplane
// section as a standalone lower-rank problem under the hyperplane's
// stabilizer. Vertex indices in the results are local to points; the
// caller renumbers them into its own space.
func facetSubdim(rank int, plane geom.Subspace, points []geom.Point, vm orbit.VertexMap, f filters, maxPer int, uniform bool, noble *noblePackage, obs Observer) (subdimResult, error) {
	if rank == 2 {
		return dyadFaceting(vm), nil
	}

	flat := make([]geom.Point, len(points))
	for i, p := range points {
		flat[i] = plane.Flatten(p)
	}
	vertexOrbits := orbit.Vertices(len(flat), vm)

	orbits := enumerateHyperplanes(flat, vm, vertexOrbits, rank, f, obs)
	if noble != nil {
		orbits = nobleFilter(orbits, noble)
	}

	possible := make([][]possibleFacet, len(orbits))
	global := make([][]abs.Ranks, len(orbits))
	compounds := make([]map[int][2]int, len(orbits))
	childRidges := make([][][]abs.Ranks, len(orbits))
	ffCounts := make([][]int, len(orbits))
	hpVerts := make([][]int, len(orbits))
	fCounts := make([]int, len(orbits))

	for i, o := range orbits {
		stab, _ := orbit.Stabilizer(vm, o.verts)
		if len(stab) == 0 {
			return subdimResult{}, internalErrorf(ErrCodeEmptyStabilizer,
				"hyperplane orbit %d with verts %v", i, o.verts)
		}

		sub, err := facetSubdim(rank-1, o.plane, selectPoints(flat, o.verts), stab, f, maxPer, uniform, nil, obs)
		if err != nil {
			return subdimResult{}, err
		}

		global[i] = make([]abs.Ranks, len(sub.facetings))
		for j, pf := range sub.facetings {
			global[i][j] = renumberEdges(pf.ranks, o.verts)
		}
		possible[i] = sub.facetings
		compounds[i] = sub.compounds
		childRidges[i] = sub.ridges
		ffCounts[i] = sub.counts
		hpVerts[i] = o.verts
		fCounts[i] = o.size
	}

	idx := indexRidges(childRidges, hpVerts, vm, obs)
	muls, ones, err := ridgeMultiplicities(possible, idx, fCounts, ffCounts)
	if err != nil {
		return subdimResult{}, err
	}

	ridgeRefs := make([][][]FacetRef, len(possible))
	for hp, list := range possible {
		ridgeRefs[hp] = make([][]FacetRef, len(list))
		for fi, pf := range list {
			ridgeRefs[hp][fi] = pf.ridges
		}
	}

	comb := combiner{
		ridgeRefs: ridgeRefs,
		orbitOf:   idx.orbitOf,
		muls:      muls,
		ones:      ones,
		nOrbits:   len(idx.counts),
		obs:       obs,
	}

	var output []possibleFacet
	skipped := 0
	var buildErr error

	comb.run(noble == nil, 0, func(facets []FacetRef, _ []int) bool {
		split := splitComponents(facets, compounds)

		facetVec := expandFacets(split, global, possible, vm, false, nil)
		asm := assemble(facetVec, rank, len(points), false)

		if uniform {
			keep, err := isogonalSection(facetVec, rank, flat)
			if err != nil {
				buildErr = err
				return false
			}
			if !keep {
				skipped++
				return maxPer == 0 || len(output)+skipped < maxPer
			}
		}

		output = append(output, possibleFacet{ranks: asm.ranks, ridges: split})
		return maxPer == 0 || len(output)+skipped < maxPer
	})
	if buildErr != nil {
		return subdimResult{}, buildErr
	}

	sort.Slice(output, func(i, j int) bool {
		return compareRefs(output[i].ridges, output[j].ridges) < 0
	})
	lists := make([][]FacetRef, len(output))
	for i, pf := range output {
		lists[i] = pf.ridges
	}

	return subdimResult{
		facetings: output,
		counts:    fCounts,
		ridges:    global,
		compounds: labelCompounds(lists),
	}, nil
}

// dyadFaceting is the recursion's base: the only faceting of a dyad is
// itself, and its two endpoints are the candidate ridges one level up.
// Under a snub stabilizer (no element swapping the endpoints) the two
// endpoints lie in separate orbits.
func dyadFaceting(vm orbit.VertexMap) subdimResult {
	snub := true
	for _, row := range vm {
		if row[0] == 1 {
			snub = false
			break
		}
	}

	if snub {
		return subdimResult{
			facetings: []possibleFacet{{ranks: abs.Dyad(), ridges: []FacetRef{{0, 0}, {1, 0}}}},
			counts:    []int{1, 1},
			ridges:    [][]abs.Ranks{{pointRidge(0)}, {pointRidge(1)}},
			compounds: map[int][2]int{},
		}
	}
	return subdimResult{
		facetings: []possibleFacet{{ranks: abs.Dyad(), ridges: []FacetRef{{0, 0}}}},
		counts:    []int{2},
		ridges:    [][]abs.Ranks{{pointRidge(0)}},
		compounds: map[int][2]int{},
	}
}

// pointRidge represents a single endpoint as a rank structure whose
// top element references the vertex. Only the top two levels are ever
// read when the parent renumbers and canonicalizes it.
func pointRidge(v int) abs.Ranks {
	return abs.Ranks{
		abs.ElementList{},
		abs.ElementList{abs.NewElement(0)},
		abs.ElementList{abs.NewElement(v)},
	}
}

// expandFacets applies the whole group to each chosen facet orbit and
// collects the distinct canonicalized images in first-seen order.
// With dedupEdges set, images are additionally deduplicated within
// each orbit by their raw edge set before canonicalization, which
// keeps one representative per geometric facet. A non-nil onOrbit
// hook runs once per orbit with the position its first image will
// take in the output.
func expandFacets(refs []FacetRef, global [][]abs.Ranks, possible [][]possibleFacet, vm orbit.VertexMap, dedupEdges bool, onOrbit func(ref FacetRef, pos int)) []abs.Ranks {
	seen := make(map[string]bool)
	var out []abs.Ranks

	for _, ref := range refs {
		g := global[ref.HP][ref.F]
		local := possible[ref.HP][ref.F].ranks

		if onOrbit != nil {
			onOrbit(ref, len(out))
		}

		ofThisOrbit := make(map[string]bool)
		for _, row := range vm {
			nf := renumberEdges(g, row)

			if dedupEdges {
				ekey := edgeSetKey(nf)
				if ofThisOrbit[ekey] {
					continue
				}
				ofThisOrbit[ekey] = true
			}

			nf.SortStrongWithLocal(local)
			key := nf.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, nf)
		}
	}
	return out
}

// edgeSetKey canonicalizes a structure's edge list alone: subs sorted
// within each edge, edges sorted overall.
func edgeSetKey(r abs.Ranks) string {
	edges := make([][]int, len(r[2]))
	for i, e := range r[2] {
		edges[i] = append([]int(nil), e.Subs...)
		sort.Ints(edges[i])
	}
	sort.Slice(edges, func(i, j int) bool {
		return compareSubsLex(edges[i], edges[j]) < 0
	})
	b := make([]byte, 0, len(edges)*8)
	for _, e := range edges {
		b = append(b, intsKey(e)...)
		b = append(b, ';')
	}
	return string(b)
}

func compareSubsLex(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// isogonalSection checks whether the assembled structure, reduced to
// its referenced vertices, has a single vertex type per component.
func isogonalSection(facetVec []abs.Ranks, rank int, flat []geom.Point) (bool, error) {
	asm := assemble(facetVec, rank, 0, true)
	a, err := abs.Build(asm.ranks)
	if err != nil {
		return false, &InternalError{Code: ErrCodeNotDyadic,
			Message: "closed sub-faceting failed validation", Err: err}
	}

	poly := polytope.New(selectPoints(flat, asm.toOld), a)
	poly.Recenter()
	return polytope.IsogonalPerComponent(poly), nil
}

// nobleFilter drops hyperplane orbits whose ridge plane, viewed in the
// full group, cannot be covered by at least two facets.
func nobleFilter(orbits []hyperplaneOrbit, np *noblePackage) []hyperplaneOrbit {
	nobleMap := make(map[string]int)
	var nobleCounts, nobleMuls []int
	keys := make([]string, len(orbits))

	for i, o := range orbits {
		globalHPV := make([]int, len(o.verts))
		for j, v := range o.verts {
			globalHPV[j] = np.globalVerts[v]
		}
		sort.Ints(globalHPV)
		keys[i] = intsKey(globalHPV)

		if idx, ok := nobleMap[keys[i]]; ok {
			nobleMuls[idx] += np.count * o.size / nobleCounts[idx]
			continue
		}
		distinct := 0
		for _, row := range np.fullVM {
			img := make([]int, len(globalHPV))
			for j, v := range globalHPV {
				img[j] = row[v]
			}
			sort.Ints(img)
			key := intsKey(img)
			if _, ok := nobleMap[key]; !ok {
				nobleMap[key] = len(nobleCounts)
				distinct++
			}
		}
		nobleCounts = append(nobleCounts, distinct)
		nobleMuls = append(nobleMuls, np.count*o.size/distinct)
	}

	var out []hyperplaneOrbit
	for i, o := range orbits {
		if nobleMuls[nobleMap[keys[i]]] >= 2 {
			out = append(out, o)
		}
	}
	return out
}
