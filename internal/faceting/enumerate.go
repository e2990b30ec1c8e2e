package faceting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/orbit"
	"github.com/apeirotope/facet/internal/polytope"
)

// Enumerate runs the faceting search over a vertex configuration under
// the symmetry given as a vertex map. Results are returned in order,
// or streamed through opts.Emit when set (in which case the returned
// slice is nil).
//
// The search is deterministic: the same vertices, map and options
// always produce the same results in the same order.
func Enumerate(vertices []geom.Point, vm orbit.VertexMap, opts Options) ([]Result, error) {
	if opts.Rank < 3 {
		return nil, ErrRankTooLow
	}
	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	var results []Result
	emit := opts.Emit
	if emit == nil {
		emit = func(r Result) error {
			results = append(results, r)
			return nil
		}
	}

	vertexOrbits := orbit.Vertices(len(vertices), vm)

	var lengths []float64
	if opts.AnySingleEdgeLength {
		lengths = edgeLengths(vertices, vertexOrbits)
	}

	passes := 1
	if opts.AnySingleEdgeLength {
		passes = len(lengths)
	}
	for pass := 0; pass < passes; pass++ {
		f := filters{
			minEdge:      opts.MinEdgeLength,
			maxEdge:      opts.MaxEdgeLength,
			minRad:       opts.MinInradius,
			maxRad:       opts.MaxInradius,
			excludeHemis: opts.ExcludeHemis,
		}
		prefix := ""
		if opts.AnySingleEdgeLength {
			l := lengths[pass]
			f.minEdge, f.maxEdge = &l, &l
			prefix = fmt.Sprintf("%d.", pass)
		}
		if err := enumeratePass(vertices, vm, vertexOrbits, f, prefix, opts, obs, emit); err != nil {
			return nil, err
		}
	}
	if opts.Emit != nil {
		return nil, nil
	}
	return results, nil
}

// edgeLengths collects every distinct distance from a vertex-orbit
// representative to a later vertex, ascending, merged within Eps.
func edgeLengths(vertices []geom.Point, vertexOrbits [][]int) []float64 {
	var all []float64
	for _, vo := range vertexOrbits {
		rep := vo[0]
		for i := rep + 1; i < len(vertices); i++ {
			all = append(all, geom.Dist(vertices[rep], vertices[i]))
		}
	}
	sort.Float64s(all)

	var out []float64
	for _, l := range all {
		if len(out) == 0 || l-out[len(out)-1] > geom.Eps {
			out = append(out, l)
		}
	}
	return out
}

// enumeratePass runs one full search with a fixed edge-length window.
func enumeratePass(vertices []geom.Point, vm orbit.VertexMap, vertexOrbits [][]int, f filters, prefix string, opts Options, obs Observer, emit func(Result) error) error {
	obs.Phase("enumerating hyperplanes")
	var orbits []hyperplaneOrbit
	if opts.OnlyBelowVertex {
		orbits = enumerateHyperplanesBelowVertex(vertices, vm, vertexOrbits, f, obs)
	} else {
		orbits = enumerateHyperplanes(vertices, vm, vertexOrbits, opts.Rank, f, obs)
	}

	obs.Phase("faceting hyperplanes")
	subFilters := filters{minEdge: f.minEdge, maxEdge: f.maxEdge}

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
			return internalErrorf(ErrCodeEmptyStabilizer,
				"hyperplane orbit %d with verts %v", i, o.verts)
		}

		var np *noblePackage
		if opts.Noble == 1 {
			np = &noblePackage{fullVM: vm, globalVerts: o.verts, count: o.size}
		}

		sub, err := facetSubdim(opts.Rank-1, o.plane, selectPoints(vertices, o.verts), stab, subFilters, opts.MaxPerHyperplane, opts.Uniform, np, obs)
		if err != nil {
			return err
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

		obs.Progress("hyperplanes faceted", i+1)
	}

	obs.Phase("indexing ridges")
	idx := indexRidges(childRidges, hpVerts, vm, obs)
	muls, ones, err := ridgeMultiplicities(possible, idx, fCounts, ffCounts)
	if err != nil {
		return err
	}

	ridgeRefs := make([][][]FacetRef, len(possible))
	for hp, list := range possible {
		ridgeRefs[hp] = make([][]FacetRef, len(list))
		for fi, pf := range list {
			ridgeRefs[hp][fi] = pf.ridges
		}
	}

	obs.Phase("combining")
	comb := combiner{
		ridgeRefs: ridgeRefs,
		orbitOf:   idx.orbitOf,
		muls:      muls,
		ones:      ones,
		nOrbits:   len(idx.counts),
		obs:       obs,
	}

	var outputFacets [][]FacetRef
	comb.run(opts.IncludeCompounds, opts.Noble, func(facets []FacetRef, _ []int) bool {
		split := splitComponents(facets, compounds)
		sort.Slice(split, func(i, j int) bool { return split[i].Less(split[j]) })
		outputFacets = append(outputFacets, split)
		return true
	})

	sort.Slice(outputFacets, func(i, j int) bool {
		return compareRefs(outputFacets[i], outputFacets[j]) < 0
	})
	if !opts.IncludeCompounds {
		kept := filterCompounds(outputFacets)
		filtered := make([][]FacetRef, len(kept))
		for i, k := range kept {
			filtered[i] = outputFacets[k]
		}
		outputFacets = filtered
	}

	obs.Phase("building")
	type savedOrbit struct {
		ref FacetRef
		pos int
	}
	usedFacets := make(map[FacetRef]*polytope.Concrete)

	for n, facets := range outputFacets {
		var pending []savedOrbit
		var hook func(FacetRef, int)
		if opts.SaveFacets {
			hook = func(ref FacetRef, pos int) {
				if _, ok := usedFacets[ref]; !ok {
					pending = append(pending, savedOrbit{ref: ref, pos: pos})
				}
			}
		}

		facetVec := expandFacets(facets, global, possible, vm, true, hook)
		asm := assemble(facetVec, opts.Rank, 0, true)

		a, err := abs.Build(asm.ranks)
		if err != nil {
			return &InternalError{Code: ErrCodeNotDyadic,
				Message: fmt.Sprintf("closed faceting %s is not a polytope", formatRefs(facets)), Err: err}
		}
		poly := polytope.New(selectPoints(vertices, asm.toOld), a)

		status := ""
		if opts.MarkFissary {
			if polytope.IsCompound(a) {
				status = " [C]"
			} else if polytope.HasCoincidentFacets(a) {
				status = " [F]"
			}
		}
		label := ""
		if opts.LabelFacets {
			label = " -" + formatRefs(facets)
		}

		if err := emit(Result{
			Polytope: poly,
			Name:     fmt.Sprintf("faceting %s%d%s%s", prefix, n, label, status),
		}); err != nil {
			return err
		}

		for _, s := range pending {
			fp, err := poly.Facet(asm.facetIdx[s.pos])
			if err != nil {
				return &InternalError{Code: ErrCodeNotDyadic,
					Message: fmt.Sprintf("facet (%d,%d) is not a polytope", s.ref.HP, s.ref.F), Err: err}
			}
			usedFacets[s.ref] = fp
		}
	}

	if opts.SaveFacets {
		refs := make([]FacetRef, 0, len(usedFacets))
		for ref := range usedFacets {
			refs = append(refs, ref)
		}
		sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })

		for _, ref := range refs {
			fp := usedFacets[ref]
			fp.Flatten()
			fp.RecenterOnCircumsphere()
			if err := emit(Result{
				Polytope: fp,
				Name:     fmt.Sprintf("facet (%d,%d)", ref.HP, ref.F),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatRefs renders a facet list the way result names carry it,
// " (hp,f) (hp,f) ...".
func formatRefs(refs []FacetRef) string {
	var b strings.Builder
	for _, r := range refs {
		fmt.Fprintf(&b, " (%d,%d)", r.HP, r.F)
	}
	return b.String()
}
