package polytope

import (
	"sort"
	"strconv"
	"strings"

	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/geom"
)

// ElementTypeCounts classifies elements by iterative refinement: two
// elements share a type when their subelement and superelement type
// multisets agree, refined to a fixpoint. The result is the number of
// distinct types at each rank. A polytope is isogonal when the count
// at rank 1 is one.
func ElementTypeCounts(a *abs.Abstract) []int {
	r := a.Ranks()
	types := make([][]int, len(r))
	for rank := range r {
		types[rank] = make([]int, len(r[rank]))
	}

	for {
		changed := false
		next := make([][]int, len(r))
		for rank := range r {
			sigs := make(map[string]int)
			next[rank] = make([]int, len(r[rank]))
			for i := range r[rank] {
				sig := signature(a, types, rank, i)
				id, ok := sigs[sig]
				if !ok {
					id = len(sigs)
					sigs[sig] = id
				}
				next[rank][i] = id
			}
			if countDistinct(next[rank]) != countDistinct(types[rank]) {
				changed = true
			}
		}
		types = next
		if !changed {
			return typeCounts(types)
		}
	}
}

// signature builds the refinement key of one element from its own
// type and the sorted types of its neighbors.
func signature(a *abs.Abstract, types [][]int, rank, idx int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(types[rank][idx]))
	b.WriteByte('/')

	if rank > 0 {
		subs := a.Ranks()[rank][idx].Subs
		st := make([]int, len(subs))
		for i, s := range subs {
			st[i] = types[rank-1][s]
		}
		sort.Ints(st)
		for _, t := range st {
			b.WriteString(strconv.Itoa(t))
			b.WriteByte(',')
		}
	}
	b.WriteByte('/')
	if rank < a.Rank() {
		sups := a.Sups(rank, idx)
		st := make([]int, len(sups))
		for i, s := range sups {
			st[i] = types[rank+1][s]
		}
		sort.Ints(st)
		for _, t := range st {
			b.WriteString(strconv.Itoa(t))
			b.WriteByte(',')
		}
	}
	return b.String()
}

func countDistinct(ids []int) int {
	seen := make(map[int]bool)
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}

func typeCounts(types [][]int) []int {
	out := make([]int, len(types))
	for rank, ids := range types {
		out[rank] = countDistinct(ids)
	}
	return out
}

// ComponentCount returns the number of connected components of the
// facet graph: facets are adjacent when they share a ridge. A closed
// polytope with more than one component is a compound.
func ComponentCount(a *abs.Abstract) int {
	top := a.Rank()
	if top < 2 {
		return 1
	}
	nFacets := len(a.Ranks()[top-1])
	if nFacets == 0 {
		return 0
	}

	parent := make([]int, nFacets)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(x, y int) {
		parent[find(x)] = find(y)
	}

	for r := range a.Ranks()[top-2] {
		sups := a.Sups(top-2, r)
		for i := 1; i < len(sups); i++ {
			union(sups[0], sups[i])
		}
	}

	roots := make(map[int]bool)
	for i := range parent {
		roots[find(i)] = true
	}
	return len(roots)
}

// IsCompound reports whether the polytope splits into disjoint
// components.
func IsCompound(a *abs.Abstract) bool {
	return ComponentCount(a) > 1
}

// HasCoincidentFacets reports whether two distinct facets cover the
// same vertex set, the marker used for fissary facetings.
func HasCoincidentFacets(a *abs.Abstract) bool {
	top := a.Rank()
	if top < 2 {
		return false
	}
	seen := make(map[string]bool)
	for idx := range a.Ranks()[top-1] {
		_, verts := a.Subtree(top-1, idx)
		sort.Ints(verts)
		var b strings.Builder
		for _, v := range verts {
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(',')
		}
		key := b.String()
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

// IsogonalPerComponent reports whether every connected component of
// the polytope has a single vertex type. Uniform-mode filtering uses
// this relaxation: a compound of isogonal components passes.
func IsogonalPerComponent(c *Concrete) bool {
	counts := ElementTypeCounts(c.Abs)
	if counts[1] <= 1 {
		return true
	}
	if !IsCompound(c.Abs) {
		return false
	}
	comps, err := SplitComponents(c)
	if err != nil {
		return false
	}
	for _, comp := range comps {
		if ElementTypeCounts(comp.Abs)[1] > 1 {
			return false
		}
	}
	return true
}

// SplitComponents separates a compound into its connected components,
// each rebuilt as a standalone polytope.
func SplitComponents(c *Concrete) ([]*Concrete, error) {
	a := c.Abs
	top := a.Rank()
	nFacets := len(a.Ranks()[top-1])

	comp := make([]int, nFacets)
	for i := range comp {
		comp[i] = -1
	}
	nComp := 0
	for seed := 0; seed < nFacets; seed++ {
		if comp[seed] != -1 {
			continue
		}
		stack := []int{seed}
		comp[seed] = nComp
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, ridge := range a.Ranks()[top-1][f].Subs {
				for _, g := range a.Sups(top-2, ridge) {
					if comp[g] == -1 {
						comp[g] = nComp
						stack = append(stack, g)
					}
				}
			}
		}
		nComp++
	}

	out := make([]*Concrete, 0, nComp)
	for ci := 0; ci < nComp; ci++ {
		var facets []int
		for f, c2 := range comp {
			if c2 == ci {
				facets = append(facets, f)
			}
		}
		poly, err := extract(c, facets)
		if err != nil {
			return nil, err
		}
		out = append(out, poly)
	}
	return out, nil
}

// extract rebuilds the substructure spanned by the given facets as a
// full polytope with dense indices.
func extract(c *Concrete, facets []int) (*Concrete, error) {
	a := c.Abs
	top := a.Rank()
	r := a.Ranks()

	keep := make([]map[int]int, top+1)
	order := make([][]int, top+1)
	for rank := range keep {
		keep[rank] = make(map[int]int)
	}
	for _, f := range facets {
		keep[top-1][f] = len(order[top-1])
		order[top-1] = append(order[top-1], f)
	}
	for rank := top - 1; rank > 0; rank-- {
		for _, old := range order[rank] {
			for _, s := range r[rank][old].Subs {
				if _, ok := keep[rank-1][s]; !ok {
					keep[rank-1][s] = len(order[rank-1])
					order[rank-1] = append(order[rank-1], s)
				}
			}
		}
	}

	out := make(abs.Ranks, top+1)
	out[0] = abs.ElementList{abs.NewElement()}
	for rank := 1; rank < top; rank++ {
		out[rank] = make(abs.ElementList, len(order[rank]))
		for newIdx, old := range order[rank] {
			e := abs.Element{}
			if rank == 1 {
				e = abs.NewElement(0)
			} else {
				for _, s := range r[rank][old].Subs {
					e.Subs = append(e.Subs, keep[rank-1][s])
				}
			}
			out[rank][newIdx] = e
		}
	}
	body := abs.Element{}
	for i := range order[top-1] {
		body.Subs = append(body.Subs, i)
	}
	out[top] = abs.ElementList{body}

	built, err := abs.Build(out)
	if err != nil {
		return nil, err
	}
	coords := make([]geom.Point, len(order[1]))
	for i, v := range order[1] {
		coords[i] = c.Vertices[v].Clone()
	}
	return &Concrete{Vertices: coords, Abs: built}, nil
}
