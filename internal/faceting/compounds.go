package faceting

// compareRefs orders two sorted facet lists lexicographically.
func compareRefs(a, b []FacetRef) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i].Less(b[i]) {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// isSubset reports whether sub occurs entirely within base. Both lists
// must be sorted.
func isSubset(sub, base []FacetRef) bool {
	i := 0
	for _, f := range base {
		if f.Less(sub[i]) {
			continue
		}
		if sub[i].Less(f) {
			return false
		}
		i++
		if i >= len(sub) {
			return true
		}
	}
	return false
}

// labelCompounds maps each faceting that is the disjoint union of two
// others onto the indices of its components. The input lists must be
// sorted, both individually and overall; any faceting with a strictly
// smaller subset whose exact complement is also present gets an entry.
func labelCompounds(facetings [][]FacetRef) map[int][2]int {
	out := make(map[int][2]int)

	for a := range facetings {
		for b := range facetings {
			if len(facetings[b]) >= len(facetings[a]) {
				continue
			}
			// Sorted overall, so once the candidate's first facet
			// passes ours no later candidate can be a subset either.
			if facetings[a][0].Less(facetings[b][0]) {
				break
			}
			if !isSubset(facetings[b], facetings[a]) {
				continue
			}

			complement := refComplement(facetings[a], facetings[b])
			for c := b + 1; c < len(facetings); c++ {
				if compareRefs(facetings[c], complement) == 0 {
					out[a] = [2]int{b, c}
					break
				}
			}
			break
		}
	}
	return out
}

// filterCompounds returns the indices of the facetings that do not
// contain any other faceting, dropping unions of smaller results. The
// input lists must be sorted, both individually and overall.
func filterCompounds(facetings [][]FacetRef) []int {
	var out []int

nextBase:
	for a := range facetings {
		for b := range facetings {
			if a == b {
				continue
			}
			if len(facetings[b]) > len(facetings[a]) {
				continue
			}
			if facetings[a][0].Less(facetings[b][0]) {
				break
			}
			if isSubset(facetings[b], facetings[a]) {
				continue nextBase
			}
		}
		out = append(out, a)
	}
	return out
}

// refComplement returns the elements of base not present in sub. Both
// lists must be sorted and sub must be a subset of base.
func refComplement(base, sub []FacetRef) []FacetRef {
	var out []FacetRef
	j := 0
	for _, f := range base {
		if j < len(sub) && sub[j] == f {
			j++
			continue
		}
		out = append(out, f)
	}
	return out
}
