package orbit

import "sort"

// VertexMap is a list of index permutations, one per symmetry. Row 0
// is conventionally the identity, though any row order works as long
// as the identity is present.
type VertexMap [][]int

// Identity returns the identity vertex map on n vertices.
func Identity(n int) VertexMap {
	row := make([]int, n)
	for i := range row {
		row[i] = i
	}
	return VertexMap{row}
}

// Vertices partitions vertex indices 0..n-1 into orbits. Every vertex
// appears in exactly one orbit; the representative of each orbit is
// its first member.
func Vertices(n int, vm VertexMap) [][]int {
	seen := make([]bool, n)
	var orbits [][]int
	for v := 0; v < n; v++ {
		if seen[v] {
			continue
		}
		var members []int
		for _, row := range vm {
			c := row[v]
			if !seen[c] {
				seen[c] = true
				members = append(members, c)
			}
		}
		orbits = append(orbits, members)
	}
	return orbits
}

// PairFilter restricts which vertex pairs enter pair orbits. A nil
// filter admits every pair.
type PairFilter func(a, b int) bool

// Pairs partitions unordered vertex pairs into orbits, seeding only
// from pairs whose first member is a vertex-orbit representative and
// that pass the filter. Pairs are stored low-index-first.
func Pairs(n int, vm VertexMap, vertexOrbits [][]int, keep PairFilter) [][][2]int {
	seen := make([][]bool, n)
	for i := range seen {
		seen[i] = make([]bool, n)
	}

	var orbits [][][2]int
	for _, vo := range vertexOrbits {
		rep := vo[0]
		for v := rep + 1; v < n; v++ {
			if seen[rep][v] {
				continue
			}
			if keep != nil && !keep(rep, v) {
				continue
			}
			var members [][2]int
			for _, row := range vm {
				a, b := row[rep], row[v]
				if a > b {
					a, b = b, a
				}
				if !seen[a][b] {
					seen[a][b] = true
					members = append(members, [2]int{a, b})
				}
			}
			orbits = append(orbits, members)
		}
	}
	return orbits
}

// Stabilizer extracts the subgroup of rows that fix the given sorted
// vertex set (as a set), re-expressed as permutations of local indices
// 0..len(verts)-1. The returned toLocal map translates a global vertex
// index on the set to its local index; its inverse is verts itself.
func Stabilizer(vm VertexMap, verts []int) (local VertexMap, toLocal map[int]int) {
	sorted := append([]int(nil), verts...)

	var rows [][]int
	for _, row := range vm {
		slice := make([]int, len(verts))
		for i, v := range verts {
			slice[i] = row[v]
		}
		if sameSet(slice, sorted) {
			rows = append(rows, slice)
		}
	}

	// verts itself defines the local numbering, so the result does not
	// depend on the order of the rows in vm.
	toLocal = make(map[int]int, len(verts))
	for i, v := range verts {
		toLocal[v] = i
	}

	local = make(VertexMap, len(rows))
	for i, row := range rows {
		lr := make([]int, len(row))
		for j, v := range row {
			lr[j] = toLocal[v]
		}
		local[i] = lr
	}
	return local, toLocal
}

// sameSet reports whether a is a permutation of the sorted slice b.
func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	tmp := append([]int(nil), a...)
	sort.Ints(tmp)
	for i := range tmp {
		if tmp[i] != b[i] {
			return false
		}
	}
	return true
}
