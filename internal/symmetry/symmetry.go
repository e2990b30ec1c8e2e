package symmetry

import (
	"math"
	"sort"

	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/orbit"
)

// VertexMap computes every distance-preserving permutation of the
// given points. The identity is always row 0; remaining rows follow
// the backtracking order, which is deterministic for a fixed input.
func VertexMap(points []geom.Point) orbit.VertexMap {
	n := len(points)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = geom.Dist(points[i], points[j])
		}
	}

	// Distance profiles prune candidates before backtracking: a
	// vertex can only map to one with the same sorted distance list.
	profiles := make([][]float64, n)
	for i := range profiles {
		p := append([]float64(nil), dist[i]...)
		sort.Float64s(p)
		profiles[i] = p
	}

	var (
		rows   orbit.VertexMap
		perm   = make([]int, n)
		used   = make([]bool, n)
		extend func(pos int)
	)
	extend = func(pos int) {
		if pos == n {
			rows = append(rows, append([]int(nil), perm...))
			return
		}
		for c := 0; c < n; c++ {
			if used[c] || !sameProfile(profiles[pos], profiles[c]) {
				continue
			}
			ok := true
			for u := 0; u < pos; u++ {
				if math.Abs(dist[pos][u]-dist[c][perm[u]]) > geom.Eps {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			perm[pos] = c
			used[c] = true
			extend(pos + 1)
			used[c] = false
		}
	}
	extend(0)

	// Move the identity to the front; downstream code assumes row 0
	// is the identity numbering.
	for i, row := range rows {
		if isIdentity(row) {
			rows[0], rows[i] = rows[i], rows[0]
			break
		}
	}
	return rows
}

// RotationVertexMap computes the subgroup of VertexMap realized by
// orientation-preserving isometries.
func RotationVertexMap(points []geom.Point) orbit.VertexMap {
	full := VertexMap(points)
	var out orbit.VertexMap
	for _, row := range full {
		if orientationPreserving(points, row) {
			out = append(out, row)
		}
	}
	return out
}

// orientationPreserving realizes a vertex permutation as a linear map
// on the span of the centered configuration and reports whether its
// determinant is positive. Permutations of configurations that span
// only a point are trivially orientation-preserving.
func orientationPreserving(points []geom.Point, row []int) bool {
	span := geom.FromPoints(points)
	d := span.Rank()
	if d == 0 {
		return true
	}

	flat := make([]geom.Point, len(points))
	for i, p := range points {
		flat[i] = span.Flatten(p)
	}
	centroid := geom.Centroid(flat)
	centered := make([]geom.Point, len(flat))
	for i, p := range flat {
		centered[i] = p.Sub(centroid)
	}

	// Greedily pick d centered points forming a basis.
	var basis []int
	for i, p := range centered {
		trial := make([]geom.Point, 0, len(basis)+2)
		trial = append(trial, geom.Zero(d))
		for _, b := range basis {
			trial = append(trial, centered[b])
		}
		trial = append(trial, p)
		if geom.FromPoints(trial).Rank() == len(basis)+1 {
			basis = append(basis, i)
			if len(basis) == d {
				break
			}
		}
	}
	if len(basis) < d {
		return true
	}

	src := make([][]float64, d)
	dst := make([][]float64, d)
	for i, b := range basis {
		src[i] = append([]float64(nil), centered[b]...)
		dst[i] = append([]float64(nil), centered[row[b]]...)
	}
	return geom.Det(src)*geom.Det(dst) > 0
}

func sameProfile(a, b []float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > geom.Eps {
			return false
		}
	}
	return true
}

func isIdentity(row []int) bool {
	for i, v := range row {
		if v != i {
			return false
		}
	}
	return true
}
