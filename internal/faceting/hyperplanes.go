package faceting

import (
	"math"
	"sort"
	"strconv"

	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/orbit"
)

// enumerateHyperplanes finds every orbit of candidate facet
// hyperplanes at the top rank. Starting from pair orbits, tuples are
// grown one vertex at a time with orbit deduplication at every size,
// keeping only tuples that span a subspace of full expected rank; the
// final extension tests for a true hyperplane and applies the
// inradius filters.
func enumerateHyperplanes(points []geom.Point, vm orbit.VertexMap, vertexOrbits [][]int, rank int, f filters, obs Observer) []hyperplaneOrbit {
	n := len(points)

	pairOrbits := orbit.Pairs(n, vm, vertexOrbits, func(a, b int) bool {
		return f.edgeLengthOK(geom.Dist(points[a], points[b]))
	})
	obs.Progress("edge orbits", len(pairOrbits))

	// At rank 3 a pair already defines a hyperplane (a line in the
	// plane), so no tuple growth happens at all.
	if rank == 3 {
		var orbits []hyperplaneOrbit
		checked := make(map[string]bool)
		for _, po := range pairOrbits {
			rep := po[0]
			plane := geom.FromPoints([]geom.Point{points[rep[0]], points[rep[1]]})
			if !plane.IsHyperplane() {
				continue
			}
			if !inradiusOK(plane, points, f) {
				continue
			}
			if o, ok := registerHyperplane(checked, plane, points, vm); ok {
				orbits = append(orbits, o)
				obs.Progress("hyperplane orbits", len(orbits))
			}
		}
		return orbits
	}

	// Grow tuple orbits from lines up to one vertex short of a
	// hyperplane. Each tuple spans a subspace of rank number-1.
	tuples := make([][]int, len(pairOrbits))
	for i, po := range pairOrbits {
		tuples[i] = []int{po[0][0], po[0][1]}
	}
	for number := 3; number < rank-1; number++ {
		checked := make(map[string]bool)
		var next [][]int

		for _, tuple := range tuples {
			for v := tuple[len(tuple)-1] + 1; v < n; v++ {
				if !f.edgeLengthOK(geom.Dist(points[tuple[0]], points[v])) {
					continue
				}
				cand := append(append([]int(nil), tuple...), v)

				if anyImageSeen(checked, cand, vm) {
					continue
				}
				sort.Ints(cand)

				span := geom.FromPoints(selectPoints(points, cand))
				if span.Rank() == number-1 {
					next = append(next, cand)
				}
				checked[intsKey(cand)] = true

				obs.Progress("tuple orbits", len(next))
			}
		}
		tuples = next
	}

	var orbits []hyperplaneOrbit
	checked := make(map[string]bool)

	for _, rep := range tuples {
		last := rep[len(rep)-1]
		for v := last + 1; v < n; v++ {
			obs.Progress("hyperplane orbits", len(orbits))

			if !f.edgeLengthOK(geom.Dist(points[rep[0]], points[v])) {
				continue
			}
			tuple := append(append([]int(nil), rep...), v)
			plane := geom.FromPoints(selectPoints(points, tuple))
			if !plane.IsHyperplane() {
				continue
			}

			inradius := plane.Distance(geom.Zero(len(points[0])))
			if f.minRad != nil && inradius < *f.minRad-geom.Eps {
				break
			}
			if f.maxRad != nil && inradius > *f.maxRad+geom.Eps {
				break
			}
			if f.excludeHemis && math.Abs(inradius) < geom.Eps {
				break
			}

			if o, ok := registerHyperplane(checked, plane, points, vm); ok {
				orbits = append(orbits, o)
			}
		}
	}
	return orbits
}

// enumerateHyperplanesBelowVertex is the alternative strategy: for
// each vertex-orbit representative, vertices are grouped by their dot
// product against it, and each level set below the vertex is tried as
// a hyperplane. Orbit ordering differs from the general strategy for
// the same geometric input; downstream consumers treat the ordering
// as implementation-defined.
func enumerateHyperplanesBelowVertex(points []geom.Point, vm orbit.VertexMap, vertexOrbits [][]int, f filters, obs Observer) []hyperplaneOrbit {
	var orbits []hyperplaneOrbit
	checked := make(map[string]bool)

	for _, vo := range vertexOrbits {
		rep := points[vo[0]]

		levels := make(map[float64][]int)
		var keys []float64
		for idx, p := range points {
			dot := p.Dot(rep)
			found := false
			for _, k := range keys {
				if math.Abs(k-dot) < geom.Eps {
					levels[k] = append(levels[k], idx)
					found = true
					break
				}
			}
			if !found {
				keys = append(keys, dot)
				levels[dot] = append(levels[dot], idx)
			}
		}
		sort.Float64s(keys)

	nextLevel:
		for _, k := range keys {
			list := append([]int(nil), levels[k]...)
			sort.Ints(list)
			obs.Progress("hyperplane orbits", len(orbits))

			for _, v := range list[1:] {
				if !f.edgeLengthOK(geom.Dist(points[v], points[list[0]])) {
					continue nextLevel
				}
			}

			plane := geom.FromPoints(selectPoints(points, list))
			if !plane.IsHyperplane() {
				continue
			}

			inradius := plane.Distance(geom.Zero(len(points[0])))
			if f.minRad != nil && inradius < *f.minRad-geom.Eps {
				continue
			}
			if f.maxRad != nil && inradius > *f.maxRad+geom.Eps {
				continue
			}
			if f.excludeHemis && math.Abs(inradius) < geom.Eps {
				continue
			}

			if o, ok := registerHyperplane(checked, plane, points, vm); ok {
				orbits = append(orbits, o)
			}
		}
	}
	return orbits
}

// registerHyperplane collects the vertices on a plane, rejects it if
// any image under the group was already registered, and otherwise
// records the orbit with its size.
func registerHyperplane(checked map[string]bool, plane geom.Subspace, points []geom.Point, vm orbit.VertexMap) (hyperplaneOrbit, bool) {
	var verts []int
	for idx, p := range points {
		if plane.Contains(p) {
			verts = append(verts, idx)
		}
	}
	sort.Ints(verts)

	images := make(map[string]bool)
	for _, row := range vm {
		img := make([]int, len(verts))
		for i, v := range verts {
			img[i] = row[v]
		}
		sort.Ints(img)
		key := intsKey(img)
		if checked[key] {
			return hyperplaneOrbit{}, false
		}
		images[key] = true
	}

	checked[intsKey(verts)] = true
	return hyperplaneOrbit{plane: plane, verts: verts, size: len(images)}, true
}

// inradiusOK applies the inradius window and hemi exclusion to a
// candidate hyperplane.
func inradiusOK(plane geom.Subspace, points []geom.Point, f filters) bool {
	inradius := plane.Distance(geom.Zero(len(points[0])))
	if f.minRad != nil && inradius < *f.minRad-geom.Eps {
		return false
	}
	if f.maxRad != nil && inradius > *f.maxRad+geom.Eps {
		return false
	}
	if f.excludeHemis && math.Abs(inradius) < geom.Eps {
		return false
	}
	return true
}

// anyImageSeen reports whether any group image of the tuple was
// already registered.
func anyImageSeen(checked map[string]bool, tuple []int, vm orbit.VertexMap) bool {
	for _, row := range vm {
		img := make([]int, len(tuple))
		for i, v := range tuple {
			img[i] = row[v]
		}
		sort.Ints(img)
		if checked[intsKey(img)] {
			return true
		}
	}
	return false
}

func selectPoints(points []geom.Point, idxs []int) []geom.Point {
	out := make([]geom.Point, len(idxs))
	for i, idx := range idxs {
		out[i] = points[idx]
	}
	return out
}

func intsKey(s []int) string {
	b := make([]byte, 0, len(s)*4)
	for _, v := range s {
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, ',')
	}
	return string(b)
}
