// Package faceting enumerates the facetings of a point configuration
// under a symmetry group supplied as a vertex map.
//
// A faceting is an alternative polytope on (a subset of) the original
// vertices whose facets are hyperplane sections of the vertex set,
// chosen so that every ridge is shared by exactly two facets. The
// search works orbit-wise: hyperplanes are enumerated up to symmetry,
// each hyperplane is recursively faceted as a lower-rank polytope
// under its stabilizer subgroup, and candidate facet orbits are then
// combined by a backtracking search over ridge-orbit multiplicities.
// Accepted combinations are expanded under the full group and
// assembled into validated polytopes.
//
// The search is single-threaded and deterministic: identical input
// reproduces identical output. All orbit, ridge and facet tables are
// built once per recursion level and are read-only during the search;
// the only mutable state is the explicit work stack, so memory rather
// than call depth bounds the search.
package faceting
