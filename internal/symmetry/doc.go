// Package symmetry derives a vertex map for a point configuration:
// the list of all index permutations realized by isometries that map
// the configuration onto itself. The faceting core consumes only the
// realized permutations, so this package is its group-computation
// collaborator; callers with a precomputed vertex map can skip it
// entirely.
//
// The search matches vertices by their distance profiles and extends
// partial assignments only while all pairwise distances are preserved
// within geom.Eps, which keeps it fast for the point counts the
// faceting search can handle. The rotation subgroup is obtained by
// realizing each permutation as a linear map on the span of the
// centered configuration and keeping those with positive determinant.
package symmetry
