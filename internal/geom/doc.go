// Package geom provides the floating-point geometric primitives the
// faceting search is built on: points in fixed-dimension real space,
// affine subspaces held as an orthonormal basis, projection into
// subspace coordinates, and point-to-subspace distance.
//
// All comparisons go through the shared tolerance Eps. Two points
// closer than Eps are treated as coincident; a point within Eps of a
// subspace lies on it. The faceting algorithm is exact combinatorics
// layered on top of these tolerant predicates, so Eps is the single
// knob that decides what "on the hyperplane" means.
package geom
