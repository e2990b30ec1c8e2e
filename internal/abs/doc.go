// Package abs models abstract polytopes as rank structures: one
// element list per rank, where each element names the indices of its
// subelements one rank down. Rank 0 is the null element, rank 1 the
// vertices, rank 2 the edges, and the top rank the single body.
//
// The faceting search manipulates partial rank structures (facets and
// ridges detached from any full polytope) and relies on a strong
// canonical ordering to compare them structurally. Building a complete
// polytope goes through Builder, which refuses structures that violate
// the dyadic property: every element must cover each of its
// sub-subelements through exactly two intermediate elements.
package abs
