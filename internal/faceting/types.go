package faceting

import (
	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/polytope"
)

// FacetRef identifies one candidate facet: the index of a hyperplane
// orbit and the index of one of that hyperplane's facetings. Accepted
// facetings are reported as sorted lists of FacetRefs.
type FacetRef struct {
	HP int // hyperplane orbit index
	F  int // facet index within the orbit
}

// Less orders refs by hyperplane orbit, then facet index.
func (r FacetRef) Less(o FacetRef) bool {
	if r.HP != o.HP {
		return r.HP < o.HP
	}
	return r.F < o.F
}

// Options configures a faceting run. The zero value enumerates every
// faceting of the full symmetry at the requested rank with no filters.
type Options struct {
	// Rank is the rank of the polytope to build; must be at least 3.
	Rank int

	// AnySingleEdgeLength iterates the whole search once per distinct
	// pairwise distance, pinning the edge-length window to each in
	// turn. Overrides MinEdgeLength/MaxEdgeLength.
	AnySingleEdgeLength bool

	// MinEdgeLength and MaxEdgeLength restrict which vertex pairs may
	// appear as edges, inclusive within geom.Eps. Nil means unbounded.
	MinEdgeLength *float64
	MaxEdgeLength *float64

	// MinInradius and MaxInradius restrict the distance from the
	// origin to candidate facet hyperplanes, top rank only.
	MinInradius *float64
	MaxInradius *float64

	// ExcludeHemis drops hyperplanes passing through the origin.
	ExcludeHemis bool

	// OnlyBelowVertex switches hyperplane enumeration to the
	// vertex-figure strategy: candidate hyperplanes are dot-product
	// level sets below each vertex-orbit representative.
	OnlyBelowVertex bool

	// Noble, when positive, requests noble facetings with exactly
	// that many facet orbits. Noble == 1 additionally engages the
	// hyperplane multiplicity prefilter.
	Noble int

	// MaxPerHyperplane caps how many facetings each hyperplane's
	// sub-search may produce. Zero means unbounded.
	MaxPerHyperplane int

	// Uniform keeps only isogonal facetings (single vertex type,
	// checked per component).
	Uniform bool

	// IncludeCompounds keeps facetings that decompose into unions of
	// smaller valid facetings instead of filtering them out.
	IncludeCompounds bool

	// MarkFissary appends a compound/fissary tag to result names.
	MarkFissary bool

	// LabelFacets appends the facet-orbit list to result names.
	LabelFacets bool

	// SaveFacets additionally emits one re-centered polytope per
	// distinct facet orbit used by any result.
	SaveFacets bool

	// Observer receives progress notifications; nil means none.
	Observer Observer

	// Emit, when set, streams each result as it is built instead of
	// collecting them. A non-nil error aborts the run.
	Emit func(Result) error
}

// Result is one enumerated faceting (or, with SaveFacets, one facet
// polytope), with the display name the original numbering scheme gives
// it.
type Result struct {
	Polytope *polytope.Concrete
	Name     string
}

// filters carries the per-level geometric filters through the
// recursion. Inradius filters and the hemi exclusion only apply at the
// top rank.
type filters struct {
	minEdge, maxEdge *float64
	minRad, maxRad   *float64
	excludeHemis     bool
}

// edgeLengthOK applies the inclusive edge-length window.
func (f filters) edgeLengthOK(length float64) bool {
	if f.minEdge != nil && length < *f.minEdge-geom.Eps {
		return false
	}
	if f.maxEdge != nil && length > *f.maxEdge+geom.Eps {
		return false
	}
	return true
}

// hyperplaneOrbit is one orbit of candidate facet hyperplanes: the
// representative plane, the sorted vertex indices lying on it, and the
// number of distinct hyperplanes in the orbit.
type hyperplaneOrbit struct {
	plane geom.Subspace
	verts []int
	size  int
}

// possibleFacet is one candidate faceting of a hyperplane: its rank
// structure (edges in hyperplane-local vertex numbering) plus, per
// boundary ridge, the sub-hyperplane orbit and ridge index it came
// from.
type possibleFacet struct {
	ranks  abs.Ranks
	ridges []FacetRef
}

// subdimResult is everything one recursion level reports upward.
type subdimResult struct {
	facetings []possibleFacet // closed facetings of the hyperplane
	counts    []int           // orbit size per sub-hyperplane orbit
	ridges    [][]abs.Ranks   // per sub-hyperplane orbit, its candidate facets
	compounds map[int][2]int  // faceting index -> component indices
}
