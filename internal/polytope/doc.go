// Package polytope pairs a validated abstract rank structure with
// vertex coordinates and provides the structural analysis the faceting
// search delegates: element typing (isogonality checks), compound
// detection, coincident-facet detection and recentering.
package polytope
