package faceting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/orbit"
)

func TestDyadFaceting_SwappingStabilizer(t *testing.T) {
	res := dyadFaceting(orbit.VertexMap{{0, 1}, {1, 0}})

	require.Len(t, res.facetings, 1)
	assert.Equal(t, []FacetRef{{0, 0}}, res.facetings[0].ridges)
	assert.Equal(t, []int{2}, res.counts)
	require.Len(t, res.ridges, 1)
	assert.Equal(t, []abs.Ranks{pointRidge(0)}, res.ridges[0])
}

func TestDyadFaceting_SnubStabilizer(t *testing.T) {
	// Identity only: nothing swaps the endpoints, so they fall into
	// separate ridge orbits.
	res := dyadFaceting(orbit.VertexMap{{0, 1}})

	require.Len(t, res.facetings, 1)
	assert.Equal(t, []FacetRef{{0, 0}, {1, 0}}, res.facetings[0].ridges)
	assert.Equal(t, []int{1, 1}, res.counts)
	require.Len(t, res.ridges, 2)
	assert.Equal(t, []abs.Ranks{pointRidge(0)}, res.ridges[0])
	assert.Equal(t, []abs.Ranks{pointRidge(1)}, res.ridges[1])
}
