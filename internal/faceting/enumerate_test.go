package faceting

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/polytope"
	"github.com/apeirotope/facet/internal/symmetry"
)

func square() []geom.Point {
	return []geom.Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
}

func polygon(n int) []geom.Point {
	pts := make([]geom.Point, n)
	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = geom.Point{math.Cos(a), math.Sin(a)}
	}
	return pts
}

func cube() []geom.Point {
	var pts []geom.Point
	for _, x := range []float64{1, -1} {
		for _, y := range []float64{1, -1} {
			for _, z := range []float64{1, -1} {
				pts = append(pts, geom.Point{x, y, z})
			}
		}
	}
	return pts
}

// edgeLengthsOf collects the distinct edge lengths of a result.
func edgeLengthsOf(c *polytope.Concrete) []float64 {
	var out []float64
	for _, e := range c.Abs.Ranks()[2] {
		l := geom.Dist(c.Vertices[e.Subs[0]], c.Vertices[e.Subs[1]])
		found := false
		for _, o := range out {
			if math.Abs(o-l) < geom.Eps {
				found = true
				break
			}
		}
		if !found {
			out = append(out, l)
		}
	}
	return out
}

func TestEnumerate_RankTooLow(t *testing.T) {
	pts := square()
	_, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 2})
	require.ErrorIs(t, err, ErrRankTooLow)
}

func TestEnumerate_Square(t *testing.T) {
	pts := square()
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "faceting 0", r.Name)
	assert.Equal(t, []int{1, 4, 4, 1}, r.Polytope.Abs.Counts())

	lengths := edgeLengthsOf(r.Polytope)
	require.Len(t, lengths, 1)
	assert.InDelta(t, 2.0, lengths[0], 1e-9)
}

func TestEnumerate_Square_RotationSymmetry(t *testing.T) {
	pts := square()
	// Under the rotation subgroup no symmetry fixes a side, so the
	// side edges reach the dyad base case with a trivial stabilizer.
	results, err := Enumerate(pts, symmetry.RotationVertexMap(pts), Options{Rank: 3})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []int{1, 4, 4, 1}, results[0].Polytope.Abs.Counts())
	lengths := edgeLengthsOf(results[0].Polytope)
	require.Len(t, lengths, 1)
	assert.InDelta(t, 2.0, lengths[0], 1e-9)
}

func TestEnumerate_Pentagon_FindsPentagram(t *testing.T) {
	pts := polygon(5)
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3})
	require.NoError(t, err)
	require.Len(t, results, 2)

	side := 2 * math.Sin(math.Pi/5)
	diag := 2 * math.Sin(2*math.Pi/5)

	assert.Equal(t, "faceting 0", results[0].Name)
	assert.Equal(t, "faceting 1", results[1].Name)
	for _, r := range results {
		assert.Equal(t, []int{1, 5, 5, 1}, r.Polytope.Abs.Counts())
	}

	require.Len(t, edgeLengthsOf(results[0].Polytope), 1)
	require.Len(t, edgeLengthsOf(results[1].Polytope), 1)
	assert.InDelta(t, side, edgeLengthsOf(results[0].Polytope)[0], 1e-9)
	assert.InDelta(t, diag, edgeLengthsOf(results[1].Polytope)[0], 1e-9)
}

func TestEnumerate_Rectangle_CrossedQuadrilaterals(t *testing.T) {
	pts := []geom.Point{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}}
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3, LabelFacets: true})
	require.NoError(t, err)

	// The rectangle itself plus the two crossed quadrilaterals that
	// pair one side orbit with the diagonals.
	require.Len(t, results, 3)
	assert.Equal(t, "faceting 0 - (0,0) (1,0)", results[0].Name)
	assert.Equal(t, "faceting 1 - (0,0) (2,0)", results[1].Name)
	assert.Equal(t, "faceting 2 - (1,0) (2,0)", results[2].Name)
	for _, r := range results {
		assert.Equal(t, []int{1, 4, 4, 1}, r.Polytope.Abs.Counts())
	}
}

func TestEnumerate_Hexagon_MarksCompound(t *testing.T) {
	pts := polygon(6)
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3, MarkFissary: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	hexagon, hexagram := results[0], results[1]
	assert.Equal(t, 1, polytope.ComponentCount(hexagon.Polytope.Abs))
	assert.False(t, strings.HasSuffix(hexagon.Name, "[C]"))

	// The short diagonals close into two overlaid triangles.
	assert.Equal(t, 2, polytope.ComponentCount(hexagram.Polytope.Abs))
	assert.True(t, strings.HasSuffix(hexagram.Name, "[C]"), "name %q", hexagram.Name)
}

func TestEnumerate_Tetrahedron(t *testing.T) {
	pts := []geom.Point{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 4})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{1, 4, 6, 4, 1}, results[0].Polytope.Abs.Counts())
}

func TestEnumerate_Cube_FindsStellaOctangula(t *testing.T) {
	pts := cube()
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 4})
	require.NoError(t, err)
	require.Len(t, results, 2)

	var counts [][]int
	for _, r := range results {
		counts = append(counts, r.Polytope.Abs.Counts())
	}
	assert.Contains(t, counts, []int{1, 8, 12, 6, 1}) // the cube
	assert.Contains(t, counts, []int{1, 8, 12, 8, 1}) // two tetrahedra

	for _, r := range results {
		if r.Polytope.Abs.Counts()[3] == 8 {
			assert.Equal(t, 2, polytope.ComponentCount(r.Polytope.Abs))
		}
	}
}

func TestEnumerate_AnySingleEdgeLength_Square(t *testing.T) {
	pts := square()
	rec := &recordingObserver{}
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{
		Rank:                3,
		AnySingleEdgeLength: true,
		Observer:            rec,
	})
	require.NoError(t, err)

	// Side length yields the square. The diagonal length surfaces the
	// diagonal lines with their degenerate dyad faceting, but an
	// unpaired orbit covering each vertex once never closes, so that
	// pass emits nothing.
	require.Len(t, results, 1)
	assert.Equal(t, "faceting 0.0", results[0].Name)

	passes := 0
	for _, p := range rec.phases {
		if p == "enumerating hyperplanes" {
			passes++
		}
	}
	assert.Equal(t, 2, passes)
}

func TestEnumerate_EdgeWindow_Empty(t *testing.T) {
	pts := square()
	diag := 2 * math.Sqrt2
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{
		Rank:          3,
		MinEdgeLength: &diag,
		MaxEdgeLength: &diag,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEnumerate_OnlyBelowVertex_Hexagon(t *testing.T) {
	pts := polygon(6)
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3, OnlyBelowVertex: true})
	require.NoError(t, err)

	// Level sets below a vertex only reach the short diagonals, so
	// the hexagram is the sole faceting.
	require.Len(t, results, 1)
	assert.Equal(t, []int{1, 6, 6, 1}, results[0].Polytope.Abs.Counts())
	assert.Equal(t, 2, polytope.ComponentCount(results[0].Polytope.Abs))
}

func TestEnumerate_Noble_Pentagon(t *testing.T) {
	pts := polygon(5)
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3, Noble: 1})
	require.NoError(t, err)

	// Pentagon and pentagram each use a single facet orbit.
	assert.Len(t, results, 2)
}

func TestEnumerate_Uniform_Cube(t *testing.T) {
	pts := cube()
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 4, Uniform: true})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestEnumerate_SaveFacets_Square(t *testing.T) {
	pts := square()
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{Rank: 3, SaveFacets: true})
	require.NoError(t, err)
	require.Len(t, results, 2)

	facet := results[1]
	assert.Equal(t, "facet (0,0)", facet.Name)
	require.Len(t, facet.Polytope.Vertices, 2)

	// Flattened to its own line and centered on the circumsphere.
	require.Len(t, facet.Polytope.Vertices[0], 1)
	assert.InDelta(t, 2.0, geom.Dist(facet.Polytope.Vertices[0], facet.Polytope.Vertices[1]), 1e-9)
	assert.InDelta(t, 0, facet.Polytope.Vertices[0][0]+facet.Polytope.Vertices[1][0], 1e-9)
}

func TestEnumerate_EmitStreams(t *testing.T) {
	pts := square()
	var names []string
	results, err := Enumerate(pts, symmetry.VertexMap(pts), Options{
		Rank: 3,
		Emit: func(r Result) error {
			names = append(names, r.Name)
			return nil
		},
	})
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Equal(t, []string{"faceting 0"}, names)
}

func TestEnumerate_EmitErrorAborts(t *testing.T) {
	pts := square()
	boom := errors.New("sink full")
	_, err := Enumerate(pts, symmetry.VertexMap(pts), Options{
		Rank: 3,
		Emit: func(Result) error { return boom },
	})
	require.ErrorIs(t, err, boom)
}

func TestEnumerate_IsDeterministic(t *testing.T) {
	pts := polygon(6)
	vm := symmetry.VertexMap(pts)

	first, err := Enumerate(pts, vm, Options{Rank: 3, LabelFacets: true})
	require.NoError(t, err)
	second, err := Enumerate(pts, vm, Options{Rank: 3, LabelFacets: true})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Polytope.Abs.Ranks().Key(), second[i].Polytope.Abs.Ranks().Key())
	}
}
