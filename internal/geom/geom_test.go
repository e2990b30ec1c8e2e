package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPoints_Hyperplane(t *testing.T) {
	// A hyperplane in 2D is a line.
	line := FromPoints([]Point{{1, 1}, {-1, 1}})
	require.Equal(t, 1, line.Rank())
	assert.True(t, line.IsHyperplane())

	assert.InDelta(t, 0, line.Distance(Point{0.5, 1}), Eps)
	assert.InDelta(t, 2, line.Distance(Point{0, -1}), Eps)
}

func TestFromPoints_DegenerateSpan(t *testing.T) {
	// Collinear points in 3D span a line, not a plane.
	s := FromPoints([]Point{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	assert.Equal(t, 1, s.Rank())
	assert.False(t, s.IsHyperplane())
}

func TestFlatten_PreservesDistances(t *testing.T) {
	plane := FromPoints([]Point{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}})
	require.True(t, plane.IsHyperplane())

	a := plane.Flatten(Point{2, 3, 1})
	b := plane.Flatten(Point{5, 7, 1})
	assert.InDelta(t, 5, Dist(a, b), Eps)
}

func TestCircumsphere_Square(t *testing.T) {
	pts := []Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	c, ok := Circumsphere(pts)
	require.True(t, ok)
	assert.InDelta(t, 0, c[0], Eps)
	assert.InDelta(t, 0, c[1], Eps)
	assert.InDelta(t, math.Sqrt2, Dist(c, pts[0]), Eps)
}

func TestCircumsphere_NoSolution(t *testing.T) {
	// Four points of a non-cyclic quadrilateral.
	_, ok := Circumsphere([]Point{{0, 0}, {4, 0}, {0, 3}, {10, 10}})
	assert.False(t, ok)
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Point{{2, 0}, {0, 2}, {-2, 0}, {0, -2}})
	assert.InDelta(t, 0, c[0], Eps)
	assert.InDelta(t, 0, c[1], Eps)
	assert.Nil(t, Centroid(nil))
}
