package orbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareMap is the dihedral group of order 8 acting on the square's
// vertices 0:(1,1) 1:(1,-1) 2:(-1,1) 3:(-1,-1).
func squareMap() VertexMap {
	return VertexMap{
		{0, 1, 2, 3}, // identity
		{2, 0, 3, 1}, // rotation 90
		{3, 2, 1, 0}, // rotation 180
		{1, 3, 0, 2}, // rotation 270
		{1, 0, 3, 2}, // mirror x
		{2, 3, 0, 1}, // mirror y
		{0, 2, 1, 3}, // mirror diag
		{3, 1, 2, 0}, // mirror anti-diag
	}
}

func TestVertices_CoversExactlyOnce(t *testing.T) {
	orbits := Vertices(4, squareMap())
	require.Len(t, orbits, 1)

	seen := make(map[int]int)
	for _, o := range orbits {
		for _, v := range o {
			seen[v]++
		}
	}
	for v := 0; v < 4; v++ {
		assert.Equal(t, 1, seen[v], "vertex %d", v)
	}
}

func TestVertices_TrivialGroup(t *testing.T) {
	orbits := Vertices(3, Identity(3))
	assert.Len(t, orbits, 3)
	for i, o := range orbits {
		assert.Equal(t, []int{i}, o)
	}
}

func TestPairs_SquareSplitsSidesAndDiagonals(t *testing.T) {
	vm := squareMap()
	vo := Vertices(4, vm)
	orbits := Pairs(4, vm, vo, nil)

	// Four sides in one orbit, two diagonals in another.
	require.Len(t, orbits, 2)
	sizes := []int{len(orbits[0]), len(orbits[1])}
	assert.ElementsMatch(t, []int{4, 2}, sizes)
}

func TestPairs_FilterExcludes(t *testing.T) {
	vm := squareMap()
	vo := Vertices(4, vm)
	// Keep only the diagonals (0,3) and (1,2).
	orbits := Pairs(4, vm, vo, func(a, b int) bool {
		return a+b == 3
	})
	require.Len(t, orbits, 1)
	assert.Len(t, orbits[0], 2)
}

func TestStabilizer_Edge(t *testing.T) {
	vm := squareMap()
	// The side {0,1} is fixed by the identity and the x mirror.
	local, toLocal := Stabilizer(vm, []int{0, 1})
	require.Len(t, local, 2)
	assert.Equal(t, []int{0, 1}, local[0])
	assert.Equal(t, []int{1, 0}, local[1])
	assert.Equal(t, map[int]int{0: 0, 1: 1}, toLocal)
}

func TestStabilizer_IdentityRowOrderIrrelevant(t *testing.T) {
	vm := squareMap()
	// Move the identity to the middle of the list. The local numbering
	// must still follow verts, not whichever stabilizing row comes
	// first.
	shuffled := VertexMap{vm[4], vm[1], vm[0], vm[2], vm[3], vm[5], vm[6], vm[7]}

	local, toLocal := Stabilizer(shuffled, []int{0, 1})
	require.Len(t, local, 2)
	assert.Equal(t, map[int]int{0: 0, 1: 1}, toLocal)
	assert.ElementsMatch(t, VertexMap{{0, 1}, {1, 0}}, local)

	want, wantLocal := Stabilizer(vm, []int{0, 1})
	assert.ElementsMatch(t, want, local)
	assert.Equal(t, wantLocal, toLocal)
}
