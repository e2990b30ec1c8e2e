package off

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/polytope"
)

func squarePolytope(t *testing.T) *polytope.Concrete {
	t.Helper()
	r := abs.Ranks{
		{abs.NewElement()},
		{abs.NewElement(0), abs.NewElement(0), abs.NewElement(0), abs.NewElement(0)},
		{abs.NewElement(0, 1), abs.NewElement(0, 2), abs.NewElement(1, 3), abs.NewElement(2, 3)},
		{abs.NewElement(0, 1, 2, 3)},
	}
	a, err := abs.Build(r)
	require.NoError(t, err)
	return polytope.New([]geom.Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}, a)
}

func TestWrite_Polygon(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, squarePolytope(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "2OFF", lines[0])
	assert.Equal(t, "4 4", lines[1])
	assert.Contains(t, buf.String(), "# Vertices")
	assert.Contains(t, buf.String(), "1 1\n")
	assert.Contains(t, buf.String(), "# Edges")
	assert.Contains(t, buf.String(), "2 0 1\n")
}

func TestWrite_PolyhedronFaceCycles(t *testing.T) {
	r := abs.Ranks{
		{abs.NewElement()},
		{abs.NewElement(0), abs.NewElement(0), abs.NewElement(0), abs.NewElement(0)},
		{
			abs.NewElement(0, 1), abs.NewElement(0, 2), abs.NewElement(0, 3),
			abs.NewElement(1, 2), abs.NewElement(1, 3), abs.NewElement(2, 3),
		},
		{
			abs.NewElement(0, 1, 3), abs.NewElement(0, 2, 4),
			abs.NewElement(1, 2, 5), abs.NewElement(3, 4, 5),
		},
		{abs.NewElement(0, 1, 2, 3)},
	}
	a, err := abs.Build(r)
	require.NoError(t, err)
	c := polytope.New([]geom.Point{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}, a)

	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, c))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "OFF", lines[0])
	assert.Equal(t, "4 4 6", lines[1])

	// Each face line is a 3-cycle over distinct vertices.
	inFaces := false
	faceLines := 0
	for _, line := range lines {
		if line == "# Faces" {
			inFaces = true
			continue
		}
		if !inFaces || line == "" {
			inFaces = inFaces && line != ""
			continue
		}
		fields := strings.Fields(line)
		require.Len(t, fields, 4)
		assert.Equal(t, "3", fields[0])
		seen := map[string]bool{}
		for _, f := range fields[1:] {
			assert.False(t, seen[f])
			seen[f] = true
		}
		faceLines++
	}
	assert.Equal(t, 4, faceLines)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, "faceting 1 - (0,0)", squarePolytope(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "faceting 1 - (0,0).off"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "2OFF\n"))
}

func TestFileName_SanitizesHostileCharacters(t *testing.T) {
	assert.Equal(t, "a_b_c.off", FileName(`a/b:c`))
	assert.Equal(t, "faceting.off", FileName("  . "))
	// NFC: e + combining acute collapses to the precomposed form.
	assert.Equal(t, "café.off", FileName("café"))
}
