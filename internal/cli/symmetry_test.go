package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymmetrySquare(t *testing.T) {
	jobPath := writeJobFile(t, "square.yaml", squareJob)

	out, _, err := execRun(t, "symmetry", jobPath)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "job: square")
	assert.Contains(t, text, "symmetry group order: 8")
	assert.Contains(t, text, "vertex orbits: 1")
	assert.Contains(t, text, "orbit 0: 4 vertices")
	assert.Contains(t, text, "distinct edge lengths: 2")
}

func TestSymmetrySquareJSON(t *testing.T) {
	jobPath := writeJobFile(t, "square.yaml", squareJob)

	out, _, err := execRun(t, "symmetry", "--format", "json", jobPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(8), data["group_order"])

	lengths, ok := data["edge_lengths"].([]any)
	require.True(t, ok)
	require.Len(t, lengths, 2)
	assert.InDelta(t, 2.0, lengths[0].(float64), 1e-9)
	assert.InDelta(t, 2.8284271247461903, lengths[1].(float64), 1e-9)
}

func TestSymmetryRotationSubgroup(t *testing.T) {
	jobPath := writeJobFile(t, "square.yaml", squareJob+"symmetry: rotation\n")

	out, _, err := execRun(t, "symmetry", jobPath)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "symmetry group order: 4")
}
