package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidJob(t *testing.T) {
	jobPath := writeJobFile(t, "square.yaml", squareJob)

	out, _, err := execRun(t, "validate", jobPath)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `✓ job "square" valid`)
}

func TestValidateValidJobJSON(t *testing.T) {
	jobPath := writeJobFile(t, "square.yaml", squareJob)

	out, _, err := execRun(t, "validate", "--format", "json", jobPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateMissingFile(t *testing.T) {
	out, _, err := execRun(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out.String(), "E002")
}

func TestValidateSemanticFailure(t *testing.T) {
	jobPath := writeJobFile(t, "bad.yaml", "rank: 0\nvertices: []\nsymmetry: chiral\n")

	out, _, err := execRun(t, "validate", jobPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "✗ validation failed")
	assert.Contains(t, out.String(), "E004 rank:")
	assert.Contains(t, out.String(), "E004 symmetry:")
}

func TestValidateSemanticFailureJSON(t *testing.T) {
	jobPath := writeJobFile(t, "bad.yaml", "rank: 0\nvertices: [[1, 0]]\n")

	out, _, err := execRun(t, "validate", "--format", "json", jobPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E004", resp.Error.Code)
}

func TestValidateParseFailure(t *testing.T) {
	jobPath := writeJobFile(t, "bad.cue", "job: { rank: 3, vertices: [[1, 0]], sides: 4 }\n")

	out, _, err := execRun(t, "validate", jobPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out.String(), "E003")
}
