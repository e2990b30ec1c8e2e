package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "facet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facet.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestBeginRun_RecordsRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.BeginRun(ctx, "square", 3, 4, map[string]any{"edge_length": 2})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "square", runs[0].JobName)
	assert.Equal(t, 3, runs[0].Rank)
	assert.Equal(t, 4, runs[0].VertexCount)
	assert.JSONEq(t, `{"edge_length": 2}`, runs[0].Options)
	assert.NotEmpty(t, runs[0].CreatedAt)
}

func TestRecordFaceting_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.BeginRun(ctx, "pentagon", 3, 5, nil)
	require.NoError(t, err)

	f := Faceting{
		RunID:         id,
		Name:          "faceting 1",
		ElementCounts: []int{1, 5, 5, 1},
		VertexCount:   5,
		FacetCount:    5,
	}
	require.NoError(t, s.RecordFaceting(ctx, f))

	got, err := s.Facetings(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f, got[0])
}

func TestRecordFaceting_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.BeginRun(ctx, "square", 3, 4, nil)
	require.NoError(t, err)

	f := Faceting{RunID: id, Name: "faceting 0", ElementCounts: []int{1, 4, 4, 1}, VertexCount: 4, FacetCount: 4}
	require.NoError(t, s.RecordFaceting(ctx, f))
	require.NoError(t, s.RecordFaceting(ctx, f))

	got, err := s.Facetings(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecordFaceting_UnknownRunFails(t *testing.T) {
	s := openTestStore(t)

	err := s.RecordFaceting(context.Background(), Faceting{RunID: "nope", Name: "x", ElementCounts: []int{1}})
	require.Error(t, err)
}

func TestRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.BeginRun(ctx, "a", 3, 4, nil)
	require.NoError(t, err)
	second, err := s.BeginRun(ctx, "b", 3, 4, nil)
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}
