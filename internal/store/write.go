package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Run is one catalog entry for an enumerator invocation.
type Run struct {
	ID          string
	JobName     string
	Rank        int
	VertexCount int
	Options     string // JSON encoding of the job knobs
	CreatedAt   string
}

// Faceting is one recorded result row.
type Faceting struct {
	RunID         string
	Name          string
	ElementCounts []int
	VertexCount   int
	FacetCount    int
}

// BeginRun records a new run and returns its id (UUIDv7, so ids sort
// by creation time). The options value is stored as JSON.
func (s *Store) BeginRun(ctx context.Context, jobName string, rank, vertexCount int, options any) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("begin run: generate id: %w", err)
	}

	optsJSON, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("begin run: marshal options: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, job_name, rank, vertex_count, options)
		VALUES (?, ?, ?, ?, ?)
	`, id.String(), jobName, rank, vertexCount, string(optsJSON))
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}

	return id.String(), nil
}

// RecordFaceting inserts one result row. Duplicate (run, name) pairs
// are silently ignored so re-recording a run is idempotent.
func (s *Store) RecordFaceting(ctx context.Context, f Faceting) error {
	countsJSON, err := json.Marshal(f.ElementCounts)
	if err != nil {
		return fmt.Errorf("record faceting: marshal counts: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO facetings (run_id, name, element_counts, vertex_count, facet_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id, name) DO NOTHING
	`, f.RunID, f.Name, string(countsJSON), f.VertexCount, f.FacetCount)
	if err != nil {
		return fmt.Errorf("record faceting: %w", err)
	}

	return nil
}
