package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Runs lists every recorded run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_name, rank, vertex_count, options, created_at
		FROM runs
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.JobName, &r.Rank, &r.VertexCount, &r.Options, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// Facetings lists the results of one run in insertion order.
func (s *Store) Facetings(ctx context.Context, runID string) ([]Faceting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, name, element_counts, vertex_count, facet_count
		FROM facetings
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list facetings: %w", err)
	}
	defer rows.Close()

	var out []Faceting
	for rows.Next() {
		var f Faceting
		var countsJSON string
		if err := rows.Scan(&f.RunID, &f.Name, &countsJSON, &f.VertexCount, &f.FacetCount); err != nil {
			return nil, fmt.Errorf("list facetings: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(countsJSON), &f.ElementCounts); err != nil {
			return nil, fmt.Errorf("list facetings: decode counts: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facetings: %w", err)
	}
	return out, nil
}
