// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Load returns the graph document saved as runID, or the newest run when
// runID is empty. Nodes and edges come back in their saved order.
func (s *Store) Load(ctx context.Context, runID string) (*types.GraphDocument, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	doc := &types.GraphDocument{Nodes: []types.Node{}, Edges: []types.Edge{}}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM nodes WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		var n types.Node
		if err := json.Unmarshal([]byte(data), &n); err != nil {
			return nil, fmt.Errorf("decoding node: %w", err)
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edges, err := s.queryEdges(ctx,
		`SELECT data FROM edges WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	doc.Edges = append(doc.Edges, edges...)
	return doc, nil
}

// TopEdges returns the n heaviest edges of a run. Zero n uses the store
// default.
func (s *Store) TopEdges(ctx context.Context, runID string, n int) ([]types.Edge, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return s.queryEdges(ctx,
		`SELECT data FROM edges WHERE run_id = ? ORDER BY weight DESC, position LIMIT ?`,
		runID, s.limit(n))
}

// Neighbors returns the heaviest edges touching name.
func (s *Store) Neighbors(ctx context.Context, runID, name string, n int) ([]types.Edge, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return s.queryEdges(ctx,
		`SELECT data FROM edges WHERE run_id = ? AND (source = ? OR target = ?)
		 ORDER BY weight DESC, position LIMIT ?`,
		runID, name, name, s.limit(n))
}

func (s *Store) queryEdges(ctx context.Context, query string, args ...any) ([]types.Edge, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []types.Edge
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		var e types.Edge
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("decoding edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// SearchResult is one node matching a full-text query.
type SearchResult struct {
	Name        string  `json:"name" yaml:"name"`
	PrimaryArea string  `json:"primary_area" yaml:"primary_area"`
	CitedBy     int     `json:"citedby" yaml:"citedby"`
	Rank        float64 `json:"rank" yaml:"rank"`
}

// Search runs an FTS5 query over node names, interests, areas, and
// publication titles, best matches first.
func (s *Store) Search(ctx context.Context, runID, query string, n int) ([]SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT n.name, n.primary_area, n.citedby, nodes_fts.rank
		FROM nodes_fts
		JOIN nodes n ON n.rowid = nodes_fts.rowid
		WHERE nodes_fts MATCH ? AND n.run_id = ?
		ORDER BY nodes_fts.rank
		LIMIT ?`,
		query, runID, s.limit(n))
	if err != nil {
		return nil, fmt.Errorf("searching nodes: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Name, &r.PrimaryArea, &r.CitedBy, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// AreaMember is one researcher's share of an area.
type AreaMember struct {
	Name  string  `json:"name" yaml:"name"`
	Share float64 `json:"share" yaml:"share"`
}

// AreaMembers lists researchers with a share of area, largest first.
func (s *Store) AreaMembers(ctx context.Context, runID, area string) ([]AreaMember, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, share FROM areas WHERE run_id = ? AND area = ? ORDER BY share DESC, name`,
		runID, area)
	if err != nil {
		return nil, fmt.Errorf("querying areas: %w", err)
	}
	defer rows.Close()

	var members []AreaMember
	for rows.Next() {
		var m AreaMember
		if err := rows.Scan(&m.Name, &m.Share); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) limit(n int) int {
	if n <= 0 {
		return s.maxResults
	}
	return n
}
