// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphstore persists built graphs in SQLite so earlier builds can
// be queried and compared. Each saved graph is a run identified by a UUID;
// nodes are indexed with FTS5 over their name, interests, areas, and
// publication titles.
package graphstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

const dbFile = "graph.db"

// ErrNoRuns is returned when a query needs the latest run and none exist.
var ErrNoRuns = errors.New("no saved runs")

// Store manages the graph SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the database at cfg.Dir/graph.db and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			source TEXT,
			node_count INTEGER NOT NULL,
			edge_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS nodes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			primary_area TEXT,
			citedby INTEGER,
			search_text TEXT NOT NULL,
			data TEXT NOT NULL,
			UNIQUE(run_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS areas (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			area TEXT NOT NULL,
			share REAL NOT NULL,
			PRIMARY KEY(run_id, name, area)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_areas_area ON areas(run_id, area)`,
		`CREATE TABLE IF NOT EXISTS edges (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			weight REAL NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY(run_id, source, target)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(run_id, source)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(run_id, target)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='nodes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE nodes_fts USING fts5(search_text, content=nodes, content_rowid=rowid)`,
		`CREATE TRIGGER nodes_ai AFTER INSERT ON nodes BEGIN
			INSERT INTO nodes_fts(rowid, search_text) VALUES (new.rowid, new.search_text);
		END`,
		`CREATE TRIGGER nodes_ad AFTER DELETE ON nodes BEGIN
			INSERT INTO nodes_fts(nodes_fts, rowid, search_text) VALUES('delete', old.rowid, old.search_text);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Run describes one saved graph.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Nodes     int       `json:"nodes" yaml:"nodes"`
	Edges     int       `json:"edges" yaml:"edges"`
}

// Save stores doc as a new run and returns it. source records where the
// graph came from, typically the output path of the build.
func (s *Store) Save(ctx context.Context, doc *types.GraphDocument, source string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Nodes:     len(doc.Nodes),
		Edges:     len(doc.Edges),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, node_count, edge_count) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano), run.Source, run.Nodes, run.Edges,
	); err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (run_id, name, position, primary_area, citedby, search_text, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	areaStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO areas (run_id, name, area, share) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing area insert: %w", err)
	}
	defer areaStmt.Close()

	for i, n := range doc.Nodes {
		data, err := json.Marshal(n)
		if err != nil {
			return Run{}, fmt.Errorf("encoding node %s: %w", n.ID, err)
		}
		if _, err := nodeStmt.ExecContext(ctx,
			run.ID, n.ID, i, n.PrimaryArea, n.CitedBy, searchText(n), string(data),
		); err != nil {
			return Run{}, fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
		for _, a := range n.Areas {
			if _, err := areaStmt.ExecContext(ctx, run.ID, n.ID, a.Area, a.Share); err != nil {
				return Run{}, fmt.Errorf("inserting area for %s: %w", n.ID, err)
			}
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO edges (run_id, position, source, target, weight, data) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for i, e := range doc.Edges {
		data, err := json.Marshal(e)
		if err != nil {
			return Run{}, fmt.Errorf("encoding edge %s -- %s: %w", e.Source, e.Target, err)
		}
		if _, err := edgeStmt.ExecContext(ctx, run.ID, i, e.Source, e.Target, e.Weight, string(data)); err != nil {
			return Run{}, fmt.Errorf("inserting edge %s -- %s: %w", e.Source, e.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

func searchText(n types.Node) string {
	parts := []string{n.ID}
	parts = append(parts, n.Interests...)
	for _, a := range n.Areas {
		parts = append(parts, a.Area)
	}
	for _, p := range n.TopPubs {
		parts = append(parts, p.Title)
	}
	return strings.Join(parts, "\n")
}

// Runs lists saved runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, node_count, edge_count FROM runs ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r       Run
		created string
		source  sql.NullString
	)
	if err := row.Scan(&r.ID, &created, &source, &r.Nodes, &r.Edges); err != nil {
		return Run{}, err
	}
	r.Source = source.String
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run time %q: %w", created, err)
	}
	r.CreatedAt = t
	return r, nil
}

// resolveRun returns runID, or the newest run's ID when runID is empty.
func (s *Store) resolveRun(ctx context.Context, runID string) (string, error) {
	if runID != "" {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
			return "", fmt.Errorf("looking up run: %w", err)
		}
		if n == 0 {
			return "", fmt.Errorf("run %s not found", runID)
		}
		return runID, nil
	}

	r, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, node_count, edge_count FROM runs ORDER BY seq DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRuns
	}
	if err != nil {
		return "", fmt.Errorf("looking up latest run: %w", err)
	}
	return r.ID, nil
}

// Delete removes a run and everything stored for it.
func (s *Store) Delete(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM edges WHERE run_id = ?`,
		`DELETE FROM areas WHERE run_id = ?`,
		`DELETE FROM nodes WHERE run_id = ?`,
		`DELETE FROM runs WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, runID); err != nil {
			return fmt.Errorf("deleting run %s: %w", runID, err)
		}
	}
	return tx.Commit()
}
