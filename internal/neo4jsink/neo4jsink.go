// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package neo4jsink mirrors a graph document into Neo4j as
// (:Researcher)-[:RELATED]->(:Researcher) relationships plus
// (:Researcher)-[:IN_AREA]->(:Area) memberships. Writes are MERGEs keyed by
// researcher name and area name, so exporting the same graph twice leaves
// one copy.
package neo4jsink

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

const connectTimeout = 10 * time.Second

// Client wraps a Neo4j driver.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *log.Logger
}

// Connect opens a driver for cfg and verifies connectivity. An empty URI
// returns a nil client and no error.
func Connect(ctx context.Context, cfg types.Neo4jConfig, logger *log.Logger) (*Client, error) {
	if cfg.URI == "" {
		return nil, nil
	}
	user := cfg.User
	if user == "" {
		user = "neo4j"
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(user, cfg.Password, ""), func(c *neo4j.Config) {
		c.SocketConnectTimeout = connectTimeout
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: init driver: %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}

	return &Client{Driver: driver, Database: cfg.Database, log: logger.With("sink", "neo4j")}, nil
}

// Close releases the driver. A nil client is a no-op.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}

var schema = []string{
	`CREATE CONSTRAINT researcher_name_unique IF NOT EXISTS FOR (r:Researcher) REQUIRE r.name IS UNIQUE`,
	`CREATE CONSTRAINT area_name_unique IF NOT EXISTS FOR (a:Area) REQUIRE a.name IS UNIQUE`,
}

const (
	upsertNodes = `
UNWIND $nodes AS n
MERGE (r:Researcher {name: n.name})
SET r += n`

	upsertAreas = `
UNWIND $areas AS a
MATCH (r:Researcher {name: a.name})
MERGE (x:Area {name: a.area})
MERGE (r)-[m:IN_AREA]->(x)
SET m.share = a.share, m.run_id = a.run_id`

	upsertEdges = `
UNWIND $edges AS e
MATCH (a:Researcher {name: e.source})
MATCH (b:Researcher {name: e.target})
MERGE (a)-[rel:RELATED]->(b)
SET rel = e.props`
)

// Export writes doc under runID. A nil client is a no-op.
func (c *Client) Export(ctx context.Context, doc *types.GraphDocument, runID string) error {
	if c == nil || c.Driver == nil {
		return nil
	}

	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
	defer session.Close(ctx)

	for _, stmt := range schema {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			c.log.Warn("schema init failed (continuing)", "err", err)
			continue
		}
		_, _ = res.Consume(ctx)
	}

	syncedAt := time.Now().UTC().Format(time.RFC3339Nano)
	batches := []struct {
		query string
		key   string
		rows  []map[string]any
	}{
		{upsertNodes, "nodes", NodeRows(doc, runID, syncedAt)},
		{upsertAreas, "areas", AreaRows(doc, runID)},
		{upsertEdges, "edges", EdgeRows(doc, runID, syncedAt)},
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, b := range batches {
			if len(b.rows) == 0 {
				continue
			}
			res, err := tx.Run(ctx, b.query, map[string]any{b.key: b.rows})
			if err != nil {
				return nil, fmt.Errorf("writing %s: %w", b.key, err)
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, fmt.Errorf("writing %s: %w", b.key, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("neo4j export: %w", err)
	}

	c.log.Info("exported graph", "run", runID, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return nil
}

// NodeRows converts nodes to Researcher property maps. Absent IDs are
// omitted rather than written as null.
func NodeRows(doc *types.GraphDocument, runID, syncedAt string) []map[string]any {
	rows := make([]map[string]any, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		row := map[string]any{
			"name":          n.ID,
			"citedby":       int64(n.CitedBy),
			"hindex":        int64(n.HIndex),
			"works_count":   int64(n.WorksCount),
			"primary_area":  n.PrimaryArea,
			"has_profile":   n.HasProfile,
			"suspect_match": n.SuspectMatch,
			"interests":     n.Interests,
			"run_id":        runID,
			"synced_at":     syncedAt,
		}
		if n.ExternalID != nil {
			row["external_id"] = *n.ExternalID
		}
		if n.ProfileID != nil {
			row["profile_id"] = *n.ProfileID
		}
		rows = append(rows, row)
	}
	return rows
}

// AreaRows flattens every node's distribution into membership rows.
func AreaRows(doc *types.GraphDocument, runID string) []map[string]any {
	var rows []map[string]any
	for _, n := range doc.Nodes {
		for _, a := range n.Areas {
			rows = append(rows, map[string]any{
				"name":   n.ID,
				"area":   a.Area,
				"share":  a.Share,
				"run_id": runID,
			})
		}
	}
	return rows
}

// EdgeRows converts edges to RELATED relationship rows. Each row carries
// the endpoints plus a props map holding only the signals present.
func EdgeRows(doc *types.GraphDocument, runID, syncedAt string) []map[string]any {
	rows := make([]map[string]any, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		props := map[string]any{
			"weight":    e.Weight,
			"run_id":    runID,
			"synced_at": syncedAt,
		}
		if c := e.Coauthorship; c != nil {
			props["coauthor_count"] = int64(c.Count)
			props["coauthor_papers"] = c.Papers
		}
		if o := e.SharedRefs; o != nil {
			props["shared_refs"] = int64(o.Count)
			props["shared_ref_ids"] = o.Names
		}
		if o := e.SharedTopics; o != nil {
			props["shared_topics"] = int64(o.Count)
			props["shared_topic_names"] = o.Names
		}
		if o := e.SharedJournals; o != nil {
			props["shared_journals"] = int64(o.Count)
			props["shared_journal_names"] = o.Names
		}
		if e.ProfileCoauthor {
			props["profile_coauthor"] = true
		}
		if e.Mentioned {
			props["mentioned"] = true
		}
		rows = append(rows, map[string]any{
			"source": e.Source,
			"target": e.Target,
			"props":  props,
		})
	}
	return rows
}
