// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one graph build: identity resolution, signal
// extraction, edge fusion, classification, and assembly, in that order.
// A build is a pure function of its records, curation tables, and config.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/pdiddy/faculty-graph/internal/classify"
	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/internal/fuse"
	"github.com/pdiddy/faculty-graph/internal/graph"
	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/internal/records"
	"github.com/pdiddy/faculty-graph/internal/signal"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// KindCount is the number of pairs one extractor produced.
type KindCount struct {
	Kind  signal.Kind
	Pairs int
}

// Summary holds counts from one build.
type Summary struct {
	Researchers int
	Excluded    int
	Suspect     int
	Collisions  int
	Signals     []KindCount
	Edges       int

	// Missing lists optional input files that were not found.
	Missing []string
}

// HasWarnings reports whether the build saw identity collisions or
// missing optional inputs.
func (s Summary) HasWarnings() bool {
	return s.Collisions > 0 || len(s.Missing) > 0
}

// Result is everything a build produced.
type Result struct {
	Document    *types.GraphDocument
	Resolved    *identity.Resolved
	Collections []*signal.Collection
	Summary     Summary
}

var validate = validator.New()

// Validate checks cfg against its field constraints.
func Validate(cfg types.PipelineConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Run builds the graph from already-loaded records and tables.
func Run(ctx context.Context, set *records.Set, tables *curation.Tables, cfg types.PipelineConfig, logger *log.Logger) (*Result, error) {
	roster := set.Roster(tables.Roster)
	res := identity.Resolve(roster, tables)
	for _, c := range res.Collisions {
		logger.Warn("identity collision", "source", c.Source, "id", c.ID, "previous", c.Previous, "name", c.Name)
	}
	logger.Debug("resolved roster", "researchers", len(res.Roster), "excluded", len(res.Excluded), "suspect", len(res.Suspect))

	collections, err := signal.ExtractAll(ctx, res, signal.Defaults(cfg.Fusion, tables, set.Mentions))
	if err != nil {
		return nil, err
	}

	summary := Summary{
		Researchers: len(res.Roster),
		Excluded:    len(res.Excluded),
		Suspect:     len(res.Suspect),
		Collisions:  len(res.Collisions),
		Missing:     set.Missing,
	}
	for _, c := range collections {
		summary.Signals = append(summary.Signals, KindCount{Kind: c.Kind, Pairs: c.Len()})
		logger.Debug("extracted signal", "kind", c.Kind, "pairs", c.Len())
	}

	edges := fuse.Fuse(collections, res.OnRoster, cfg.Fusion.Weights)
	summary.Edges = len(edges)

	classifier := classify.New(tables, cfg.Classifier)
	areas := make(map[string][]types.AreaShare, len(res.Roster))
	for _, r := range res.Roster {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		areas[r.Name] = classifier.Classify(r)
	}

	fallback := tables.FallbackArea
	if fallback == "" {
		fallback = "Other"
	}
	doc := graph.Assemble(res, areas, edges, graph.Options{TopPubs: cfg.Graph.TopPubs, FallbackArea: fallback})

	return &Result{Document: doc, Resolved: res, Collections: collections, Summary: summary}, nil
}

// Build loads inputs named by cfg from fsys, runs the pipeline, and writes
// the graph document to cfg.OutputPath.
func Build(ctx context.Context, fsys afero.Fs, cfg types.PipelineConfig, logger *log.Logger) (*Result, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	tables, err := curation.Load(fsys, cfg.Input.CurationPath)
	if err != nil {
		return nil, err
	}

	set, err := records.Load(fsys, cfg.Input)
	if err != nil {
		return nil, err
	}
	for _, path := range set.Missing {
		logger.Warn("optional input not found", "path", path)
	}
	logger.Info("loaded records",
		"bibliographic", len(set.Bibliographic),
		"profiles", len(set.Profiles),
		"mentions", len(set.Mentions))

	result, err := Run(ctx, set, tables, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := WriteDocument(fsys, cfg.OutputPath, result.Document); err != nil {
		return nil, err
	}
	logger.Info("wrote graph", "path", cfg.OutputPath, "nodes", len(result.Document.Nodes), "edges", len(result.Document.Edges))

	return result, nil
}

// WriteDocument writes doc as indented JSON to path, creating parent
// directories as needed.
func WriteDocument(fsys afero.Fs, path string, doc *types.GraphDocument) error {
	var buf bytes.Buffer
	if err := graph.Write(&buf, doc); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fsys, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing graph %s: %w", path, err)
	}
	return nil
}

// ReadDocument reads a graph document written by WriteDocument.
func ReadDocument(fsys afero.Fs, path string) (*types.GraphDocument, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph %s: %w", path, err)
	}
	defer f.Close()
	return graph.Read(f)
}
