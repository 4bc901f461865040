// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/faculty-graph/internal/graphstore"
	"github.com/pdiddy/faculty-graph/internal/metrics"
	"github.com/pdiddy/faculty-graph/internal/neo4jsink"
	"github.com/pdiddy/faculty-graph/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build graph.json from collected records",
	Long: `Build reads the bibliographic, profile, and mention records, applies the
curated override tables, and writes the fused graph document. A summary of
signal counts, the strongest edges, and area tallies is printed afterwards.

With --save the graph is also stored as a new run in the graph store. When
neo4j.uri is configured the graph is mirrored into Neo4j. With
--metrics-file build gauges are written in Prometheus textfile format.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"records":      "input.records",
		"profiles":     "input.profiles",
		"mentions":     "input.mentions",
		"curation":     "input.curation",
		"output":       "output",
		"metrics-file": "metrics_file",
		"store-dir":    "store.dir",
		"neo4j-uri":    "neo4j.uri",
	}); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	start := time.Now()
	result, err := pipeline.Build(ctx, afero.NewOsFs(), cfg, logger)
	if err != nil {
		return err
	}
	took := time.Since(start)

	top, _ := cmd.Flags().GetInt("top")
	pipeline.Report(os.Stdout, result, top)

	runID := uuid.NewString()
	if save, _ := cmd.Flags().GetBool("save"); save {
		store, err := graphstore.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Save(ctx, result.Document, cfg.OutputPath)
		if err != nil {
			return err
		}
		runID = run.ID
		fmt.Fprintf(os.Stdout, "\nSaved run %s to %s\n", run.ID, store.Dir())
	}

	sink, err := neo4jsink.Connect(ctx, cfg.Neo4j, logger)
	if err != nil {
		return err
	}
	defer sink.Close(ctx)
	if err := sink.Export(ctx, result.Document, runID); err != nil {
		return err
	}

	if cfg.MetricsPath != "" {
		m := metrics.New()
		m.Observe(result, took, time.Now())
		if err := m.WriteTextfile(cfg.MetricsPath); err != nil {
			return err
		}
		logger.Info("wrote metrics", "path", cfg.MetricsPath)
	}

	if result.Summary.HasWarnings() {
		logger.Warn("build finished with warnings",
			"collisions", result.Summary.Collisions,
			"missing_inputs", len(result.Summary.Missing))
	}
	return nil
}

func init() {
	buildCmd.Flags().String("records", "data/faculty.json", "bibliographic records JSON")
	buildCmd.Flags().String("profiles", "data/scholar.json", "profile records JSON (optional)")
	buildCmd.Flags().String("mentions", "data/website_papers.json", "mention records JSON (optional)")
	buildCmd.Flags().String("curation", "", "curated override tables YAML (default: embedded tables)")
	buildCmd.Flags().StringP("output", "o", "data/graph.json", "graph document output path")
	buildCmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics to this path")
	buildCmd.Flags().String("store-dir", "data/index", "graph store directory (with --save)")
	buildCmd.Flags().String("neo4j-uri", "", "mirror the graph into Neo4j at this URI")
	buildCmd.Flags().Bool("save", false, "save the graph as a new run in the graph store")
	buildCmd.Flags().Int("top", 15, "number of strongest edges to print")

	rootCmd.AddCommand(buildCmd)
}
