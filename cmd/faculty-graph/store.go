// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/faculty-graph/internal/graphstore"
	"github.com/pdiddy/faculty-graph/internal/pipeline"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Save graph builds and query them (runs, top, neighbors, search, area, export)",
	Long: `Store manages a local SQLite graph store. Each saved build is a run;
queries read the newest run unless --run names another.`,
}

// --- save / runs / delete ---

var storeSaveCmd = &cobra.Command{
	Use:   "save [graph.json]",
	Short: "Save a graph document as a new run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := storeConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.OutputPath
		if len(args) == 1 {
			path = args[0]
		}
		doc, err := pipeline.ReadDocument(afero.NewOsFs(), path)
		if err != nil {
			return err
		}

		store, err := graphstore.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Save(cmd.Context(), doc, path)
		if err != nil {
			return err
		}
		fmt.Printf("Saved run %s (%d nodes, %d edges)\n", run.ID, run.Nodes, run.Edges)
		return nil
	},
}

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if jsonFlag(cmd) {
			return printJSON(runs)
		}
		if len(runs) == 0 {
			fmt.Println("No runs saved.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %5s  %5s  %s\n", "Run", "Created", "Nodes", "Edges", "Source")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
		for _, r := range runs {
			fmt.Fprintf(os.Stdout, "%-36s  %-20s  %5d  %5d  %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Nodes, r.Edges, r.Source)
		}
		return nil
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <run>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted run %s\n", args[0])
		return nil
	},
}

// --- edge queries ---

var storeTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the heaviest edges of a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		edges, err := store.TopEdges(cmd.Context(), runFlag(cmd), maxResultsFlag(cmd))
		if err != nil {
			return err
		}
		return formatEdges(edges, jsonFlag(cmd))
	},
}

var storeNeighborsCmd = &cobra.Command{
	Use:   "neighbors <name>",
	Short: "Show the heaviest edges touching one researcher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		edges, err := store.Neighbors(cmd.Context(), runFlag(cmd), args[0], maxResultsFlag(cmd))
		if err != nil {
			return err
		}
		return formatEdges(edges, jsonFlag(cmd))
	},
}

func formatEdges(edges []types.Edge, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(edges)
	}
	if len(edges) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-24s  %-24s  %7s  %s\n", "Rank", "Source", "Target", "Weight", "Signals")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for i, e := range edges {
		fmt.Fprintf(os.Stdout, "%-4d  %-24s  %-24s  %7.1f  %s\n",
			i+1, clip(e.Source, 24), clip(e.Target, 24), e.Weight, signalSummary(e))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(edges))
	return nil
}

func signalSummary(e types.Edge) string {
	var parts []string
	if e.Coauthorship != nil {
		parts = append(parts, fmt.Sprintf("papers=%d", e.Coauthorship.Count))
	}
	if e.SharedRefs != nil {
		parts = append(parts, fmt.Sprintf("refs=%d", e.SharedRefs.Count))
	}
	if e.SharedTopics != nil {
		parts = append(parts, fmt.Sprintf("topics=%d", e.SharedTopics.Count))
	}
	if e.SharedJournals != nil {
		parts = append(parts, fmt.Sprintf("journals=%d", e.SharedJournals.Count))
	}
	if e.ProfileCoauthor {
		parts = append(parts, "profile")
	}
	if e.Mentioned {
		parts = append(parts, "mentioned")
	}
	return strings.Join(parts, " ")
}

// --- node queries ---

var storeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over names, interests, areas, and publication titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		results, err := store.Search(cmd.Context(), runFlag(cmd), strings.Join(args, " "), maxResultsFlag(cmd))
		if err != nil {
			return err
		}
		if jsonFlag(cmd) {
			return printJSON(results)
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-36s  %s\n", "Rank", "Name", "Primary area", "Cited by")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 84))
		for i, r := range results {
			fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-36s  %d\n",
				i+1, clip(r.Name, 30), clip(r.PrimaryArea, 36), r.CitedBy)
		}
		fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
		return nil
	},
}

var storeAreaCmd = &cobra.Command{
	Use:   "area <area>",
	Short: "List researchers with a share of an area",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		members, err := store.AreaMembers(cmd.Context(), runFlag(cmd), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if jsonFlag(cmd) {
			return printJSON(members)
		}
		if len(members) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, m := range members {
			fmt.Fprintf(os.Stdout, "%-30s  %.3f\n", m.Name, m.Share)
		}
		return nil
	},
}

// --- export ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a run to YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(cmd.Context(), runFlag(cmd))
		case "json":
			path, err = store.ExportJSON(cmd.Context(), runFlag(cmd))
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	if err := bindFlags(cmd, map[string]string{
		"store-dir":   "store.dir",
		"max-results": "store.max_results",
	}); err != nil {
		return types.PipelineConfig{}, err
	}
	return pipelineConfig()
}

func openStore(cmd *cobra.Command) (*graphstore.Store, error) {
	cfg, err := storeConfig(cmd)
	if err != nil {
		return nil, err
	}
	return graphstore.Open(cfg.Store)
}

func runFlag(cmd *cobra.Command) string {
	run, _ := cmd.Flags().GetString("run")
	return run
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

// maxResultsFlag returns the flag value only when set, so zero falls back
// to the configured store default.
func maxResultsFlag(cmd *cobra.Command) int {
	if !cmd.Flags().Changed("max-results") {
		return 0
	}
	n, _ := cmd.Flags().GetInt("max-results")
	return n
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	storeCmd.PersistentFlags().String("store-dir", "data/index", "graph store directory (contains graph.db)")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")
	storeCmd.PersistentFlags().String("run", "", "run ID to query (default: newest run)")
	storeCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	storeCmd.AddCommand(storeSaveCmd, storeRunsCmd, storeDeleteCmd, storeTopCmd,
		storeNeighborsCmd, storeSearchCmd, storeAreaCmd, storeExportCmd)
	rootCmd.AddCommand(storeCmd)
}
