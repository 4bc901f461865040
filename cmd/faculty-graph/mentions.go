// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/internal/mention"
	"github.com/pdiddy/faculty-graph/internal/records"
)

var mentionsCmd = &cobra.Command{
	Use:   "mentions",
	Short: "Scan researcher pages for co-mentions of other roster members",
	Long: `Mentions reads a pages index (YAML mapping each researcher to a text file
of their page), looks for other roster members' names in each page, and
writes the mention records that build consumes.

The roster comes from the curation tables, or from the bibliographic
records when the tables list no roster.`,
	RunE: runMentions,
}

func runMentions(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"records":  "input.records",
		"curation": "input.curation",
		"output":   "input.mentions",
	}); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	fsys := afero.NewOsFs()

	tables, err := curation.Load(fsys, cfg.Input.CurationPath)
	if err != nil {
		return err
	}
	roster := tables.Roster
	if len(roster) == 0 {
		set, err := records.Load(fsys, cfg.Input)
		if err != nil {
			return err
		}
		for _, r := range set.Roster(nil) {
			roster = append(roster, r.Name)
		}
	}

	pagesPath, _ := cmd.Flags().GetString("pages")
	pages, err := mention.LoadPages(fsys, pagesPath)
	if err != nil {
		return err
	}

	found, err := mention.Scan(cmd.Context(), fsys, pages, roster, logger)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(found, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mentions: %w", err)
	}
	out := cfg.Input.MentionsPath
	if err := fsys.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", out, err)
	}
	if err := afero.WriteFile(fsys, out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing mentions %s: %w", out, err)
	}

	logger.Info("wrote mentions", "path", out, "pages", len(pages.Pages), "mentions", len(found))
	return nil
}

func init() {
	mentionsCmd.Flags().String("pages", "data/pages.yaml", "pages index YAML")
	mentionsCmd.Flags().String("records", "data/faculty.json", "bibliographic records JSON (roster fallback)")
	mentionsCmd.Flags().String("curation", "", "curated override tables YAML (default: embedded tables)")
	mentionsCmd.Flags().StringP("output", "o", "data/website_papers.json", "mention records output path")

	rootCmd.AddCommand(mentionsCmd)
}
