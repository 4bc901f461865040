// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes a run to dir/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context, runID string) (string, error) {
	doc, err := s.Load(ctx, runID)
	if err != nil {
		return "", fmt.Errorf("loading run for export: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes a run to dir/export.json in the graph document shape
// and returns the path.
func (s *Store) ExportJSON(ctx context.Context, runID string) (string, error) {
	doc, err := s.Load(ctx, runID)
	if err != nil {
		return "", fmt.Errorf("loading run for export: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}
