// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph assembles the output graph document from the resolved
// roster, area distributions, and fused edges.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/internal/textnorm"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Options controls node assembly.
type Options struct {
	// TopPubs bounds the recent publications listed per node.
	TopPubs int

	// FallbackArea is the primary area of a node with no distribution.
	FallbackArea string
}

// Assemble builds one node per roster member, sorted by name, and attaches
// edges as given. areas maps names to distributions; a missing entry leaves
// the node's areas empty.
func Assemble(res *identity.Resolved, areas map[string][]types.AreaShare, edges []types.Edge, opts Options) *types.GraphDocument {
	nodes := make([]types.Node, 0, len(res.Roster))
	for _, r := range res.Roster {
		nodes = append(nodes, node(r, areas[r.Name], res.Suspect[r.Name], opts))
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})

	if edges == nil {
		edges = []types.Edge{}
	}
	return &types.GraphDocument{Nodes: nodes, Edges: edges}
}

func node(r types.Researcher, dist []types.AreaShare, suspect bool, opts Options) types.Node {
	if dist == nil {
		dist = []types.AreaShare{}
	}
	primary := opts.FallbackArea
	if len(dist) > 0 {
		primary = dist[0].Area
	}

	citedBy := r.ProfileCitedBy
	if citedBy == 0 {
		citedBy = r.CitedByCount
	}

	interests := r.Interests
	if interests == nil {
		interests = []string{}
	}

	return types.Node{
		ID:           r.Name,
		ExternalID:   optional(r.BibliographicID),
		ProfileID:    optional(r.ProfileID),
		CitedBy:      citedBy,
		HIndex:       r.HIndex,
		WorksCount:   r.WorksCount,
		Interests:    interests,
		Areas:        dist,
		PrimaryArea:  primary,
		HasProfile:   r.HasProfile,
		TopPubs:      TopPublications(r.Works, opts.TopPubs),
		SuspectMatch: suspect,
	}
}

// TopPublications returns up to n distinct titled works, newest first.
// Titles are compared case-folded; the first of equal-year duplicates wins.
func TopPublications(works []types.Work, n int) []types.Publication {
	sorted := append([]types.Work(nil), works...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year > sorted[j].Year
	})

	pubs := []types.Publication{}
	seen := make(map[string]bool)
	for _, w := range sorted {
		if len(pubs) >= n {
			break
		}
		key := textnorm.Key(w.Title)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		pubs = append(pubs, types.Publication{Title: w.Title, Year: w.Year})
	}
	return pubs
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *types.GraphDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return nil
}

// Read decodes a graph document written by Write.
func Read(r io.Reader) (*types.GraphDocument, error) {
	var doc types.GraphDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding graph: %w", err)
	}
	return &doc, nil
}
