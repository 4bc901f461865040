// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Report prints the build summary: signal counts, the strongest edges,
// primary-area tallies, and a comparison of profile and bibliographic
// citation counts.
func Report(w io.Writer, r *Result, topEdges int) {
	s := r.Summary
	fmt.Fprintf(w, "Researchers: %d (%d excluded, %d suspect)\n", s.Researchers, s.Excluded, s.Suspect)
	if s.Collisions > 0 {
		fmt.Fprintf(w, "Identity collisions: %d\n", s.Collisions)
	}

	fmt.Fprintln(w, "\nSignals:")
	for _, kc := range s.Signals {
		fmt.Fprintf(w, "  %-18s %d pairs\n", kc.Kind, kc.Pairs)
	}
	fmt.Fprintf(w, "  %-18s %d\n", "fused edges", s.Edges)

	edges := r.Document.Edges
	if len(edges) > topEdges {
		edges = edges[:topEdges]
	}
	if len(edges) > 0 {
		fmt.Fprintf(w, "\nTop %d edges:\n", len(edges))
		for _, e := range edges {
			fmt.Fprintf(w, "  %6.1f  %s -- %s  %s\n", e.Weight, e.Source, e.Target, describe(e))
		}
	}

	fmt.Fprintln(w, "\nPrimary areas:")
	for _, ac := range primaryAreas(r.Document.Nodes) {
		fmt.Fprintf(w, "  %3d  %s\n", ac.count, ac.area)
	}

	comparable, ratio := citationRatio(r.Resolved.Roster)
	if comparable > 0 {
		fmt.Fprintf(w, "\nCitations: profile/bibliographic ratio %.2f over %d researchers\n", ratio, comparable)
	}
}

func describe(e types.Edge) string {
	var parts []string
	if n := e.CoauthorCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("papers=%d", n))
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

type areaCount struct {
	area  string
	count int
}

func primaryAreas(nodes []types.Node) []areaCount {
	counts := make(map[string]int)
	for _, n := range nodes {
		counts[n.PrimaryArea]++
	}
	out := make([]areaCount, 0, len(counts))
	for a, c := range counts {
		out = append(out, areaCount{area: a, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].area < out[j].area
	})
	return out
}

// citationRatio returns how many researchers have both a profile and a
// bibliographic citation count, and the mean ratio between them.
func citationRatio(roster []types.Researcher) (int, float64) {
	var n int
	var sum float64
	for _, r := range roster {
		if r.ProfileCitedBy == 0 || r.CitedByCount == 0 {
			continue
		}
		n++
		sum += float64(r.ProfileCitedBy) / float64(r.CitedByCount)
	}
	if n == 0 {
		return 0, 0
	}
	return n, sum / float64(n)
}
