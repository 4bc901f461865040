// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns each researcher a distribution over topical
// areas.
//
// A curated manual distribution wins outright. Otherwise the researcher's
// interests, tags, and recent work labels form a lowercased corpus that a
// Scorer rates against each area; scores are normalized into shares,
// small shares are dropped, and the remainder renormalized.
package classify

import (
	"sort"
	"strings"

	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/internal/signal"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Scorer rates a lowercased text corpus against each area. Areas scoring
// zero may be omitted from the result.
type Scorer interface {
	Score(corpus string, areas []curation.Area) map[string]float64
}

// KeywordScorer counts how many of an area's keywords occur in the corpus.
// Keywords are matched lowercased with no word boundaries, so "vot" matches
// "voting". A keyword adds one however often it repeats.
type KeywordScorer struct{}

// Score returns, per area, the number of distinct keywords found.
func (KeywordScorer) Score(corpus string, areas []curation.Area) map[string]float64 {
	scores := make(map[string]float64)
	for _, a := range areas {
		var n int
		for _, kw := range a.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(corpus, kw) {
				n++
			}
		}
		if n > 0 {
			scores[a.Name] = float64(n)
		}
	}
	return scores
}

// Classifier turns researchers into area distributions.
type Classifier struct {
	Tables *curation.Tables
	Scorer Scorer
	Config types.ClassifierConfig

	order map[string]int
}

// New returns a classifier using keyword scoring.
func New(tables *curation.Tables, cfg types.ClassifierConfig) *Classifier {
	return &Classifier{Tables: tables, Scorer: KeywordScorer{}, Config: cfg, order: tables.AreaOrder()}
}

// Classify returns r's area distribution sorted by share descending, ties
// in area declaration order. Shares sum to one.
func (c *Classifier) Classify(r types.Researcher) []types.AreaShare {
	if manual, ok := c.Tables.Manual(r.Name); ok {
		raw := make(map[string]float64, len(manual))
		for _, aw := range manual {
			raw[aw.Area] += aw.Weight
		}
		return c.sorted(normalize(raw))
	}

	scores := c.Scorer.Score(Corpus(r, c.Config), c.Tables.Areas)
	var total float64
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return []types.AreaShare{{Area: c.Tables.DefaultArea, Share: 1}}
	}

	dist := c.sorted(normalize(scores))
	kept := dist[:0:0]
	for _, a := range dist {
		if a.Share >= c.Config.MinShare {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		kept = dist[:1]
	}

	raw := make(map[string]float64, len(kept))
	for _, a := range kept {
		raw[a.Area] = a.Share
	}
	return c.sorted(normalize(raw))
}

// Corpus builds the lowercased text a researcher is scored on: interests,
// tag names, and the primary topic and leading concepts of recent works.
func Corpus(r types.Researcher, cfg types.ClassifierConfig) string {
	var parts []string
	parts = append(parts, r.Interests...)
	for _, t := range r.Tags {
		parts = append(parts, t.Name)
	}
	for _, w := range signal.RecentWorks(r.Works, cfg.RecentWorks) {
		if w.PrimaryTopic != "" {
			parts = append(parts, w.PrimaryTopic)
		}
		concepts := w.Concepts
		if len(concepts) > cfg.ConceptsPerWork {
			concepts = concepts[:cfg.ConceptsPerWork]
		}
		for _, cp := range concepts {
			parts = append(parts, cp.Name)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func normalize(raw map[string]float64) map[string]float64 {
	var total float64
	for _, v := range raw {
		total += v
	}
	out := make(map[string]float64, len(raw))
	if total == 0 {
		return out
	}
	for k, v := range raw {
		out[k] = v / total
	}
	return out
}

func (c *Classifier) sorted(shares map[string]float64) []types.AreaShare {
	dist := make([]types.AreaShare, 0, len(shares))
	for area, share := range shares {
		dist = append(dist, types.AreaShare{Area: area, Share: share})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Share != dist[j].Share {
			return dist[i].Share > dist[j].Share
		}
		ri, rj := c.rank(dist[i].Area), c.rank(dist[j].Area)
		if ri != rj {
			return ri < rj
		}
		return dist[i].Area < dist[j].Area
	})
	return dist
}

func (c *Classifier) rank(area string) int {
	if i, ok := c.order[area]; ok {
		return i
	}
	return len(c.order)
}
