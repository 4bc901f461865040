// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fuse combines signal collections into weighted edges.
package fuse

import (
	"math"
	"sort"

	"github.com/pdiddy/faculty-graph/internal/signal"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Fuse builds one edge per pair found in any collection. Pairs are visited
// in collection order and then insertion order, edges with an endpoint off
// the roster or with zero weight are dropped, and the result is stably
// sorted by descending weight.
func Fuse(collections []*signal.Collection, onRoster func(string) bool, weights types.WeightConfig) []types.Edge {
	var order []signal.Pair
	seen := make(map[signal.Pair]bool)
	for _, c := range collections {
		for _, p := range c.Pairs() {
			if seen[p] {
				continue
			}
			seen[p] = true
			order = append(order, p)
		}
	}

	var edges []types.Edge
	for _, p := range order {
		if p.A == p.B || !onRoster(p.A) || !onRoster(p.B) {
			continue
		}
		e := types.Edge{Source: p.A, Target: p.B}
		for _, c := range collections {
			s, ok := c.Get(p)
			if !ok {
				continue
			}
			apply(&e, c.Kind, s)
		}
		e.Weight = Weight(e, weights)
		if e.Weight <= 0 {
			continue
		}
		edges = append(edges, e)
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight > edges[j].Weight
	})
	return edges
}

func apply(e *types.Edge, kind signal.Kind, s signal.Signal) {
	switch kind {
	case signal.KindCoauthorship:
		e.Coauthorship = &types.CoauthorSignal{Count: s.Count, Papers: s.Names}
	case signal.KindSharedRefs:
		e.SharedRefs = &types.OverlapSignal{Count: s.Count, Names: s.Names}
	case signal.KindSharedTopics:
		e.SharedTopics = &types.OverlapSignal{Count: s.Count, Names: s.Names}
	case signal.KindSharedJournals:
		e.SharedJournals = &types.OverlapSignal{Count: s.Count, Names: s.Names}
	case signal.KindProfileCoauthor:
		e.ProfileCoauthor = true
	case signal.KindMention:
		e.Mentioned = true
	}
}

// Weight computes the composite weight of e, rounded to one decimal.
//
// Shared papers dominate. A profile listing or mention without a shared
// paper earns a fixed bonus once. Shared references add one each up to the
// cap, and shared topics and journals add their coefficients per label.
func Weight(e types.Edge, w types.WeightConfig) float64 {
	coauthors := e.CoauthorCount()
	total := w.Coauthor * float64(coauthors)
	if (e.ProfileCoauthor || e.Mentioned) && coauthors == 0 {
		total += w.AttestedBonus
	}
	if e.SharedRefs != nil {
		total += float64(min(e.SharedRefs.Count, w.RefCap))
	}
	if e.SharedTopics != nil {
		total += w.Topic * float64(e.SharedTopics.Count)
	}
	if e.SharedJournals != nil {
		total += w.Journal * float64(e.SharedJournals.Count)
	}
	return math.Round(total*10) / 10
}
