// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package signal extracts pairwise relationship signals from a resolved
// roster. Each Extractor produces one Collection of a single Kind; the
// fuser combines collections into weighted edges.
package signal

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Kind names a signal.
type Kind string

const (
	KindCoauthorship    Kind = "coauthorship"
	KindSharedRefs      Kind = "shared_refs"
	KindSharedTopics    Kind = "shared_topics"
	KindSharedJournals  Kind = "shared_journals"
	KindProfileCoauthor Kind = "profile_coauthor"
	KindMention         Kind = "mention"
)

// Pair is an unordered pair of roster names, stored with A < B.
type Pair struct {
	A, B string
}

// NewPair orders x and y.
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

func (p Pair) String() string { return p.A + " -- " + p.B }

// Signal is the evidence one extractor found for one pair. Count is the
// intersection size, shared-paper count, or 1 for presence signals. Names
// holds the supporting labels: paper titles, reference IDs, topic or
// journal names, or the pages a mention was found on.
type Signal struct {
	Count int
	Names []string
}

// Collection maps pairs to signals for one Kind and remembers the order in
// which pairs were first added.
type Collection struct {
	Kind    Kind
	order   []Pair
	signals map[Pair]Signal
}

// NewCollection returns an empty collection.
func NewCollection(kind Kind) *Collection {
	return &Collection{Kind: kind, signals: make(map[Pair]Signal)}
}

// Set stores s for p. Replacing an existing pair keeps its position.
func (c *Collection) Set(p Pair, s Signal) {
	if _, ok := c.signals[p]; !ok {
		c.order = append(c.order, p)
	}
	c.signals[p] = s
}

// Get returns the signal for p.
func (c *Collection) Get(p Pair) (Signal, bool) {
	s, ok := c.signals[p]
	return s, ok
}

// Pairs returns the pairs in insertion order.
func (c *Collection) Pairs() []Pair {
	return append([]Pair(nil), c.order...)
}

// Len returns the number of pairs.
func (c *Collection) Len() int { return len(c.order) }

// Extractor derives one kind of signal from the resolved roster. Each
// extractor reads the roster only, so extractors may run concurrently.
type Extractor interface {
	Kind() Kind
	Extract(ctx context.Context, res *identity.Resolved) (*Collection, error)
}

// Defaults returns the six extractors in fusion order.
func Defaults(cfg types.FusionConfig, tables *curation.Tables, mentions []types.Mention) []Extractor {
	return []Extractor{
		Coauthorship{Threshold: cfg.Thresholds.Coauthor},
		SharedReferences{Threshold: cfg.Thresholds.SharedRefs, TopIDs: cfg.TopRefIDs},
		SharedTopics{Threshold: cfg.Thresholds.SharedTopics, RecentWorks: cfg.RecentWorks, MaxNames: cfg.ExampleNames},
		SharedJournals{Threshold: cfg.Thresholds.SharedJournals, MaxNames: cfg.ExampleNames, NonJournal: tables.IsNonJournal},
		ProfileCoauthorship{},
		Mentions{Records: mentions},
	}
}

// ExtractAll runs every extractor concurrently and returns their
// collections in extractor order. The first error cancels the rest.
func ExtractAll(ctx context.Context, res *identity.Resolved, extractors []Extractor) ([]*Collection, error) {
	out := make([]*Collection, len(extractors))
	g, gCtx := errgroup.WithContext(ctx)
	for i, ex := range extractors {
		i, ex := i, ex
		g.Go(func() error {
			col, err := ex.Extract(gCtx, res)
			if err != nil {
				return fmt.Errorf("extracting %s: %w", ex.Kind(), err)
			}
			out[i] = col
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentWorks returns up to n works ordered newest first. Works without a
// year sort last; ties keep their record order.
func RecentWorks(works []types.Work, n int) []types.Work {
	sorted := append([]types.Work(nil), works...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year > sorted[j].Year
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
