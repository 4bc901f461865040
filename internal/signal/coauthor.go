// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"

	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/internal/textnorm"
)

// Coauthorship finds papers two roster members both authored.
//
// A shared paper usually appears in both researchers' work lists, so each
// researcher contributes at most one observation per (pair, paper) and the
// count is half the observations, rounded up. A paper only one side's
// records contain still counts once.
type Coauthorship struct {
	Threshold int
}

func (Coauthorship) Kind() Kind { return KindCoauthorship }

type observation struct {
	pair     Pair
	work     string
	observer string
}

type coauthorTally struct {
	observations int
	titles       []string
	seenTitles   map[string]bool
}

func (c Coauthorship) Extract(ctx context.Context, res *identity.Resolved) (*Collection, error) {
	seen := make(map[observation]bool)
	tallies := make(map[Pair]*coauthorTally)
	var order []Pair

	for _, r := range res.Roster {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, w := range r.Works {
			workKey := textnorm.Key(w.Title)
			if workKey == "" {
				if w.ID == "" {
					continue
				}
				workKey = "id:" + w.ID
			}
			for _, a := range w.Authors {
				other, ok := res.Bibliographic[a.ID]
				if !ok || other == r.Name {
					continue
				}
				p := NewPair(r.Name, other)
				obs := observation{pair: p, work: workKey, observer: r.Name}
				if seen[obs] {
					continue
				}
				seen[obs] = true

				t, ok := tallies[p]
				if !ok {
					t = &coauthorTally{seenTitles: make(map[string]bool)}
					tallies[p] = t
					order = append(order, p)
				}
				t.observations++
				if key := textnorm.Key(w.Title); key != "" && !t.seenTitles[key] {
					t.seenTitles[key] = true
					t.titles = append(t.titles, w.Title)
				}
			}
		}
	}

	col := NewCollection(KindCoauthorship)
	for _, p := range order {
		t := tallies[p]
		count := (t.observations + 1) / 2
		if count < c.Threshold {
			continue
		}
		col.Set(p, Signal{Count: count, Names: t.titles})
	}
	return col, nil
}
