// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// SharedReferences counts works cited by both researchers.
type SharedReferences struct {
	Threshold int

	// TopIDs bounds the shared IDs kept per pair, most widely cited across
	// the roster first.
	TopIDs int
}

func (SharedReferences) Kind() Kind { return KindSharedRefs }

func (s SharedReferences) Extract(ctx context.Context, res *identity.Resolved) (*Collection, error) {
	sets := make(map[string]mapset.Set[string])
	frequency := make(map[string]int)
	for _, r := range res.Roster {
		refs := mapset.NewThreadUnsafeSet[string]()
		for _, w := range r.Works {
			for _, id := range w.ReferencedIDs {
				if id != "" {
					refs.Add(id)
				}
			}
		}
		refs.Each(func(id string) bool {
			frequency[id]++
			return false
		})
		sets[r.Name] = refs
	}

	return overlap(ctx, res, KindSharedRefs, sets, s.Threshold, func(shared mapset.Set[string]) []string {
		ids := shared.ToSlice()
		sort.Slice(ids, func(i, j int) bool {
			if frequency[ids[i]] != frequency[ids[j]] {
				return frequency[ids[i]] > frequency[ids[j]]
			}
			return ids[i] < ids[j]
		})
		return truncate(ids, s.TopIDs)
	})
}

// SharedTopics counts topic labels both researchers carry: the researcher's
// tags plus the primary topic of each recent work.
type SharedTopics struct {
	Threshold   int
	RecentWorks int
	MaxNames    int
}

func (SharedTopics) Kind() Kind { return KindSharedTopics }

func (s SharedTopics) Extract(ctx context.Context, res *identity.Resolved) (*Collection, error) {
	sets := make(map[string]mapset.Set[string])
	for _, r := range res.Roster {
		topics := mapset.NewThreadUnsafeSet[string]()
		for _, t := range r.Tags {
			if t.Name != "" {
				topics.Add(t.Name)
			}
		}
		for _, w := range RecentWorks(r.Works, s.RecentWorks) {
			if w.PrimaryTopic != "" {
				topics.Add(w.PrimaryTopic)
			}
		}
		sets[r.Name] = topics
	}
	return overlap(ctx, res, KindSharedTopics, sets, s.Threshold, sortedNames(s.MaxNames))
}

// SharedJournals counts publication venues both researchers used, ignoring
// venues for which NonJournal reports true. A nil NonJournal keeps every venue.
type SharedJournals struct {
	Threshold  int
	MaxNames   int
	NonJournal func(venue string) bool
}

func (SharedJournals) Kind() Kind { return KindSharedJournals }

func (s SharedJournals) Extract(ctx context.Context, res *identity.Resolved) (*Collection, error) {
	sets := make(map[string]mapset.Set[string])
	for _, r := range res.Roster {
		journals := mapset.NewThreadUnsafeSet[string]()
		for _, w := range r.Works {
			if w.Journal != "" && !s.skip(w.Journal) {
				journals.Add(w.Journal)
			}
		}
		sets[r.Name] = journals
	}
	return overlap(ctx, res, KindSharedJournals, sets, s.Threshold, sortedNames(s.MaxNames))
}

func (s SharedJournals) skip(venue string) bool {
	return s.NonJournal != nil && s.NonJournal(venue)
}

// overlap intersects every pair of non-empty sets in roster order and keeps
// pairs whose intersection reaches threshold.
func overlap(ctx context.Context, res *identity.Resolved, kind Kind, sets map[string]mapset.Set[string], threshold int, names func(mapset.Set[string]) []string) (*Collection, error) {
	var members []types.Researcher
	for _, r := range res.Roster {
		if s := sets[r.Name]; s != nil && s.Cardinality() > 0 {
			members = append(members, r)
		}
	}

	col := NewCollection(kind)
	for i, a := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, b := range members[i+1:] {
			if a.Name == b.Name {
				continue
			}
			shared := sets[a.Name].Intersect(sets[b.Name])
			n := shared.Cardinality()
			if n < threshold {
				continue
			}
			col.Set(NewPair(a.Name, b.Name), Signal{Count: n, Names: names(shared)})
		}
	}
	return col, nil
}

func sortedNames(max int) func(mapset.Set[string]) []string {
	return func(shared mapset.Set[string]) []string {
		names := shared.ToSlice()
		sort.Strings(names)
		return truncate(names, max)
	}
}

func truncate(s []string, n int) []string {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}
