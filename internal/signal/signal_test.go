// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

func resolve(roster ...types.Researcher) *identity.Resolved {
	return identity.Resolve(roster, &curation.Tables{})
}

func work(title string, year int, authorIDs ...string) types.Work {
	w := types.Work{Title: title, Year: year}
	for _, id := range authorIDs {
		w.Authors = append(w.Authors, types.Author{ID: id})
	}
	return w
}

func TestNewPairOrders(t *testing.T) {
	assert.Equal(t, Pair{A: "Ann", B: "Bo"}, NewPair("Bo", "Ann"))
	assert.Equal(t, NewPair("Ann", "Bo"), NewPair("Bo", "Ann"))
}

func TestCollectionKeepsInsertionOrder(t *testing.T) {
	c := NewCollection(KindMention)
	c.Set(NewPair("C", "D"), Signal{Count: 1})
	c.Set(NewPair("A", "B"), Signal{Count: 1})
	c.Set(NewPair("D", "C"), Signal{Count: 2})

	assert.Equal(t, []Pair{{"C", "D"}, {"A", "B"}}, c.Pairs())
	got, ok := c.Get(NewPair("C", "D"))
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 2, c.Len())
}

func TestCoauthorship(t *testing.T) {
	tests := []struct {
		name      string
		roster    []types.Researcher
		threshold int
		want      map[Pair]Signal
	}{
		{
			name: "paper in both work lists counts once",
			roster: []types.Researcher{
				{Name: "Ann", BibliographicID: "A", Works: []types.Work{work("Joint Paper", 2020, "A", "B")}},
				{Name: "Bo", BibliographicID: "B", Works: []types.Work{work("joint paper", 2020, "A", "B")}},
			},
			threshold: 1,
			want:      map[Pair]Signal{{"Ann", "Bo"}: {Count: 1, Names: []string{"Joint Paper"}}},
		},
		{
			name: "paper in one work list counts once",
			roster: []types.Researcher{
				{Name: "Ann", BibliographicID: "A", Works: []types.Work{work("Only Mine", 2020, "A", "B")}},
				{Name: "Bo", BibliographicID: "B"},
			},
			threshold: 1,
			want:      map[Pair]Signal{{"Ann", "Bo"}: {Count: 1, Names: []string{"Only Mine"}}},
		},
		{
			name: "two papers in both lists",
			roster: []types.Researcher{
				{Name: "Ann", BibliographicID: "A", Works: []types.Work{
					work("P1", 2020, "A", "B"), work("P2", 2021, "B", "A"),
					work("P1", 2020, "A", "B"),
				}},
				{Name: "Bo", BibliographicID: "B", Works: []types.Work{work("P2", 2021, "A", "B"), work("P1", 2020, "A", "B")}},
			},
			threshold: 1,
			want:      map[Pair]Signal{{"Ann", "Bo"}: {Count: 2, Names: []string{"P1", "P2"}}},
		},
		{
			name: "unknown and self authors ignored",
			roster: []types.Researcher{
				{Name: "Ann", BibliographicID: "A", Works: []types.Work{work("Solo", 2020, "A", "Z")}},
			},
			threshold: 1,
			want:      map[Pair]Signal{},
		},
		{
			name: "below threshold dropped",
			roster: []types.Researcher{
				{Name: "Ann", BibliographicID: "A", Works: []types.Work{work("P1", 2020, "A", "B")}},
				{Name: "Bo", BibliographicID: "B"},
			},
			threshold: 2,
			want:      map[Pair]Signal{},
		},
		{
			name: "untitled works keyed by ID",
			roster: []types.Researcher{
				{Name: "Ann", BibliographicID: "A", Works: []types.Work{
					{ID: "W1", Authors: []types.Author{{ID: "A"}, {ID: "B"}}},
					{ID: "W2", Authors: []types.Author{{ID: "A"}, {ID: "B"}}},
				}},
				{Name: "Bo", BibliographicID: "B"},
			},
			threshold: 1,
			want:      map[Pair]Signal{{"Ann", "Bo"}: {Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := Coauthorship{Threshold: tt.threshold}.Extract(context.Background(), resolve(tt.roster...))
			require.NoError(t, err)
			assert.Equal(t, KindCoauthorship, col.Kind)
			assert.Equal(t, len(tt.want), col.Len())
			for p, want := range tt.want {
				got, ok := col.Get(p)
				require.True(t, ok, p.String())
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestCoauthorshipIndependentOfScanOrder(t *testing.T) {
	annWorks := []types.Work{work("P1", 2020, "A", "B"), work("P2", 2019, "A", "B"), work("P3", 2018, "A", "B")}
	boWorks := []types.Work{work("p3", 2018, "A", "B"), work("P1", 2020, "B", "A"), work("P2", 2019, "A", "B")}
	ann := types.Researcher{Name: "Ann", BibliographicID: "A", Works: annWorks}
	bo := types.Researcher{Name: "Bo", BibliographicID: "B", Works: boWorks}

	forward, err := Coauthorship{Threshold: 1}.Extract(context.Background(), resolve(ann, bo))
	require.NoError(t, err)
	reverse, err := Coauthorship{Threshold: 1}.Extract(context.Background(), resolve(bo, ann))
	require.NoError(t, err)

	f, _ := forward.Get(NewPair("Ann", "Bo"))
	r, _ := reverse.Get(NewPair("Ann", "Bo"))
	assert.Equal(t, 3, f.Count)
	assert.Equal(t, f.Count, r.Count)
	assert.ElementsMatch(t, []string{"P1", "P2", "P3"}, f.Names)
	assert.Len(t, r.Names, 3)
}

func TestCoauthorshipOneSidedRecordsUndercount(t *testing.T) {
	// Three joint papers recorded only on Ann's side halve to two.
	papers := []types.Work{work("P1", 2020, "A", "B"), work("P2", 2019, "A", "B"), work("P3", 2018, "A", "B")}
	res := resolve(
		types.Researcher{Name: "Ann", BibliographicID: "A", Works: papers},
		types.Researcher{Name: "Bo", BibliographicID: "B"},
	)

	col, err := Coauthorship{Threshold: 1}.Extract(context.Background(), res)
	require.NoError(t, err)
	got, _ := col.Get(NewPair("Ann", "Bo"))
	assert.Equal(t, 2, got.Count)
	assert.Len(t, got.Names, 3)
}

func TestSharedReferences(t *testing.T) {
	withRefs := func(name string, refs ...string) types.Researcher {
		return types.Researcher{Name: name, Works: []types.Work{{Title: name, ReferencedIDs: refs}}}
	}
	res := resolve(
		withRefs("Ann", "R1", "R2", "R3", "R4"),
		withRefs("Bo", "R4", "R3", "R2", "R9"),
		withRefs("Cy", "R4", "R3"),
		withRefs("Di"),
	)

	col, err := SharedReferences{Threshold: 3, TopIDs: 2}.Extract(context.Background(), res)
	require.NoError(t, err)

	require.Equal(t, 1, col.Len())
	got, ok := col.Get(NewPair("Ann", "Bo"))
	require.True(t, ok)
	assert.Equal(t, 3, got.Count)
	// R3 and R4 are cited by three researchers, R2 by two.
	assert.Equal(t, []string{"R3", "R4"}, got.Names)
}

func TestSharedTopics(t *testing.T) {
	old := types.Work{Title: "old", Year: 1990, PrimaryTopic: "Ancient"}
	recent := func(topic string) types.Work {
		return types.Work{Title: topic, Year: 2024, PrimaryTopic: topic}
	}
	res := resolve(
		types.Researcher{Name: "Ann", Tags: []types.Label{{Name: "Voting"}}, Works: []types.Work{old, recent("Elections")}},
		types.Researcher{Name: "Bo", Tags: []types.Label{{Name: "Voting"}, {Name: "Elections"}}, Works: []types.Work{old}},
		types.Researcher{Name: "Cy", Works: []types.Work{old, recent("Voting")}},
	)

	col, err := SharedTopics{Threshold: 2, RecentWorks: 1, MaxNames: 10}.Extract(context.Background(), res)
	require.NoError(t, err)

	got, ok := col.Get(NewPair("Ann", "Bo"))
	require.True(t, ok)
	assert.Equal(t, Signal{Count: 2, Names: []string{"Elections", "Voting"}}, got)

	_, ok = col.Get(NewPair("Bo", "Cy"))
	assert.False(t, ok, "old work falls outside the recent window")
}

func TestSharedJournals(t *testing.T) {
	pub := func(journals ...string) []types.Work {
		var ws []types.Work
		for _, j := range journals {
			ws = append(ws, types.Work{Title: j, Journal: j})
		}
		return ws
	}
	res := resolve(
		types.Researcher{Name: "Ann", Works: pub("APSR", "AJPS", "SSRN Electronic Journal", "JOP")},
		types.Researcher{Name: "Bo", Works: pub("JOP", "APSR", "SSRN Electronic Journal")},
	)

	tables := &curation.Tables{NonJournals: []string{"SSRN Electronic Journal"}}
	col, err := SharedJournals{Threshold: 2, MaxNames: 1, NonJournal: tables.IsNonJournal}.
		Extract(context.Background(), res)
	require.NoError(t, err)

	got, ok := col.Get(NewPair("Ann", "Bo"))
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []string{"APSR"}, got.Names)
}

func TestDefaultsSkipCuratedNonJournals(t *testing.T) {
	pub := func(journals ...string) []types.Work {
		var ws []types.Work
		for _, j := range journals {
			ws = append(ws, types.Work{Title: j, Journal: j})
		}
		return ws
	}
	res := resolve(
		types.Researcher{Name: "Ann", Works: pub("APSR", "arXiv")},
		types.Researcher{Name: "Bo", Works: pub("APSR", "arXiv")},
	)

	var journals Extractor
	for _, e := range Defaults(types.DefaultFusionConfig(), &curation.Tables{NonJournals: []string{"arXiv"}}, nil) {
		if e.Kind() == KindSharedJournals {
			journals = e
		}
	}
	require.NotNil(t, journals)

	col, err := journals.Extract(context.Background(), res)
	require.NoError(t, err)
	assert.Zero(t, col.Len(), "arXiv is not a journal, so only one venue is shared")
}

func TestProfileCoauthorship(t *testing.T) {
	res := resolve(
		types.Researcher{Name: "Ann", ProfileID: "S1", ProfileCoauthors: []types.Author{
			{ID: "S2", Name: "Bo"}, {ID: "S1", Name: "Ann"}, {ID: "S9", Name: "Outsider"},
		}},
		types.Researcher{Name: "Bo", ProfileID: "S2", ProfileCoauthors: []types.Author{{ID: "S1"}}},
	)

	col, err := ProfileCoauthorship{}.Extract(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"Ann", "Bo"}}, col.Pairs())
}

func TestMentions(t *testing.T) {
	res := resolve(types.Researcher{Name: "Ann"}, types.Researcher{Name: "Bo"})
	m := Mentions{Records: []types.Mention{
		{Source: "Bo", Target: "Ann", FoundOn: []string{"u1"}},
		{Source: "Ann", Target: "Bo", FoundOn: []string{"u1", "u2"}},
		{Source: "Ann", Target: "Ann"},
		{Source: "Ann", Target: "Stranger"},
	}}

	col, err := m.Extract(context.Background(), res)
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())
	got, _ := col.Get(NewPair("Ann", "Bo"))
	assert.Equal(t, Signal{Count: 1, Names: []string{"u1", "u2"}}, got)
}

func TestExcludedResearcherProducesNoWorkSignals(t *testing.T) {
	shared := []types.Work{{
		Title: "Joint", Journal: "J1", PrimaryTopic: "T1",
		ReferencedIDs: []string{"R1", "R2", "R3"},
		Authors:       []types.Author{{ID: "A"}, {ID: "B"}},
	}}
	roster := []types.Researcher{
		{Name: "Ann", BibliographicID: "A", Works: shared, Tags: []types.Label{{Name: "T2"}}},
		{Name: "Bo", BibliographicID: "B", Works: shared, Tags: []types.Label{{Name: "T2"}}},
	}
	res := identity.Resolve(roster, &curation.Tables{Exclude: []curation.Entry{{Name: "Bo"}}})

	cols, err := ExtractAll(context.Background(), res, Defaults(types.DefaultFusionConfig(), &curation.Tables{}, nil))
	require.NoError(t, err)
	for _, c := range cols {
		assert.Zero(t, c.Len(), string(c.Kind))
	}
}

func TestExtractAllKeepsExtractorOrder(t *testing.T) {
	res := resolve(types.Researcher{Name: "Ann"})
	cols, err := ExtractAll(context.Background(), res, Defaults(types.DefaultFusionConfig(), &curation.Tables{}, nil))
	require.NoError(t, err)

	var kinds []Kind
	for _, c := range cols {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []Kind{
		KindCoauthorship, KindSharedRefs, KindSharedTopics,
		KindSharedJournals, KindProfileCoauthor, KindMention,
	}, kinds)
}

type failingExtractor struct{}

func (failingExtractor) Kind() Kind { return "broken" }

func (failingExtractor) Extract(context.Context, *identity.Resolved) (*Collection, error) {
	return nil, errors.New("boom")
}

func TestExtractAllReturnsFirstError(t *testing.T) {
	_, err := ExtractAll(context.Background(), resolve(), []Extractor{ProfileCoauthorship{}, failingExtractor{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extracting broken: boom")
}

func TestExtractorsHonourCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := resolve(types.Researcher{Name: "Ann"}, types.Researcher{Name: "Bo"})

	_, err := ExtractAll(ctx, res, Defaults(types.DefaultFusionConfig(), &curation.Tables{}, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecentWorks(t *testing.T) {
	works := []types.Work{{Title: "a", Year: 2001}, {Title: "b"}, {Title: "c", Year: 2010}, {Title: "d", Year: 2001}}
	got := RecentWorks(works, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "d"}, []string{got[0].Title, got[1].Title, got[2].Title})
	assert.Equal(t, "a", works[0].Title, "input untouched")
}
