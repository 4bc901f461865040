// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/internal/identity"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

var opts = Options{TopPubs: 10, FallbackArea: "Other"}

func TestAssembleNodes(t *testing.T) {
	roster := []types.Researcher{
		{
			Name: "Zoe", BibliographicID: "Z1", ProfileID: "S9", CitedByCount: 100, ProfileCitedBy: 140,
			HIndex: 9, WorksCount: 12, HasProfile: true, Interests: []string{"voting"},
			Works: []types.Work{{Title: "Old", Year: 2001}, {Title: "New", Year: 2023}},
		},
		{Name: "Adam", BibliographicID: "A1", CitedByCount: 40},
		{Name: "Excluded", BibliographicID: "X1", CitedByCount: 900, Works: []types.Work{{Title: "Not mine"}}},
	}
	tables := &curation.Tables{
		Exclude: []curation.Entry{{Name: "Excluded"}},
		Suspect: []curation.Entry{{Name: "Adam"}},
	}
	res := identity.Resolve(roster, tables)
	areas := map[string][]types.AreaShare{"Zoe": {{Area: "Politics", Share: 1}}}

	doc := Assemble(res, areas, nil, opts)

	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, []string{"Adam", "Excluded", "Zoe"}, []string{doc.Nodes[0].ID, doc.Nodes[1].ID, doc.Nodes[2].ID})
	assert.NotNil(t, doc.Edges)

	adam := doc.Nodes[0]
	assert.Equal(t, 40, adam.CitedBy, "falls back to bibliographic count")
	assert.True(t, adam.SuspectMatch)
	assert.Equal(t, "Other", adam.PrimaryArea)
	assert.Nil(t, adam.ProfileID)
	assert.Empty(t, adam.TopPubs)

	excluded := doc.Nodes[1]
	assert.Nil(t, excluded.ExternalID)
	assert.Empty(t, excluded.TopPubs)
	assert.Zero(t, excluded.CitedBy)

	zoe := doc.Nodes[2]
	assert.Equal(t, 140, zoe.CitedBy, "prefers profile count")
	require.NotNil(t, zoe.ExternalID)
	assert.Equal(t, "Z1", *zoe.ExternalID)
	assert.Equal(t, "Politics", zoe.PrimaryArea)
	assert.Equal(t, []types.Publication{{Title: "New", Year: 2023}, {Title: "Old", Year: 2001}}, zoe.TopPubs)
}

func TestTopPublications(t *testing.T) {
	var works []types.Work
	for i := 0; i < 14; i++ {
		works = append(works, types.Work{Title: fmt.Sprintf("Paper %d", i), Year: 2000 + i})
	}
	works = append(works,
		types.Work{Title: "paper 13", Year: 2013},
		types.Work{Title: "", Year: 2030},
	)

	got := TopPublications(works, 10)
	require.Len(t, got, 10)
	assert.Equal(t, "Paper 13", got[0].Title)
	assert.Equal(t, "Paper 12", got[1].Title)
	assert.Equal(t, "Paper 4", got[9].Title)
}

func TestAssembleIsByteIdentical(t *testing.T) {
	build := func() []byte {
		roster := []types.Researcher{{Name: "B"}, {Name: "A"}, {Name: "C", ProfileID: "S"}}
		res := identity.Resolve(roster, &curation.Tables{})
		edges := []types.Edge{{Source: "A", Target: "B", Weight: 3, SharedRefs: &types.OverlapSignal{Count: 3, Names: []string{"R1"}}}}
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, Assemble(res, nil, edges, opts)))
		return buf.Bytes()
	}
	assert.Equal(t, build(), build())
}

func TestWriteEdgeShape(t *testing.T) {
	res := identity.Resolve([]types.Researcher{{Name: "A"}, {Name: "B"}}, &curation.Tables{})
	edges := []types.Edge{{Source: "A", Target: "B", Weight: 3, SharedRefs: &types.OverlapSignal{Count: 3, Names: []string{"R1", "R2", "R3"}}}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Assemble(res, nil, edges, opts)))

	var raw struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.Edges, 1)
	assert.Equal(t, map[string]any{
		"source": "A", "target": "B", "shared_refs": 3.0,
		"shared_ref_ids": []any{"R1", "R2", "R3"}, "weight": 3.0,
	}, raw.Edges[0])
	assert.Nil(t, raw.Nodes[0]["external_id"])
	assert.Contains(t, buf.String(), "\n  \"nodes\"")

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, edges, back.Edges)
}
