// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

func tables() *curation.Tables {
	return &curation.Tables{
		DefaultArea: "Stats",
		Areas:       []curation.Area{{Name: "Stats", Keywords: []string{"stat"}}},
		Exclude:     []curation.Entry{{Name: "Wrong Match", Reason: "different person"}},
		Suspect:     []curation.Entry{{Name: "Maybe Match"}},
		ExternalIDs: map[string]curation.ExternalIDs{
			"Ann Lee":     {Bibliographic: "A1-fixed"},
			"Wrong Match": {Bibliographic: "W-override"},
		},
	}
}

func TestResolve(t *testing.T) {
	roster := []types.Researcher{
		{Name: "Ann Lee", BibliographicID: "A1", ProfileID: "S1"},
		{
			Name:            "Wrong Match",
			BibliographicID: "W1",
			ProfileID:       "S2",
			WorksCount:      300,
			CitedByCount:    9000,
			Tags:            []types.Label{{Name: "Oncology"}},
			Works:           []types.Work{{Title: "Tumours"}},
			Interests:       []string{"philosophy"},
			ProfileCitedBy:  12,
			HasProfile:      true,
		},
		{Name: "Maybe Match", BibliographicID: "M1"},
	}

	r := Resolve(roster, tables())

	require.Len(t, r.Roster, 3)
	assert.Equal(t, "A1", roster[0].BibliographicID, "input untouched")
	assert.Equal(t, "A1-fixed", r.Roster[0].BibliographicID)
	assert.Equal(t, "S1", r.Roster[0].ProfileID)

	wrong := r.Roster[1]
	assert.Empty(t, wrong.BibliographicID, "exclusion runs after overrides")
	assert.Empty(t, wrong.Works)
	assert.Empty(t, wrong.Tags)
	assert.Zero(t, wrong.WorksCount)
	assert.Zero(t, wrong.CitedByCount)
	assert.Equal(t, "S2", wrong.ProfileID)
	assert.Equal(t, 12, wrong.ProfileCitedBy)
	assert.Equal(t, []string{"philosophy"}, wrong.Interests)
	assert.True(t, wrong.HasProfile)

	assert.True(t, r.Excluded["Wrong Match"])
	assert.True(t, r.Suspect["Maybe Match"])
	assert.False(t, r.Suspect["Ann Lee"])

	assert.Equal(t, map[string]string{"A1-fixed": "Ann Lee", "M1": "Maybe Match"}, r.Bibliographic)
	assert.Equal(t, map[string]string{"S1": "Ann Lee", "S2": "Wrong Match"}, r.Profile)
	assert.Empty(t, r.Collisions)

	assert.Equal(t, "M1", r.Roster[2].BibliographicID)
	assert.True(t, r.OnRoster("Ann Lee"))
	assert.False(t, r.OnRoster("Nobody"))
}

func TestResolveCollisions(t *testing.T) {
	roster := []types.Researcher{
		{Name: "First", BibliographicID: "X", ProfileID: "P"},
		{Name: "Second", BibliographicID: "X"},
		{Name: "Third", ProfileID: "P"},
		{Name: "NoIDs"},
	}

	r := Resolve(roster, &curation.Tables{})

	assert.Equal(t, "Second", r.Bibliographic["X"], "later name wins")
	assert.Equal(t, "Third", r.Profile["P"])
	assert.NotContains(t, r.Bibliographic, "")
	assert.Equal(t, []Collision{
		{Source: Bibliographic, ID: "X", Previous: "First", Name: "Second"},
		{Source: Profile, ID: "P", Previous: "First", Name: "Third"},
	}, r.Collisions)
}
