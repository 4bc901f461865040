// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity maps source-specific identifiers onto roster names.
//
// Every source names people differently: the bibliographic database uses
// its own author IDs, the profile service uses profile IDs, and the
// mention collaborator uses display names. Resolve applies the curated
// overrides and builds one index per source so the signal extractors can
// turn any co-author reference back into a roster name.
package identity

import (
	"github.com/pdiddy/faculty-graph/internal/curation"
	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Source identifies which ID space an index covers.
type Source string

const (
	Bibliographic Source = "bibliographic"
	Profile       Source = "profile"
)

// Collision records a second roster name claiming an ID already indexed.
// The later name wins.
type Collision struct {
	Source   Source
	ID       string
	Previous string
	Name     string
}

// Resolved is the roster after overrides plus the per-source indexes.
type Resolved struct {
	// Roster is the input roster, in input order, with overrides applied.
	Roster []types.Researcher

	// Bibliographic maps bibliographic author IDs to roster names.
	Bibliographic map[string]string

	// Profile maps profile-service IDs to roster names.
	Profile map[string]string

	// Excluded and Suspect hold the names flagged by curation.
	Excluded map[string]bool
	Suspect  map[string]bool

	Collisions []Collision

	byName map[string]int
}

// Resolve applies ID overrides, then exclusions, then suspect flags, and
// builds the ID indexes. The input slice is not modified.
//
// An excluded researcher keeps their place on the roster and their profile
// data, but loses every bibliographic field: their collected works belong
// to someone else.
func Resolve(roster []types.Researcher, tables *curation.Tables) *Resolved {
	r := &Resolved{
		Roster:        make([]types.Researcher, len(roster)),
		Bibliographic: make(map[string]string),
		Profile:       make(map[string]string),
		Excluded:      make(map[string]bool),
		Suspect:       make(map[string]bool),
		byName:        make(map[string]int, len(roster)),
	}
	copy(r.Roster, roster)

	for i := range r.Roster {
		res := &r.Roster[i]
		r.byName[res.Name] = i

		if ids, ok := tables.ExternalIDs[res.Name]; ok {
			if ids.Bibliographic != "" {
				res.BibliographicID = ids.Bibliographic
			}
			if ids.Profile != "" {
				res.ProfileID = ids.Profile
			}
		}

		if tables.IsExcluded(res.Name) {
			r.Excluded[res.Name] = true
			res.BibliographicID = ""
			res.Works = nil
			res.WorksCount = 0
			res.CitedByCount = 0
			res.Tags = nil
		}

		if tables.IsSuspect(res.Name) {
			r.Suspect[res.Name] = true
		}

		r.index(Bibliographic, r.Bibliographic, res.BibliographicID, res.Name)
		r.index(Profile, r.Profile, res.ProfileID, res.Name)
	}

	return r
}

func (r *Resolved) index(src Source, idx map[string]string, id, name string) {
	if id == "" {
		return
	}
	if prev, ok := idx[id]; ok && prev != name {
		r.Collisions = append(r.Collisions, Collision{Source: src, ID: id, Previous: prev, Name: name})
	}
	idx[id] = name
}

// OnRoster reports whether name is a roster member.
func (r *Resolved) OnRoster(name string) bool {
	_, ok := r.byName[name]
	return ok
}
