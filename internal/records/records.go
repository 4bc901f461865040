// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records loads the per-researcher records produced by the
// collectors and merges them into one roster of types.Researcher.
//
// Three files feed a build: bibliographic records (works, topics, and
// references), profile records (interests, citation metrics, and listed
// co-authors), and mention records. Null or absent fields decode to empty
// values and are never errors.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

// BibliographicRecord is one researcher as collected from the
// bibliographic database.
type BibliographicRecord struct {
	Name         string        `json:"name"`
	ExternalID   string        `json:"external_id"`
	WorksCount   int           `json:"works_count"`
	CitedByCount int           `json:"cited_by_count"`
	Topics       []types.Label `json:"topics"`
	Works        []types.Work  `json:"works"`
}

// ProfileRecord is one researcher as collected from the profile service.
// Error is set by the collector when the profile could not be fetched.
type ProfileRecord struct {
	Name      string         `json:"name"`
	ProfileID string         `json:"profile_id"`
	CitedBy   int            `json:"citedby"`
	HIndex    int            `json:"hindex"`
	Interests []string       `json:"interests"`
	Coauthors []types.Author `json:"coauthors"`
	Error     string         `json:"error,omitempty"`
}

// Set holds everything read for one build.
type Set struct {
	Bibliographic []BibliographicRecord
	Profiles      []ProfileRecord
	Mentions      []types.Mention

	// Missing lists optional files that did not exist.
	Missing []string
}

// Load reads the files named by cfg from fsys. The records file is
// required; missing profile or mention files are noted in Set.Missing.
func Load(fsys afero.Fs, cfg types.InputConfig) (*Set, error) {
	set := &Set{}

	if err := readJSON(fsys, cfg.RecordsPath, &set.Bibliographic); err != nil {
		return nil, fmt.Errorf("reading records %s: %w", cfg.RecordsPath, err)
	}

	optional := []struct {
		path string
		into any
	}{
		{cfg.ProfilesPath, &set.Profiles},
		{cfg.MentionsPath, &set.Mentions},
	}
	for _, o := range optional {
		if o.path == "" {
			continue
		}
		err := readJSON(fsys, o.path, o.into)
		if errors.Is(err, fs.ErrNotExist) {
			set.Missing = append(set.Missing, o.path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", o.path, err)
		}
	}

	return set, nil
}

func readJSON(fsys afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}

// Roster merges the bibliographic and profile records into one researcher
// per name. When names is non-empty it fixes the roster and its order;
// records for other names are dropped and listed names without records get
// an empty researcher. Otherwise the roster is every name seen, in first-seen
// order, bibliographic records first. A name appearing twice in one source
// keeps its later record.
func (s *Set) Roster(names []string) []types.Researcher {
	fixed := len(names) > 0
	var order []string
	byName := make(map[string]*types.Researcher)

	get := func(name string) *types.Researcher {
		if r, ok := byName[name]; ok {
			return r
		}
		if fixed {
			return nil
		}
		r := &types.Researcher{Name: name}
		byName[name] = r
		order = append(order, name)
		return r
	}

	if fixed {
		for _, name := range names {
			if _, ok := byName[name]; ok {
				continue
			}
			byName[name] = &types.Researcher{Name: name}
			order = append(order, name)
		}
	}

	for _, b := range s.Bibliographic {
		r := get(b.Name)
		if r == nil {
			continue
		}
		r.BibliographicID = b.ExternalID
		r.WorksCount = b.WorksCount
		r.CitedByCount = b.CitedByCount
		r.Tags = b.Topics
		r.Works = b.Works
	}

	for _, p := range s.Profiles {
		r := get(p.Name)
		if r == nil {
			continue
		}
		r.ProfileID = p.ProfileID
		r.ProfileCitedBy = p.CitedBy
		r.HIndex = p.HIndex
		r.Interests = p.Interests
		r.ProfileCoauthors = p.Coauthors
		r.HasProfile = p.ProfileID != "" && p.Error == ""
	}

	roster := make([]types.Researcher, len(order))
	for i, name := range order {
		roster[i] = *byName[name]
	}
	return roster
}
