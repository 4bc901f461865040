// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curation loads the curated override tables that steer identity
// resolution and classification: the roster, exclusion and suspect lists,
// external-ID overrides, manual area distributions, area keyword sets, and
// the non-journal venue denylist.
//
// The tables are versioned data. A default set is embedded in the binary
// and a YAML file passed with --curation replaces it.
package curation

import (
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

//go:embed default.yaml
var defaultTables []byte

// Entry names one researcher on the exclusion or suspect list.
type Entry struct {
	Name   string `yaml:"name" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// ExternalIDs overrides the source IDs recorded for a researcher.
// Empty fields leave the collected ID in place.
type ExternalIDs struct {
	Bibliographic string `yaml:"bibliographic,omitempty"`
	Profile       string `yaml:"profile,omitempty"`
}

// AreaWeight is one relative weight in a manual area distribution.
type AreaWeight struct {
	Area   string  `yaml:"area" validate:"required"`
	Weight float64 `yaml:"weight" validate:"gt=0"`
}

// Area is a topical area and the keyword substrings that indicate it.
// Declaration order breaks score ties.
type Area struct {
	Name     string   `yaml:"name" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"min=1,dive,required"`
}

// Tables holds every curated table.
type Tables struct {
	// Roster fixes the researchers in the graph. When empty the roster is
	// every name found in the collected records.
	Roster []string `yaml:"roster,omitempty" validate:"dive,required"`

	// DefaultArea is assigned at share 1.0 to researchers whose corpus
	// matches no keyword.
	DefaultArea string `yaml:"default_area" validate:"required"`

	// FallbackArea is the primary area of a node with an empty distribution.
	FallbackArea string `yaml:"fallback_area,omitempty"`

	Exclude     []Entry                 `yaml:"exclude,omitempty" validate:"dive"`
	Suspect     []Entry                 `yaml:"suspect,omitempty" validate:"dive"`
	ExternalIDs map[string]ExternalIDs  `yaml:"external_ids,omitempty"`
	ManualAreas map[string][]AreaWeight `yaml:"manual_areas,omitempty" validate:"dive,min=1,dive"`
	Areas       []Area                  `yaml:"areas" validate:"min=1,dive"`
	NonJournals []string                `yaml:"non_journals,omitempty"`
}

var validate = validator.New()

// Default returns the embedded tables.
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// Load reads tables from path on fs. An empty path returns the embedded
// default tables.
func Load(fs afero.Fs, path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading curation file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("curation file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates YAML tables.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing curation tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks field constraints and cross-references: area names are
// unique, and every area named by the default or a manual distribution is
// declared.
func (t *Tables) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid curation tables: %w", err)
	}

	declared := make(map[string]bool, len(t.Areas))
	for _, a := range t.Areas {
		if declared[a.Name] {
			return fmt.Errorf("invalid curation tables: area %q declared twice", a.Name)
		}
		declared[a.Name] = true
	}
	if !declared[t.DefaultArea] {
		return fmt.Errorf("invalid curation tables: default area %q is not declared", t.DefaultArea)
	}
	for name, dist := range t.ManualAreas {
		for _, aw := range dist {
			if !declared[aw.Area] {
				return fmt.Errorf("invalid curation tables: manual area %q for %s is not declared", aw.Area, name)
			}
		}
	}
	return nil
}

// IsExcluded reports whether name is on the exclusion list.
func (t *Tables) IsExcluded(name string) bool {
	return containsEntry(t.Exclude, name)
}

// IsSuspect reports whether name is on the suspect list.
func (t *Tables) IsSuspect(name string) bool {
	return containsEntry(t.Suspect, name)
}

// Manual returns the curated distribution for name, if any.
func (t *Tables) Manual(name string) ([]AreaWeight, bool) {
	dist, ok := t.ManualAreas[name]
	return dist, ok && len(dist) > 0
}

// AreaOrder maps each declared area to its declaration index.
func (t *Tables) AreaOrder() map[string]int {
	order := make(map[string]int, len(t.Areas))
	for i, a := range t.Areas {
		order[a.Name] = i
	}
	return order
}

// IsNonJournal reports whether venue is on the non-journal denylist.
func (t *Tables) IsNonJournal(venue string) bool {
	for _, v := range t.NonJournals {
		if v == venue {
			return true
		}
	}
	return false
}

func containsEntry(entries []Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}
