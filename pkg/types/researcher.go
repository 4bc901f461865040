// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the faculty-graph pipeline.
// Researcher and Work carry the collected per-entity records; GraphDocument,
// Node, and Edge carry the fused output consumed by visualization.
package types

// Label is a weighted text label such as a topic, tag, or concept.
type Label struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// Author identifies one author of a work or one co-author listed on a
// profile. ID is specific to the source that produced the record.
type Author struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Work is one authored paper from the bibliographic source.
type Work struct {
	// ID is the opaque source identifier of the work, if known.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is compared case-folded when deduplicating.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year" yaml:"year"`

	// Type is the source's work type (e.g. "article", "preprint").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Authors lists every author with a bibliographic-source ID.
	Authors []Author `json:"authors" yaml:"authors"`

	// ReferencedIDs are identifiers of works this work cites. They point
	// into the wider literature, not into the roster.
	ReferencedIDs []string `json:"referenced_ids" yaml:"referenced_ids"`

	// Journal is the venue display name; empty when unknown.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// PrimaryTopic is the source's main topic label for the work.
	PrimaryTopic string `json:"primary_topic,omitempty" yaml:"primary_topic,omitempty"`

	Topics   []Label `json:"topics,omitempty" yaml:"topics,omitempty"`
	Concepts []Label `json:"concepts,omitempty" yaml:"concepts,omitempty"`
}

// Researcher is one member of the fixed roster with everything the
// collectors gathered about them. Name is the identity key; every signal
// and edge refers to researchers by Name, never by a source ID.
type Researcher struct {
	Name string `json:"name" yaml:"name"`

	// BibliographicID is the researcher's ID in the bibliographic database.
	BibliographicID string `json:"external_id,omitempty" yaml:"external_id,omitempty"`

	// ProfileID is the researcher's ID on the profile service.
	ProfileID string `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`

	WorksCount   int     `json:"works_count" yaml:"works_count"`
	CitedByCount int     `json:"cited_by_count" yaml:"cited_by_count"`
	Tags         []Label `json:"topics" yaml:"topics"`
	Works        []Work  `json:"works" yaml:"works"`

	// Interests are free-text research interests from the profile service.
	Interests []string `json:"interests" yaml:"interests"`

	// ProfileCoauthors are the co-authors listed on the profile, keyed by
	// profile-service ID.
	ProfileCoauthors []Author `json:"profile_coauthors,omitempty" yaml:"profile_coauthors,omitempty"`

	ProfileCitedBy int  `json:"citedby" yaml:"citedby"`
	HIndex         int  `json:"hindex" yaml:"hindex"`
	HasProfile     bool `json:"has_profile" yaml:"has_profile"`
}
