// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// AreaShare is one entry of an area distribution.
type AreaShare struct {
	Area  string  `json:"area" yaml:"area"`
	Share float64 `json:"share" yaml:"share"`
}

// Publication is a short reference to one of a researcher's works.
type Publication struct {
	Title string `json:"title" yaml:"title"`
	Year  int    `json:"year" yaml:"year"`
}

// Node is one researcher in the output graph.
type Node struct {
	ID           string        `json:"id" yaml:"id"`
	ExternalID   *string       `json:"external_id" yaml:"external_id"`
	ProfileID    *string       `json:"profile_id" yaml:"profile_id"`
	CitedBy      int           `json:"citedby" yaml:"citedby"`
	HIndex       int           `json:"hindex" yaml:"hindex"`
	WorksCount   int           `json:"works_count" yaml:"works_count"`
	Interests    []string      `json:"interests" yaml:"interests"`
	Areas        []AreaShare   `json:"areas" yaml:"areas"`
	PrimaryArea  string        `json:"primary_area" yaml:"primary_area"`
	HasProfile   bool          `json:"has_profile" yaml:"has_profile"`
	TopPubs      []Publication `json:"top_pubs" yaml:"top_pubs"`
	SuspectMatch bool          `json:"suspect_match" yaml:"suspect_match"`
}

// CoauthorSignal records papers found in the bibliographic records that
// both researchers authored.
type CoauthorSignal struct {
	Count  int      `json:"count" yaml:"count"`
	Papers []string `json:"papers" yaml:"papers"`
}

// OverlapSignal records the size of an intersection between two
// researchers' label sets and a bounded sample of the shared labels.
type OverlapSignal struct {
	Count int      `json:"count" yaml:"count"`
	Names []string `json:"names" yaml:"names"`
}

// Edge is the fused relationship between two researchers. Source sorts
// before Target. Each signal is present only when its extractor produced it.
type Edge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	Coauthorship   *CoauthorSignal `yaml:"coauthorship,omitempty"`
	SharedRefs     *OverlapSignal  `yaml:"shared_refs,omitempty"`
	SharedTopics   *OverlapSignal  `yaml:"shared_topics,omitempty"`
	SharedJournals *OverlapSignal  `yaml:"shared_journals,omitempty"`

	// ProfileCoauthor is set when either profile lists the other researcher.
	ProfileCoauthor bool `yaml:"profile_coauthor,omitempty"`

	// Mentioned is set when the mention collaborator saw the pair together.
	Mentioned bool `yaml:"mentioned,omitempty"`

	Weight float64 `yaml:"weight"`
}

// CoauthorCount returns the number of shared papers, or zero.
func (e Edge) CoauthorCount() int {
	if e.Coauthorship == nil {
		return 0
	}
	return e.Coauthorship.Count
}

// edgeJSON is the flat wire shape of an Edge.
type edgeJSON struct {
	Source             string   `json:"source"`
	Target             string   `json:"target"`
	CoauthorCount      *int     `json:"coauthor_count,omitempty"`
	CoauthorPapers     []string `json:"coauthor_papers,omitempty"`
	SharedRefs         *int     `json:"shared_refs,omitempty"`
	SharedRefIDs       []string `json:"shared_ref_ids,omitempty"`
	SharedTopics       *int     `json:"shared_topics,omitempty"`
	SharedTopicNames   []string `json:"shared_topic_names,omitempty"`
	SharedJournals     *int     `json:"shared_journals,omitempty"`
	SharedJournalNames []string `json:"shared_journal_names,omitempty"`
	ScholarCoauthor    bool     `json:"scholar_coauthor,omitempty"`
	WebsiteCoauthor    bool     `json:"website_coauthor,omitempty"`
	Weight             float64  `json:"weight"`
}

// MarshalJSON flattens the signal sub-structs into the graph document's
// edge fields.
func (e Edge) MarshalJSON() ([]byte, error) {
	out := edgeJSON{
		Source:          e.Source,
		Target:          e.Target,
		ScholarCoauthor: e.ProfileCoauthor,
		WebsiteCoauthor: e.Mentioned,
		Weight:          e.Weight,
	}
	if c := e.Coauthorship; c != nil {
		out.CoauthorCount = &c.Count
		out.CoauthorPapers = c.Papers
	}
	if o := e.SharedRefs; o != nil {
		out.SharedRefs = &o.Count
		out.SharedRefIDs = o.Names
	}
	if o := e.SharedTopics; o != nil {
		out.SharedTopics = &o.Count
		out.SharedTopicNames = o.Names
	}
	if o := e.SharedJournals; o != nil {
		out.SharedJournals = &o.Count
		out.SharedJournalNames = o.Names
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat edge fields back into signal sub-structs.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var in edgeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Edge{
		Source:          in.Source,
		Target:          in.Target,
		ProfileCoauthor: in.ScholarCoauthor,
		Mentioned:       in.WebsiteCoauthor,
		Weight:          in.Weight,
	}
	if in.CoauthorCount != nil {
		e.Coauthorship = &CoauthorSignal{Count: *in.CoauthorCount, Papers: in.CoauthorPapers}
	}
	if in.SharedRefs != nil {
		e.SharedRefs = &OverlapSignal{Count: *in.SharedRefs, Names: in.SharedRefIDs}
	}
	if in.SharedTopics != nil {
		e.SharedTopics = &OverlapSignal{Count: *in.SharedTopics, Names: in.SharedTopicNames}
	}
	if in.SharedJournals != nil {
		e.SharedJournals = &OverlapSignal{Count: *in.SharedJournals, Names: in.SharedJournalNames}
	}
	return nil
}

// GraphDocument is the output of a build: one node per roster member and
// edges sorted by descending weight.
type GraphDocument struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}
