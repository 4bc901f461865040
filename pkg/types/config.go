// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InputConfig names the files a build reads.
type InputConfig struct {
	// RecordsPath is the bibliographic records JSON file (e.g. "data/faculty.json").
	RecordsPath string `json:"records" yaml:"records" mapstructure:"records" validate:"required"`

	// ProfilesPath is the profile records JSON file. Optional.
	ProfilesPath string `json:"profiles,omitempty" yaml:"profiles,omitempty" mapstructure:"profiles"`

	// MentionsPath is the mention records JSON file. Optional.
	MentionsPath string `json:"mentions,omitempty" yaml:"mentions,omitempty" mapstructure:"mentions"`

	// CurationPath is the curated override tables YAML file. Empty uses the
	// embedded default tables.
	CurationPath string `json:"curation,omitempty" yaml:"curation,omitempty" mapstructure:"curation"`
}

// ThresholdConfig holds the minimum intersection size for each
// overlap-based signal.
type ThresholdConfig struct {
	// Coauthor is the minimum shared-paper count (default 1).
	Coauthor int `json:"coauthor" yaml:"coauthor" mapstructure:"coauthor" validate:"gte=1"`

	// SharedRefs is the minimum shared-reference count (default 3).
	SharedRefs int `json:"shared_refs" yaml:"shared_refs" mapstructure:"shared_refs" validate:"gte=1"`

	// SharedTopics is the minimum shared-topic count (default 2).
	SharedTopics int `json:"shared_topics" yaml:"shared_topics" mapstructure:"shared_topics" validate:"gte=1"`

	// SharedJournals is the minimum shared-venue count (default 2).
	SharedJournals int `json:"shared_journals" yaml:"shared_journals" mapstructure:"shared_journals" validate:"gte=1"`
}

// WeightConfig holds the composite edge weight coefficients.
type WeightConfig struct {
	// Coauthor multiplies the shared-paper count (default 10).
	Coauthor float64 `json:"coauthor" yaml:"coauthor" mapstructure:"coauthor" validate:"gte=0"`

	// AttestedBonus is added once when a profile listing or mention attests
	// the pair but no shared paper was found (default 15).
	AttestedBonus float64 `json:"attested_bonus" yaml:"attested_bonus" mapstructure:"attested_bonus" validate:"gte=0"`

	// RefCap caps the shared-reference contribution (default 50).
	RefCap int `json:"ref_cap" yaml:"ref_cap" mapstructure:"ref_cap" validate:"gte=0"`

	// Topic multiplies the shared-topic count (default 2).
	Topic float64 `json:"topic" yaml:"topic" mapstructure:"topic" validate:"gte=0"`

	// Journal multiplies the shared-venue count (default 1.5).
	Journal float64 `json:"journal" yaml:"journal" mapstructure:"journal" validate:"gte=0"`
}

// FusionConfig holds settings for signal extraction and edge fusion.
type FusionConfig struct {
	Thresholds ThresholdConfig `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
	Weights    WeightConfig    `json:"weights" yaml:"weights" mapstructure:"weights"`

	// RecentWorks bounds how many of a researcher's most recent works feed
	// the topic signal (default 30).
	RecentWorks int `json:"recent_works" yaml:"recent_works" mapstructure:"recent_works" validate:"gte=1"`

	// TopRefIDs bounds the shared reference IDs stored per edge (default 15).
	TopRefIDs int `json:"top_ref_ids" yaml:"top_ref_ids" mapstructure:"top_ref_ids" validate:"gte=0"`

	// ExampleNames bounds the shared topic and journal names stored per edge (default 10).
	ExampleNames int `json:"example_names" yaml:"example_names" mapstructure:"example_names" validate:"gte=0"`
}

// ClassifierConfig holds settings for the topic classifier.
type ClassifierConfig struct {
	// MinShare drops areas whose share falls below it (default 0.08).
	MinShare float64 `json:"min_share" yaml:"min_share" mapstructure:"min_share" validate:"gte=0,lt=1"`

	// RecentWorks bounds how many of the most recent works feed the corpus (default 30).
	RecentWorks int `json:"recent_works" yaml:"recent_works" mapstructure:"recent_works" validate:"gte=1"`

	// ConceptsPerWork bounds how many concepts per work feed the corpus (default 5).
	ConceptsPerWork int `json:"concepts_per_work" yaml:"concepts_per_work" mapstructure:"concepts_per_work" validate:"gte=0"`
}

// GraphConfig holds settings for node assembly.
type GraphConfig struct {
	// TopPubs bounds the recent publications listed per node (default 10).
	TopPubs int `json:"top_pubs" yaml:"top_pubs" mapstructure:"top_pubs" validate:"gte=0"`
}

// StoreConfig holds settings for the SQLite graph store.
type StoreConfig struct {
	// Dir is the directory holding graph.db and exports (default "data/index").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=0"`
}

// Neo4jConfig holds connection settings for the optional Neo4j export.
// An empty URI disables the export.
type Neo4jConfig struct {
	URI      string `json:"uri,omitempty" yaml:"uri,omitempty" mapstructure:"uri" validate:"omitempty,uri"`
	User     string `json:"user,omitempty" yaml:"user,omitempty" mapstructure:"user"`
	Password string `json:"-" yaml:"-" mapstructure:"password"`
	Database string `json:"database,omitempty" yaml:"database,omitempty" mapstructure:"database"`
}

// PipelineConfig groups all stage configurations for a build.
type PipelineConfig struct {
	Input      InputConfig      `json:"input" yaml:"input" mapstructure:"input"`
	Fusion     FusionConfig     `json:"fusion" yaml:"fusion" mapstructure:"fusion"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	Graph      GraphConfig      `json:"graph" yaml:"graph" mapstructure:"graph"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Neo4j      Neo4jConfig      `json:"neo4j" yaml:"neo4j" mapstructure:"neo4j"`

	// OutputPath is where the graph document is written (default "data/graph.json").
	OutputPath string `json:"output" yaml:"output" mapstructure:"output" validate:"required"`

	// MetricsPath, when set, receives a Prometheus textfile after each build.
	MetricsPath string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}

// DefaultFusionConfig returns the thresholds and weights the graph was tuned with.
func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		Thresholds: ThresholdConfig{
			Coauthor:       1,
			SharedRefs:     3,
			SharedTopics:   2,
			SharedJournals: 2,
		},
		Weights: WeightConfig{
			Coauthor:      10,
			AttestedBonus: 15,
			RefCap:        50,
			Topic:         2,
			Journal:       1.5,
		},
		RecentWorks:  30,
		TopRefIDs:    15,
		ExampleNames: 10,
	}
}

// DefaultClassifierConfig returns the classifier defaults.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinShare:        0.08,
		RecentWorks:     30,
		ConceptsPerWork: 5,
	}
}

// DefaultPipelineConfig returns a complete configuration with defaults
// for every stage.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Input: InputConfig{
			RecordsPath:  "data/faculty.json",
			ProfilesPath: "data/scholar.json",
			MentionsPath: "data/website_papers.json",
		},
		Fusion:     DefaultFusionConfig(),
		Classifier: DefaultClassifierConfig(),
		Graph:      GraphConfig{TopPubs: 10},
		Store:      StoreConfig{Dir: "data/index", MaxResults: 20},
		Neo4j:      Neo4jConfig{User: "neo4j"},
		OutputPath: "data/graph.json",
	}
}
