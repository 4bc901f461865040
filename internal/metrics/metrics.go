// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records gauges describing a graph build and writes them
// in the Prometheus textfile format for a node exporter to pick up.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/faculty-graph/internal/pipeline"
)

// Build holds the gauges for one build on a private registry.
type Build struct {
	reg *prometheus.Registry

	Researchers prometheus.Gauge
	Excluded    prometheus.Gauge
	Suspect     prometheus.Gauge
	Collisions  prometheus.Gauge
	Edges       prometheus.Gauge
	Duration    prometheus.Gauge
	LastSuccess prometheus.Gauge

	SignalPairs  *prometheus.GaugeVec
	PrimaryAreas *prometheus.GaugeVec
}

// New registers the build gauges.
func New() *Build {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Build{
		reg: reg,
		Researchers: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_researchers",
			Help: "Researchers on the roster",
		}),
		Excluded: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_excluded_researchers",
			Help: "Researchers whose bibliographic records were excluded",
		}),
		Suspect: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_suspect_researchers",
			Help: "Researchers flagged as suspect matches",
		}),
		Collisions: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_identity_collisions",
			Help: "Source IDs claimed by more than one roster name",
		}),
		Edges: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_edges",
			Help: "Fused edges in the graph",
		}),
		Duration: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_build_duration_seconds",
			Help: "Wall time of the last build",
		}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "faculty_graph_last_success_timestamp_seconds",
			Help: "Unix time the last build finished",
		}),
		SignalPairs: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "faculty_graph_signal_pairs",
			Help: "Pairs produced by each signal extractor",
		}, []string{"kind"}),
		PrimaryAreas: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "faculty_graph_primary_area_researchers",
			Help: "Researchers per primary area",
		}, []string{"area"}),
	}
}

// Observe sets every gauge from a finished build.
func (b *Build) Observe(r *pipeline.Result, took time.Duration, finished time.Time) {
	s := r.Summary
	b.Researchers.Set(float64(s.Researchers))
	b.Excluded.Set(float64(s.Excluded))
	b.Suspect.Set(float64(s.Suspect))
	b.Collisions.Set(float64(s.Collisions))
	b.Edges.Set(float64(s.Edges))
	b.Duration.Set(took.Seconds())
	b.LastSuccess.Set(float64(finished.Unix()))

	for _, kc := range s.Signals {
		b.SignalPairs.WithLabelValues(string(kc.Kind)).Set(float64(kc.Pairs))
	}
	b.PrimaryAreas.Reset()
	for _, n := range r.Document.Nodes {
		b.PrimaryAreas.WithLabelValues(n.PrimaryArea).Inc()
	}
}

// Registry returns the registry holding the build gauges.
func (b *Build) Registry() *prometheus.Registry { return b.reg }

// WriteTextfile writes the gauges to path atomically.
func (b *Build) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, b.reg); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}
	return nil
}
