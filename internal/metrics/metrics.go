/*
Copyright 2025 The material-optimizer Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics records solver activity as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/netscript-tools/material-optimizer/pkg/core"
	"github.com/netscript-tools/material-optimizer/pkg/solver"
)

const namespace = "material_optimizer"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// UnknownIndustry is the industry label recorded for names outside the catalog.
const UnknownIndustry = "unknown"

// Recorder owns the solver collectors and the registry they are registered on.
// It is safe for concurrent use.
type Recorder struct {
	registry      *prometheus.Registry
	solves        *prometheus.CounterVec
	removalRounds prometheus.Histogram
	allocation    *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of storage allocations computed, by industry and outcome.",
		}, []string{"industry", "outcome"}),
		removalRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "removal_rounds",
			Help:      "Stationary points computed per successful allocation.",
			Buckets:   prometheus.LinearBuckets(1, 1, core.NumMaterials+1),
		}),
		allocation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "allocation_units",
			Help:      "Most recent allocated amount, by industry and material.",
		}, []string{"industry", "material"}),
	}
	r.registry.MustRegister(r.solves, r.removalRounds, r.allocation)
	return r
}

// Registry returns the registry the collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSolve records a successful allocation.
func (r *Recorder) ObserveSolve(sol *solver.Solution) {
	industry := sol.Industry.String()
	r.solves.WithLabelValues(industry, OutcomeSuccess).Inc()
	r.removalRounds.Observe(float64(sol.Rounds))
	for _, m := range core.Materials() {
		r.allocation.WithLabelValues(industry, m.String()).Set(sol.Allocation.Get(m))
	}
}

// ObserveFailure records a failed allocation for the named industry. The name
// is recorded in its catalog form, or as UnknownIndustry when it does not parse.
func (r *Recorder) ObserveFailure(industry string) {
	r.solves.WithLabelValues(industryLabel(industry), OutcomeFailure).Inc()
}

func industryLabel(name string) string {
	ind, err := core.ParseIndustry(name)
	if err != nil {
		return UnknownIndustry
	}
	return ind.String()
}

// WriteTextfile writes every metric to path in the text exposition format,
// suitable for the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
