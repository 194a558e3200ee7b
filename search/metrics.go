package search

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors fed by Solve.
type Metrics struct {
	Nodes         prometheus.Counter
	BoundCuts     prometheus.Counter
	DominanceCuts prometheus.Counter
	Improvements  prometheus.Counter
	Solves        *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// NewMetrics creates the solver collectors and registers them on reg.
// A nil reg leaves them unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relocate_search_nodes_total",
			Help: "Search nodes expanded.",
		}),
		BoundCuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relocate_search_bound_cuts_total",
			Help: "Branches pruned by the incumbent bound.",
		}),
		DominanceCuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relocate_search_dominance_cuts_total",
			Help: "Branches pruned by the dominance memo.",
		}),
		Improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relocate_search_improvements_total",
			Help: "New incumbents found.",
		}),
		Solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relocate_solves_total",
			Help: "Finished Solve calls by outcome.",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relocate_solve_duration_seconds",
			Help:    "Wall-clock duration of Solve.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Nodes, m.BoundCuts, m.DominanceCuts, m.Improvements, m.Solves, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("NewMetrics: %w", err)
		}
	}

	return m, nil
}

func outcome(err error, complete bool) string {
	switch {
	case err == nil && complete:
		return "optimal"
	case err == nil:
		return "partial"
	default:
		return errorLabel(err)
	}
}
