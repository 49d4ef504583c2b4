// Package metrics holds the engine's internal Prometheus instruments.
// Whether/how they are exposed over HTTP is the surrounding process's
// concern; this package only registers and exports the collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the counters/histograms the application layer records.
type Metrics struct {
	SearchDuration     prometheus.Histogram
	CandidatesEvaluated prometheus.Histogram
	ReloadSuccess      prometheus.Counter
	ReloadFailure      prometheus.Counter
	ReloadDuration     prometheus.Histogram
}

// New registers a fresh Metrics set against registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "freightroute",
			Name:      "search_duration_seconds",
			Help:      "Wall time of the k-shortest-paths search + materialization + ranking pipeline.",
			Buckets:   prometheus.DefBuckets,
		}),
		CandidatesEvaluated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "freightroute",
			Name:      "candidates_evaluated",
			Help:      "Number of candidate routes materialized per OptimizeRoutes call.",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		}),
		ReloadSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "freightroute",
			Name:      "graph_reload_success_total",
			Help:      "Number of successful graph reloads.",
		}),
		ReloadFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "freightroute",
			Name:      "graph_reload_failure_total",
			Help:      "Number of failed graph reloads.",
		}),
		ReloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "freightroute",
			Name:      "graph_reload_duration_seconds",
			Help:      "Wall time of a graph reload, success or failure.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.SearchDuration,
		m.CandidatesEvaluated,
		m.ReloadSuccess,
		m.ReloadFailure,
		m.ReloadDuration,
	)
	return m
}
