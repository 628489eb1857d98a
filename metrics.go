package astar

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records Prometheus metrics for finished searches.
//
// Exposed (namespace "astar"):
//   - searches_total{status}: searches by terminal status.
//   - search_duration_seconds{status}: wall-clock time per search.
//   - expanded_nodes: dequeued paths per search.
//   - frontier_size_peak: largest frontier seen per search.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	searches     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	expanded     prometheus.Histogram
	frontierPeak prometheus.Histogram
}

// NewMetrics creates and registers the search metrics with registry.
// A nil registry registers with prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "astar",
			Name:      "searches_total",
			Help:      "Finished searches by terminal status",
		}, []string{"status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of a search",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"status"}),
		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "expanded_nodes",
			Help:      "Paths dequeued from the frontier per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		frontierPeak: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "astar",
			Name:      "frontier_size_peak",
			Help:      "Largest frontier size reached during a search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(status Status, elapsed time.Duration, expandedNodes, frontierPeak int) {
	if m == nil {
		return
	}
	label := status.String()
	m.searches.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
	m.expanded.Observe(float64(expandedNodes))
	m.frontierPeak.Observe(float64(frontierPeak))
}
