package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTopologyMetrics() {
	r.SegmentsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pipenet_segments_total",
			Help: "Number of live segments",
		},
	)

	r.SegmentsAnchored = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pipenet_segments_anchored",
			Help: "Number of anchored segments",
		},
	)

	r.NetworksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pipenet_networks_total",
			Help: "Number of live networks",
		},
	)
}

func (r *Registry) initOperationMetrics() {
	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenet_operations_total",
			Help: "Placement operations by outcome",
		},
		[]string{"operation", "status"},
	)

	r.OperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipenet_operation_duration_seconds",
			Help:    "Placement operation duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"operation"},
	)
}

func (r *Registry) initNetworkMetrics() {
	r.NetworkEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenet_network_events_total",
			Help: "Network lifecycle transitions by kind",
		},
		[]string{"kind"},
	)

	r.NetworkSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipenet_network_size_segments",
			Help:    "Size of networks produced by create, merge and split",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
}

func (r *Registry) initEventMetrics() {
	r.EventsPublishedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenet_events_published_total",
			Help: "Topology events published by topic",
		},
		[]string{"topic"},
	)

	r.EventsDroppedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pipenet_events_dropped_total",
			Help: "Topology event deliveries skipped because a subscriber was full",
		},
	)
}
