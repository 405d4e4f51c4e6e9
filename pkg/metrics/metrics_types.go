package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry holds all metrics for the application
type Registry struct {
	// Topology gauges
	SegmentsTotal    prometheus.Gauge
	SegmentsAnchored prometheus.Gauge
	NetworksTotal    prometheus.Gauge

	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Network lifecycle metrics
	NetworkEventsTotal *prometheus.CounterVec
	NetworkSize        prometheus.Histogram

	// Event bus metrics
	EventsPublishedTotal *prometheus.CounterVec
	EventsDroppedTotal   prometheus.Counter

	registry *prometheus.Registry
}

