package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initTopologyMetrics()
	r.initOperationMetrics()
	r.initNetworkMetrics()
	r.initEventMetrics()

	return r
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordOperation records a placement operation and its outcome
func (r *Registry) RecordOperation(operation, status string, duration time.Duration) {
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
	r.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordNetworkEvent records a network lifecycle transition. size is the
// member count of the network the event produced; zero skips the histogram.
func (r *Registry) RecordNetworkEvent(kind string, size int) {
	r.NetworkEventsTotal.WithLabelValues(kind).Inc()
	if size > 0 {
		r.NetworkSize.Observe(float64(size))
	}
}

// RecordPublish records an event publication and how many subscribers missed it
func (r *Registry) RecordPublish(topic string, dropped int) {
	r.EventsPublishedTotal.WithLabelValues(topic).Inc()
	if dropped > 0 {
		r.EventsDroppedTotal.Add(float64(dropped))
	}
}

// UpdateTopology sets the topology gauges
func (r *Registry) UpdateTopology(segments, anchored, networks int) {
	r.SegmentsTotal.Set(float64(segments))
	r.SegmentsAnchored.Set(float64(anchored))
	r.NetworksTotal.Set(float64(networks))
}
