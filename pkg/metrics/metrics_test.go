package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.SegmentsTotal == nil || r.NetworksTotal == nil || r.OperationsTotal == nil {
		t.Error("metrics not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordOperation(t *testing.T) {
	r := NewRegistry()

	r.RecordOperation("attach", "ok", time.Millisecond)
	r.RecordOperation("attach", "ok", time.Millisecond)
	r.RecordOperation("attach", "collision", time.Millisecond)

	ok, err := r.OperationsTotal.GetMetricWithLabelValues("attach", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, ok); got != 2 {
		t.Errorf("attach/ok = %v, want 2", got)
	}
	collision, _ := r.OperationsTotal.GetMetricWithLabelValues("attach", "collision")
	if got := counterValue(t, collision); got != 1 {
		t.Errorf("attach/collision = %v, want 1", got)
	}
}

func TestRecordNetworkEvent(t *testing.T) {
	r := NewRegistry()

	r.RecordNetworkEvent("split", 3)
	r.RecordNetworkEvent("destroyed", 0)

	split, _ := r.NetworkEventsTotal.GetMetricWithLabelValues("split")
	if got := counterValue(t, split); got != 1 {
		t.Errorf("split = %v, want 1", got)
	}

	var m dto.Metric
	if err := r.NetworkSize.Write(&m); err != nil {
		t.Fatal(err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("network size samples = %d, want 1", got)
	}
}

func TestUpdateTopologyAndPublish(t *testing.T) {
	r := NewRegistry()
	r.UpdateTopology(5, 3, 2)
	r.RecordPublish("segments", 2)

	if got := gaugeValue(t, r.SegmentsAnchored); got != 3 {
		t.Errorf("anchored = %v, want 3", got)
	}
	if got := gaugeValue(t, r.NetworksTotal); got != 2 {
		t.Errorf("networks = %v, want 2", got)
	}
	if got := counterValue(t, r.EventsDroppedTotal); got != 2 {
		t.Errorf("dropped = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.UpdateTopology(1, 1, 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "pipenet_networks_total 1") {
		t.Errorf("exposition missing networks gauge:\n%s", body)
	}
}
