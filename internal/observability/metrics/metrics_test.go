package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveMessage("responded")
	m.ObserveMessage("responded")
	m.ObserveMessage("invalid_input")
	m.ObserveCrisis()
	m.ObserveProvider("gemini", "ok", 1500*time.Millisecond)
	m.ObserveProvider("", "error", time.Second)
	m.ObserveHTTP("POST", "/api/chat/{sessionId}", 200, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.messagesTotal.WithLabelValues("responded")); got != 2 {
		t.Fatalf("expected 2 responded messages, got %v", got)
	}
	if got := testutil.ToFloat64(m.crisisTotal); got != 1 {
		t.Fatalf("expected 1 crisis, got %v", got)
	}
	if got := testutil.CollectAndCount(m.providerLatency); got != 2 {
		t.Fatalf("expected 2 provider series, got %d", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/chat/{sessionId}", "200")); got != 1 {
		t.Fatalf("expected 1 http request, got %v", got)
	}
}

func TestChatMetricsSessionsGauge(t *testing.T) {
	m := NewChatMetrics(prometheus.NewRegistry())
	m.ObserveSessionCreated("explicit", 3)
	m.ObserveSessionCreated("implicit", 4)
	m.ObserveSweep(2, 2)

	var metric dto.Metric
	if err := m.activeSessions.Write(&metric); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 2 {
		t.Fatalf("expected active gauge 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.sessionsSwept); got != 2 {
		t.Fatalf("expected 2 swept, got %v", got)
	}
	if got := testutil.ToFloat64(m.sessionsCreated.WithLabelValues("implicit")); got != 1 {
		t.Fatalf("expected 1 implicit session, got %v", got)
	}
}

func TestChatMetricsNilSafe(t *testing.T) {
	var m *ChatMetrics
	m.ObserveMessage("responded")
	m.ObserveCrisis()
	m.ObserveProvider("gemini", "ok", time.Second)
	m.ObserveSessionCreated("explicit", 1)
	m.ObserveSweep(1, 0)
	m.ObserveHTTP("GET", "/api/health", 200, time.Millisecond)
}
