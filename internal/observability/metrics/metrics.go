package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics exposes counters/histograms for chat, provider and session flows.
type ChatMetrics struct {
	messagesTotal   *prometheus.CounterVec
	crisisTotal     prometheus.Counter
	providerLatency *prometheus.HistogramVec
	sessionsCreated *prometheus.CounterVec
	sessionsSwept   prometheus.Counter
	activeSessions  prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saathi",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Inbound chat messages by terminal outcome",
		}, []string{"outcome"}),
		crisisTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saathi",
			Subsystem: "chat",
			Name:      "crisis_flagged_total",
			Help:      "Messages that matched the crisis lexicon",
		}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "saathi",
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Latency of generative provider calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider", "status"}),
		sessionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saathi",
			Subsystem: "sessions",
			Name:      "created_total",
			Help:      "Sessions created, explicitly via start or implicitly on first message",
		}, []string{"origin"}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saathi",
			Subsystem: "sessions",
			Name:      "swept_total",
			Help:      "Idle sessions removed by the sweeper",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "saathi",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Sessions currently held in memory",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "saathi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "saathi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.messagesTotal,
		m.crisisTotal,
		m.providerLatency,
		m.sessionsCreated,
		m.sessionsSwept,
		m.activeSessions,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

func (m *ChatMetrics) ObserveMessage(outcome string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(outcome).Inc()
}

func (m *ChatMetrics) ObserveCrisis() {
	if m == nil {
		return
	}
	m.crisisTotal.Inc()
}

func (m *ChatMetrics) ObserveProvider(provider, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "none"
	}
	m.providerLatency.WithLabelValues(provider, status).Observe(elapsed.Seconds())
}

func (m *ChatMetrics) ObserveSessionCreated(origin string, active int) {
	if m == nil {
		return
	}
	m.sessionsCreated.WithLabelValues(origin).Inc()
	m.activeSessions.Set(float64(active))
}

// ObserveSweep satisfies session.SweepObserver.
func (m *ChatMetrics) ObserveSweep(removed, remaining int) {
	if m == nil {
		return
	}
	m.sessionsSwept.Add(float64(removed))
	m.activeSessions.Set(float64(remaining))
}

func (m *ChatMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
