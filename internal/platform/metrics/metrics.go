package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio
// (evita colisiones con el registry global en tests).
type Metrics struct {
	registry *prometheus.Registry

	JournalSubmissions prometheus.Counter
	IdempotentReplays  prometheus.Counter
	AnnotationOutcomes *prometheus.CounterVec // outcome: annotated|oracle_failed|oracle_empty|update_failed
	OracleLatency      prometheus.Histogram

	HTTPRequests *prometheus.CounterVec // route, method, status
	HTTPDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		JournalSubmissions: f.NewCounter(prometheus.CounterOpts{
			Name: "moodjournal_journal_submissions_total",
			Help: "Journal entries inserted through the annotation workflow",
		}),
		IdempotentReplays: f.NewCounter(prometheus.CounterOpts{
			Name: "moodjournal_journal_idempotent_replays_total",
			Help: "Submissions answered from the idempotency cache",
		}),
		AnnotationOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moodjournal_annotation_outcomes_total",
			Help: "Annotation workflow outcomes by result",
		}, []string{"outcome"}),
		OracleLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "moodjournal_oracle_duration_seconds",
			Help:    "Latency of annotation oracle calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moodjournal_http_requests_total",
			Help: "HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moodjournal_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAnnotation es nil-safe para que los servicios no dependan de métricas.
func (m *Metrics) ObserveAnnotation(outcome string) {
	if m == nil {
		return
	}
	m.AnnotationOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveOracle(seconds float64) {
	if m == nil {
		return
	}
	m.OracleLatency.Observe(seconds)
}

func (m *Metrics) IncSubmission() {
	if m == nil {
		return
	}
	m.JournalSubmissions.Inc()
}

func (m *Metrics) IncReplay() {
	if m == nil {
		return
	}
	m.IdempotentReplays.Inc()
}
